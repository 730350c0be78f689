package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/engine/ledger"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

type LedgerTestSuite struct {
	suite.Suite
	account *entities.Account
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) SetupTest() {
	s.account = &entities.Account{
		ID:         "acct_1",
		Rank:       entities.RankNovice,
		Stats:      entities.Stats{Str: 5},
		Currencies: entities.Currencies{Gold: 10_000, TrainingPoints: 5_000, SoulShards: 35},
		Equipment: map[entities.Slot]*entities.Item{
			entities.SlotWeapon: {ID: "sword", Bonus: entities.ItemBonus{Str: 990}},
		},
		Pets: map[string]*entities.Pet{
			"egg": {
				ID:         "egg",
				Tier:       entities.PetTierEgg,
				Exp:        100,
				Stats:      entities.PetStats{Str: 10, Spd: 3, Luck: 1, ElementalPower: 5},
				Affinities: []entities.Element{"fire"},
			},
		},
		EquippedPetID: "egg",
	}
}

func (s *LedgerTestSuite) assertCurrenciesInRange() {
	for _, r := range entities.AllResources {
		v := s.account.Currencies.Get(r)
		s.GreaterOrEqual(v, entities.Num(0), "%s", r)
		s.LessOrEqual(v, entities.MaxSafe, "%s", r)
	}
}

func (s *LedgerTestSuite) TestBoostStatChargesExchangeRate() {
	cost, err := ledger.BoostStat(s.account, entities.StatStr, 3)
	s.Require().NoError(err)
	s.Equal(entities.Num(3000), cost)
	s.Equal(entities.Num(8), s.account.Stats.Str)
	s.Equal(entities.Num(2000), s.account.Currencies.TrainingPoints)
}

func (s *LedgerTestSuite) TestBoostStatIsAllOrNothing() {
	_, err := ledger.BoostStat(s.account, entities.StatStr, 6)
	s.Require().Error(err)
	s.True(errors.IsInsufficientResources(err))
	s.Equal(errors.ReasonInsufficientFunds, errors.GetReason(err))
	s.Equal(entities.Num(5), s.account.Stats.Str)
	s.Equal(entities.Num(5000), s.account.Currencies.TrainingPoints)
}

func (s *LedgerTestSuite) TestBoostStatRejectsUnknownStat() {
	_, err := ledger.BoostStat(s.account, entities.Stat("charm"), 1)
	s.True(errors.IsInvalidArgument(err))
}

func (s *LedgerTestSuite) TestBoostPetStat() {
	cost, err := ledger.BoostPetStat(s.account, "egg", entities.PetStatSpd, 3)
	s.Require().NoError(err)
	s.Equal(entities.Num(30), cost)
	s.Equal(entities.Num(6), s.account.Pets["egg"].Stats.Spd)
	s.Equal(entities.Num(5), s.account.Currencies.SoulShards)

	_, err = ledger.BoostPetStat(s.account, "egg", entities.PetStatSpd, 1)
	s.True(errors.IsInsufficientResources(err))
	s.Equal(entities.Num(6), s.account.Pets["egg"].Stats.Spd)
}

func (s *LedgerTestSuite) TestBoostItemClampsToCeiling() {
	boost, err := ledger.BoostItem(s.account, entities.SlotWeapon, entities.StatStr, 50)
	s.Require().NoError(err)

	s.Equal(entities.Num(50), boost.Requested)
	s.Equal(entities.Num(9), boost.Applied)
	s.Equal(entities.Num(900), boost.Cost)
	s.Equal(entities.Num(999), s.account.Equipment[entities.SlotWeapon].Bonus.Str)
	s.Equal(entities.Num(4100), s.account.Currencies.TrainingPoints)

	_, err = ledger.BoostItem(s.account, entities.SlotWeapon, entities.StatStr, 1)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(errors.ReasonAtCeiling, errors.GetReason(err))
}

func (s *LedgerTestSuite) TestBoostItemHigherRankRaisesCeiling() {
	s.account.Rank = entities.RankApprentice
	boost, err := ledger.BoostItem(s.account, entities.SlotWeapon, entities.StatStr, 50)
	s.Require().NoError(err)
	s.Equal(entities.Num(50), boost.Applied)
}

func (s *LedgerTestSuite) TestBoostItemMissingItem() {
	_, err := ledger.BoostItem(s.account, entities.SlotArmor, entities.StatStr, 1)
	s.True(errors.IsNotFound(err))

	_, err = ledger.BoostItem(s.account, entities.SlotWeapon, entities.StatDef, 1)
	s.True(errors.IsInvalidArgument(err))
}

func (s *LedgerTestSuite) TestItemCeilings() {
	s.Equal(entities.Num(999), ledger.ItemCeiling(entities.RankNovice))
	s.Equal(entities.Num(9_999_999_999), ledger.ItemCeiling(entities.RankElite))
	s.Equal(entities.Num(999), ledger.ItemCeiling(entities.Rank("unknown")))
}

func (s *LedgerTestSuite) TestEvolveAtExactMaxExp() {
	pet, err := ledger.EvolvePet(s.account, "egg")
	s.Require().NoError(err)

	s.Equal(entities.PetTierBaby, pet.Tier)
	s.Equal(entities.Num(0), pet.Exp)
	s.Equal(entities.PetStats{Str: 15, Spd: 5, Luck: 2, ElementalPower: 8}, pet.Stats)
	s.Equal(entities.Num(9_000), s.account.Currencies.Gold)
}

func (s *LedgerTestSuite) TestEvolveOneExpShortLeavesPetUnchanged() {
	s.account.Pets["egg"].Exp = 99
	before := *s.account.Pets["egg"]

	_, err := ledger.EvolvePet(s.account, "egg")
	s.Require().Error(err)
	s.True(errors.IsInsufficientResources(err))
	s.Equal(errors.ReasonExpTooLow, errors.GetReason(err))
	s.Equal(before, *s.account.Pets["egg"])
	s.Equal(entities.Num(10_000), s.account.Currencies.Gold)
}

func (s *LedgerTestSuite) TestEvolveWithoutGold() {
	s.account.Currencies.Gold = 999
	_, err := ledger.EvolvePet(s.account, "egg")
	s.True(errors.IsInsufficientResources(err))
	s.Equal(errors.ReasonInsufficientFunds, errors.GetReason(err))
	s.Equal(entities.PetTierEgg, s.account.Pets["egg"].Tier)
	s.Equal(entities.Num(100), s.account.Pets["egg"].Exp)
}

func (s *LedgerTestSuite) TestMythicCannotEvolve() {
	s.account.Pets["egg"].Tier = entities.PetTierMythic
	_, err := ledger.EvolvePet(s.account, "egg")
	s.True(errors.IsFailedPrecondition(err))
}

func (s *LedgerTestSuite) TestMergeMythics() {
	s.account.Currencies.Gold = ledger.MergeCost + 5
	s.account.Pets = map[string]*entities.Pet{
		"m1": {ID: "m1", Tier: entities.PetTierMythic, Stats: entities.PetStats{Str: 100, Spd: 51}, Affinities: []entities.Element{"fire", "ice"}},
		"m2": {ID: "m2", Tier: entities.PetTierMythic, Stats: entities.PetStats{Str: 200, Spd: 50}, Affinities: []entities.Element{"ice", "void"}},
	}
	s.account.EquippedPetID = "m1"

	child, err := ledger.MergePets(s.account, "m1", "m2", &entities.Pet{ID: "c1", Name: "Hatchling"})
	s.Require().NoError(err)

	s.Equal(entities.PetTierEgg, child.Tier)
	s.Equal(entities.Num(150), child.Stats.Str)
	s.Equal(entities.Num(50), child.Stats.Spd)
	s.Equal([]entities.Element{"fire", "ice", "void"}, child.Affinities)
	s.Len(s.account.Pets, 1)
	s.Contains(s.account.Pets, "c1")
	s.Empty(s.account.EquippedPetID)
	s.Equal(entities.Num(5), s.account.Currencies.Gold)
}

func (s *LedgerTestSuite) TestMergeRequiresMythics() {
	s.account.Currencies.Gold = ledger.MergeCost
	s.account.Pets["m1"] = &entities.Pet{ID: "m1", Tier: entities.PetTierMythic}

	_, err := ledger.MergePets(s.account, "egg", "m1", &entities.Pet{ID: "c1"})
	s.True(errors.IsFailedPrecondition(err))
	s.Len(s.account.Pets, 2)
	s.Equal(ledger.MergeCost, s.account.Currencies.Gold)

	_, err = ledger.MergePets(s.account, "m1", "m1", &entities.Pet{ID: "c1"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *LedgerTestSuite) TestGrantPetExp() {
	s.True(ledger.GrantPetExp(s.account, 50))
	s.Equal(entities.Num(150), s.account.Pets["egg"].Exp)

	s.account.EquippedPetID = ""
	s.False(ledger.GrantPetExp(s.account, 50))
}

func (s *LedgerTestSuite) TestTransferCapsReceiver() {
	bank := entities.Currencies{Gold: entities.MaxSafe - 1}
	s.Require().NoError(ledger.Transfer(&s.account.Currencies, &bank, entities.ResourceGold, 100))
	s.Equal(entities.MaxSafe, bank.Gold)
	s.Equal(entities.Num(9_900), s.account.Currencies.Gold)
	s.assertCurrenciesInRange()

	err := ledger.Transfer(&s.account.Currencies, &bank, entities.ResourceGold, 0)
	s.True(errors.IsInvalidArgument(err))
}

func (s *LedgerTestSuite) TestDistributeIsAtomic() {
	bank := entities.Currencies{Gold: 100, Runes: 10}
	other := &entities.Account{ID: "acct_2"}
	recipients := map[string]*entities.Account{"acct_1": s.account, "acct_2": other}

	err := ledger.Distribute(&bank, recipients, []ledger.Distribution{
		{AccountID: "acct_1", Resource: entities.ResourceGold, Amount: 60},
		{AccountID: "acct_2", Resource: entities.ResourceGold, Amount: 60},
	})
	s.True(errors.IsInsufficientResources(err))
	s.Equal(entities.Num(100), bank.Gold)
	s.Equal(entities.Num(0), other.Currencies.Gold)

	err = ledger.Distribute(&bank, recipients, []ledger.Distribution{
		{AccountID: "acct_1", Resource: entities.ResourceGold, Amount: 40},
		{AccountID: "acct_2", Resource: entities.ResourceRunes, Amount: 10},
	})
	s.Require().NoError(err)
	s.Equal(entities.Num(60), bank.Gold)
	s.Equal(entities.Num(0), bank.Runes)
	s.Equal(entities.Num(10_040), s.account.Currencies.Gold)
	s.Equal(entities.Num(10), other.Currencies.Runes)
}
