package economy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-arena/internal/engine/ledger"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/services/notify"
	notifymock "github.com/KirkDiggler/rpg-arena/internal/services/notify/mock"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
	"github.com/KirkDiggler/rpg-arena/internal/testutils/builders"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	arena   *testutils.Arena
	emitter *notifymock.MockEmitter
	orch    Service
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.arena = testutils.NewArena(s.T())
	s.emitter = notifymock.NewMockEmitter(s.ctrl)

	var err error
	s.orch, err = NewOrchestrator(&Config{
		Store:       s.arena.Store,
		Accounts:    s.arena.Accounts,
		IDGenerator: idgen.NewSequential("pet"),
		Emitter:     s.emitter,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) expectUpdates(n int) {
	s.emitter.EXPECT().Emit(gomock.Any(), notify.EventPlayerUpdate, gomock.Any()).Return(nil).Times(n)
}

func (s *OrchestratorTestSuite) TestNewOrchestratorRequiresDependencies() {
	_, err := NewOrchestrator(&Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestBoostStat() {
	s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("p").
		WithCurrencies(entities.Currencies{TrainingPoints: 2500}).Build())
	s.expectUpdates(1)

	out, err := s.orch.BoostStat(s.ctx, &BoostStatInput{AccountID: "p", Stat: entities.StatStr, Points: 2})
	s.Require().NoError(err)
	s.Equal(entities.Num(2000), out.Cost)
	s.Equal(entities.Num(3), out.Account.Stats.Str)

	stored := s.arena.Account(s.T(), "p")
	s.Equal(entities.Num(500), stored.Currencies.TrainingPoints)
	s.Equal(entities.Num(3), stored.Stats.Str)
}

func (s *OrchestratorTestSuite) TestBoostStatInsufficientLeavesAccountUnchanged() {
	s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("p").
		WithCurrencies(entities.Currencies{TrainingPoints: 999}).Build())

	_, err := s.orch.BoostStat(s.ctx, &BoostStatInput{AccountID: "p", Stat: entities.StatDef, Points: 1})
	s.Require().Error(err)
	s.True(errors.IsInsufficientResources(err))
	s.Equal(errors.ReasonInsufficientFunds, errors.GetReason(err))

	stored := s.arena.Account(s.T(), "p")
	s.Equal(entities.Num(999), stored.Currencies.TrainingPoints)
	s.Equal(entities.Num(1), stored.Stats.Def)
}

func (s *OrchestratorTestSuite) TestBoostPetStat() {
	pet := builders.NewPet("fox", entities.PetTierEgg, entities.PetStats{Str: 5})
	s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("p").
		WithCurrencies(entities.Currencies{SoulShards: 35}).
		WithPet(pet, true).Build())
	s.expectUpdates(1)

	out, err := s.orch.BoostPetStat(s.ctx, &BoostPetStatInput{
		AccountID: "p",
		PetID:     "fox",
		Stat:      entities.PetStatStr,
		Points:    3,
	})
	s.Require().NoError(err)
	s.Equal(entities.Num(30), out.Cost)
	s.Equal(entities.Num(8), out.Pet.Stats.Str)
	s.Equal(entities.Num(5), s.arena.Account(s.T(), "p").Currencies.SoulShards)
}

func (s *OrchestratorTestSuite) TestBoostItemClampsAtCeiling() {
	s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("p").
		WithCurrencies(entities.Currencies{TrainingPoints: 100_000}).
		WithItem(entities.SlotWeapon, &entities.Item{ID: "sword", Bonus: entities.ItemBonus{Str: 990}}).Build())
	s.expectUpdates(1)

	out, err := s.orch.BoostItem(s.ctx, &BoostItemInput{
		AccountID: "p",
		Slot:      entities.SlotWeapon,
		Stat:      entities.StatStr,
		Points:    50,
	})
	s.Require().NoError(err)
	s.Equal(entities.Num(9), out.Boost.Applied)
	s.Equal(entities.Num(900), out.Boost.Cost)

	stored := s.arena.Account(s.T(), "p")
	s.Equal(entities.Num(999), stored.Equipment[entities.SlotWeapon].Bonus.Str)
	s.Equal(entities.Num(99_100), stored.Currencies.TrainingPoints)

	_, err = s.orch.BoostItem(s.ctx, &BoostItemInput{
		AccountID: "p",
		Slot:      entities.SlotWeapon,
		Stat:      entities.StatStr,
		Points:    1,
	})
	s.Require().Error(err)
	s.Equal(errors.ReasonAtCeiling, errors.GetReason(err))
}

func (s *OrchestratorTestSuite) TestEvolvePet() {
	s.Run("exactly max exp evolves", func() {
		pet := builders.NewPet("egg1", entities.PetTierEgg, entities.PetStats{Str: 10, Spd: 4})
		pet.Exp = 100
		s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("p1").WithGold(1000).WithPet(pet, true).Build())
		s.expectUpdates(1)

		out, err := s.orch.EvolvePet(s.ctx, &PetInput{AccountID: "p1", PetID: "egg1"})
		s.Require().NoError(err)
		s.Equal(entities.PetTierBaby, out.Pet.Tier)
		s.Equal(entities.Num(0), out.Pet.Exp)
		s.Equal(entities.Num(15), out.Pet.Stats.Str)
		s.Equal(entities.Num(6), out.Pet.Stats.Spd)
		s.Equal(entities.Num(0), s.arena.Account(s.T(), "p1").Currencies.Gold)
	})

	s.Run("one short fails", func() {
		pet := builders.NewPet("egg2", entities.PetTierEgg, entities.PetStats{Str: 10})
		pet.Exp = 99
		s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("p2").WithGold(1000).WithPet(pet, true).Build())

		_, err := s.orch.EvolvePet(s.ctx, &PetInput{AccountID: "p2", PetID: "egg2"})
		s.Require().Error(err)
		s.True(errors.IsInsufficientResources(err))
		s.Equal(errors.ReasonExpTooLow, errors.GetReason(err))

		stored := s.arena.Account(s.T(), "p2")
		s.Equal(entities.PetTierEgg, stored.Pets["egg2"].Tier)
		s.Equal(entities.Num(1000), stored.Currencies.Gold)
	})
}

func (s *OrchestratorTestSuite) TestMergePets() {
	a := builders.NewPet("a", entities.PetTierMythic, entities.PetStats{Str: 100, Luck: 10}, "fire", "water")
	b := builders.NewPet("b", entities.PetTierMythic, entities.PetStats{Str: 50, Luck: 21}, "water", "void")
	s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("p").
		WithGold(ledger.MergeCost).
		WithPet(a, true).
		WithPet(b, false).Build())
	s.expectUpdates(1)

	out, err := s.orch.MergePets(s.ctx, &MergePetsInput{AccountID: "p", FirstID: "a", SecondID: "b", Name: "Chimera"})
	s.Require().NoError(err)
	s.Equal("pet_1", out.Pet.ID)
	s.Equal("Chimera", out.Pet.Name)
	s.Equal(entities.PetTierEgg, out.Pet.Tier)
	s.Equal(entities.Num(75), out.Pet.Stats.Str)
	s.Equal(entities.Num(15), out.Pet.Stats.Luck)
	s.Equal([]entities.Element{"fire", "water", "void"}, out.Pet.Affinities)

	stored := s.arena.Account(s.T(), "p")
	s.Len(stored.Pets, 1)
	s.Empty(stored.EquippedPetID)
	s.Equal(entities.Num(0), stored.Currencies.Gold)
}

func (s *OrchestratorTestSuite) TestMergePetsRequiresMythic() {
	a := builders.NewPet("a", entities.PetTierMythic, entities.PetStats{})
	b := builders.NewPet("b", entities.PetTierLegend, entities.PetStats{})
	s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("p").
		WithGold(ledger.MergeCost).WithPet(a, false).WithPet(b, false).Build())

	_, err := s.orch.MergePets(s.ctx, &MergePetsInput{AccountID: "p", FirstID: "a", SecondID: "b"})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Len(s.arena.Account(s.T(), "p").Pets, 2)
}

func (s *OrchestratorTestSuite) TestEquipAndUnequipPet() {
	pet := builders.NewPet("fox", entities.PetTierEgg, entities.PetStats{})
	s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("p").WithPet(pet, false).Build())
	s.expectUpdates(2)

	out, err := s.orch.EquipPet(s.ctx, &PetInput{AccountID: "p", PetID: "fox"})
	s.Require().NoError(err)
	s.Equal("fox", out.Pet.ID)
	s.Equal("fox", s.arena.Account(s.T(), "p").EquippedPetID)

	_, err = s.orch.UnequipPet(s.ctx, &UnequipPetInput{AccountID: "p"})
	s.Require().NoError(err)
	s.Empty(s.arena.Account(s.T(), "p").EquippedPetID)

	_, err = s.orch.EquipPet(s.ctx, &PetInput{AccountID: "p", PetID: "wolf"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestTradePet() {
	pet := builders.NewPet("fox", entities.PetTierTeen, entities.PetStats{Str: 40})
	s.arena.SeedAccounts(s.T(),
		builders.NewAccountBuilder("seller").WithGold(0).WithPet(pet, true).Build(),
		builders.NewAccountBuilder("buyer").WithGold(800).Build(),
	)
	s.expectUpdates(2)

	out, err := s.orch.TradePet(s.ctx, &TradePetInput{SellerID: "seller", BuyerID: "buyer", PetID: "fox", Price: 750})
	s.Require().NoError(err)
	s.Equal("fox", out.Pet.ID)

	seller := s.arena.Account(s.T(), "seller")
	buyer := s.arena.Account(s.T(), "buyer")
	s.Empty(seller.Pets)
	s.Empty(seller.EquippedPetID)
	s.Equal(entities.Num(750), seller.Currencies.Gold)
	s.Contains(buyer.Pets, "fox")
	s.Equal(entities.Num(50), buyer.Currencies.Gold)
}

func (s *OrchestratorTestSuite) TestTradePetBuyerShort() {
	pet := builders.NewPet("fox", entities.PetTierTeen, entities.PetStats{})
	s.arena.SeedAccounts(s.T(),
		builders.NewAccountBuilder("seller").WithPet(pet, false).Build(),
		builders.NewAccountBuilder("buyer").WithGold(10).Build(),
	)

	_, err := s.orch.TradePet(s.ctx, &TradePetInput{SellerID: "seller", BuyerID: "buyer", PetID: "fox", Price: 750})
	s.Require().Error(err)
	s.Equal(errors.ReasonInsufficientFunds, errors.GetReason(err))
	s.Contains(s.arena.Account(s.T(), "seller").Pets, "fox")
	s.Empty(s.arena.Account(s.T(), "buyer").Pets)

	_, err = s.orch.TradePet(s.ctx, &TradePetInput{SellerID: "seller", BuyerID: "seller", PetID: "fox"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGrantPet() {
	s.arena.SeedAccounts(s.T(),
		builders.NewAccountBuilder("admin").Admin().Build(),
		builders.NewAccountBuilder("p").Build(),
	)

	s.Run("admin grants an egg", func() {
		s.expectUpdates(1)
		out, err := s.orch.GrantPet(s.ctx, &GrantPetInput{
			AdminID:    "admin",
			AccountID:  "p",
			Name:       "Ember",
			Stats:      entities.PetStats{ElementalPower: 12},
			Affinities: []entities.Element{"fire"},
		})
		s.Require().NoError(err)
		s.Equal(entities.PetTierEgg, out.Pet.Tier)
		s.Contains(s.arena.Account(s.T(), "p").Pets, out.Pet.ID)
	})

	s.Run("players cannot grant", func() {
		_, err := s.orch.GrantPet(s.ctx, &GrantPetInput{
			AdminID:    "p",
			AccountID:  "p",
			Name:       "Ember",
			Affinities: []entities.Element{"fire"},
		})
		s.Require().Error(err)
		s.True(errors.IsPermissionDenied(err))
	})

	s.Run("affinities are validated", func() {
		_, err := s.orch.GrantPet(s.ctx, &GrantPetInput{AdminID: "admin", AccountID: "p", Name: "Blank"})
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))

		_, err = s.orch.GrantPet(s.ctx, &GrantPetInput{
			AdminID:    "admin",
			AccountID:  "p",
			Name:       "Odd",
			Affinities: []entities.Element{"plasma"},
		})
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))
	})
}
