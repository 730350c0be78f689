// Package ledger applies economy deltas to accounts and guild banks.
//
// Every operation checks all of its preconditions before touching any
// balance, so a failed call leaves its inputs unchanged.
package ledger

import (
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Exchange rates
const (
	TrainingPointsPerStat      entities.Num = 1000
	ShardsPerPetStat           entities.Num = 10
	TrainingPointsPerItemPoint entities.Num = 100
	MergeCost                  entities.Num = 1_000_000
)

var itemCeilings = map[entities.Rank]entities.Num{
	entities.RankNovice:      999,
	entities.RankApprentice:  9_999,
	entities.RankJourneyman:  99_999,
	entities.RankExpert:      999_999,
	entities.RankMaster:      9_999_999,
	entities.RankGrandmaster: 99_999_999,
	entities.RankLegend:      999_999_999,
	entities.RankElite:       9_999_999_999,
}

// ItemCeiling is the highest bonus an item stat may reach at rank
func ItemCeiling(rank entities.Rank) entities.Num {
	if c, ok := itemCeilings[rank]; ok {
		return c
	}
	return itemCeilings[entities.RankNovice]
}

// InsufficientFunds builds the failure for a short balance
func InsufficientFunds(r entities.Resource, required, available entities.Num) *errors.Error {
	return errors.InsufficientResourcesf("not enough %s", r).
		WithReason(errors.ReasonInsufficientFunds).
		WithMeta("resource", string(r)).
		WithMeta("required", int64(required)).
		WithMeta("available", int64(available))
}

// Charge debits amount of r or fails without changing c
func Charge(c *entities.Currencies, r entities.Resource, amount entities.Num) error {
	if !r.Valid() {
		return errors.InvalidArgumentf("unknown resource %q", r)
	}
	if amount < 0 {
		return errors.InvalidArgument("amount cannot be negative")
	}
	if have := c.Get(r); have < amount {
		return InsufficientFunds(r, amount, have)
	}
	c.Spend(r, amount)
	return nil
}

// Transfer moves amount of r from one balance to another. The receiving side
// caps at MaxSafe.
func Transfer(from, to *entities.Currencies, r entities.Resource, amount entities.Num) error {
	if amount <= 0 {
		return errors.InvalidArgument("amount must be positive")
	}
	if err := Charge(from, r, amount); err != nil {
		return err
	}
	to.Add(r, amount)
	return nil
}

// Distribution is one bank payout line
type Distribution struct {
	AccountID string
	Resource  entities.Resource
	Amount    entities.Num
}

// Distribute pays every line out of bank into the matching account. The
// whole batch fails when the bank cannot cover the total of any resource.
func Distribute(bank *entities.Currencies, recipients map[string]*entities.Account, lines []Distribution) error {
	totals := map[entities.Resource]entities.Num{}
	for _, l := range lines {
		if !l.Resource.Valid() {
			return errors.InvalidArgumentf("unknown resource %q", l.Resource)
		}
		if l.Amount <= 0 {
			return errors.InvalidArgument("distribution amounts must be positive")
		}
		if recipients[l.AccountID] == nil {
			return errors.NotFoundf("recipient %s not found", l.AccountID)
		}
		totals[l.Resource] = entities.AddCapped(totals[l.Resource], l.Amount)
	}
	for r, total := range totals {
		if have := bank.Get(r); have < total {
			return InsufficientFunds(r, total, have)
		}
	}

	for _, l := range lines {
		bank.Spend(l.Resource, l.Amount)
		recipients[l.AccountID].Currencies.Add(l.Resource, l.Amount)
	}
	return nil
}

// BoostStat spends training points to raise a base stat
func BoostStat(acct *entities.Account, stat entities.Stat, points entities.Num) (entities.Num, error) {
	current, ok := acct.Stats.Get(stat)
	if !ok {
		return 0, errors.InvalidArgumentf("unknown stat %q", stat)
	}
	if points <= 0 {
		return 0, errors.InvalidArgument("points must be positive")
	}
	if points > entities.MaxSafe/TrainingPointsPerStat {
		return 0, InsufficientFunds(entities.ResourceTrainingPoints, entities.MaxSafe, acct.Currencies.TrainingPoints)
	}

	cost := points * TrainingPointsPerStat
	if err := Charge(&acct.Currencies, entities.ResourceTrainingPoints, cost); err != nil {
		return 0, err
	}
	acct.Stats.Set(stat, entities.AddCapped(current, points))
	return cost, nil
}

// BoostPetStat spends soul shards to raise a pet stat
func BoostPetStat(acct *entities.Account, petID string, stat entities.PetStat, points entities.Num) (entities.Num, error) {
	pet := acct.Pets[petID]
	if pet == nil {
		return 0, errors.NotFoundf("pet %s not found", petID)
	}
	field := pet.Stats.Field(stat)
	if field == nil {
		return 0, errors.InvalidArgumentf("unknown pet stat %q", stat)
	}
	if points <= 0 {
		return 0, errors.InvalidArgument("points must be positive")
	}
	if points > entities.MaxSafe/ShardsPerPetStat {
		return 0, InsufficientFunds(entities.ResourceSoulShards, entities.MaxSafe, acct.Currencies.SoulShards)
	}

	cost := points * ShardsPerPetStat
	if err := Charge(&acct.Currencies, entities.ResourceSoulShards, cost); err != nil {
		return 0, err
	}
	*field = entities.AddCapped(*field, points)
	return cost, nil
}

// ItemBoost reports what BoostItem applied
type ItemBoost struct {
	Requested entities.Num
	Applied   entities.Num
	Cost      entities.Num
	Ceiling   entities.Num
}

// BoostItem spends training points on an equipped item's bonus. Requests past
// the rank ceiling are clamped and only the applied points are charged.
func BoostItem(acct *entities.Account, slot entities.Slot, stat entities.Stat, points entities.Num) (ItemBoost, error) {
	if !slot.Valid() {
		return ItemBoost{}, errors.InvalidArgumentf("unknown slot %q", slot)
	}
	item := acct.Equipment[slot]
	if item == nil {
		return ItemBoost{}, errors.NotFoundf("no item equipped in %s", slot)
	}
	field := item.Bonus.Field(stat)
	if field == nil {
		return ItemBoost{}, errors.InvalidArgumentf("items cannot carry %q", stat)
	}
	if points <= 0 {
		return ItemBoost{}, errors.InvalidArgument("points must be positive")
	}

	out := ItemBoost{Requested: points, Ceiling: ItemCeiling(acct.Rank)}
	headroom := out.Ceiling - *field
	if headroom <= 0 {
		return ItemBoost{}, errors.FailedPreconditionf("%s %s is at the %s ceiling", slot, stat, acct.Rank).
			WithReason(errors.ReasonAtCeiling).
			WithMeta("ceiling", int64(out.Ceiling))
	}
	out.Applied = min(points, headroom)
	out.Cost = out.Applied * TrainingPointsPerItemPoint

	if err := Charge(&acct.Currencies, entities.ResourceTrainingPoints, out.Cost); err != nil {
		return ItemBoost{}, err
	}
	*field += out.Applied
	return out, nil
}

// GrantPetExp credits exp to the equipped pet. It reports false when no pet
// is equipped and the exp is dropped.
func GrantPetExp(acct *entities.Account, exp entities.Num) bool {
	pet := acct.EquippedPet()
	if pet == nil || exp <= 0 {
		return false
	}
	pet.Exp = entities.AddCapped(pet.Exp, exp)
	return true
}

// EvolvePet moves a pet to its next tier. It needs the full tier EXP and the
// tier's gold cost; it resets EXP and rescales every stat by the ratio of
// the tier multipliers.
func EvolvePet(acct *entities.Account, petID string) (*entities.Pet, error) {
	pet := acct.Pets[petID]
	if pet == nil {
		return nil, errors.NotFoundf("pet %s not found", petID)
	}
	cfg, ok := pet.Tier.Config()
	if !ok {
		return nil, errors.FailedPreconditionf("pet tier %q is unknown", pet.Tier)
	}
	next, ok := pet.Tier.Next()
	if !ok {
		return nil, errors.FailedPreconditionf("%s pets cannot evolve", pet.Tier)
	}
	if pet.Exp < cfg.MaxExp {
		return nil, errors.InsufficientResourcesf("pet needs %d exp to evolve", cfg.MaxExp).
			WithReason(errors.ReasonExpTooLow).
			WithMeta("required", int64(cfg.MaxExp)).
			WithMeta("available", int64(pet.Exp))
	}
	if err := Charge(&acct.Currencies, entities.ResourceGold, cfg.EvolveCost); err != nil {
		return nil, err
	}

	nextCfg, _ := next.Config()
	ratio := nextCfg.Multiplier / cfg.Multiplier
	pet.Stats = entities.PetStats{
		Str:            scale(pet.Stats.Str, ratio),
		Spd:            scale(pet.Stats.Spd, ratio),
		Luck:           scale(pet.Stats.Luck, ratio),
		ElementalPower: scale(pet.Stats.ElementalPower, ratio),
	}
	pet.Tier = next
	pet.Exp = 0
	return pet, nil
}

// MergePets destroys two mythic pets and adds child as a new egg with their
// averaged stats and the union of their affinities
func MergePets(acct *entities.Account, firstID, secondID string, child *entities.Pet) (*entities.Pet, error) {
	if firstID == secondID {
		return nil, errors.InvalidArgument("cannot merge a pet with itself")
	}
	first, second := acct.Pets[firstID], acct.Pets[secondID]
	if first == nil {
		return nil, errors.NotFoundf("pet %s not found", firstID)
	}
	if second == nil {
		return nil, errors.NotFoundf("pet %s not found", secondID)
	}
	if first.Tier != entities.PetTierMythic || second.Tier != entities.PetTierMythic {
		return nil, errors.FailedPrecondition("only mythic pets can merge")
	}
	if err := Charge(&acct.Currencies, entities.ResourceGold, MergeCost); err != nil {
		return nil, err
	}

	child.Tier = entities.PetTierEgg
	child.Exp = 0
	child.Stats = entities.PetStats{
		Str:            (first.Stats.Str + second.Stats.Str) / 2,
		Spd:            (first.Stats.Spd + second.Stats.Spd) / 2,
		Luck:           (first.Stats.Luck + second.Stats.Luck) / 2,
		ElementalPower: (first.Stats.ElementalPower + second.Stats.ElementalPower) / 2,
	}
	child.Affinities = unionAffinities(first.Affinities, second.Affinities)

	delete(acct.Pets, firstID)
	delete(acct.Pets, secondID)
	if acct.EquippedPetID == firstID || acct.EquippedPetID == secondID {
		acct.EquippedPetID = ""
	}
	acct.Pets[child.ID] = child
	return child, nil
}

func unionAffinities(a, b []entities.Element) []entities.Element {
	seen := make(map[entities.Element]bool, len(a)+len(b))
	out := make([]entities.Element, 0, len(a)+len(b))
	for _, list := range [][]entities.Element{a, b} {
		for _, e := range list {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}

func scale(n entities.Num, ratio float64) entities.Num {
	return entities.Round(float64(n) * ratio).Clamp()
}
