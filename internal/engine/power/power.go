// Package power aggregates account stats, gear and companions into power figures.
//
// Two formulas exist and are intentionally different. Strength is the scalar
// used for ladder gating and every displayed strength number: base stats, every
// equipped item and the single equipped pet. CombatStats is the per-stat vector
// used to seed PvP combat: base stats, the equipped pet split per stat, and the
// Def/Spd bonus of every owned bird. Equipment is not part of CombatStats and
// birds are not part of Strength.
package power

import (
	"github.com/KirkDiggler/rpg-arena/internal/entities"
)

// Breakdown splits Strength into its sources
type Breakdown struct {
	Base      entities.Num
	Equipment entities.Num
	// Pet holds the pet's Str, Spd and Luck
	Pet entities.Num
	// PetElemental is the pet's ElementalPower, kept apart so ladders can drop it
	PetElemental entities.Num
}

// Total sums every source
func (b Breakdown) Total() entities.Num {
	return b.Base + b.Equipment + b.Pet + b.PetElemental
}

// WithoutPetElemental sums every source except the pet's ElementalPower
func (b Breakdown) WithoutPetElemental() entities.Num {
	return b.Base + b.Equipment + b.Pet
}

// Compute builds the strength breakdown for acct
func Compute(acct *entities.Account) Breakdown {
	if acct == nil {
		return Breakdown{}
	}

	var b Breakdown
	s := acct.Stats
	b.Base = nonNeg(s.Str) + nonNeg(s.Spd) + nonNeg(s.Int) + nonNeg(s.Luck) + nonNeg(s.Pot)

	for _, slot := range entities.AllSlots {
		item := acct.Equipment[slot]
		if item == nil {
			continue
		}
		bonus := item.Bonus
		b.Equipment += nonNeg(bonus.Str) + nonNeg(bonus.Int) + nonNeg(bonus.Spd) +
			nonNeg(bonus.Luck) + nonNeg(bonus.Pot)
	}

	if pet := acct.EquippedPet(); pet != nil {
		b.Pet = nonNeg(pet.Stats.Str) + nonNeg(pet.Stats.Spd) + nonNeg(pet.Stats.Luck)
		b.PetElemental = nonNeg(pet.Stats.ElementalPower)
	}

	return b
}

// Strength is the scalar strength of acct
func Strength(acct *entities.Account) entities.Num {
	return Compute(acct).Total()
}

// PetPower is a pet's Str+Spd+Luck+ElementalPower
func PetPower(pet *entities.Pet) entities.Num {
	if pet == nil {
		return 0
	}
	return nonNeg(pet.Stats.Str) + nonNeg(pet.Stats.Spd) + nonNeg(pet.Stats.Luck) +
		nonNeg(pet.Stats.ElementalPower)
}

// CombatStats is the total stat vector acct fights with in PvP
func CombatStats(acct *entities.Account) entities.Stats {
	if acct == nil {
		return entities.Stats{}
	}

	s := acct.Stats
	out := entities.Stats{
		Str:  nonNeg(s.Str),
		Def:  nonNeg(s.Def),
		Spd:  nonNeg(s.Spd),
		Int:  nonNeg(s.Int),
		Luck: nonNeg(s.Luck),
		Pot:  nonNeg(s.Pot),
	}

	if pet := acct.EquippedPet(); pet != nil {
		out.Str += nonNeg(pet.Stats.Str)
		out.Spd += nonNeg(pet.Stats.Spd)
		out.Luck += nonNeg(pet.Stats.Luck)
		out.Int += nonNeg(pet.Stats.ElementalPower)
	}

	for _, bird := range acct.Birds {
		out.Def += nonNeg(bird.DefBonus)
		out.Spd += nonNeg(bird.SpdBonus)
	}

	return out
}

func nonNeg(n entities.Num) entities.Num {
	if n < 0 {
		return 0
	}
	return n
}
