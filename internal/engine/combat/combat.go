// Package combat resolves turn-based PvP rounds.
//
// Both sides act simultaneously. Each side's hit on the other is computed
// independently from the attacker's action, the defender's action and both
// stat vectors. Random draws are taken challenger first, then challenged;
// within one hit the crit draw comes before the dodge draw.
package combat

import (
	"math"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/rng"
)

const (
	baseHP = 100

	critMultiplier = 1.5
	maxCritChance  = 0.5
)

// HP is the starting hit points for a total combat stat vector
func HP(s entities.Stats) entities.Num {
	return baseHP + s.Str*2 + s.Def*3 + s.Spd + s.Int + s.Luck
}

// CritChance is min(luck/100, 0.5)
func CritChance(luck entities.Num) float64 {
	if luck <= 0 {
		return 0
	}
	return math.Min(float64(luck)/100, maxCritChance)
}

// DodgeChance is defSpd/(atkStr+defSpd), 0 when both are 0
func DodgeChance(atkStr, defSpd entities.Num) float64 {
	denom := float64(atkStr + defSpd)
	if denom <= 0 {
		return 0
	}
	return float64(defSpd) / denom
}

// Hit is the damage one side deals in a round
type Hit struct {
	Damage entities.Num
	Crit   bool
	// Dodged is set when the defender's dodge negated an attack
	Dodged bool
}

// Strike computes the damage atk deals to def for one round
func Strike(atk, def entities.Stats, atkAction, defAction entities.Action, src rng.Source) Hit {
	var h Hit
	crit := 1.0
	if src.Float64() < CritChance(atk.Luck) {
		crit = critMultiplier
		h.Crit = true
	}

	str, intel, spd := float64(atk.Str), float64(atk.Int), float64(atk.Spd)
	var dmg float64

	switch atkAction {
	case entities.ActionAttack:
		switch defAction {
		case entities.ActionDefend:
			dmg = math.Max(1, str-float64(def.Def)) * crit
		case entities.ActionDodge:
			if src.Float64() < DodgeChance(atk.Str, def.Spd) {
				h.Dodged = true
			} else {
				dmg = str * crit
			}
		case entities.ActionTrick:
			dmg = str * 1.2 * crit
		default:
			dmg = str * crit
		}
	case entities.ActionTrick:
		switch defAction {
		case entities.ActionDefend:
			dmg = intel * 1.2 * crit
		case entities.ActionDodge:
			dmg = intel * 0.8 * crit
		case entities.ActionAttack:
			dmg = 0
		case entities.ActionTrick:
			dmg = intel * 0.5 * crit
		default:
			dmg = intel * crit
		}
	case entities.ActionDodge:
		if defAction == entities.ActionTrick {
			dmg = spd * 0.5 * crit
		}
	}

	h.Damage = entities.Round(dmg)
	return h
}

// ChooseAction draws an automated actor's action. Each action is weighted by
// its stat/10 + 1, so every action keeps a nonzero chance.
func ChooseAction(s entities.Stats, src rng.Source) entities.Action {
	weights := [...]float64{
		weight(s.Str),
		weight(s.Def),
		weight(s.Spd),
		weight(s.Int),
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}

	roll := src.Float64() * total
	for i, w := range weights {
		if roll < w {
			return entities.Actions[i]
		}
		roll -= w
	}
	return entities.Actions[len(entities.Actions)-1]
}

func weight(stat entities.Num) float64 {
	if stat < 0 {
		stat = 0
	}
	return float64(stat)/10 + 1
}

// NewState starts combat at round 1 with full HP and no pending actions
func NewState(challenger, challenged entities.Combatant) *entities.CombatState {
	for _, c := range []*entities.Combatant{&challenger, &challenged} {
		c.MaxHP = HP(c.Stats)
		c.HP = c.MaxHP
		c.Action = entities.ActionNone
	}
	return &entities.CombatState{
		Round:      1,
		Challenger: challenger,
		Challenged: challenged,
		Log:        []entities.RoundLog{},
	}
}

// Ready reports whether both sides have an action for the current round
func Ready(state *entities.CombatState) bool {
	return state.Challenger.Action != entities.ActionNone && state.Challenged.Action != entities.ActionNone
}

// ResolveRound applies both pending actions. It does nothing and returns
// false unless both actions are present and combat is still running.
//
// When both sides drop to 0 the side with more HP before the round wins;
// equal HP is a draw.
func ResolveRound(state *entities.CombatState, src rng.Source) (entities.RoundLog, bool) {
	if state == nil || state.Finished || !Ready(state) {
		return entities.RoundLog{}, false
	}

	a, b := &state.Challenger, &state.Challenged
	hitOnB := Strike(a.Stats, b.Stats, a.Action, b.Action, src)
	hitOnA := Strike(b.Stats, a.Stats, b.Action, a.Action, src)

	beforeA, beforeB := a.HP, b.HP
	a.HP = max(beforeA-hitOnA.Damage, 0)
	b.HP = max(beforeB-hitOnB.Damage, 0)

	entry := entities.RoundLog{
		Round:            state.Round,
		ChallengerAction: a.Action,
		ChallengedAction: b.Action,
		ChallengerDamage: hitOnB.Damage,
		ChallengedDamage: hitOnA.Damage,
		ChallengerCrit:   hitOnB.Crit,
		ChallengedCrit:   hitOnA.Crit,
		ChallengerDodged: hitOnA.Dodged,
		ChallengedDodged: hitOnB.Dodged,
		ChallengerHP:     a.HP,
		ChallengedHP:     b.HP,
	}
	state.Log = append(state.Log, entry)
	state.Round++
	a.Action = entities.ActionNone
	b.Action = entities.ActionNone

	switch {
	case a.HP > 0 && b.HP > 0:
		// next round
	case a.HP > 0:
		finish(state, a.ID)
	case b.HP > 0:
		finish(state, b.ID)
	case beforeA > beforeB:
		finish(state, a.ID)
	case beforeB > beforeA:
		finish(state, b.ID)
	default:
		state.Finished = true
		state.Draw = true
	}

	return entry, true
}

func finish(state *entities.CombatState, winnerID string) {
	state.Finished = true
	state.WinnerID = winnerID
}
