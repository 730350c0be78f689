// Package tower implements the single-player NPC tower ladder
package tower

import (
	"math"

	"github.com/KirkDiggler/rpg-arena/internal/engine/elements"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/rng"
)

const (
	MinFloor  = 1
	MaxFloor  = 50
	MinLevel  = 1
	MaxLevel  = 100
	BossLevel = 100

	// ImmunityStartLevel is the first global level whose NPC has immunities
	ImmunityStartLevel = 101
	MaxImmunities      = 5

	bossMultiplier = 1.2
	ladderName     = "tower"
)

// PowerRange bounds NPC power across a floor's 100 levels
type PowerRange struct {
	Min float64
	Max float64
}

var explicitRanges = []PowerRange{
	{Min: 1, Max: 999},
	{Min: 999, Max: 99_999},
	{Min: 99_999, Max: 9_999_999},
	{Min: 9_999_999, Max: 999_999_999},
	{Min: 999_999_999, Max: 99_999_999_999},
}

// NpcPowerRange returns the power bounds of floor. Floors past the explicit
// table grow by x100 per floor.
func NpcPowerRange(floor int) PowerRange {
	if floor < MinFloor {
		floor = MinFloor
	}
	if floor <= len(explicitRanges) {
		return explicitRanges[floor-1]
	}
	last := explicitRanges[len(explicitRanges)-1]
	scale := math.Pow(100, float64(floor-len(explicitRanges)))
	return PowerRange{Min: last.Min * scale, Max: last.Max * scale}
}

// NpcPower interpolates linearly from the floor minimum at level 1 to the
// floor maximum at level 100
func NpcPower(floor, level int) float64 {
	level = clamp(level, MinLevel, MaxLevel)
	r := NpcPowerRange(floor)
	return r.Min + (r.Max-r.Min)*float64(level-1)/float64(MaxLevel-1)
}

// GlobalLevel linearizes a floor/level pair
func GlobalLevel(floor, level int) int {
	return (floor-1)*MaxLevel + level
}

// IsBoss reports whether level holds a boss
func IsBoss(level int) bool {
	return level == BossLevel
}

// ImmunityCount is the number of immune elements at floor for a global level
func ImmunityCount(floor, level int) int {
	if GlobalLevel(floor, level) < ImmunityStartLevel {
		return 0
	}
	return min(floor/5+1, MaxImmunities)
}

// Immunities returns the NPC's immune elements. The same floor and level
// always produce the same set.
func Immunities(floor, level int) []entities.Element {
	n := ImmunityCount(floor, level)
	if n == 0 {
		return []entities.Element{}
	}
	return elements.Select(elements.Seed(ladderName, floor, level), n)
}

type rankGate struct {
	from int
	rank entities.Rank
}

// descending so the first match wins
var rankGates = []rankGate{
	{from: 4001, rank: entities.RankElite},
	{from: 3001, rank: entities.RankLegend},
	{from: 2001, rank: entities.RankGrandmaster},
	{from: 1001, rank: entities.RankMaster},
	{from: 501, rank: entities.RankExpert},
	{from: 201, rank: entities.RankJourneyman},
	{from: 101, rank: entities.RankApprentice},
}

// RequiredRank is the lowest rank allowed to fight at globalLevel
func RequiredRank(globalLevel int) entities.Rank {
	for _, g := range rankGates {
		if globalLevel >= g.from {
			return g.rank
		}
	}
	return entities.RankNovice
}

// Rewards is the victory payout for a floor and level. PetExp goes to the
// equipped pet, not the account.
func Rewards(floor, level int) entities.Currencies {
	gl := entities.Num(GlobalLevel(floor, level))
	r := entities.Currencies{
		Gold:           gl * 50,
		TrainingPoints: gl * 10,
		SoulShards:     gl * 2,
		PetExp:         gl * 100,
	}
	if IsBoss(level) {
		r.Runes = entities.Num(floor) * 10
	}
	return r
}

// Advance moves the pointer one step. Level 100 wraps to the next floor and
// the last level of the last floor stays put.
func Advance(p entities.TowerProgress) entities.TowerProgress {
	p.Floor = clamp(p.Floor, MinFloor, MaxFloor)
	p.Level = clamp(p.Level, MinLevel, MaxLevel)
	switch {
	case p.Level < MaxLevel:
		p.Level++
	case p.Floor < MaxFloor:
		p.Floor++
		p.Level = MinLevel
	}
	return p
}

// Battle describes one tower attempt
type Battle struct {
	Floor int
	Level int
	// PlayerPower is the full strength, pet elemental included
	PlayerPower entities.Num
	// PetElemental is removed from PlayerPower when the pet is fully immune
	PetElemental  entities.Num
	PetAffinities []entities.Element
	Luck          entities.Num
}

// Outcome is the result of a tower attempt
type Outcome struct {
	Won                  bool
	Boss                 bool
	PetImmune            bool
	PlayerPower          float64
	EffectivePlayerPower float64
	NpcPower             float64
	EffectiveNpcPower    float64
	LuckBonus            float64
	Immunities           []entities.Element
}

// Resolve rolls one tower battle. It has no side effects.
func Resolve(b Battle, src rng.Source) Outcome {
	out := Outcome{
		Boss:       IsBoss(b.Level),
		Immunities: Immunities(b.Floor, b.Level),
		NpcPower:   NpcPower(b.Floor, b.Level),
	}

	playerPower := b.PlayerPower
	if len(b.PetAffinities) > 0 && elements.AllImmune(b.PetAffinities, out.Immunities) {
		out.PetImmune = true
		playerPower -= b.PetElemental
	}
	out.PlayerPower = max(float64(playerPower), 0)

	out.LuckBonus = src.Float64() * (float64(b.Luck) / 100)
	out.EffectivePlayerPower = out.PlayerPower * (1 + out.LuckBonus)

	out.EffectiveNpcPower = out.NpcPower
	if out.Boss {
		out.EffectiveNpcPower *= bossMultiplier
	}

	out.Won = out.EffectivePlayerPower >= out.EffectiveNpcPower
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
