// Package dungeon resolves guild dungeon battles
package dungeon

import (
	"fmt"

	"github.com/KirkDiggler/rpg-arena/internal/engine/elements"
	"github.com/KirkDiggler/rpg-arena/internal/engine/power"
	"github.com/KirkDiggler/rpg-arena/internal/engine/tower"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/rng"
)

const (
	MinFloor = 1
	// RegularFloors is the Great Dungeon; floors past it are the Demon Lord variant
	RegularFloors = 50
	MaxFloor      = 100
	MinLevel      = 1
	MaxLevel      = 50
	BossEvery     = 10
	MaxImmunities = 5

	greatDungeonMultiplier = 10
	demonLordMultiplier    = 15
	demonLordRewardMult    = 3
	affinityBonus          = 1.25
	// MinPowerRatio is the player/npc ratio below which no roll is made
	MinPowerRatio = 0.4
	npcRollFactor = 0.8

	ladderName = "dungeon"
)

// IsDemonLord reports whether floor is part of the Demon Lord variant
func IsDemonLord(floor int) bool {
	return floor > RegularFloors
}

// CurveFloor maps a dungeon floor onto the tower power curve
func CurveFloor(floor int) int {
	if IsDemonLord(floor) {
		return floor - RegularFloors
	}
	return floor
}

// IsBoss reports whether level is a boss level
func IsBoss(level int) bool {
	return level%BossEvery == 0
}

// NPC is a dungeon opponent
type NPC struct {
	Str        float64
	Spd        float64
	Int        float64
	Power      float64
	Boss       bool
	DemonLord  bool
	Immunities []entities.Element
}

// NewNPC builds the opponent at floor and level
func NewNPC(floor, level int) NPC {
	curve := CurveFloor(floor)
	base := tower.NpcPower(curve, level)

	mult := float64(greatDungeonMultiplier)
	if IsDemonLord(floor) {
		mult = demonLordMultiplier
	}

	npc := NPC{
		Str:       base * mult,
		Spd:       base * mult * 0.5,
		Int:       base * mult * 0.5,
		Boss:      IsBoss(level),
		DemonLord: IsDemonLord(floor),
	}
	if npc.Boss {
		scale := 1 + float64(floor-1)*0.5
		npc.Str *= 2 * scale
		npc.Spd *= 1.5 * scale
		npc.Int *= 1.5 * scale
	}
	npc.Power = npc.Str*2 + npc.Spd + npc.Int

	count := min(curve/5+1, MaxImmunities)
	npc.Immunities = elements.Select(elements.Seed(ladderName, floor, level), count)
	return npc
}

// Party is the online members fighting together
type Party struct {
	Members []*entities.Account
}

// Power is the aggregate party power against npc. Member pets only add power
// on Demon Lord floors. Immune affinities never remove pet power here; they
// only decide whether the affinity bonus applies.
func (p Party) Power(npc NPC) (total float64, affinityApplied bool) {
	var affinities []entities.Element
	for _, m := range p.Members {
		s := m.Stats
		total += float64(s.Str*2 + s.Spd + s.Int)
		if pet := m.EquippedPet(); pet != nil {
			if npc.DemonLord {
				total += float64(power.PetPower(pet))
			}
			affinities = append(affinities, pet.Affinities...)
		}
	}
	if elements.AnyEffective(affinities, npc.Immunities) {
		total *= affinityBonus
		affinityApplied = true
	}
	return total, affinityApplied
}

// AverageLuck is the mean base Luck across the party
func (p Party) AverageLuck() float64 {
	if len(p.Members) == 0 {
		return 0
	}
	var sum entities.Num
	for _, m := range p.Members {
		sum += m.Stats.Luck
	}
	return float64(sum) / float64(len(p.Members))
}

// Outcome is the result of one dungeon fight
type Outcome struct {
	Victory         bool
	TooWeak         bool
	Message         string
	PlayerPower     float64
	NpcPower        float64
	AffinityApplied bool
	NPC             NPC
}

// Resolve fights the NPC at floor and level. A party below MinPowerRatio of
// the NPC fails without a roll.
func Resolve(party Party, floor, level int, src rng.Source) Outcome {
	npc := NewNPC(floor, level)
	playerPower, applied := party.Power(npc)

	out := Outcome{
		PlayerPower:     playerPower,
		NpcPower:        npc.Power,
		AffinityApplied: applied,
		NPC:             npc,
	}

	if npc.Power > 0 && playerPower/npc.Power < MinPowerRatio {
		out.TooWeak = true
		out.Message = fmt.Sprintf("guild power %.0f is too weak to challenge %.0f", playerPower, npc.Power)
		return out
	}

	roll := playerPower * src.Float64() * (1 + party.AverageLuck()*0.01)
	out.Victory = roll > npc.Power*npcRollFactor
	if out.Victory {
		out.Message = "victory"
	} else {
		out.Message = "defeat"
	}
	return out
}

// GlobalLevel linearizes a dungeon floor and level
func GlobalLevel(floor, level int) int {
	return (floor-1)*MaxLevel + level
}

// Rewards is the bank payout for a victory at floor and level
func Rewards(floor, level, guildLevel int) entities.Currencies {
	rewardMult := 1.0
	if IsDemonLord(floor) {
		rewardMult = demonLordRewardMult
	}
	guildMult := 1 + float64(guildLevel)*0.1

	base := float64(GlobalLevel(floor, level) * 100)
	gold := entities.Round(base * rewardMult * guildMult)

	r := entities.Currencies{
		Gold:           gold,
		TrainingPoints: gold / 5,
		SoulShards:     gold / 100,
	}
	if IsBoss(level) {
		r.Runes = entities.Round(float64(CurveFloor(floor)) * 5 * rewardMult)
	}
	return r
}

// Advance moves the dungeon pointer one step, wrapping level 50 to the next floor
func Advance(p entities.DungeonProgress) entities.DungeonProgress {
	p.Floor = max(MinFloor, min(p.Floor, MaxFloor))
	p.Level = max(MinLevel, min(p.Level, MaxLevel))
	switch {
	case p.Level < MaxLevel:
		p.Level++
	case p.Floor < MaxFloor:
		p.Floor++
		p.Level = MinLevel
	}
	return p
}
