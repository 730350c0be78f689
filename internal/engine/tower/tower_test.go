package tower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/engine/tower"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/rng"
)

type TowerTestSuite struct {
	suite.Suite
}

func TestTowerSuite(t *testing.T) {
	suite.Run(t, new(TowerTestSuite))
}

func (s *TowerTestSuite) TestInterpolationBoundaries() {
	for floor := 1; floor <= 5; floor++ {
		r := tower.NpcPowerRange(floor)
		s.Equal(r.Min, tower.NpcPower(floor, 1), "floor %d level 1", floor)
		s.Equal(r.Max, tower.NpcPower(floor, 100), "floor %d level 100", floor)
	}
}

func (s *TowerTestSuite) TestRangeTable() {
	s.Equal(tower.PowerRange{Min: 1, Max: 999}, tower.NpcPowerRange(1))
	s.Equal(tower.PowerRange{Min: 999_999_999, Max: 99_999_999_999}, tower.NpcPowerRange(5))

	six := tower.NpcPowerRange(6)
	s.InDelta(999_999_999*100.0, six.Min, 1)
	s.InDelta(99_999_999_999*100.0, six.Max, 1)

	s.Equal(tower.NpcPowerRange(1), tower.NpcPowerRange(0))
}

func (s *TowerTestSuite) TestHighFloorsStayFinite() {
	p := tower.NpcPower(50, 100)
	s.Greater(p, 1e100)
	s.Less(p, 1e102)
}

func (s *TowerTestSuite) TestRequiredRank() {
	testCases := []struct {
		level    int
		expected entities.Rank
	}{
		{1, entities.RankNovice},
		{100, entities.RankNovice},
		{101, entities.RankApprentice},
		{200, entities.RankApprentice},
		{201, entities.RankJourneyman},
		{501, entities.RankExpert},
		{1001, entities.RankMaster},
		{2001, entities.RankGrandmaster},
		{3001, entities.RankLegend},
		{4001, entities.RankElite},
		{5000, entities.RankElite},
	}
	for _, tc := range testCases {
		s.Equal(tc.expected, tower.RequiredRank(tc.level), "global level %d", tc.level)
	}
}

func (s *TowerTestSuite) TestImmunities() {
	s.Empty(tower.Immunities(1, 100))
	s.Len(tower.Immunities(2, 1), 1)
	s.Len(tower.Immunities(5, 1), 2)
	s.Len(tower.Immunities(22, 5), 5)
	s.Len(tower.Immunities(50, 100), 5)
	s.Equal(tower.Immunities(17, 42), tower.Immunities(17, 42))
}

func (s *TowerTestSuite) TestAdvanceNeverSkips() {
	p := entities.TowerProgress{Floor: 1, Level: 1}
	prev := tower.GlobalLevel(p.Floor, p.Level)
	for i := 0; i < 50*100+10; i++ {
		p = tower.Advance(p)
		gl := tower.GlobalLevel(p.Floor, p.Level)
		s.GreaterOrEqual(gl, prev)
		s.LessOrEqual(gl-prev, 1)
		s.GreaterOrEqual(p.Floor, 1)
		s.LessOrEqual(p.Floor, 50)
		s.GreaterOrEqual(p.Level, 1)
		s.LessOrEqual(p.Level, 100)
		prev = gl
	}
	s.Equal(entities.TowerProgress{Floor: 50, Level: 100}, p)
}

func (s *TowerTestSuite) TestAdvanceWrapsLevel() {
	s.Equal(entities.TowerProgress{Floor: 4, Level: 1}, tower.Advance(entities.TowerProgress{Floor: 3, Level: 100}))
	s.Equal(entities.TowerProgress{Floor: 3, Level: 8}, tower.Advance(entities.TowerProgress{Floor: 3, Level: 7}))
}

func (s *TowerTestSuite) TestRewards() {
	r := tower.Rewards(1, 1)
	s.Equal(entities.Currencies{Gold: 50, TrainingPoints: 10, SoulShards: 2, PetExp: 100}, r)

	boss := tower.Rewards(3, 100)
	s.Equal(entities.Num(300*50), boss.Gold)
	s.Equal(entities.Num(30), boss.Runes)
}

func (s *TowerTestSuite) TestStrongPlayerWinsFloorOne() {
	// Str 20, Spd 10, Int 10, Luck 10, Pot 0
	out := tower.Resolve(tower.Battle{Floor: 1, Level: 1, PlayerPower: 50, Luck: 10}, rng.NewFixed(0.5))
	s.True(out.Won)
	s.Equal(1.0, out.NpcPower)
	s.InDelta(50*1.05, out.EffectivePlayerPower, 1e-9)
}

func (s *TowerTestSuite) TestBossMultiplier() {
	// floor 1 level 100 is 999, x1.2 for the boss
	out := tower.Resolve(tower.Battle{Floor: 1, Level: 100, PlayerPower: 1000}, rng.NewFixed(0))
	s.True(out.Boss)
	s.False(out.Won)
	s.InDelta(999*1.2, out.EffectiveNpcPower, 1e-9)
}

func (s *TowerTestSuite) TestImmunePetLosesElementalOnly() {
	immune := tower.Immunities(2, 1)
	s.Require().Len(immune, 1)

	b := tower.Battle{
		Floor:         2,
		Level:         1,
		PlayerPower:   1500,
		PetElemental:  600,
		PetAffinities: immune,
	}
	out := tower.Resolve(b, rng.NewFixed(0))
	s.True(out.PetImmune)
	s.Equal(900.0, out.PlayerPower)
	s.False(out.Won) // 900 < 999

	b.PetAffinities = append(b.PetAffinities, otherThan(immune[0]))
	out = tower.Resolve(b, rng.NewFixed(0))
	s.False(out.PetImmune)
	s.True(out.Won)
}

func otherThan(e entities.Element) entities.Element {
	for _, candidate := range entities.Elements {
		if candidate != e {
			return candidate
		}
	}
	return e
}

func TestNoImmunitiesBelowLevel101(t *testing.T) {
	for level := 1; level <= 100; level++ {
		assert.Empty(t, tower.Immunities(1, level))
	}
}
