package entities_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
)

func TestNumDecodesLegacyShapes(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected entities.Num
	}{
		{name: "integer", raw: `42`, expected: 42},
		{name: "numeric string", raw: `"1500"`, expected: 1500},
		{name: "float", raw: `12.9`, expected: 12},
		{name: "float string", raw: `"7.5"`, expected: 7},
		{name: "null", raw: `null`, expected: 0},
		{name: "garbage string", raw: `"lots"`, expected: 0},
		{name: "empty string", raw: `""`, expected: 0},
		{name: "boolean", raw: `true`, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var n entities.Num
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &n))
			assert.Equal(t, tc.expected, n)
		})
	}
}

func TestNumDecodesInsideDocuments(t *testing.T) {
	var acct entities.Account
	raw := `{"id":"acct_1","currencies":{"gold":"250","rubies":null,"trainingPoints":3.0},"stats":{"str":"20"}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &acct))

	assert.Equal(t, entities.Num(250), acct.Currencies.Gold)
	assert.Equal(t, entities.Num(0), acct.Currencies.Rubies)
	assert.Equal(t, entities.Num(3), acct.Currencies.TrainingPoints)
	assert.Equal(t, entities.Num(20), acct.Stats.Str)
}

func TestAddCappedNeverExceedsMaxSafe(t *testing.T) {
	assert.Equal(t, entities.MaxSafe, entities.AddCapped(entities.MaxSafe-1, 10))
	assert.Equal(t, entities.MaxSafe, entities.AddCapped(entities.MaxSafe, entities.MaxSafe))
	assert.Equal(t, entities.Num(0), entities.AddCapped(5, -10))
	assert.Equal(t, entities.Num(15), entities.AddCapped(5, 10))
}

func TestCurrenciesSpendIsAllOrNothing(t *testing.T) {
	c := entities.Currencies{Gold: 100}

	assert.False(t, c.Spend(entities.ResourceGold, 101))
	assert.Equal(t, entities.Num(100), c.Gold)

	assert.True(t, c.Spend(entities.ResourceGold, 100))
	assert.Equal(t, entities.Num(0), c.Gold)

	assert.False(t, c.Spend(entities.Resource("tokens"), 1))
}

func TestCurrenciesCreditCaps(t *testing.T) {
	c := entities.Currencies{Gold: entities.MaxSafe - 5, Runes: 1}
	c.Credit(entities.Currencies{Gold: 100, Runes: 2})

	assert.Equal(t, entities.MaxSafe, c.Gold)
	assert.Equal(t, entities.Num(3), c.Runes)
}

func TestPetTierProgression(t *testing.T) {
	tier := entities.PetTierEgg
	var seen []entities.PetTier
	for {
		seen = append(seen, tier)
		next, ok := tier.Next()
		if !ok {
			break
		}
		tier = next
	}
	assert.Equal(t, entities.PetTiers, seen)

	mythic, ok := entities.PetTierMythic.Config()
	require.True(t, ok)
	assert.Equal(t, entities.Num(0), mythic.MaxExp)
	assert.Equal(t, 8.0, mythic.Multiplier)
}

func TestRankOrdering(t *testing.T) {
	assert.True(t, entities.RankElite.AtLeast(entities.RankMaster))
	assert.False(t, entities.RankNovice.AtLeast(entities.RankApprentice))
	assert.True(t, entities.RankExpert.AtLeast(entities.RankExpert))
	assert.Equal(t, 0, entities.Rank("bogus").Index())
}
