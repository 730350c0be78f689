// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
)

// AccountBuilder provides a fluent interface for building test Account instances
type AccountBuilder struct {
	account *entities.Account
}

// NewAccountBuilder creates a new builder with registration defaults
func NewAccountBuilder(id string) *AccountBuilder {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &AccountBuilder{
		account: &entities.Account{
			ID:         id,
			Name:       id,
			Role:       entities.RolePlayer,
			Rank:       entities.RankNovice,
			Stats:      entities.Stats{Str: 1, Def: 1, Spd: 1, Int: 1, Luck: 1, Pot: 1},
			Currencies: entities.Currencies{Gold: 1000},
			Tower:      entities.TowerProgress{Floor: 1, Level: 1},
			Equipment:  map[entities.Slot]*entities.Item{},
			Pets:       map[string]*entities.Pet{},
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
}

// WithName sets the display name
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.account.Name = name
	return b
}

// WithStats replaces the base stats
func (b *AccountBuilder) WithStats(stats entities.Stats) *AccountBuilder {
	b.account.Stats = stats
	return b
}

// WithCurrencies replaces every balance
func (b *AccountBuilder) WithCurrencies(c entities.Currencies) *AccountBuilder {
	b.account.Currencies = c
	return b
}

// WithGold sets only the gold balance
func (b *AccountBuilder) WithGold(gold entities.Num) *AccountBuilder {
	b.account.Currencies.Gold = gold
	return b
}

// WithRank sets the rank
func (b *AccountBuilder) WithRank(rank entities.Rank) *AccountBuilder {
	b.account.Rank = rank
	return b
}

// WithTower sets the tower pointer
func (b *AccountBuilder) WithTower(floor, level int) *AccountBuilder {
	b.account.Tower = entities.TowerProgress{Floor: floor, Level: level}
	return b
}

// WithPet adds a pet and optionally equips it
func (b *AccountBuilder) WithPet(pet *entities.Pet, equipped bool) *AccountBuilder {
	b.account.Pets[pet.ID] = pet
	if equipped {
		b.account.EquippedPetID = pet.ID
	}
	return b
}

// WithItem puts an item in a slot
func (b *AccountBuilder) WithItem(slot entities.Slot, item *entities.Item) *AccountBuilder {
	b.account.Equipment[slot] = item
	return b
}

// WithBird adds an owned bird
func (b *AccountBuilder) WithBird(bird entities.Bird) *AccountBuilder {
	b.account.Birds = append(b.account.Birds, bird)
	return b
}

// WithGuild records guild membership on the account side
func (b *AccountBuilder) WithGuild(guildID string) *AccountBuilder {
	b.account.GuildID = guildID
	return b
}

// Admin gives the account the admin role
func (b *AccountBuilder) Admin() *AccountBuilder {
	b.account.Role = entities.RoleAdmin
	return b
}

// Automated marks the account as an NPC actor
func (b *AccountBuilder) Automated() *AccountBuilder {
	b.account.IsAutomated = true
	return b
}

// Build returns the constructed Account
func (b *AccountBuilder) Build() *entities.Account {
	return b.account
}

// NewPet builds a pet with one affinity
func NewPet(id string, tier entities.PetTier, stats entities.PetStats, affinities ...entities.Element) *entities.Pet {
	if len(affinities) == 0 {
		affinities = []entities.Element{"fire"}
	}
	return &entities.Pet{
		ID:         id,
		Name:       id,
		Tier:       tier,
		Stats:      stats,
		Affinities: affinities,
	}
}
