// Package guildbattles provides persistence for guild tournaments
package guildbattles

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
)

// Repository defines guild battle persistence
type Repository interface {
	// Get retrieves a guild battle by ID
	// Returns errors.NotFound if the battle doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// ListByGuild retrieves every battle a guild takes part in
	ListByGuild(ctx context.Context, input ListByGuildInput) (*ListByGuildOutput, error)

	// Tx binds the repository to a running transaction
	Tx(tx store.Tx) TxRepository
}

// TxRepository reads and stages guild battle writes inside one transaction
type TxRepository interface {
	Get(ctx context.Context, id string) (*entities.GuildBattle, error)
	Create(battle *entities.GuildBattle) error
	Save(battle *entities.GuildBattle) error
}

// GetInput defines the input for getting a guild battle
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a guild battle
type GetOutput struct {
	Battle *entities.GuildBattle
}

// ListByGuildInput defines the input for listing a guild's battles
type ListByGuildInput struct {
	GuildID string
}

// ListByGuildOutput defines the output for listing a guild's battles
type ListByGuildOutput struct {
	Battles []*entities.GuildBattle
}
