// Package guilds provides persistence for guilds and their banks
package guilds

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
)

// Repository defines guild persistence
type Repository interface {
	// Get retrieves a guild by ID
	// Returns errors.NotFound if the guild doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List retrieves every guild
	List(ctx context.Context) (*ListOutput, error)

	// Tx binds the repository to a running transaction
	Tx(tx store.Tx) TxRepository
}

// TxRepository reads and stages guild writes inside one transaction
type TxRepository interface {
	Get(ctx context.Context, id string) (*entities.Guild, error)

	// Create stages a new guild
	// Returns errors.AlreadyExists when the name is taken
	Create(ctx context.Context, guild *entities.Guild) error

	Save(guild *entities.Guild) error

	// Delete stages removal of the guild and releases its name
	Delete(guild *entities.Guild)
}

// GetInput defines the input for getting a guild
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a guild
type GetOutput struct {
	Guild *entities.Guild
}

// ListOutput defines the output for listing guilds
type ListOutput struct {
	Guilds []*entities.Guild
}
