// Package challenges provides persistence for PvP challenges and their combat state
package challenges

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
)

// Repository defines challenge persistence
type Repository interface {
	// Get retrieves a challenge by ID
	// Returns errors.NotFound if the challenge doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// ListByAccount retrieves every challenge an account takes part in
	ListByAccount(ctx context.Context, input ListByAccountInput) (*ListByAccountOutput, error)

	// Tx binds the repository to a running transaction
	Tx(tx store.Tx) TxRepository
}

// TxRepository reads and stages challenge writes inside one transaction
type TxRepository interface {
	Get(ctx context.Context, id string) (*entities.Challenge, error)
	Create(challenge *entities.Challenge) error
	Save(challenge *entities.Challenge) error
}

// GetInput defines the input for getting a challenge
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a challenge
type GetOutput struct {
	Challenge *entities.Challenge
}

// ListByAccountInput defines the input for listing an account's challenges
type ListByAccountInput struct {
	AccountID string
}

// ListByAccountOutput defines the output for listing an account's challenges
type ListByAccountOutput struct {
	Challenges []*entities.Challenge
}
