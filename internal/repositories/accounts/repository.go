// Package accounts provides persistence for player and automated accounts
package accounts

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
)

// Repository defines account persistence
type Repository interface {
	// Get retrieves an account by ID
	// Returns errors.NotFound if the account doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List retrieves every account, optionally only automated ones
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Tx binds the repository to a running transaction
	Tx(tx store.Tx) TxRepository
}

// TxRepository reads and stages account writes inside one transaction
type TxRepository interface {
	// Get loads an account, returning errors.NotFound when missing
	Get(ctx context.Context, id string) (*entities.Account, error)

	// GetByName loads an account by case-insensitive name
	GetByName(ctx context.Context, name string) (*entities.Account, error)

	// Create stages a new account
	// Returns errors.AlreadyExists when the ID or name is taken
	Create(ctx context.Context, account *entities.Account) error

	// Save stages an updated account
	Save(account *entities.Account) error

	// Delete stages removal of the account and its indexes
	Delete(account *entities.Account)
}

// GetInput defines the input for getting an account
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting an account
type GetOutput struct {
	Account *entities.Account
}

// ListInput defines the input for listing accounts
type ListInput struct {
	AutomatedOnly bool
}

// ListOutput defines the output for listing accounts
type ListOutput struct {
	Accounts []*entities.Account
}
