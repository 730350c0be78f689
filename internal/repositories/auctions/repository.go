// Package auctions provides persistence for skill auctions and the auction schedule
package auctions

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
)

// Repository defines auction persistence
type Repository interface {
	// Get retrieves an auction by ID
	// Returns errors.NotFound if the auction doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List retrieves every auction
	List(ctx context.Context) (*ListOutput, error)

	// Schedule reads the active pointer and queue
	Schedule(ctx context.Context) (*entities.AuctionSchedule, error)

	// Tx binds the repository to a running transaction
	Tx(tx store.Tx) TxRepository
}

// TxRepository reads and stages auction writes inside one transaction
type TxRepository interface {
	Get(ctx context.Context, id string) (*entities.Auction, error)
	Create(auction *entities.Auction) error
	Save(auction *entities.Auction) error

	// Schedule loads the singleton schedule, returning an empty one when unset.
	// Every writer that changes which auction is active loads it, which serializes them.
	Schedule(ctx context.Context) (*entities.AuctionSchedule, error)
	SaveSchedule(schedule *entities.AuctionSchedule) error
}

// GetInput defines the input for getting an auction
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting an auction
type GetOutput struct {
	Auction *entities.Auction
}

// ListOutput defines the output for listing auctions
type ListOutput struct {
	Auctions []*entities.Auction
}
