package auction

import (
	"github.com/KirkDiggler/rpg-arena/internal/entities"
)

// EnqueueAuctionInput defines the admin request for queueing a skill auction
type EnqueueAuctionInput struct {
	AdminID   string
	SkillID   string
	SkillName string
}

// StartNextInput defines the admin request for activating the next queued auction
type StartNextInput struct {
	AdminID string
}

// AuctionOutput carries a single auction
type AuctionOutput struct {
	Auction *entities.Auction
}

// GetAuctionInput defines the request for reading an auction
type GetAuctionInput struct {
	AuctionID string
}

// ListAuctionsInput filters the auction listing
type ListAuctionsInput struct {
	// Status limits the result to one lifecycle state when set
	Status entities.AuctionStatus
}

// ListAuctionsOutput carries the auctions and the current schedule
type ListAuctionsOutput struct {
	Auctions []*entities.Auction
	ActiveID string
	Queue    []string
}

// PlaceBidInput defines a gold offer on the active auction
type PlaceBidInput struct {
	AuctionID string
	BidderID  string
	Amount    entities.Num
}

// PlaceBidOutput carries the accepted bid
type PlaceBidOutput struct {
	Bid     *entities.Bid
	Auction *entities.Auction
}

// FinalizeAuctionInput defines the admin request for ending an auction
type FinalizeAuctionInput struct {
	AdminID   string
	AuctionID string
}

// FinalizeAuctionOutput reports how an auction resolved
type FinalizeAuctionOutput struct {
	Auction *entities.Auction

	// Winner is nil when nobody bid or the highest bidder defaulted
	Winner    *entities.Account
	WinnerID  string
	Defaulted bool

	// AlreadyCompleted is set when the call found nothing to do
	AlreadyCompleted bool

	// Started is the queued auction activated in the same transaction
	Started *entities.Auction
}

// SweepOutput reports what a background sweep changed
type SweepOutput struct {
	Finalized *FinalizeAuctionOutput
	Started   *entities.Auction
}
