package entities

import "time"

// AuctionStatus is a skill auction lifecycle state
type AuctionStatus string

// Auction statuses
const (
	AuctionStatusQueued    AuctionStatus = "queued"
	AuctionStatusActive    AuctionStatus = "active"
	AuctionStatusCompleted AuctionStatus = "completed"
)

// Bid is a gold offer on an auction
type Bid struct {
	ID        string    `json:"id"`
	AuctionID string    `json:"auctionId"`
	BidderID  string    `json:"bidderId"`
	Amount    Num       `json:"amount"`
	PlacedAt  time.Time `json:"placedAt"`
}

// Auction sells one skill to the highest bidder
type Auction struct {
	ID          string        `json:"id"`
	SkillID     string        `json:"skillId"`
	SkillName   string        `json:"skillName"`
	Status      AuctionStatus `json:"status"`
	StartAt     *time.Time    `json:"startAt,omitempty"`
	EndAt       *time.Time    `json:"endAt,omitempty"`
	Bids        []Bid         `json:"bids,omitempty"`
	WinningBid  *Bid          `json:"winningBid,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
}

// HighestBid returns the current highest bid or nil
func (a *Auction) HighestBid() *Bid {
	if len(a.Bids) == 0 {
		return nil
	}
	return &a.Bids[len(a.Bids)-1]
}

// AuctionSchedule tracks the single active auction and the queue behind it
type AuctionSchedule struct {
	ActiveID string   `json:"activeId,omitempty"`
	Queue    []string `json:"queue"`
}
