package scheduler

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/auction"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/tower"
)

// Task names
const (
	TaskAuctionSweep   = "auction_sweep"
	TaskAutomatedTower = "automated_tower"
)

// Sweeper finalizes expired auctions
type Sweeper interface {
	Sweep(ctx context.Context) (*auction.SweepOutput, error)
}

// AuctionSweep finalizes the active auction once its window passes
type AuctionSweep struct {
	Auctions Sweeper
}

// Name implements Task
func (t *AuctionSweep) Name() string { return TaskAuctionSweep }

// RunOnce implements Task
func (t *AuctionSweep) RunOnce(ctx context.Context) error {
	out, err := t.Auctions.Sweep(ctx)
	if err != nil {
		return err
	}

	if out.Finalized != nil {
		slog.InfoContext(ctx, "auction sweep finalized auction",
			"auction_id", out.Finalized.Auction.ID,
			"winner_id", out.Finalized.WinnerID)
	}
	return nil
}

// Climber advances automated accounts up the tower
type Climber interface {
	AdvanceAutomated(ctx context.Context, input *tower.AdvanceAutomatedInput) (*tower.AdvanceAutomatedOutput, error)
}

// AutomatedTower gives every automated account one tower attempt per run
type AutomatedTower struct {
	Tower Climber
}

// Name implements Task
func (t *AutomatedTower) Name() string { return TaskAutomatedTower }

// RunOnce implements Task
func (t *AutomatedTower) RunOnce(ctx context.Context) error {
	out, err := t.Tower.AdvanceAutomated(ctx, &tower.AdvanceAutomatedInput{})
	if err != nil {
		return err
	}

	slog.DebugContext(ctx, "automated tower tick",
		"attempted", out.Attempted,
		"won", out.Won,
		"blocked", out.Blocked)
	return nil
}
