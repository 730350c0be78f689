// Package auction runs the skill auction clock.
//
// At most one auction is active. The schedule document holds the active
// pointer and the queue, and every operation that changes which auction is
// active loads it inside its transaction, so those operations serialize.
package auction

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/engine/ledger"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/accounts"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/auctions"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
	"github.com/KirkDiggler/rpg-arena/internal/services/notify"
)

// DefaultWindow is how long an auction stays active
const DefaultWindow = 8 * time.Hour

// Service defines the interface for skill auction operations
type Service interface {
	GetAuction(ctx context.Context, input *GetAuctionInput) (*AuctionOutput, error)
	ListAuctions(ctx context.Context, input *ListAuctionsInput) (*ListAuctionsOutput, error)
	PlaceBid(ctx context.Context, input *PlaceBidInput) (*PlaceBidOutput, error)

	// Admin only
	EnqueueAuction(ctx context.Context, input *EnqueueAuctionInput) (*AuctionOutput, error)
	StartNext(ctx context.Context, input *StartNextInput) (*AuctionOutput, error)
	FinalizeAuction(ctx context.Context, input *FinalizeAuctionInput) (*FinalizeAuctionOutput, error)

	// Sweep finalizes the active auction once its window has passed and
	// starts the next queued auction when none is active
	Sweep(ctx context.Context) (*SweepOutput, error)
}

// Config holds the dependencies for the auction orchestrator
type Config struct {
	Store       store.Store
	Accounts    accounts.Repository
	Auctions    auctions.Repository
	IDGenerator idgen.Generator
	Clock       clock.Clock
	Emitter     notify.Emitter

	// Window overrides DefaultWindow when positive
	Window time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.Accounts == nil {
		vb.RequiredField("Accounts")
	}
	if c.Auctions == nil {
		vb.RequiredField("Auctions")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Window < 0 {
		vb.InvalidField("Window", "cannot be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	store    store.Store
	accounts accounts.Repository
	auctions auctions.Repository
	idGen    idgen.Generator
	clock    clock.Clock
	emitter  notify.Emitter
	window   time.Duration
}

// NewOrchestrator creates a new auction orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		store:    cfg.Store,
		accounts: cfg.Accounts,
		auctions: cfg.Auctions,
		idGen:    cfg.IDGenerator,
		clock:    cfg.Clock,
		emitter:  cfg.Emitter,
		window:   cfg.Window,
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.emitter == nil {
		o.emitter = notify.Discard{}
	}
	if o.window == 0 {
		o.window = DefaultWindow
	}
	return o, nil
}

func requireAdmin(ctx context.Context, repo accounts.TxRepository, adminID string) error {
	admin, err := repo.Get(ctx, adminID)
	if err != nil {
		return err
	}
	if !admin.IsAdmin() {
		return errors.PermissionDenied("only admins can manage auctions")
	}
	return nil
}

func (o *orchestrator) GetAuction(ctx context.Context, input *GetAuctionInput) (*AuctionOutput, error) {
	if input == nil || input.AuctionID == "" {
		return nil, errors.InvalidArgument("auction ID is required")
	}

	out, err := o.auctions.Get(ctx, auctions.GetInput{ID: input.AuctionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auction")
	}
	return &AuctionOutput{Auction: out.Auction}, nil
}

func (o *orchestrator) ListAuctions(ctx context.Context, input *ListAuctionsInput) (*ListAuctionsOutput, error) {
	if input == nil {
		input = &ListAuctionsInput{}
	}

	list, err := o.auctions.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list auctions")
	}
	schedule, err := o.auctions.Schedule(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list auctions")
	}

	out := &ListAuctionsOutput{
		Auctions: make([]*entities.Auction, 0, len(list.Auctions)),
		ActiveID: schedule.ActiveID,
		Queue:    schedule.Queue,
	}
	for _, a := range list.Auctions {
		if input.Status == "" || a.Status == input.Status {
			out.Auctions = append(out.Auctions, a)
		}
	}
	return out, nil
}

func (o *orchestrator) EnqueueAuction(ctx context.Context, input *EnqueueAuctionInput) (*AuctionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("admin_id", input.AdminID, vb)
	errors.ValidateRequired("skill_id", input.SkillID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	auction := &entities.Auction{
		ID:        o.idGen.Generate(),
		SkillID:   input.SkillID,
		SkillName: strings.TrimSpace(input.SkillName),
		Status:    entities.AuctionStatusQueued,
	}
	if auction.SkillName == "" {
		auction.SkillName = input.SkillID
	}

	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		if err := requireAdmin(ctx, o.accounts.Tx(tx), input.AdminID); err != nil {
			return err
		}
		repo := o.auctions.Tx(tx)
		schedule, err := repo.Schedule(ctx)
		if err != nil {
			return err
		}
		if err := repo.Create(auction); err != nil {
			return err
		}
		schedule.Queue = append(schedule.Queue, auction.ID)
		return repo.SaveSchedule(schedule)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to enqueue auction")
	}

	slog.InfoContext(ctx, "auction queued", "auction_id", auction.ID, "skill_id", auction.SkillID)
	return &AuctionOutput{Auction: auction}, nil
}

func (o *orchestrator) StartNext(ctx context.Context, input *StartNextInput) (*AuctionOutput, error) {
	if input == nil || input.AdminID == "" {
		return nil, errors.InvalidArgument("admin ID is required")
	}

	var started *entities.Auction
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		if err := requireAdmin(ctx, o.accounts.Tx(tx), input.AdminID); err != nil {
			return err
		}
		repo := o.auctions.Tx(tx)
		schedule, err := repo.Schedule(ctx)
		if err != nil {
			return err
		}
		if schedule.ActiveID != "" {
			return errors.FailedPreconditionf("auction %s is still active", schedule.ActiveID).
				WithMeta("active_id", schedule.ActiveID)
		}
		if len(schedule.Queue) == 0 {
			return errors.FailedPrecondition("no auctions are queued")
		}
		started, err = o.startNext(ctx, repo, schedule)
		if err != nil {
			return err
		}
		return repo.SaveSchedule(schedule)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to start auction")
	}

	o.publishStarted(ctx, started)
	return &AuctionOutput{Auction: started}, nil
}

// startNext pops the queue head and activates it. The caller saves the schedule.
func (o *orchestrator) startNext(ctx context.Context, repo auctions.TxRepository, schedule *entities.AuctionSchedule) (*entities.Auction, error) {
	if schedule.ActiveID != "" || len(schedule.Queue) == 0 {
		return nil, nil
	}

	id := schedule.Queue[0]
	schedule.Queue = schedule.Queue[1:]
	next, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	start := o.clock.Now()
	end := start.Add(o.window)
	next.Status = entities.AuctionStatusActive
	next.StartAt = &start
	next.EndAt = &end
	if err := repo.Save(next); err != nil {
		return nil, err
	}

	schedule.ActiveID = next.ID
	return next, nil
}

func (o *orchestrator) PlaceBid(ctx context.Context, input *PlaceBidInput) (*PlaceBidOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("auction_id", input.AuctionID, vb)
	errors.ValidateRequired("bidder_id", input.BidderID, vb)
	errors.ValidatePositive("amount", int64(input.Amount), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out := &PlaceBidOutput{}
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		repo := o.auctions.Tx(tx)
		auction, err := repo.Get(ctx, input.AuctionID)
		if err != nil {
			return err
		}

		now := o.clock.Now()
		if auction.Status != entities.AuctionStatusActive {
			return errors.FailedPreconditionf("auction %s is %s", auction.ID, auction.Status).
				WithMeta("status", string(auction.Status))
		}
		if auction.EndAt != nil && !now.Before(*auction.EndAt) {
			return errors.FailedPreconditionf("auction %s has ended", auction.ID)
		}
		if highest := auction.HighestBid(); highest != nil && input.Amount <= highest.Amount {
			return errors.FailedPreconditionf("bid must exceed %d", highest.Amount).
				WithReason(errors.ReasonBidTooLow).
				WithMeta("highest", int64(highest.Amount))
		}

		bidder, err := o.accounts.Tx(tx).Get(ctx, input.BidderID)
		if err != nil {
			return err
		}
		if bidder.Currencies.Gold < input.Amount {
			return ledger.InsufficientFunds(entities.ResourceGold, input.Amount, bidder.Currencies.Gold)
		}

		auction.Bids = append(auction.Bids, entities.Bid{
			ID:        o.idGen.Generate(),
			AuctionID: auction.ID,
			BidderID:  bidder.ID,
			Amount:    input.Amount,
			PlacedAt:  now,
		})
		out.Auction = auction
		out.Bid = auction.HighestBid()
		return repo.Save(auction)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to place bid")
	}

	slog.DebugContext(ctx, "bid placed",
		"auction_id", input.AuctionID,
		"bidder_id", input.BidderID,
		"amount", input.Amount)

	notify.Publish(ctx, o.emitter, notify.EventBidPlaced, out.Bid)
	return out, nil
}

func (o *orchestrator) FinalizeAuction(ctx context.Context, input *FinalizeAuctionInput) (*FinalizeAuctionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("admin_id", input.AdminID, vb)
	errors.ValidateRequired("auction_id", input.AuctionID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var out *FinalizeAuctionOutput
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		if err := requireAdmin(ctx, o.accounts.Tx(tx), input.AdminID); err != nil {
			return err
		}
		var err error
		out, err = o.finalize(ctx, tx, input.AuctionID)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to finalize auction")
	}

	o.publishFinalized(ctx, out)
	return out, nil
}

func (o *orchestrator) Sweep(ctx context.Context) (*SweepOutput, error) {
	out := &SweepOutput{}
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		*out = SweepOutput{}
		repo := o.auctions.Tx(tx)
		schedule, err := repo.Schedule(ctx)
		if err != nil {
			return err
		}

		if schedule.ActiveID != "" {
			active, err := repo.Get(ctx, schedule.ActiveID)
			if err != nil {
				return err
			}
			if active.EndAt == nil || o.clock.Now().Before(*active.EndAt) {
				return nil
			}
			out.Finalized, err = o.finalize(ctx, tx, active.ID)
			return err
		}

		out.Started, err = o.startNext(ctx, repo, schedule)
		if err != nil || out.Started == nil {
			return err
		}
		return repo.SaveSchedule(schedule)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to sweep auctions")
	}

	if out.Finalized != nil {
		o.publishFinalized(ctx, out.Finalized)
	}
	if out.Started != nil {
		o.publishStarted(ctx, out.Started)
	}
	return out, nil
}

// finalize settles an auction inside tx. Completed auctions are a no-op.
// The highest bidder's gold is re-checked here; a bidder who can no longer
// pay defaults and the auction completes without a winner.
func (o *orchestrator) finalize(ctx context.Context, tx store.Tx, auctionID string) (*FinalizeAuctionOutput, error) {
	repo := o.auctions.Tx(tx)
	schedule, err := repo.Schedule(ctx)
	if err != nil {
		return nil, err
	}
	auction, err := repo.Get(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	out := &FinalizeAuctionOutput{Auction: auction}
	switch auction.Status {
	case entities.AuctionStatusCompleted:
		out.AlreadyCompleted = true
		return out, nil
	case entities.AuctionStatusQueued:
		return nil, errors.FailedPreconditionf("auction %s has not started", auction.ID)
	}

	if highest := auction.HighestBid(); highest != nil {
		winner, err := o.settle(ctx, tx, auction, highest)
		if err != nil {
			return nil, err
		}
		if winner != nil {
			winning := *highest
			auction.WinningBid = &winning
			out.Winner = winner
			out.WinnerID = winner.ID
		} else {
			out.Defaulted = true
		}
	}

	now := o.clock.Now()
	auction.Status = entities.AuctionStatusCompleted
	auction.CompletedAt = &now
	if err := repo.Save(auction); err != nil {
		return nil, err
	}

	if schedule.ActiveID == auction.ID {
		schedule.ActiveID = ""
	}
	out.Started, err = o.startNext(ctx, repo, schedule)
	if err != nil {
		return nil, err
	}
	if err := repo.SaveSchedule(schedule); err != nil {
		return nil, err
	}
	return out, nil
}

// settle charges the bidder and grants the skill. It returns nil when the
// bidder defaulted.
func (o *orchestrator) settle(ctx context.Context, tx store.Tx, auction *entities.Auction, bid *entities.Bid) (*entities.Account, error) {
	repo := o.accounts.Tx(tx)
	bidder, err := repo.Get(ctx, bid.BidderID)
	if errors.IsNotFound(err) {
		slog.WarnContext(ctx, "auction winner no longer exists",
			"auction_id", auction.ID,
			"bidder_id", bid.BidderID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := ledger.Charge(&bidder.Currencies, entities.ResourceGold, bid.Amount); err != nil {
		if errors.IsInsufficientResources(err) {
			slog.InfoContext(ctx, "auction winner defaulted",
				"auction_id", auction.ID,
				"bidder_id", bidder.ID,
				"amount", bid.Amount,
				"gold", bidder.Currencies.Gold)
			return nil, nil
		}
		return nil, err
	}
	if !bidder.HasSkill(auction.SkillID) {
		bidder.Skills = append(bidder.Skills, auction.SkillID)
	}
	if err := repo.Save(bidder); err != nil {
		return nil, err
	}
	return bidder, nil
}

func (o *orchestrator) publishStarted(ctx context.Context, auction *entities.Auction) {
	slog.InfoContext(ctx, "auction started",
		"auction_id", auction.ID,
		"skill_id", auction.SkillID,
		"end_at", auction.EndAt)
	notify.Publish(ctx, o.emitter, notify.EventAuctionStarted, auction)
}

func (o *orchestrator) publishFinalized(ctx context.Context, out *FinalizeAuctionOutput) {
	if out.AlreadyCompleted {
		return
	}

	slog.InfoContext(ctx, "auction completed",
		"auction_id", out.Auction.ID,
		"winner_id", out.WinnerID,
		"defaulted", out.Defaulted)
	notify.Publish(ctx, o.emitter, notify.EventAuctionCompleted, out.Auction)
	if out.Winner != nil {
		notify.Publish(ctx, o.emitter, notify.EventPlayerUpdate, out.Winner)
	}
	if out.Started != nil {
		o.publishStarted(ctx, out.Started)
	}
}
