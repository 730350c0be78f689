package auctions

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
)

const (
	auctionKeyPrefix = "auction:"
	allAuctionsSet   = "auctions"
	scheduleKey      = "auction_schedule"

	errAuctionNil     = "auction cannot be nil"
	errAuctionIDEmpty = "auction ID cannot be empty"
)

// Config contains configuration for the auction repository
type Config struct {
	Store store.Store
	Clock clock.Clock
}

// Validate validates the Config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Store == nil {
		return errors.InvalidArgument("store cannot be nil")
	}
	return nil
}

type repository struct {
	store store.Store
	clock clock.Clock
}

// New creates an auction repository on top of a Store
func New(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	return &repository{store: cfg.Store, clock: c}, nil
}

var _ Repository = (*repository)(nil)

// Key is the storage key of an auction document
func Key(id string) string {
	return auctionKeyPrefix + id
}

func (r *repository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errAuctionIDEmpty)
	}
	auction, found, err := store.Read[entities.Auction](ctx, r.store, Key(input.ID))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get auction %s", input.ID)
	}
	if !found {
		return nil, errors.NotFoundf("auction %s not found", input.ID)
	}
	return &GetOutput{Auction: auction}, nil
}

func (r *repository) List(ctx context.Context) (*ListOutput, error) {
	list, err := store.ReadAll[entities.Auction](ctx, r.store, allAuctionsSet, Key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list auctions")
	}
	return &ListOutput{Auctions: list}, nil
}

func (r *repository) Schedule(ctx context.Context) (*entities.AuctionSchedule, error) {
	schedule, found, err := store.Read[entities.AuctionSchedule](ctx, r.store, scheduleKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auction schedule")
	}
	if !found {
		return &entities.AuctionSchedule{Queue: []string{}}, nil
	}
	return schedule, nil
}

func (r *repository) Tx(tx store.Tx) TxRepository {
	return &txRepository{tx: tx, clock: r.clock}
}

type txRepository struct {
	tx    store.Tx
	clock clock.Clock
}

func (t *txRepository) Get(ctx context.Context, id string) (*entities.Auction, error) {
	if id == "" {
		return nil, errors.InvalidArgument(errAuctionIDEmpty)
	}
	auction, found, err := store.Fetch[entities.Auction](ctx, t.tx, Key(id))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load auction %s", id)
	}
	if !found {
		return nil, errors.NotFoundf("auction %s not found", id)
	}
	return auction, nil
}

func (t *txRepository) Create(auction *entities.Auction) error {
	if auction == nil {
		return errors.InvalidArgument(errAuctionNil)
	}
	if auction.ID == "" {
		return errors.InvalidArgument(errAuctionIDEmpty)
	}
	auction.CreatedAt = t.clock.Now()
	t.tx.AddToSet(allAuctionsSet, auction.ID)
	return t.tx.Save(Key(auction.ID), auction)
}

func (t *txRepository) Save(auction *entities.Auction) error {
	if auction == nil {
		return errors.InvalidArgument(errAuctionNil)
	}
	if auction.ID == "" {
		return errors.InvalidArgument(errAuctionIDEmpty)
	}
	return t.tx.Save(Key(auction.ID), auction)
}

func (t *txRepository) Schedule(ctx context.Context) (*entities.AuctionSchedule, error) {
	schedule, found, err := store.Fetch[entities.AuctionSchedule](ctx, t.tx, scheduleKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load auction schedule")
	}
	if !found {
		return &entities.AuctionSchedule{Queue: []string{}}, nil
	}
	return schedule, nil
}

func (t *txRepository) SaveSchedule(schedule *entities.AuctionSchedule) error {
	if schedule == nil {
		return errors.InvalidArgument("schedule cannot be nil")
	}
	return t.tx.Save(scheduleKey, schedule)
}
