package challenges

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
)

const (
	challengeKeyPrefix  = "challenge:"
	accountIndexPrefix  = "challenges:account:"
	errChallengeNil     = "challenge cannot be nil"
	errChallengeIDEmpty = "challenge ID cannot be empty"
)

// Config contains configuration for the challenge repository
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

// New creates a challenge repository on top of a Store
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

// Key is the storage key of a challenge document
func Key(id string) string {
	return challengeKeyPrefix + id
}

func (r *repository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errChallengeIDEmpty)
	}

	challenge, found, err := store.Read[entities.Challenge](ctx, r.store, Key(input.ID))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get challenge %s", input.ID)
	}
	if !found {
		return nil, errors.NotFoundf("challenge %s not found", input.ID)
	}
	return &GetOutput{Challenge: challenge}, nil
}

func (r *repository) ListByAccount(ctx context.Context, input ListByAccountInput) (*ListByAccountOutput, error) {
	if input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID cannot be empty")
	}

	list, err := store.ReadAll[entities.Challenge](ctx, r.store, accountIndexPrefix+input.AccountID, Key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list challenges")
	}
	return &ListByAccountOutput{Challenges: list}, nil
}

func (r *repository) Tx(tx store.Tx) TxRepository {
	return &txRepository{tx: tx, clock: r.clock}
}

type txRepository struct {
	tx    store.Tx
	clock clock.Clock
}

func (t *txRepository) Get(ctx context.Context, id string) (*entities.Challenge, error) {
	if id == "" {
		return nil, errors.InvalidArgument(errChallengeIDEmpty)
	}
	challenge, found, err := store.Fetch[entities.Challenge](ctx, t.tx, Key(id))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load challenge %s", id)
	}
	if !found {
		return nil, errors.NotFoundf("challenge %s not found", id)
	}
	return challenge, nil
}

func (t *txRepository) Create(challenge *entities.Challenge) error {
	if challenge == nil {
		return errors.InvalidArgument(errChallengeNil)
	}
	if challenge.ID == "" {
		return errors.InvalidArgument(errChallengeIDEmpty)
	}

	now := t.clock.Now()
	challenge.CreatedAt = now
	challenge.UpdatedAt = now
	t.tx.AddToSet(accountIndexPrefix+challenge.ChallengerID, challenge.ID)
	t.tx.AddToSet(accountIndexPrefix+challenge.ChallengedID, challenge.ID)
	return t.tx.Save(Key(challenge.ID), challenge)
}

func (t *txRepository) Save(challenge *entities.Challenge) error {
	if challenge == nil {
		return errors.InvalidArgument(errChallengeNil)
	}
	if challenge.ID == "" {
		return errors.InvalidArgument(errChallengeIDEmpty)
	}
	challenge.UpdatedAt = t.clock.Now()
	return t.tx.Save(Key(challenge.ID), challenge)
}
