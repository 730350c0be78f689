package guildbattles

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
)

const (
	battleKeyPrefix  = "guild_battle:"
	guildIndexPrefix = "guild_battles:guild:"

	errBattleNil     = "guild battle cannot be nil"
	errBattleIDEmpty = "guild battle ID cannot be empty"
)

// Config contains configuration for the guild battle repository
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

// New creates a guild battle repository on top of a Store
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

// Key is the storage key of a guild battle document
func Key(id string) string {
	return battleKeyPrefix + id
}

func (r *repository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}
	battle, found, err := store.Read[entities.GuildBattle](ctx, r.store, Key(input.ID))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get guild battle %s", input.ID)
	}
	if !found {
		return nil, errors.NotFoundf("guild battle %s not found", input.ID)
	}
	return &GetOutput{Battle: battle}, nil
}

func (r *repository) ListByGuild(ctx context.Context, input ListByGuildInput) (*ListByGuildOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID cannot be empty")
	}
	list, err := store.ReadAll[entities.GuildBattle](ctx, r.store, guildIndexPrefix+input.GuildID, Key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list guild battles")
	}
	return &ListByGuildOutput{Battles: list}, nil
}

func (r *repository) Tx(tx store.Tx) TxRepository {
	return &txRepository{tx: tx, clock: r.clock}
}

type txRepository struct {
	tx    store.Tx
	clock clock.Clock
}

func (t *txRepository) Get(ctx context.Context, id string) (*entities.GuildBattle, error) {
	if id == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}
	battle, found, err := store.Fetch[entities.GuildBattle](ctx, t.tx, Key(id))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load guild battle %s", id)
	}
	if !found {
		return nil, errors.NotFoundf("guild battle %s not found", id)
	}
	return battle, nil
}

func (t *txRepository) Create(battle *entities.GuildBattle) error {
	if battle == nil {
		return errors.InvalidArgument(errBattleNil)
	}
	if battle.ID == "" {
		return errors.InvalidArgument(errBattleIDEmpty)
	}
	battle.CreatedAt = t.clock.Now()
	t.tx.AddToSet(guildIndexPrefix+battle.ChallengerGuildID, battle.ID)
	t.tx.AddToSet(guildIndexPrefix+battle.ChallengedGuildID, battle.ID)
	return t.tx.Save(Key(battle.ID), battle)
}

func (t *txRepository) Save(battle *entities.GuildBattle) error {
	if battle == nil {
		return errors.InvalidArgument(errBattleNil)
	}
	if battle.ID == "" {
		return errors.InvalidArgument(errBattleIDEmpty)
	}
	return t.tx.Save(Key(battle.ID), battle)
}
