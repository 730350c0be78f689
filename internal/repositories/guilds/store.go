package guilds

import (
	"context"
	"strings"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
)

const (
	guildKeyPrefix  = "guild:"
	nameIndexPrefix = "guild:name:"
	allGuildsSet    = "guilds"

	errGuildNil     = "guild cannot be nil"
	errGuildIDEmpty = "guild ID cannot be empty"
)

// Config contains configuration for the guild repository
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

// New creates a guild repository on top of a Store
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

// Key is the storage key of a guild document
func Key(id string) string {
	return guildKeyPrefix + id
}

func nameKey(name string) string {
	return nameIndexPrefix + strings.ToLower(strings.TrimSpace(name))
}

func (r *repository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}
	guild, found, err := store.Read[entities.Guild](ctx, r.store, Key(input.ID))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get guild %s", input.ID)
	}
	if !found {
		return nil, errors.NotFoundf("guild %s not found", input.ID)
	}
	return &GetOutput{Guild: guild}, nil
}

func (r *repository) List(ctx context.Context) (*ListOutput, error) {
	list, err := store.ReadAll[entities.Guild](ctx, r.store, allGuildsSet, Key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list guilds")
	}
	return &ListOutput{Guilds: list}, nil
}

func (r *repository) Tx(tx store.Tx) TxRepository {
	return &txRepository{tx: tx, clock: r.clock}
}

type txRepository struct {
	tx    store.Tx
	clock clock.Clock
}

func (t *txRepository) Get(ctx context.Context, id string) (*entities.Guild, error) {
	if id == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}
	guild, found, err := store.Fetch[entities.Guild](ctx, t.tx, Key(id))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load guild %s", id)
	}
	if !found {
		return nil, errors.NotFoundf("guild %s not found", id)
	}
	return guild, nil
}

func (t *txRepository) Create(ctx context.Context, guild *entities.Guild) error {
	if guild == nil {
		return errors.InvalidArgument(errGuildNil)
	}
	if guild.ID == "" {
		return errors.InvalidArgument(errGuildIDEmpty)
	}

	var owner string
	found, err := t.tx.Load(ctx, nameKey(guild.Name), &owner)
	if err != nil {
		return errors.Wrap(err, "failed to check guild name")
	}
	if found {
		return errors.AlreadyExistsf("guild name %q is taken", guild.Name)
	}

	now := t.clock.Now()
	guild.CreatedAt = now
	guild.UpdatedAt = now

	if err := t.tx.Save(nameKey(guild.Name), guild.ID); err != nil {
		return err
	}
	t.tx.AddToSet(allGuildsSet, guild.ID)
	return t.tx.Save(Key(guild.ID), guild)
}

func (t *txRepository) Save(guild *entities.Guild) error {
	if guild == nil {
		return errors.InvalidArgument(errGuildNil)
	}
	if guild.ID == "" {
		return errors.InvalidArgument(errGuildIDEmpty)
	}
	guild.Bank.Normalize()
	guild.UpdatedAt = t.clock.Now()
	return t.tx.Save(Key(guild.ID), guild)
}

func (t *txRepository) Delete(guild *entities.Guild) {
	t.tx.Delete(Key(guild.ID))
	t.tx.Delete(nameKey(guild.Name))
	t.tx.RemoveFromSet(allGuildsSet, guild.ID)
}
