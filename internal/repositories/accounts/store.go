package accounts

import (
	"context"
	"strings"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
)

const (
	accountKeyPrefix  = "account:"
	nameIndexPrefix   = "account:name:"
	allAccountsSet    = "accounts"
	automatedAccounts = "accounts:automated"

	errAccountNil     = "account cannot be nil"
	errAccountIDEmpty = "account ID cannot be empty"
)

// Config contains configuration for the account repository
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

// New creates an account repository on top of a Store
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

// Key is the storage key of an account document
func Key(id string) string {
	return accountKeyPrefix + id
}

func nameKey(name string) string {
	return nameIndexPrefix + strings.ToLower(strings.TrimSpace(name))
}

func (r *repository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}

	account, found, err := store.Read[entities.Account](ctx, r.store, Key(input.ID))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get account %s", input.ID)
	}
	if !found {
		return nil, errors.NotFoundf("account %s not found", input.ID)
	}

	return &GetOutput{Account: account}, nil
}

func (r *repository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	set := allAccountsSet
	if input.AutomatedOnly {
		set = automatedAccounts
	}

	list, err := store.ReadAll[entities.Account](ctx, r.store, set, Key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	return &ListOutput{Accounts: list}, nil
}

func (r *repository) Tx(tx store.Tx) TxRepository {
	return &txRepository{tx: tx, clock: r.clock}
}

type txRepository struct {
	tx    store.Tx
	clock clock.Clock
}

func (t *txRepository) Get(ctx context.Context, id string) (*entities.Account, error) {
	if id == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}

	account, found, err := store.Fetch[entities.Account](ctx, t.tx, Key(id))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load account %s", id)
	}
	if !found {
		return nil, errors.NotFoundf("account %s not found", id)
	}
	return account, nil
}

func (t *txRepository) GetByName(ctx context.Context, name string) (*entities.Account, error) {
	var id string
	found, err := t.tx.Load(ctx, nameKey(name), &id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up account %q", name)
	}
	if !found {
		return nil, errors.NotFoundf("account %q not found", name)
	}
	return t.Get(ctx, id)
}

func (t *txRepository) Create(ctx context.Context, account *entities.Account) error {
	if account == nil {
		return errors.InvalidArgument(errAccountNil)
	}
	if account.ID == "" {
		return errors.InvalidArgument(errAccountIDEmpty)
	}

	var existing entities.Account
	found, err := t.tx.Load(ctx, Key(account.ID), &existing)
	if err != nil {
		return errors.Wrap(err, "failed to check account id")
	}
	if found {
		return errors.AlreadyExistsf("account %s already exists", account.ID)
	}

	var owner string
	found, err = t.tx.Load(ctx, nameKey(account.Name), &owner)
	if err != nil {
		return errors.Wrap(err, "failed to check account name")
	}
	if found {
		return errors.AlreadyExistsf("account name %q is taken", account.Name)
	}

	now := t.clock.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	if err := t.tx.Save(nameKey(account.Name), account.ID); err != nil {
		return err
	}
	t.tx.AddToSet(allAccountsSet, account.ID)
	if account.IsAutomated {
		t.tx.AddToSet(automatedAccounts, account.ID)
	}
	return t.tx.Save(Key(account.ID), account)
}

func (t *txRepository) Save(account *entities.Account) error {
	if account == nil {
		return errors.InvalidArgument(errAccountNil)
	}
	if account.ID == "" {
		return errors.InvalidArgument(errAccountIDEmpty)
	}

	account.Currencies.Normalize()
	account.UpdatedAt = t.clock.Now()
	return t.tx.Save(Key(account.ID), account)
}

func (t *txRepository) Delete(account *entities.Account) {
	t.tx.Delete(Key(account.ID))
	t.tx.Delete(nameKey(account.Name))
	t.tx.RemoveFromSet(allAccountsSet, account.ID)
	t.tx.RemoveFromSet(automatedAccounts, account.ID)
}
