// Package account implements registration, lookup and strength for accounts
package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-arena/internal/engine/power"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/accounts"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
	"github.com/KirkDiggler/rpg-arena/internal/services/notify"
)

// Registration defaults
const (
	StartingGold      entities.Num = 1000
	StartingStatValue entities.Num = 1
	maxNameLength                  = 32
)

// Service defines the interface for account operations
type Service interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	// EnsureAdmin creates the named admin unless it already exists. It is
	// for server bootstrap and is not exposed to callers.
	EnsureAdmin(ctx context.Context, input *EnsureAdminInput) (*EnsureAdminOutput, error)
	GetAccount(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error)
	ListAccounts(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error)
	DeleteAccount(ctx context.Context, input *DeleteAccountInput) (*DeleteAccountOutput, error)

	// Admin only
	SetRank(ctx context.Context, input *SetRankInput) (*SetRankOutput, error)

	// ComputeStrength is the single strength figure every display and gate uses
	ComputeStrength(ctx context.Context, input *ComputeStrengthInput) (*ComputeStrengthOutput, error)
}

// Config holds the dependencies for the account orchestrator
type Config struct {
	Store       store.Store
	Accounts    accounts.Repository
	IDGenerator idgen.Generator
	Emitter     notify.Emitter
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
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	store    store.Store
	accounts accounts.Repository
	idGen    idgen.Generator
	emitter  notify.Emitter
}

// NewOrchestrator creates a new account orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	emitter := cfg.Emitter
	if emitter == nil {
		emitter = notify.Discard{}
	}

	return &orchestrator{
		store:    cfg.Store,
		accounts: cfg.Accounts,
		idGen:    cfg.IDGenerator,
		emitter:  emitter,
	}, nil
}

// NewAccount builds an account with registration defaults
func NewAccount(id, name string) *entities.Account {
	one := StartingStatValue
	return &entities.Account{
		ID:         id,
		Name:       name,
		Role:       entities.RolePlayer,
		Rank:       entities.RankNovice,
		Stats:      entities.Stats{Str: one, Def: one, Spd: one, Int: one, Luck: one, Pot: one},
		Currencies: entities.Currencies{Gold: StartingGold},
		Tower:      entities.TowerProgress{Floor: 1, Level: 1},
		Equipment:  map[entities.Slot]*entities.Item{},
		Pets:       map[string]*entities.Pet{},
	}
}

func (o *orchestrator) Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	name := strings.TrimSpace(input.Name)
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", name, vb)
	if len(name) > maxNameLength {
		vb.Fieldf("name", "must be at most %d characters", maxNameLength)
	}
	role := input.Role
	if role == "" {
		role = entities.RolePlayer
	}
	if role != entities.RolePlayer && role != entities.RoleAdmin {
		vb.InvalidField("role", "must be player or admin")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	// a player account may still name its creator, which must then be an admin
	checkCreator := role == entities.RoleAdmin || input.IsAutomated || input.CreatedBy != ""

	acct := NewAccount(o.idGen.Generate(), name)
	acct.Role = role
	acct.IsAutomated = input.IsAutomated

	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		repo := o.accounts.Tx(tx)
		if checkCreator {
			if err := requireAdmin(ctx, repo, input.CreatedBy); err != nil {
				return err
			}
		}
		return repo.Create(ctx, acct)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to register account")
	}

	slog.InfoContext(ctx, "account registered",
		"account_id", acct.ID,
		"role", acct.Role,
		"automated", acct.IsAutomated,
		"created_by", input.CreatedBy)

	return &RegisterOutput{Account: acct}, nil
}

// requireAdmin checks that creatorID names an existing admin
func requireAdmin(ctx context.Context, repo accounts.TxRepository, creatorID string) error {
	if creatorID == "" {
		return errors.PermissionDenied("admin and automated accounts must be created by an admin")
	}
	creator, err := repo.Get(ctx, creatorID)
	if err != nil {
		return err
	}
	if !creator.IsAdmin() {
		return errors.PermissionDenied("only admins can create admin or automated accounts").
			WithMeta("created_by", creatorID)
	}
	return nil
}

func (o *orchestrator) EnsureAdmin(ctx context.Context, input *EnsureAdminInput) (*EnsureAdminOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.InvalidArgument("name is required")
	}

	var out *EnsureAdminOutput
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		repo := o.accounts.Tx(tx)
		existing, err := repo.GetByName(ctx, name)
		switch {
		case err == nil:
			if !existing.IsAdmin() {
				return errors.FailedPreconditionf("account %q exists and is not an admin", name).
					WithMeta("account_id", existing.ID)
			}
			out = &EnsureAdminOutput{Account: existing}
			return nil
		case !errors.IsNotFound(err):
			return err
		}

		acct := NewAccount(o.idGen.Generate(), name)
		acct.Role = entities.RoleAdmin
		out = &EnsureAdminOutput{Account: acct, Created: true}
		return repo.Create(ctx, acct)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to ensure admin %q", name)
	}

	if out.Created {
		slog.InfoContext(ctx, "admin account created", "account_id", out.Account.ID)
	}
	return out, nil
}

func (o *orchestrator) GetAccount(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}

	out, err := o.accounts.Get(ctx, accounts.GetInput{ID: input.AccountID})
	if err != nil {
		return nil, err
	}
	return &GetAccountOutput{Account: out.Account}, nil
}

func (o *orchestrator) ListAccounts(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	if input == nil {
		input = &ListAccountsInput{}
	}

	out, err := o.accounts.List(ctx, accounts.ListInput{AutomatedOnly: input.AutomatedOnly})
	if err != nil {
		return nil, err
	}
	return &ListAccountsOutput{Accounts: out.Accounts}, nil
}

func (o *orchestrator) DeleteAccount(ctx context.Context, input *DeleteAccountInput) (*DeleteAccountOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}

	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		repo := o.accounts.Tx(tx)
		acct, err := repo.Get(ctx, input.AccountID)
		if err != nil {
			return err
		}
		if acct.IsAdmin() {
			return errors.PermissionDenied("admin accounts cannot be deleted")
		}
		if acct.GuildID != "" {
			return errors.FailedPrecondition("leave the guild before deleting the account").
				WithMeta("guild_id", acct.GuildID)
		}
		repo.Delete(acct)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete account %s", input.AccountID)
	}

	slog.InfoContext(ctx, "account deleted", "account_id", input.AccountID)
	return &DeleteAccountOutput{}, nil
}

func (o *orchestrator) SetRank(ctx context.Context, input *SetRankInput) (*SetRankOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("admin_id", input.AdminID, vb)
	errors.ValidateRequired("account_id", input.AccountID, vb)
	if !input.Rank.Valid() {
		vb.InvalidField("rank", "unknown rank")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var acct *entities.Account
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		repo := o.accounts.Tx(tx)
		admin, err := repo.Get(ctx, input.AdminID)
		if err != nil {
			return err
		}
		if !admin.IsAdmin() {
			return errors.PermissionDenied("only admins can change ranks")
		}

		acct, err = repo.Get(ctx, input.AccountID)
		if err != nil {
			return err
		}
		acct.Rank = input.Rank
		return repo.Save(acct)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to set rank")
	}

	notify.Publish(ctx, o.emitter, notify.EventPlayerUpdate, acct)
	return &SetRankOutput{Account: acct}, nil
}

func (o *orchestrator) ComputeStrength(ctx context.Context, input *ComputeStrengthInput) (*ComputeStrengthOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}

	out, err := o.accounts.Get(ctx, accounts.GetInput{ID: input.AccountID})
	if err != nil {
		return nil, err
	}

	breakdown := power.Compute(out.Account)
	return &ComputeStrengthOutput{
		Strength:  breakdown.Total(),
		Breakdown: breakdown,
	}, nil
}
