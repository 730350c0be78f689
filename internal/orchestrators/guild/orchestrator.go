// Package guild implements guild membership, the shared bank and dungeon runs
package guild

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-arena/internal/engine/dungeon"
	"github.com/KirkDiggler/rpg-arena/internal/engine/ledger"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/accounts"
	guildbattles "github.com/KirkDiggler/rpg-arena/internal/repositories/guild_battles"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/guilds"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
	"github.com/KirkDiggler/rpg-arena/internal/services/notify"
	"github.com/KirkDiggler/rpg-arena/internal/services/presence"
)

// Level up requirements per current level
const (
	LevelUpGoldPerLevel   entities.Num = 50_000
	LevelUpFloorsPerLevel              = 2

	maxGuildNameLength = 32
)

// Service defines the interface for guild operations
type Service interface {
	CreateGuild(ctx context.Context, input *CreateGuildInput) (*CreateGuildOutput, error)
	JoinGuild(ctx context.Context, input *MembershipInput) (*MembershipOutput, error)
	LeaveGuild(ctx context.Context, input *MembershipInput) (*MembershipOutput, error)
	GetGuild(ctx context.Context, input *GetGuildInput) (*GetGuildOutput, error)
	ListGuilds(ctx context.Context) (*ListGuildsOutput, error)

	// Bank
	DepositToGuildBank(ctx context.Context, input *DepositInput) (*DepositOutput, error)
	DistributeFromGuildBank(ctx context.Context, input *DistributeInput) (*DistributeOutput, error)
	LevelUpGuild(ctx context.Context, input *LevelUpInput) (*LevelUpOutput, error)

	// Dungeon
	FightGuildDungeon(ctx context.Context, input *FightDungeonInput) (*FightDungeonOutput, error)
}

// Config holds the dependencies for the guild orchestrator
type Config struct {
	Store       store.Store
	Accounts    accounts.Repository
	Guilds       guilds.Repository
	GuildBattles guildbattles.Repository
	Presence     presence.Checker
	IDGenerator  idgen.Generator
	Random       rng.Source
	Emitter      notify.Emitter
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
	if c.Guilds == nil {
		vb.RequiredField("Guilds")
	}
	if c.GuildBattles == nil {
		vb.RequiredField("GuildBattles")
	}
	if c.Presence == nil {
		vb.RequiredField("Presence")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Random == nil {
		vb.RequiredField("Random")
	}

	return vb.Build()
}

type orchestrator struct {
	store    store.Store
	accounts accounts.Repository
	guilds   guilds.Repository
	battles  guildbattles.Repository
	presence presence.Checker
	idGen    idgen.Generator
	random   rng.Source
	emitter  notify.Emitter
}

// NewOrchestrator creates a new guild orchestrator with the provided dependencies
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
		guilds:   cfg.Guilds,
		battles:  cfg.GuildBattles,
		presence: cfg.Presence,
		idGen:    cfg.IDGenerator,
		random:   cfg.Random,
		emitter:  emitter,
	}, nil
}

func (o *orchestrator) CreateGuild(ctx context.Context, input *CreateGuildInput) (*CreateGuildOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	name := strings.TrimSpace(input.Name)
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", name, vb)
	errors.ValidateRequired("master_id", input.MasterID, vb)
	if len(name) > maxGuildNameLength {
		vb.Fieldf("name", "must be at most %d characters", maxGuildNameLength)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	g := &entities.Guild{
		ID:       o.idGen.Generate(),
		Name:     name,
		MasterID: input.MasterID,
		Members:  []string{input.MasterID},
		Level:    entities.GuildMinLevel,
		Dungeon:  entities.DungeonProgress{Floor: dungeon.MinFloor, Level: dungeon.MinLevel},
	}

	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		accts := o.accounts.Tx(tx)
		master, err := accts.Get(ctx, input.MasterID)
		if err != nil {
			return err
		}
		if master.GuildID != "" {
			return errors.FailedPrecondition("account already belongs to a guild").
				WithMeta("guild_id", master.GuildID)
		}
		if err := o.guilds.Tx(tx).Create(ctx, g); err != nil {
			return err
		}
		master.GuildID = g.ID
		return accts.Save(master)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create guild")
	}

	slog.InfoContext(ctx, "guild created", "guild_id", g.ID, "master_id", g.MasterID)
	notify.Publish(ctx, o.emitter, notify.EventGuildUpdate, g)
	return &CreateGuildOutput{Guild: g}, nil
}

func (o *orchestrator) JoinGuild(ctx context.Context, input *MembershipInput) (*MembershipOutput, error) {
	if err := validateMembership(input); err != nil {
		return nil, err
	}

	var g *entities.Guild
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		accts := o.accounts.Tx(tx)
		repo := o.guilds.Tx(tx)

		acct, err := accts.Get(ctx, input.AccountID)
		if err != nil {
			return err
		}
		if acct.GuildID != "" {
			return errors.FailedPrecondition("account already belongs to a guild").
				WithMeta("guild_id", acct.GuildID)
		}

		g, err = repo.Get(ctx, input.GuildID)
		if err != nil {
			return err
		}
		if g.IsMember(acct.ID) {
			return errors.AlreadyExists("account is already a member")
		}
		if len(g.Members) >= g.MaxMembers() {
			return errors.FailedPreconditionf("guild is full at %d members", g.MaxMembers()).
				WithReason(errors.ReasonGuildFull).
				WithMeta("max_members", int64(g.MaxMembers()))
		}

		g.Members = append(g.Members, acct.ID)
		acct.GuildID = g.ID
		if err := accts.Save(acct); err != nil {
			return err
		}
		return repo.Save(g)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to join guild %s", input.GuildID)
	}

	notify.Publish(ctx, o.emitter, notify.EventGuildUpdate, g)
	return &MembershipOutput{Guild: g}, nil
}

func (o *orchestrator) LeaveGuild(ctx context.Context, input *MembershipInput) (*MembershipOutput, error) {
	if err := validateMembership(input); err != nil {
		return nil, err
	}

	history, err := o.battles.ListByGuild(ctx, guildbattles.ListByGuildInput{GuildID: input.GuildID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list battles of guild %s", input.GuildID)
	}

	out := &MembershipOutput{}
	err = o.store.Atomically(ctx, func(tx store.Tx) error {
		accts := o.accounts.Tx(tx)
		repo := o.guilds.Tx(tx)

		g, err := repo.Get(ctx, input.GuildID)
		if err != nil {
			return err
		}
		if !g.IsMember(input.AccountID) {
			return errors.PermissionDenied("account is not a member of this guild")
		}
		acct, err := accts.Get(ctx, input.AccountID)
		if err != nil {
			return err
		}

		isMaster := g.MasterID == input.AccountID
		if isMaster && len(g.Members) > 1 {
			return errors.FailedPrecondition("the guild master cannot leave while other members remain")
		}
		if isMaster {
			if err := o.requireNoOpenBattle(ctx, tx, history.Battles); err != nil {
				return err
			}
		}

		acct.GuildID = ""
		if err := accts.Save(acct); err != nil {
			return err
		}

		g.RemoveMember(input.AccountID)
		out.Guild = g
		if isMaster {
			out.Disbanded = true
			repo.Delete(g)
			return nil
		}
		return repo.Save(g)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to leave guild %s", input.GuildID)
	}

	if out.Disbanded {
		slog.InfoContext(ctx, "guild disbanded", "guild_id", input.GuildID)
	}
	notify.Publish(ctx, o.emitter, notify.EventGuildUpdate, out.Guild)
	return out, nil
}

// requireNoOpenBattle refuses to disband a guild with a pending or running
// battle. Each battle is re-read inside tx so a concurrent accept or decision
// retries the leave.
func (o *orchestrator) requireNoOpenBattle(ctx context.Context, tx store.Tx, battles []*entities.GuildBattle) error {
	repo := o.battles.Tx(tx)
	for _, b := range battles {
		if b.Status != entities.GuildBattleStatusPending && b.Status != entities.GuildBattleStatusInProgress {
			continue
		}
		current, err := repo.Get(ctx, b.ID)
		if err != nil {
			return err
		}
		if current.Status == entities.GuildBattleStatusPending || current.Status == entities.GuildBattleStatusInProgress {
			return errors.FailedPrecondition("the guild cannot disband during a guild battle").
				WithMeta("battle_id", current.ID)
		}
	}
	return nil
}

func (o *orchestrator) GetGuild(ctx context.Context, input *GetGuildInput) (*GetGuildOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	out, err := o.guilds.Get(ctx, guilds.GetInput{ID: input.GuildID})
	if err != nil {
		return nil, err
	}
	return &GetGuildOutput{Guild: out.Guild}, nil
}

func (o *orchestrator) ListGuilds(ctx context.Context) (*ListGuildsOutput, error) {
	out, err := o.guilds.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListGuildsOutput{Guilds: out.Guilds}, nil
}

func (o *orchestrator) DepositToGuildBank(ctx context.Context, input *DepositInput) (*DepositOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("guild_id", input.GuildID, vb)
	errors.ValidateRequired("actor_id", input.ActorID, vb)
	errors.ValidatePositive("amount", int64(input.Amount), vb)
	if !input.Resource.Valid() {
		vb.InvalidField("resource", "unknown resource")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out := &DepositOutput{}
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		accts := o.accounts.Tx(tx)
		repo := o.guilds.Tx(tx)

		g, err := repo.Get(ctx, input.GuildID)
		if err != nil {
			return err
		}
		if !g.IsMember(input.ActorID) {
			return errors.PermissionDenied("only members can deposit")
		}
		acct, err := accts.Get(ctx, input.ActorID)
		if err != nil {
			return err
		}

		if err := ledger.Transfer(&acct.Currencies, &g.Bank, input.Resource, input.Amount); err != nil {
			return err
		}
		if err := accts.Save(acct); err != nil {
			return err
		}
		out.Guild, out.Account = g, acct
		return repo.Save(g)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to deposit to guild bank")
	}

	slog.DebugContext(ctx, "guild deposit",
		"guild_id", input.GuildID,
		"account_id", input.ActorID,
		"resource", input.Resource,
		"amount", input.Amount)

	notify.Publish(ctx, o.emitter, notify.EventGuildUpdate, out.Guild)
	notify.Publish(ctx, o.emitter, notify.EventPlayerUpdate, out.Account)
	return out, nil
}

func (o *orchestrator) DistributeFromGuildBank(ctx context.Context, input *DistributeInput) (*DistributeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("guild_id", input.GuildID, vb)
	errors.ValidateRequired("master_id", input.MasterID, vb)
	if len(input.Distributions) == 0 {
		vb.RequiredField("distributions")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out := &DistributeOutput{}
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		accts := o.accounts.Tx(tx)
		repo := o.guilds.Tx(tx)

		g, err := repo.Get(ctx, input.GuildID)
		if err != nil {
			return err
		}
		if g.MasterID != input.MasterID {
			return errors.PermissionDenied("only the guild master can distribute")
		}

		recipients := map[string]*entities.Account{}
		out.Recipients = out.Recipients[:0]
		for _, line := range input.Distributions {
			if _, ok := recipients[line.AccountID]; ok {
				continue
			}
			if !g.IsMember(line.AccountID) {
				return errors.InvalidArgumentf("%s is not a member of this guild", line.AccountID)
			}
			acct, err := accts.Get(ctx, line.AccountID)
			if err != nil {
				return err
			}
			recipients[line.AccountID] = acct
			out.Recipients = append(out.Recipients, acct)
		}

		if err := ledger.Distribute(&g.Bank, recipients, input.Distributions); err != nil {
			return err
		}
		for _, acct := range out.Recipients {
			if err := accts.Save(acct); err != nil {
				return err
			}
		}
		out.Guild = g
		return repo.Save(g)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to distribute from guild bank")
	}

	notify.Publish(ctx, o.emitter, notify.EventGuildUpdate, out.Guild)
	for _, acct := range out.Recipients {
		notify.Publish(ctx, o.emitter, notify.EventPlayerUpdate, acct)
	}
	return out, nil
}

func (o *orchestrator) LevelUpGuild(ctx context.Context, input *LevelUpInput) (*LevelUpOutput, error) {
	if input == nil || input.GuildID == "" || input.MasterID == "" {
		return nil, errors.InvalidArgument("guild ID and master ID are required")
	}

	out := &LevelUpOutput{}
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		repo := o.guilds.Tx(tx)
		g, err := repo.Get(ctx, input.GuildID)
		if err != nil {
			return err
		}
		if g.MasterID != input.MasterID {
			return errors.PermissionDenied("only the guild master can level up the guild")
		}
		if g.Level >= entities.GuildMaxLevel {
			return errors.FailedPreconditionf("guild is already at level %d", entities.GuildMaxLevel)
		}

		requiredFloor := g.Level * LevelUpFloorsPerLevel
		if g.Dungeon.Floor < requiredFloor {
			return errors.FailedPreconditionf("dungeon floor %d required", requiredFloor).
				WithMeta("required_floor", int64(requiredFloor)).
				WithMeta("floor", int64(g.Dungeon.Floor))
		}

		cost := entities.Num(g.Level) * LevelUpGoldPerLevel
		if err := ledger.Charge(&g.Bank, entities.ResourceGold, cost); err != nil {
			return err
		}
		g.Level++
		out.Guild, out.Cost = g, cost
		return repo.Save(g)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to level up guild")
	}

	slog.InfoContext(ctx, "guild leveled up", "guild_id", out.Guild.ID, "level", out.Guild.Level)
	notify.Publish(ctx, o.emitter, notify.EventGuildUpdate, out.Guild)
	return out, nil
}

func (o *orchestrator) FightGuildDungeon(ctx context.Context, input *FightDungeonInput) (*FightDungeonOutput, error) {
	if input == nil || input.GuildID == "" || input.ActorID == "" {
		return nil, errors.InvalidArgument("guild ID and actor ID are required")
	}

	var out *FightDungeonOutput
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		accts := o.accounts.Tx(tx)
		repo := o.guilds.Tx(tx)

		g, err := repo.Get(ctx, input.GuildID)
		if err != nil {
			return err
		}
		if !g.IsMember(input.ActorID) {
			return errors.PermissionDenied("only members can fight the guild dungeon")
		}

		online, err := presence.FilterOnline(ctx, o.presence, g.Members)
		if err != nil {
			return err
		}
		if len(online) == 0 {
			return errors.FailedPrecondition("no guild members are online")
		}

		party := dungeon.Party{Members: make([]*entities.Account, 0, len(online))}
		for _, id := range online {
			acct, err := accts.Get(ctx, id)
			if err != nil {
				return err
			}
			party.Members = append(party.Members, acct)
		}

		progress := clampProgress(g.Dungeon)
		outcome := dungeon.Resolve(party, progress.Floor, progress.Level, o.random)
		out = &FightDungeonOutput{
			Victory:         outcome.Victory,
			TooWeak:         outcome.TooWeak,
			Message:         outcome.Message,
			Boss:            outcome.NPC.Boss,
			DemonLord:       outcome.NPC.DemonLord,
			Floor:           progress.Floor,
			Level:           progress.Level,
			NewFloor:        progress.Floor,
			NewLevel:        progress.Level,
			PlayerPower:     outcome.PlayerPower,
			NpcPower:        outcome.NpcPower,
			AffinityApplied: outcome.AffinityApplied,
			NpcImmunities:   outcome.NPC.Immunities,
			OnlineMembers:   online,
			Guild:           g,
		}
		if !outcome.Victory {
			return nil
		}

		out.Rewards = dungeon.Rewards(progress.Floor, progress.Level, g.Level)
		g.Bank.Credit(out.Rewards)
		g.Dungeon = dungeon.Advance(progress)
		out.NewFloor = g.Dungeon.Floor
		out.NewLevel = g.Dungeon.Level
		return repo.Save(g)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to fight guild dungeon")
	}

	slog.DebugContext(ctx, "guild dungeon resolved",
		"guild_id", input.GuildID,
		"floor", out.Floor,
		"level", out.Level,
		"online", len(out.OnlineMembers),
		"victory", out.Victory,
		"too_weak", out.TooWeak)

	if out.Victory {
		notify.Publish(ctx, o.emitter, notify.EventGuildUpdate, out.Guild)
	}
	return out, nil
}

func validateMembership(input *MembershipInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("guild_id", input.GuildID, vb)
	errors.ValidateRequired("account_id", input.AccountID, vb)
	return vb.Build()
}

func clampProgress(p entities.DungeonProgress) entities.DungeonProgress {
	p.Floor = max(dungeon.MinFloor, min(p.Floor, dungeon.MaxFloor))
	p.Level = max(dungeon.MinLevel, min(p.Level, dungeon.MaxLevel))
	return p
}
