// Package guildbattle runs guild tournaments from challenge to adjudicated result
package guildbattle

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-arena/internal/engine/power"
	"github.com/KirkDiggler/rpg-arena/internal/engine/tournament"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/accounts"
	guildbattles "github.com/KirkDiggler/rpg-arena/internal/repositories/guild_battles"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/guilds"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
	"github.com/KirkDiggler/rpg-arena/internal/services/leaderboard"
	"github.com/KirkDiggler/rpg-arena/internal/services/notify"
)

// Service defines the interface for guild battle operations
type Service interface {
	ChallengeGuild(ctx context.Context, input *ChallengeGuildInput) (*BattleOutput, error)
	AcceptGuildBattle(ctx context.Context, input *AcceptInput) (*BattleOutput, error)
	DeclineGuildBattle(ctx context.Context, input *DeclineInput) (*BattleOutput, error)

	// SetRoundWinner records an admin's decision for the current round
	SetRoundWinner(ctx context.Context, input *SetRoundWinnerInput) (*SetRoundWinnerOutput, error)

	GetGuildBattle(ctx context.Context, input *GetGuildBattleInput) (*GetGuildBattleOutput, error)
	ListGuildBattles(ctx context.Context, input *ListGuildBattlesInput) (*ListGuildBattlesOutput, error)
}

// Config holds the dependencies for the guild battle orchestrator
type Config struct {
	Store        store.Store
	Accounts     accounts.Repository
	Guilds       guilds.Repository
	GuildBattles guildbattles.Repository
	Leaderboard  leaderboard.Service
	IDGenerator  idgen.Generator
	Clock        clock.Clock
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
	if c.Leaderboard == nil {
		vb.RequiredField("Leaderboard")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	store       store.Store
	accounts    accounts.Repository
	guilds      guilds.Repository
	battles     guildbattles.Repository
	leaderboard leaderboard.Service
	idGen       idgen.Generator
	clock       clock.Clock
	emitter     notify.Emitter
}

// NewOrchestrator creates a new guild battle orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		store:       cfg.Store,
		accounts:    cfg.Accounts,
		guilds:      cfg.Guilds,
		battles:     cfg.GuildBattles,
		leaderboard: cfg.Leaderboard,
		idGen:       cfg.IDGenerator,
		clock:       cfg.Clock,
		emitter:     cfg.Emitter,
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.emitter == nil {
		o.emitter = notify.Discard{}
	}
	return o, nil
}

func (o *orchestrator) ChallengeGuild(ctx context.Context, input *ChallengeGuildInput) (*BattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("challenger_guild_id", input.ChallengerGuildID, vb)
	errors.ValidateRequired("challenged_guild_id", input.ChallengedGuildID, vb)
	errors.ValidateRequired("master_id", input.MasterID, vb)
	if input.ChallengerGuildID != "" && input.ChallengerGuildID == input.ChallengedGuildID {
		vb.InvalidField("challenged_guild_id", "a guild cannot challenge itself")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	battle := &entities.GuildBattle{
		ID:                o.idGen.Generate(),
		ChallengerGuildID: input.ChallengerGuildID,
		ChallengedGuildID: input.ChallengedGuildID,
		ChallengerRoster:  input.Roster,
		ChallengedRoster:  []string{},
		Status:            entities.GuildBattleStatusPending,
	}

	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		repo := o.guilds.Tx(tx)
		challenger, err := repo.Get(ctx, input.ChallengerGuildID)
		if err != nil {
			return err
		}
		if challenger.MasterID != input.MasterID {
			return errors.PermissionDenied("only the guild master can issue a guild battle")
		}
		if _, err := repo.Get(ctx, input.ChallengedGuildID); err != nil {
			return err
		}
		if err := validateRoster(challenger, input.Roster); err != nil {
			return err
		}
		return o.battles.Tx(tx).Create(battle)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create guild battle")
	}

	notify.Publish(ctx, o.emitter, notify.EventGuildBattleUpdate, battle)
	return &BattleOutput{Battle: battle}, nil
}

func (o *orchestrator) AcceptGuildBattle(ctx context.Context, input *AcceptInput) (*BattleOutput, error) {
	if input == nil || input.BattleID == "" || input.MasterID == "" {
		return nil, errors.InvalidArgument("battle ID and master ID are required")
	}

	return o.respond(ctx, input.BattleID, input.MasterID, func(challenged *entities.Guild, b *entities.GuildBattle) error {
		if err := validateRoster(challenged, input.Roster); err != nil {
			return err
		}
		b.ChallengedRoster = input.Roster
		tournament.Start(b)
		return nil
	})
}

func (o *orchestrator) DeclineGuildBattle(ctx context.Context, input *DeclineInput) (*BattleOutput, error) {
	if input == nil || input.BattleID == "" || input.MasterID == "" {
		return nil, errors.InvalidArgument("battle ID and master ID are required")
	}

	return o.respond(ctx, input.BattleID, input.MasterID, func(_ *entities.Guild, b *entities.GuildBattle) error {
		b.Status = entities.GuildBattleStatusDeclined
		return nil
	})
}

// respond applies the challenged master's answer to a pending battle
func (o *orchestrator) respond(ctx context.Context, battleID, masterID string, apply func(*entities.Guild, *entities.GuildBattle) error) (*BattleOutput, error) {
	var battle *entities.GuildBattle
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		repo := o.battles.Tx(tx)
		var err error
		battle, err = repo.Get(ctx, battleID)
		if err != nil {
			return err
		}
		if battle.Status != entities.GuildBattleStatusPending {
			return errors.FailedPreconditionf("guild battle is %s", battle.Status)
		}
		challenged, err := o.guilds.Tx(tx).Get(ctx, battle.ChallengedGuildID)
		if err != nil {
			return err
		}
		if challenged.MasterID != masterID {
			return errors.PermissionDenied("only the challenged guild master can respond")
		}
		if err := apply(challenged, battle); err != nil {
			return err
		}
		return repo.Save(battle)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to respond to guild battle %s", battleID)
	}

	notify.Publish(ctx, o.emitter, notify.EventGuildBattleUpdate, battle)
	return &BattleOutput{Battle: battle}, nil
}

func (o *orchestrator) SetRoundWinner(ctx context.Context, input *SetRoundWinnerInput) (*SetRoundWinnerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("battle_id", input.BattleID, vb)
	errors.ValidateRequired("admin_id", input.AdminID, vb)
	errors.ValidateRequired("winner_actor_id", input.WinnerActorID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out := &SetRoundWinnerOutput{}
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		admin, err := o.accounts.Tx(tx).Get(ctx, input.AdminID)
		if err != nil {
			return err
		}
		if !admin.IsAdmin() {
			return errors.PermissionDenied("only admins can decide guild battle rounds")
		}

		repo := o.battles.Tx(tx)
		battle, err := repo.Get(ctx, input.BattleID)
		if err != nil {
			return err
		}

		result, err := tournament.RecordWinner(battle, input.WinnerActorID, o.clock.Now())
		if err != nil {
			return err
		}
		out.Battle, out.Completed, out.Draw = battle, result.Completed, result.Draw

		if result.WinnerGuildID != "" {
			guildRepo := o.guilds.Tx(tx)
			winner, err := guildRepo.Get(ctx, result.WinnerGuildID)
			switch {
			case errors.IsNotFound(err):
				// disbanded since the battle began; the battle still completes
				slog.WarnContext(ctx, "winning guild no longer exists",
					"battle_id", battle.ID,
					"guild_id", result.WinnerGuildID)
			case err != nil:
				return err
			default:
				winner.BattleWins = entities.AddCapped(winner.BattleWins, 1)
				if err := guildRepo.Save(winner); err != nil {
					return err
				}
			}
		}
		return repo.Save(battle)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to set round winner for %s", input.BattleID)
	}

	notify.Publish(ctx, o.emitter, notify.EventGuildBattleUpdate, out.Battle)
	if !out.Completed {
		return out, nil
	}

	if _, err := o.leaderboard.Refresh(ctx); err != nil {
		slog.WarnContext(ctx, "failed to refresh guild leaderboard",
			"battle_id", out.Battle.ID,
			"error", err)
	}

	slog.InfoContext(ctx, "guild battle completed",
		"battle_id", out.Battle.ID,
		"winner_guild_id", out.Battle.WinnerGuildID,
		"draw", out.Draw)

	notify.Publish(ctx, o.emitter, notify.EventGuildBattleComplete, out.Battle)
	return out, nil
}

func (o *orchestrator) GetGuildBattle(ctx context.Context, input *GetGuildBattleInput) (*GetGuildBattleOutput, error) {
	if input == nil || input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	got, err := o.battles.Get(ctx, guildbattles.GetInput{ID: input.BattleID})
	if err != nil {
		return nil, err
	}

	out := &GetGuildBattleOutput{Battle: got.Battle}
	out.ChallengerFighters, err = o.fighters(ctx, got.Battle.ChallengerRoster)
	if err != nil {
		return nil, err
	}
	out.ChallengedFighters, err = o.fighters(ctx, got.Battle.ChallengedRoster)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (o *orchestrator) ListGuildBattles(ctx context.Context, input *ListGuildBattlesInput) (*ListGuildBattlesOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	out, err := o.battles.ListByGuild(ctx, guildbattles.ListByGuildInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}
	return &ListGuildBattlesOutput{Battles: out.Battles}, nil
}

// fighters resolves each roster entry's strength. Deleted accounts show as
// zero strength rather than failing the read.
func (o *orchestrator) fighters(ctx context.Context, roster []string) ([]Fighter, error) {
	out := make([]Fighter, 0, len(roster))
	for _, id := range roster {
		f := Fighter{AccountID: id}
		got, err := o.accounts.Get(ctx, accounts.GetInput{ID: id})
		switch {
		case err == nil:
			f.Name = got.Account.Name
			f.Strength = power.Strength(got.Account)
		case errors.IsNotFound(err):
		default:
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func validateRoster(g *entities.Guild, roster []string) error {
	if len(roster) == 0 || len(roster) > entities.MaxRosterSize {
		return errors.InvalidArgumentf("roster must have 1 to %d fighters", entities.MaxRosterSize)
	}
	seen := make(map[string]bool, len(roster))
	for _, id := range roster {
		if seen[id] {
			return errors.InvalidArgumentf("fighter %s is listed twice", id)
		}
		seen[id] = true
		if !g.IsMember(id) {
			return errors.InvalidArgumentf("fighter %s is not a member of %s", id, g.Name)
		}
	}
	return nil
}
