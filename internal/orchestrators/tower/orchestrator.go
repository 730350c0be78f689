// Package tower runs NPC tower battles and applies their rewards
package tower

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-arena/internal/engine/ledger"
	"github.com/KirkDiggler/rpg-arena/internal/engine/power"
	ladder "github.com/KirkDiggler/rpg-arena/internal/engine/tower"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/accounts"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
	"github.com/KirkDiggler/rpg-arena/internal/services/notify"
)

// Service defines the interface for tower operations
type Service interface {
	// BattleNPC fights the NPC at the account's tower pointer. A loss is a
	// normal result, not an error.
	BattleNPC(ctx context.Context, input *BattleNPCInput) (*BattleNPCOutput, error)

	// AdvanceAutomated gives every automated account one tower attempt
	AdvanceAutomated(ctx context.Context, input *AdvanceAutomatedInput) (*AdvanceAutomatedOutput, error)
}

// Config holds the dependencies for the tower orchestrator
type Config struct {
	Store    store.Store
	Accounts accounts.Repository
	Random   rng.Source
	Emitter  notify.Emitter
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
	if c.Random == nil {
		vb.RequiredField("Random")
	}

	return vb.Build()
}

type orchestrator struct {
	store    store.Store
	accounts accounts.Repository
	random   rng.Source
	emitter  notify.Emitter
}

// NewOrchestrator creates a new tower orchestrator with the provided dependencies
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
		random:   cfg.Random,
		emitter:  emitter,
	}, nil
}

func (o *orchestrator) BattleNPC(ctx context.Context, input *BattleNPCInput) (*BattleNPCOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}

	var out *BattleNPCOutput
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		repo := o.accounts.Tx(tx)
		acct, err := repo.Get(ctx, input.AccountID)
		if err != nil {
			return err
		}

		progress := acct.Tower
		progress.Floor = max(ladder.MinFloor, min(progress.Floor, ladder.MaxFloor))
		progress.Level = max(ladder.MinLevel, min(progress.Level, ladder.MaxLevel))
		globalLevel := progress.GlobalLevel()

		if required := ladder.RequiredRank(globalLevel); !acct.Rank.AtLeast(required) {
			return errors.FailedPreconditionf("rank %s required for level %d", required, globalLevel).
				WithReason(errors.ReasonRankTooLow).
				WithMeta("required_rank", string(required)).
				WithMeta("rank", string(acct.Rank)).
				WithMeta("global_level", int64(globalLevel))
		}

		breakdown := power.Compute(acct)
		battle := ladder.Battle{
			Floor:        progress.Floor,
			Level:        progress.Level,
			PlayerPower:  breakdown.Total(),
			PetElemental: breakdown.PetElemental,
			Luck:         acct.Stats.Luck,
		}
		if pet := acct.EquippedPet(); pet != nil {
			battle.PetAffinities = pet.Affinities
		}

		outcome := ladder.Resolve(battle, o.random)
		out = &BattleNPCOutput{
			Won:                  outcome.Won,
			Boss:                 outcome.Boss,
			Floor:                progress.Floor,
			Level:                progress.Level,
			NewFloor:             acct.Tower.Floor,
			NewLevel:             acct.Tower.Level,
			GlobalLevel:          globalLevel,
			PetImmune:            outcome.PetImmune,
			NpcImmunities:        outcome.Immunities,
			NpcPower:             outcome.NpcPower,
			EffectiveNpcPower:    outcome.EffectiveNpcPower,
			PlayerPower:          outcome.PlayerPower,
			EffectivePlayerPower: outcome.EffectivePlayerPower,
			LuckBonus:            outcome.LuckBonus,
			Account:              acct,
		}
		if !outcome.Won {
			return nil
		}

		rewards := ladder.Rewards(progress.Floor, progress.Level)
		out.PetExpGranted = ledger.GrantPetExp(acct, rewards.PetExp)
		accountRewards := rewards
		accountRewards.PetExp = 0
		acct.Currencies.Credit(accountRewards)
		acct.Tower = ladder.Advance(progress)

		out.Rewards = rewards
		out.NewFloor = acct.Tower.Floor
		out.NewLevel = acct.Tower.Level
		return repo.Save(acct)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to battle tower npc")
	}

	slog.DebugContext(ctx, "tower battle resolved",
		"account_id", input.AccountID,
		"floor", out.Floor,
		"level", out.Level,
		"won", out.Won)

	if out.Won {
		notify.Publish(ctx, o.emitter, notify.EventPlayerUpdate, out.Account)
	}
	return out, nil
}

func (o *orchestrator) AdvanceAutomated(ctx context.Context, _ *AdvanceAutomatedInput) (*AdvanceAutomatedOutput, error) {
	list, err := o.accounts.List(ctx, accounts.ListInput{AutomatedOnly: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list automated accounts")
	}

	out := &AdvanceAutomatedOutput{}
	for _, acct := range list.Accounts {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		out.Attempted++
		result, err := o.BattleNPC(ctx, &BattleNPCInput{AccountID: acct.ID})
		switch {
		case err == nil:
			if result.Won {
				out.Won++
			}
		case errors.GetReason(err) == errors.ReasonRankTooLow:
			out.Blocked++
		default:
			slog.WarnContext(ctx, "automated tower battle failed",
				"account_id", acct.ID,
				"error", err)
		}
	}

	return out, nil
}

var _ Service = (*orchestrator)(nil)
