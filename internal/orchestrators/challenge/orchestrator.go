// Package challenge runs the PvP challenge lifecycle and its turn-based combat
package challenge

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/engine/power"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/accounts"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/challenges"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
	"github.com/KirkDiggler/rpg-arena/internal/services/notify"
)

// Service defines the interface for challenge operations
type Service interface {
	CreateChallenge(ctx context.Context, input *CreateChallengeInput) (*CreateChallengeOutput, error)
	AcceptChallenge(ctx context.Context, input *RespondInput) (*RespondOutput, error)
	DeclineChallenge(ctx context.Context, input *RespondInput) (*RespondOutput, error)
	CancelChallenge(ctx context.Context, input *RespondInput) (*RespondOutput, error)
	GetChallenge(ctx context.Context, input *GetChallengeInput) (*GetChallengeOutput, error)
	ListChallenges(ctx context.Context, input *ListChallengesInput) (*ListChallengesOutput, error)

	// Combat
	GetCombatState(ctx context.Context, input *GetCombatStateInput) (*GetCombatStateOutput, error)
	SubmitCombatAction(ctx context.Context, input *SubmitCombatActionInput) (*SubmitCombatActionOutput, error)
	OverrideNPCAction(ctx context.Context, input *OverrideNPCActionInput) (*SubmitCombatActionOutput, error)
}

// Config holds the dependencies for the challenge orchestrator
type Config struct {
	Store       store.Store
	Accounts    accounts.Repository
	Challenges  challenges.Repository
	IDGenerator idgen.Generator
	Random      rng.Source
	Clock       clock.Clock
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
	if c.Challenges == nil {
		vb.RequiredField("Challenges")
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
	store      store.Store
	accounts   accounts.Repository
	challenges challenges.Repository
	idGen      idgen.Generator
	random     rng.Source
	clock      clock.Clock
	emitter    notify.Emitter
}

// NewOrchestrator creates a new challenge orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		store:      cfg.Store,
		accounts:   cfg.Accounts,
		challenges: cfg.Challenges,
		idGen:      cfg.IDGenerator,
		random:     cfg.Random,
		clock:      cfg.Clock,
		emitter:    cfg.Emitter,
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.emitter == nil {
		o.emitter = notify.Discard{}
	}
	return o, nil
}

func (o *orchestrator) CreateChallenge(ctx context.Context, input *CreateChallengeInput) (*CreateChallengeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("challenger_id", input.ChallengerID, vb)
	errors.ValidateRequired("challenged_id", input.ChallengedID, vb)
	if input.ChallengerID != "" && input.ChallengerID == input.ChallengedID {
		vb.InvalidField("challenged_id", "cannot challenge yourself")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	ch := &entities.Challenge{
		ID:           o.idGen.Generate(),
		ChallengerID: input.ChallengerID,
		ChallengedID: input.ChallengedID,
		Status:       entities.ChallengeStatusPending,
	}

	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		accts := o.accounts.Tx(tx)
		if _, err := accts.Get(ctx, input.ChallengerID); err != nil {
			return err
		}
		if _, err := accts.Get(ctx, input.ChallengedID); err != nil {
			return err
		}
		return o.challenges.Tx(tx).Create(ch)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create challenge")
	}

	notify.Publish(ctx, o.emitter, notify.EventChallengeUpdate, ch)
	return &CreateChallengeOutput{Challenge: ch}, nil
}

func (o *orchestrator) AcceptChallenge(ctx context.Context, input *RespondInput) (*RespondOutput, error) {
	return o.transition(ctx, input, func(tx store.Tx, ch *entities.Challenge) error {
		if input.ActorID != ch.ChallengedID {
			return errors.PermissionDenied("only the challenged account can accept")
		}
		ch.Status = entities.ChallengeStatusAccepted
		return o.ensureCombat(ctx, tx, ch)
	})
}

func (o *orchestrator) DeclineChallenge(ctx context.Context, input *RespondInput) (*RespondOutput, error) {
	return o.transition(ctx, input, func(_ store.Tx, ch *entities.Challenge) error {
		if input.ActorID != ch.ChallengedID {
			return errors.PermissionDenied("only the challenged account can decline")
		}
		ch.Status = entities.ChallengeStatusDeclined
		return nil
	})
}

func (o *orchestrator) CancelChallenge(ctx context.Context, input *RespondInput) (*RespondOutput, error) {
	return o.transition(ctx, input, func(_ store.Tx, ch *entities.Challenge) error {
		if input.ActorID != ch.ChallengerID {
			return errors.PermissionDenied("only the challenger can cancel")
		}
		ch.Status = entities.ChallengeStatusCancelled
		return nil
	})
}

// transition applies a move out of pending
func (o *orchestrator) transition(ctx context.Context, input *RespondInput, apply func(store.Tx, *entities.Challenge) error) (*RespondOutput, error) {
	if input == nil || input.ChallengeID == "" || input.ActorID == "" {
		return nil, errors.InvalidArgument("challenge ID and actor ID are required")
	}

	var ch *entities.Challenge
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		repo := o.challenges.Tx(tx)
		var err error
		ch, err = repo.Get(ctx, input.ChallengeID)
		if err != nil {
			return err
		}
		if !ch.IsParticipant(input.ActorID) {
			return errors.PermissionDenied("not a participant in this challenge")
		}
		if ch.Status != entities.ChallengeStatusPending {
			return errors.FailedPreconditionf("challenge is %s", ch.Status)
		}
		if err := apply(tx, ch); err != nil {
			return err
		}
		return repo.Save(ch)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update challenge %s", input.ChallengeID)
	}

	slog.DebugContext(ctx, "challenge transitioned",
		"challenge_id", ch.ID,
		"status", ch.Status)

	notify.Publish(ctx, o.emitter, notify.EventChallengeUpdate, ch)
	return &RespondOutput{Challenge: ch}, nil
}

func (o *orchestrator) GetChallenge(ctx context.Context, input *GetChallengeInput) (*GetChallengeOutput, error) {
	if input == nil || input.ChallengeID == "" {
		return nil, errors.InvalidArgument("challenge ID is required")
	}
	out, err := o.challenges.Get(ctx, challenges.GetInput{ID: input.ChallengeID})
	if err != nil {
		return nil, err
	}
	return &GetChallengeOutput{Challenge: out.Challenge}, nil
}

func (o *orchestrator) ListChallenges(ctx context.Context, input *ListChallengesInput) (*ListChallengesOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}
	out, err := o.challenges.ListByAccount(ctx, challenges.ListByAccountInput{AccountID: input.AccountID})
	if err != nil {
		return nil, err
	}
	return &ListChallengesOutput{Challenges: out.Challenges}, nil
}

func (o *orchestrator) GetCombatState(ctx context.Context, input *GetCombatStateInput) (*GetCombatStateOutput, error) {
	if input == nil || input.ChallengeID == "" {
		return nil, errors.InvalidArgument("challenge ID is required")
	}

	var ch *entities.Challenge
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		repo := o.challenges.Tx(tx)
		var err error
		ch, err = repo.Get(ctx, input.ChallengeID)
		if err != nil {
			return err
		}
		if input.ActorID != "" && !ch.IsParticipant(input.ActorID) {
			return errors.PermissionDenied("not a participant in this challenge")
		}
		if ch.Combat != nil {
			return nil
		}
		if ch.Status != entities.ChallengeStatusAccepted {
			return errors.FailedPreconditionf("challenge is %s", ch.Status)
		}
		if err := o.ensureCombat(ctx, tx, ch); err != nil {
			return err
		}
		return repo.Save(ch)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get combat state for %s", input.ChallengeID)
	}

	return &GetCombatStateOutput{Challenge: ch, State: ch.Combat}, nil
}

func (o *orchestrator) SubmitCombatAction(ctx context.Context, input *SubmitCombatActionInput) (*SubmitCombatActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("challenge_id", input.ChallengeID, vb)
	errors.ValidateRequired("actor_id", input.ActorID, vb)
	if !input.Action.Valid() {
		vb.InvalidField("action", "must be attack, defend, dodge or trick")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	return o.act(ctx, input.ChallengeID, func(tx store.Tx, ch *entities.Challenge) error {
		if !ch.IsParticipant(input.ActorID) {
			return errors.PermissionDenied("not a participant in this challenge")
		}
		if ch.Status != entities.ChallengeStatusAccepted {
			return errors.FailedPreconditionf("challenge is %s", ch.Status)
		}
		if err := o.ensureCombat(ctx, tx, ch); err != nil {
			return err
		}

		state := ch.Combat
		side, isChallenger := state.Side(input.ActorID)
		if side.Action != entities.ActionNone {
			return errors.FailedPreconditionf("action already submitted for round %d", state.Round)
		}
		side.Action = input.Action

		opponent := &state.Challenged
		if !isChallenger {
			opponent = &state.Challenger
		}
		if opponent.IsAutomated && opponent.Action == entities.ActionNone {
			opponent.Action = combat.ChooseAction(opponent.Stats, o.random)
		}
		return nil
	})
}

func (o *orchestrator) OverrideNPCAction(ctx context.Context, input *OverrideNPCActionInput) (*SubmitCombatActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("admin_id", input.AdminID, vb)
	errors.ValidateRequired("challenge_id", input.ChallengeID, vb)
	errors.ValidateRequired("npc_id", input.NpcID, vb)
	if !input.Action.Valid() {
		vb.InvalidField("action", "must be attack, defend, dodge or trick")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	return o.act(ctx, input.ChallengeID, func(tx store.Tx, ch *entities.Challenge) error {
		admin, err := o.accounts.Tx(tx).Get(ctx, input.AdminID)
		if err != nil {
			return err
		}
		if !admin.IsAdmin() {
			return errors.PermissionDenied("only admins can override npc actions")
		}
		if ch.Status != entities.ChallengeStatusAccepted {
			return errors.FailedPreconditionf("challenge is %s", ch.Status)
		}
		if err := o.ensureCombat(ctx, tx, ch); err != nil {
			return err
		}

		side, _ := ch.Combat.Side(input.NpcID)
		if side == nil {
			return errors.InvalidArgument("npc is not part of this challenge")
		}
		if !side.IsAutomated {
			return errors.FailedPrecondition("only automated combatants can be overridden")
		}
		side.Action = input.Action
		return nil
	})
}

// act runs apply, resolves the round once both actions are in and records
// the result on both accounts when combat ends
func (o *orchestrator) act(ctx context.Context, challengeID string, apply func(store.Tx, *entities.Challenge) error) (*SubmitCombatActionOutput, error) {
	var out *SubmitCombatActionOutput
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		repo := o.challenges.Tx(tx)
		ch, err := repo.Get(ctx, challengeID)
		if err != nil {
			return err
		}
		if err := apply(tx, ch); err != nil {
			return err
		}

		out = &SubmitCombatActionOutput{Challenge: ch, State: ch.Combat}
		if entry, resolved := combat.ResolveRound(ch.Combat, o.random); resolved {
			out.Resolved = &entry
		}

		if ch.Combat.Finished {
			updated, err := o.complete(ctx, tx, ch)
			if err != nil {
				return err
			}
			out.Accounts = updated
			out.Finished = true
			out.WinnerID = ch.WinnerID
			out.Draw = ch.Combat.Draw
		}
		return repo.Save(ch)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to apply combat action to %s", challengeID)
	}

	o.publishRound(ctx, out)
	return out, nil
}

// complete closes the challenge and books the win and loss. A draw changes
// neither counter.
func (o *orchestrator) complete(ctx context.Context, tx store.Tx, ch *entities.Challenge) ([]*entities.Account, error) {
	now := o.clock.Now()
	ch.Status = entities.ChallengeStatusCompleted
	ch.WinnerID = ch.Combat.WinnerID
	ch.CompletedAt = &now

	if ch.Combat.Draw {
		return nil, nil
	}

	accts := o.accounts.Tx(tx)
	loserID := ch.ChallengerID
	if ch.WinnerID == ch.ChallengerID {
		loserID = ch.ChallengedID
	}

	winner, err := accts.Get(ctx, ch.WinnerID)
	if err != nil {
		return nil, err
	}
	loser, err := accts.Get(ctx, loserID)
	if err != nil {
		return nil, err
	}
	winner.Wins = entities.AddCapped(winner.Wins, 1)
	loser.Losses = entities.AddCapped(loser.Losses, 1)

	if err := accts.Save(winner); err != nil {
		return nil, err
	}
	if err := accts.Save(loser); err != nil {
		return nil, err
	}
	return []*entities.Account{winner, loser}, nil
}

// ensureCombat builds the combat state from both accounts' combat stats the
// first time it is needed
func (o *orchestrator) ensureCombat(ctx context.Context, tx store.Tx, ch *entities.Challenge) error {
	if ch.Combat != nil {
		return nil
	}

	accts := o.accounts.Tx(tx)
	challenger, err := accts.Get(ctx, ch.ChallengerID)
	if err != nil {
		return err
	}
	challenged, err := accts.Get(ctx, ch.ChallengedID)
	if err != nil {
		return err
	}

	ch.Combat = combat.NewState(combatant(challenger), combatant(challenged))
	return nil
}

func combatant(acct *entities.Account) entities.Combatant {
	return entities.Combatant{
		ID:          acct.ID,
		Name:        acct.Name,
		Stats:       power.CombatStats(acct),
		IsAutomated: acct.IsAutomated,
	}
}

func (o *orchestrator) publishRound(ctx context.Context, out *SubmitCombatActionOutput) {
	notify.Publish(ctx, o.emitter, notify.EventChallengeUpdate, out.Challenge)
	if !out.Finished {
		return
	}

	ch := out.Challenge
	for _, id := range []string{ch.ChallengerID, ch.ChallengedID} {
		notify.Publish(ctx, o.emitter, notify.EventChallengeResult, ResultPayload{
			ChallengeID: ch.ID,
			AccountID:   id,
			WinnerID:    ch.WinnerID,
			Won:         ch.WinnerID == id,
			Draw:        out.Draw,
		})
	}
	for _, acct := range out.Accounts {
		notify.Publish(ctx, o.emitter, notify.EventPlayerUpdate, acct)
	}

	slog.InfoContext(ctx, "challenge completed",
		"challenge_id", ch.ID,
		"winner_id", ch.WinnerID,
		"draw", out.Draw,
		"rounds", len(ch.Combat.Log))
}
