package v1

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/challenge"
)

// CreateChallenge opens a PvP challenge
func (h *Handler) CreateChallenge(ctx context.Context, req *CreateChallengeRequest) (*ChallengeResponse, error) {
	out, err := h.challenges.CreateChallenge(ctx, &challenge.CreateChallengeInput{
		ChallengerID: req.ChallengerID,
		ChallengedID: req.ChallengedID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &ChallengeResponse{Challenge: out.Challenge}, nil
}

// AcceptChallenge accepts a pending challenge as the challenged account
func (h *Handler) AcceptChallenge(ctx context.Context, req *ChallengeActorRequest) (*ChallengeResponse, error) {
	return h.respond(ctx, req, h.challenges.AcceptChallenge)
}

// DeclineChallenge declines a pending challenge as the challenged account
func (h *Handler) DeclineChallenge(ctx context.Context, req *ChallengeActorRequest) (*ChallengeResponse, error) {
	return h.respond(ctx, req, h.challenges.DeclineChallenge)
}

// CancelChallenge withdraws a pending challenge as the challenger
func (h *Handler) CancelChallenge(ctx context.Context, req *ChallengeActorRequest) (*ChallengeResponse, error) {
	return h.respond(ctx, req, h.challenges.CancelChallenge)
}

func (h *Handler) respond(
	ctx context.Context,
	req *ChallengeActorRequest,
	call func(context.Context, *challenge.RespondInput) (*challenge.RespondOutput, error),
) (*ChallengeResponse, error) {
	out, err := call(ctx, &challenge.RespondInput{ChallengeID: req.ChallengeID, ActorID: req.ActorID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &ChallengeResponse{Challenge: out.Challenge}, nil
}

// GetChallenge returns one challenge
func (h *Handler) GetChallenge(ctx context.Context, req *ChallengeRequest) (*ChallengeResponse, error) {
	out, err := h.challenges.GetChallenge(ctx, &challenge.GetChallengeInput{ChallengeID: req.ChallengeID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &ChallengeResponse{Challenge: out.Challenge}, nil
}

// ListChallenges returns every challenge an account takes part in
func (h *Handler) ListChallenges(ctx context.Context, req *AccountRequest) (*ListChallengesResponse, error) {
	out, err := h.challenges.ListChallenges(ctx, &challenge.ListChallengesInput{AccountID: req.AccountID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &ListChallengesResponse{Challenges: out.Challenges}, nil
}

// GetCombatState returns the combat state, creating it on first access
func (h *Handler) GetCombatState(ctx context.Context, req *ChallengeActorRequest) (*CombatResponse, error) {
	out, err := h.challenges.GetCombatState(ctx, &challenge.GetCombatStateInput{
		ChallengeID: req.ChallengeID,
		ActorID:     req.ActorID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &CombatResponse{
		Challenge: out.Challenge,
		State:     out.State,
		Finished:  out.State != nil && out.State.Finished,
	}, nil
}

// SubmitCombatAction submits the caller's action for the current round
func (h *Handler) SubmitCombatAction(ctx context.Context, req *SubmitCombatActionRequest) (*CombatResponse, error) {
	out, err := h.challenges.SubmitCombatAction(ctx, &challenge.SubmitCombatActionInput{
		ChallengeID: req.ChallengeID,
		ActorID:     req.ActorID,
		Action:      req.Action,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return toCombatResponse(out), nil
}

// OverrideNPCAction sets an automated combatant's action
func (h *Handler) OverrideNPCAction(ctx context.Context, req *OverrideNPCActionRequest) (*CombatResponse, error) {
	out, err := h.challenges.OverrideNPCAction(ctx, &challenge.OverrideNPCActionInput{
		AdminID:     req.AdminID,
		ChallengeID: req.ChallengeID,
		NpcID:       req.NpcID,
		Action:      req.Action,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return toCombatResponse(out), nil
}

func toCombatResponse(out *challenge.SubmitCombatActionOutput) *CombatResponse {
	return &CombatResponse{
		Challenge: out.Challenge,
		State:     out.State,
		Resolved:  out.Resolved,
		Finished:  out.Finished,
		WinnerID:  out.WinnerID,
		Draw:      out.Draw,
	}
}
