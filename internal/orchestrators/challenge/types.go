package challenge

import (
	"github.com/KirkDiggler/rpg-arena/internal/entities"
)

// CreateChallengeInput defines the request for challenging another account
type CreateChallengeInput struct {
	ChallengerID string
	ChallengedID string
}

// CreateChallengeOutput defines the response for creating a challenge
type CreateChallengeOutput struct {
	Challenge *entities.Challenge
}

// RespondInput names a challenge and the actor acting on it. Used for
// accept, decline and cancel.
type RespondInput struct {
	ChallengeID string
	ActorID     string
}

// RespondOutput defines the response for a lifecycle transition
type RespondOutput struct {
	Challenge *entities.Challenge
}

// GetChallengeInput defines the request for loading a challenge
type GetChallengeInput struct {
	ChallengeID string
}

// GetChallengeOutput defines the response for loading a challenge
type GetChallengeOutput struct {
	Challenge *entities.Challenge
}

// ListChallengesInput defines the request for an account's challenges
type ListChallengesInput struct {
	AccountID string
}

// ListChallengesOutput defines the response for an account's challenges
type ListChallengesOutput struct {
	Challenges []*entities.Challenge
}

// GetCombatStateInput defines the request for a challenge's combat state
type GetCombatStateInput struct {
	ChallengeID string
	ActorID     string
}

// GetCombatStateOutput defines the response for a challenge's combat state
type GetCombatStateOutput struct {
	Challenge *entities.Challenge
	State     *entities.CombatState
}

// SubmitCombatActionInput defines the request for submitting a round action
type SubmitCombatActionInput struct {
	ChallengeID string
	ActorID     string
	Action      entities.Action
}

// SubmitCombatActionOutput reports the state after the action. Resolved is
// set when this submission completed the round.
type SubmitCombatActionOutput struct {
	Challenge *entities.Challenge
	State     *entities.CombatState
	Resolved  *entities.RoundLog
	Finished  bool
	WinnerID  string
	Draw      bool
	// Accounts are the winner and loser after their counters changed. A draw
	// leaves it empty.
	Accounts []*entities.Account
}

// OverrideNPCActionInput defines the admin request for setting an automated
// combatant's action
type OverrideNPCActionInput struct {
	AdminID     string
	ChallengeID string
	NpcID       string
	Action      entities.Action
}

// ResultPayload is the per-player challengeResult event body
type ResultPayload struct {
	ChallengeID string `json:"challengeId"`
	AccountID   string `json:"accountId"`
	WinnerID    string `json:"winnerId,omitempty"`
	Won         bool   `json:"won"`
	Draw        bool   `json:"draw"`
}
