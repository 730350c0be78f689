package entities

import "time"

// ChallengeStatus is a PvP challenge lifecycle state
type ChallengeStatus string

// Challenge statuses
const (
	ChallengeStatusPending   ChallengeStatus = "pending"
	ChallengeStatusAccepted  ChallengeStatus = "accepted"
	ChallengeStatusDeclined  ChallengeStatus = "declined"
	ChallengeStatusCancelled ChallengeStatus = "cancelled"
	ChallengeStatusCompleted ChallengeStatus = "completed"
)

// Action is a combat action submitted for a round
type Action string

// Actions
const (
	ActionNone   Action = ""
	ActionAttack Action = "attack"
	ActionDefend Action = "defend"
	ActionDodge  Action = "dodge"
	ActionTrick  Action = "trick"
)

// Actions lists the submittable actions
var Actions = []Action{ActionAttack, ActionDefend, ActionDodge, ActionTrick}

// Valid reports whether a is a submittable action
func (a Action) Valid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

// Combatant is one side of a combat state
type Combatant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	HP          Num    `json:"hp"`
	MaxHP       Num    `json:"maxHp"`
	Action      Action `json:"action,omitempty"`
	Stats       Stats  `json:"stats"`
	IsAutomated bool   `json:"isAutomated"`
}

// RoundLog summarizes one resolved round
type RoundLog struct {
	Round            int    `json:"round"`
	ChallengerAction Action `json:"challengerAction"`
	ChallengedAction Action `json:"challengedAction"`
	ChallengerDamage Num    `json:"challengerDamage"` // dealt by the challenger
	ChallengedDamage Num    `json:"challengedDamage"` // dealt by the challenged
	ChallengerCrit   bool   `json:"challengerCrit"`
	ChallengedCrit   bool   `json:"challengedCrit"`
	ChallengerDodged bool   `json:"challengerDodged"`
	ChallengedDodged bool   `json:"challengedDodged"`
	ChallengerHP     Num    `json:"challengerHp"`
	ChallengedHP     Num    `json:"challengedHp"`
}

// CombatState is the live round-by-round record of an accepted challenge
type CombatState struct {
	Round      int        `json:"round"`
	Challenger Combatant  `json:"challenger"`
	Challenged Combatant  `json:"challenged"`
	Log        []RoundLog `json:"log"`
	Finished   bool       `json:"finished"`
	WinnerID   string     `json:"winnerId,omitempty"`
	Draw       bool       `json:"draw"`
}

// Side returns the combatant for actorID and whether it is the challenger side
func (c *CombatState) Side(actorID string) (*Combatant, bool) {
	switch actorID {
	case c.Challenger.ID:
		return &c.Challenger, true
	case c.Challenged.ID:
		return &c.Challenged, false
	}
	return nil, false
}

// Challenge is a PvP challenge between two accounts
type Challenge struct {
	ID           string          `json:"id"`
	ChallengerID string          `json:"challengerId"`
	ChallengedID string          `json:"challengedId"`
	Status       ChallengeStatus `json:"status"`
	Combat       *CombatState    `json:"combat,omitempty"`
	WinnerID     string          `json:"winnerId,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	CompletedAt  *time.Time      `json:"completedAt,omitempty"`
}

// IsParticipant reports whether actorID is either side of the challenge
func (c *Challenge) IsParticipant(actorID string) bool {
	return actorID == c.ChallengerID || actorID == c.ChallengedID
}
