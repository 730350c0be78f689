package guildbattle

import (
	"github.com/KirkDiggler/rpg-arena/internal/entities"
)

// ChallengeGuildInput defines the challenger master's request
type ChallengeGuildInput struct {
	ChallengerGuildID string
	ChallengedGuildID string
	MasterID          string
	Roster            []string
}

// AcceptInput defines the challenged master's acceptance with its roster
type AcceptInput struct {
	BattleID string
	MasterID string
	Roster   []string
}

// DeclineInput defines the challenged master's refusal
type DeclineInput struct {
	BattleID string
	MasterID string
}

// SetRoundWinnerInput defines the adjudicator's round decision
type SetRoundWinnerInput struct {
	BattleID      string
	AdminID       string
	WinnerActorID string
}

// BattleOutput carries a battle after any operation
type BattleOutput struct {
	Battle *entities.GuildBattle
}

// SetRoundWinnerOutput reports the battle after a decision
type SetRoundWinnerOutput struct {
	Battle    *entities.GuildBattle
	Completed bool
	Draw      bool
}

// GetGuildBattleInput defines the request for loading a battle
type GetGuildBattleInput struct {
	BattleID string
}

// Fighter is a roster entry with its displayed strength
type Fighter struct {
	AccountID string       `json:"accountId"`
	Name      string       `json:"name"`
	Strength  entities.Num `json:"strength"`
}

// GetGuildBattleOutput defines the response for loading a battle
type GetGuildBattleOutput struct {
	Battle             *entities.GuildBattle
	ChallengerFighters []Fighter
	ChallengedFighters []Fighter
}

// ListGuildBattlesInput defines the request for a guild's battles
type ListGuildBattlesInput struct {
	GuildID string
}

// ListGuildBattlesOutput defines the response for a guild's battles
type ListGuildBattlesOutput struct {
	Battles []*entities.GuildBattle
}
