package entities

import "time"

// MaxRosterSize bounds a guild battle roster
const MaxRosterSize = 5

// GuildBattleStatus is a guild battle lifecycle state
type GuildBattleStatus string

// Guild battle statuses
const (
	GuildBattleStatusPending    GuildBattleStatus = "pending"
	GuildBattleStatusInProgress GuildBattleStatus = "in_progress"
	GuildBattleStatusCompleted  GuildBattleStatus = "completed"
	GuildBattleStatusDeclined   GuildBattleStatus = "declined"
)

// BattleRound records one adjudicated round
type BattleRound struct {
	Round             int       `json:"round"`
	ChallengerFighter string    `json:"challengerFighter"`
	ChallengedFighter string    `json:"challengedFighter"`
	WinnerID          string    `json:"winnerId"`
	DecidedAt         time.Time `json:"decidedAt"`
}

// GuildBattle is a tournament between two guild rosters
type GuildBattle struct {
	ID                string            `json:"id"`
	ChallengerGuildID string            `json:"challengerGuildId"`
	ChallengedGuildID string            `json:"challengedGuildId"`
	ChallengerRoster  []string          `json:"challengerRoster"`
	ChallengedRoster  []string          `json:"challengedRoster"`
	Status            GuildBattleStatus `json:"status"`
	ChallengerScore   int               `json:"challengerScore"`
	ChallengedScore   int               `json:"challengedScore"`
	ChallengerIndex   int               `json:"challengerIndex"`
	ChallengedIndex   int               `json:"challengedIndex"`
	CurrentRound      int               `json:"currentRound"`
	Rounds            []BattleRound     `json:"rounds,omitempty"`
	WinnerGuildID     string            `json:"winnerGuildId,omitempty"`
	Draw              bool              `json:"draw"`
	CreatedAt         time.Time         `json:"createdAt"`
	CompletedAt       *time.Time        `json:"completedAt,omitempty"`
}

// CurrentFighters returns the fighters at each side's cursor. The ids are
// empty once a side has run out.
func (b *GuildBattle) CurrentFighters() (challenger, challenged string) {
	if b.ChallengerIndex < len(b.ChallengerRoster) {
		challenger = b.ChallengerRoster[b.ChallengerIndex]
	}
	if b.ChallengedIndex < len(b.ChallengedRoster) {
		challenged = b.ChallengedRoster[b.ChallengedIndex]
	}
	return challenger, challenged
}
