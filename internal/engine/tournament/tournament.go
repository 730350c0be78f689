// Package tournament advances guild battles one adjudicated round at a time.
//
// The winner of a round stays at its cursor and scores; the loser's cursor
// moves to the next fighter. The battle ends when either roster runs out.
package tournament

import (
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Result reports what one decision did
type Result struct {
	Completed bool
	// WinnerGuildID is empty on a draw or while the battle continues
	WinnerGuildID string
	Draw          bool
}

// Start moves an accepted battle to in progress with both cursors at 0
func Start(b *entities.GuildBattle) {
	b.Status = entities.GuildBattleStatusInProgress
	b.ChallengerIndex = 0
	b.ChallengedIndex = 0
	b.ChallengerScore = 0
	b.ChallengedScore = 0
	b.CurrentRound = 1
}

// RecordWinner applies the round decision naming winnerID. winnerID must be
// one of the two fighters at the cursors.
func RecordWinner(b *entities.GuildBattle, winnerID string, now time.Time) (Result, error) {
	if b.Status != entities.GuildBattleStatusInProgress {
		return Result{}, errors.FailedPreconditionf("guild battle is %s", b.Status)
	}

	challenger, challenged := b.CurrentFighters()
	if challenger == "" || challenged == "" {
		return Result{}, errors.FailedPrecondition("guild battle has no fighters left")
	}

	switch winnerID {
	case challenger:
		b.ChallengerScore++
		b.ChallengedIndex++
	case challenged:
		b.ChallengedScore++
		b.ChallengerIndex++
	default:
		return Result{}, errors.PermissionDenied("winner is not fighting this round").
			WithMeta("winner_id", winnerID)
	}

	b.Rounds = append(b.Rounds, entities.BattleRound{
		Round:             b.CurrentRound,
		ChallengerFighter: challenger,
		ChallengedFighter: challenged,
		WinnerID:          winnerID,
		DecidedAt:         now,
	})
	b.CurrentRound++

	if b.ChallengerIndex < len(b.ChallengerRoster) && b.ChallengedIndex < len(b.ChallengedRoster) {
		return Result{}, nil
	}

	b.Status = entities.GuildBattleStatusCompleted
	completedAt := now
	b.CompletedAt = &completedAt

	switch {
	case b.ChallengerScore > b.ChallengedScore:
		b.WinnerGuildID = b.ChallengerGuildID
	case b.ChallengedScore > b.ChallengerScore:
		b.WinnerGuildID = b.ChallengedGuildID
	default:
		b.Draw = true
	}

	return Result{Completed: true, WinnerGuildID: b.WinnerGuildID, Draw: b.Draw}, nil
}
