package tournament_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/engine/tournament"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

type TournamentTestSuite struct {
	suite.Suite
	battle *entities.GuildBattle
	now    time.Time
}

func TestTournamentSuite(t *testing.T) {
	suite.Run(t, new(TournamentTestSuite))
}

func (s *TournamentTestSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.battle = &entities.GuildBattle{
		ID:                "gb_1",
		ChallengerGuildID: "guild_a",
		ChallengedGuildID: "guild_b",
		ChallengerRoster:  []string{"a1", "a2", "a3"},
		ChallengedRoster:  []string{"b1", "b2"},
	}
	tournament.Start(s.battle)
}

func (s *TournamentTestSuite) TestWinnerStaysLoserAdvances() {
	_, err := tournament.RecordWinner(s.battle, "a1", s.now)
	s.Require().NoError(err)

	s.Equal(1, s.battle.ChallengerScore)
	s.Equal(0, s.battle.ChallengerIndex)
	s.Equal(1, s.battle.ChallengedIndex)
	s.Equal(2, s.battle.CurrentRound)

	challenger, challenged := s.battle.CurrentFighters()
	s.Equal("a1", challenger)
	s.Equal("b2", challenged)
}

func (s *TournamentTestSuite) TestScoresSumToDecisionsAndIndexCountsLosses() {
	decisions := []string{"b1", "a2", "b2"}
	for _, winner := range decisions {
		_, err := tournament.RecordWinner(s.battle, winner, s.now)
		s.Require().NoError(err)
	}

	s.Equal(len(decisions), s.battle.ChallengerScore+s.battle.ChallengedScore)
	// challenger lost with a1 and a2
	s.Equal(2, s.battle.ChallengerIndex)
	s.Equal(1, s.battle.ChallengedIndex)
	s.Equal(entities.GuildBattleStatusInProgress, s.battle.Status)
	s.Len(s.battle.Rounds, 3)
}

func (s *TournamentTestSuite) TestCompletesWhenRosterExhausted() {
	_, err := tournament.RecordWinner(s.battle, "a1", s.now)
	s.Require().NoError(err)
	result, err := tournament.RecordWinner(s.battle, "a1", s.now)
	s.Require().NoError(err)

	s.True(result.Completed)
	s.Equal("guild_a", result.WinnerGuildID)
	s.Equal(entities.GuildBattleStatusCompleted, s.battle.Status)
	s.Require().NotNil(s.battle.CompletedAt)
	s.Equal(s.now, *s.battle.CompletedAt)
}

func (s *TournamentTestSuite) TestDrawHasNoWinner() {
	s.battle.ChallengedRoster = []string{"b1"}

	_, err := tournament.RecordWinner(s.battle, "b1", s.now)
	s.Require().NoError(err)
	result, err := tournament.RecordWinner(s.battle, "a2", s.now)
	s.Require().NoError(err)

	s.True(result.Completed)
	s.True(result.Draw)
	s.Empty(result.WinnerGuildID)
	s.Equal(1, s.battle.ChallengerScore)
	s.Equal(1, s.battle.ChallengedScore)
	s.True(s.battle.Draw)
}

func (s *TournamentTestSuite) TestRejectsFighterNotAtCursor() {
	_, err := tournament.RecordWinner(s.battle, "a2", s.now)
	s.Require().Error(err)
	s.True(errors.IsPermissionDenied(err))
	s.Equal(0, s.battle.ChallengerScore)
	s.Equal(1, s.battle.CurrentRound)
	s.Empty(s.battle.Rounds)
}

func (s *TournamentTestSuite) TestRejectsWhenNotInProgress() {
	s.battle.Status = entities.GuildBattleStatusPending
	_, err := tournament.RecordWinner(s.battle, "a1", s.now)
	s.True(errors.IsFailedPrecondition(err))

	s.battle.Status = entities.GuildBattleStatusCompleted
	_, err = tournament.RecordWinner(s.battle, "a1", s.now)
	s.True(errors.IsFailedPrecondition(err))
}
