package challenges_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/challenges"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
)

type ChallengeRepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	store store.Store
	repo  challenges.Repository
	clock *clock.Manual
}

func TestChallengeRepositorySuite(t *testing.T) {
	suite.Run(t, new(ChallengeRepositoryTestSuite))
}

func (s *ChallengeRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewInMemory()
	s.clock = clock.NewManual(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	var err error
	s.repo, err = challenges.New(&challenges.Config{Store: s.store, Clock: s.clock})
	s.Require().NoError(err)
}

func (s *ChallengeRepositoryTestSuite) create(c *entities.Challenge) error {
	return s.store.Atomically(s.ctx, func(tx store.Tx) error {
		return s.repo.Tx(tx).Create(c)
	})
}

func (s *ChallengeRepositoryTestSuite) TestNewRequiresStore() {
	_, err := challenges.New(&challenges.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *ChallengeRepositoryTestSuite) TestCreateIndexesBothSides() {
	s.Require().NoError(s.create(&entities.Challenge{
		ID:           "challenge_1",
		ChallengerID: "alice",
		ChallengedID: "bob",
		Status:       entities.ChallengeStatusPending,
	}))
	s.Require().NoError(s.create(&entities.Challenge{
		ID:           "challenge_2",
		ChallengerID: "carol",
		ChallengedID: "alice",
		Status:       entities.ChallengeStatusPending,
	}))

	alice, err := s.repo.ListByAccount(s.ctx, challenges.ListByAccountInput{AccountID: "alice"})
	s.Require().NoError(err)
	s.Len(alice.Challenges, 2)

	bob, err := s.repo.ListByAccount(s.ctx, challenges.ListByAccountInput{AccountID: "bob"})
	s.Require().NoError(err)
	s.Require().Len(bob.Challenges, 1)
	s.Equal("challenge_1", bob.Challenges[0].ID)
	s.True(s.clock.Now().Equal(bob.Challenges[0].CreatedAt))
}

func (s *ChallengeRepositoryTestSuite) TestSaveStampsUpdatedAt() {
	s.Require().NoError(s.create(&entities.Challenge{
		ID:           "challenge_1",
		ChallengerID: "alice",
		ChallengedID: "bob",
		Status:       entities.ChallengeStatusPending,
	}))

	s.clock.Advance(time.Minute)
	err := s.store.Atomically(s.ctx, func(tx store.Tx) error {
		repo := s.repo.Tx(tx)
		c, err := repo.Get(s.ctx, "challenge_1")
		if err != nil {
			return err
		}
		c.Status = entities.ChallengeStatusAccepted
		return repo.Save(c)
	})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, challenges.GetInput{ID: "challenge_1"})
	s.Require().NoError(err)
	s.Equal(entities.ChallengeStatusAccepted, out.Challenge.Status)
	s.True(s.clock.Now().Equal(out.Challenge.UpdatedAt))
	s.True(out.Challenge.UpdatedAt.After(out.Challenge.CreatedAt))
}

func (s *ChallengeRepositoryTestSuite) TestGetErrors() {
	_, err := s.repo.Get(s.ctx, challenges.GetInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, challenges.GetInput{ID: "missing"})
	s.True(errors.IsNotFound(err))

	err = s.store.Atomically(s.ctx, func(tx store.Tx) error {
		_, err := s.repo.Tx(tx).Get(s.ctx, "missing")
		return err
	})
	s.True(errors.IsNotFound(err))
}

func (s *ChallengeRepositoryTestSuite) TestCreateRejectsEmptyID() {
	err := s.create(&entities.Challenge{ChallengerID: "alice", ChallengedID: "bob"})
	s.True(errors.IsInvalidArgument(err))
}
