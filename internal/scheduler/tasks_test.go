package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/auction"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/tower"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-arena/internal/scheduler"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
	"github.com/KirkDiggler/rpg-arena/internal/testutils/builders"
)

type TasksTestSuite struct {
	suite.Suite
	ctx   context.Context
	arena *testutils.Arena
}

func TestTasksSuite(t *testing.T) {
	suite.Run(t, new(TasksTestSuite))
}

func (s *TasksTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.arena = testutils.NewArena(s.T())
}

func (s *TasksTestSuite) TestAuctionSweep() {
	s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("admin").Admin().Build())
	auctions, err := auction.NewOrchestrator(&auction.Config{
		Store:       s.arena.Store,
		Accounts:    s.arena.Accounts,
		Auctions:    s.arena.Auctions,
		IDGenerator: idgen.NewSequential("auc"),
		Clock:       s.arena.Clock,
		Window:      time.Hour,
	})
	s.Require().NoError(err)

	queued, err := auctions.EnqueueAuction(s.ctx, &auction.EnqueueAuctionInput{AdminID: "admin", SkillID: "blink"})
	s.Require().NoError(err)

	task := &scheduler.AuctionSweep{Auctions: auctions}
	s.Equal(scheduler.TaskAuctionSweep, task.Name())

	// idle queue starts
	s.Require().NoError(task.RunOnce(s.ctx))
	got, err := auctions.GetAuction(s.ctx, &auction.GetAuctionInput{AuctionID: queued.Auction.ID})
	s.Require().NoError(err)
	s.Equal(entities.AuctionStatusActive, got.Auction.Status)

	// running it again inside the window changes nothing
	s.Require().NoError(task.RunOnce(s.ctx))

	s.arena.Clock.Advance(time.Hour)
	s.Require().NoError(task.RunOnce(s.ctx))
	got, err = auctions.GetAuction(s.ctx, &auction.GetAuctionInput{AuctionID: queued.Auction.ID})
	s.Require().NoError(err)
	s.Equal(entities.AuctionStatusCompleted, got.Auction.Status)
}

func (s *TasksTestSuite) TestAutomatedTower() {
	s.arena.SeedAccounts(s.T(),
		builders.NewAccountBuilder("bot").Automated().WithStats(entities.Stats{Str: 100}).Build(),
		builders.NewAccountBuilder("human").WithStats(entities.Stats{Str: 100}).Build(),
	)
	climber, err := tower.NewOrchestrator(&tower.Config{
		Store:    s.arena.Store,
		Accounts: s.arena.Accounts,
		Random:   rng.NewFixed(0.5),
	})
	s.Require().NoError(err)

	task := &scheduler.AutomatedTower{Tower: climber}
	s.Require().NoError(task.RunOnce(s.ctx))
	s.Require().NoError(task.RunOnce(s.ctx))

	s.Equal(3, s.arena.Account(s.T(), "bot").Tower.Level)
	s.Equal(1, s.arena.Account(s.T(), "human").Tower.Level)
}
