package guild

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-arena/internal/engine/ledger"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
	notifymock "github.com/KirkDiggler/rpg-arena/internal/services/notify/mock"
	"github.com/KirkDiggler/rpg-arena/internal/services/presence"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
	"github.com/KirkDiggler/rpg-arena/internal/testutils/builders"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	arena   *testutils.Arena
	emitter *notifymock.MockEmitter
	online  presence.Static
	orch    Service
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.arena = testutils.NewArena(s.T())
	s.emitter = notifymock.NewMockEmitter(s.ctrl)
	s.emitter.EXPECT().Emit(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	s.online = presence.Static{}

	var err error
	s.orch, err = NewOrchestrator(&Config{
		Store:       s.arena.Store,
		Accounts:    s.arena.Accounts,
		Guilds:       s.arena.Guilds,
		GuildBattles: s.arena.GuildBattles,
		Presence:     s.online,
		IDGenerator:  idgen.NewSequential("guild"),
		Random:       rng.NewFixed(0.5),
		Emitter:      s.emitter,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) seedGuild(id, master string, members ...string) {
	s.arena.SeedGuild(s.T(), &entities.Guild{
		ID:       id,
		Name:     id,
		MasterID: master,
		Members:  append([]string{master}, members...),
		Level:    1,
		Dungeon:  entities.DungeonProgress{Floor: 1, Level: 1},
	})
}

func (s *OrchestratorTestSuite) TestCreateGuild() {
	s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("m").Build(), builders.NewAccountBuilder("n").Build())

	out, err := s.orch.CreateGuild(s.ctx, &CreateGuildInput{Name: "Ravens", MasterID: "m"})
	s.Require().NoError(err)
	s.Equal([]string{"m"}, out.Guild.Members)
	s.Equal(1, out.Guild.Level)
	s.Equal(out.Guild.ID, s.arena.Account(s.T(), "m").GuildID)

	_, err = s.orch.CreateGuild(s.ctx, &CreateGuildInput{Name: "Other", MasterID: "m"})
	s.True(errors.IsFailedPrecondition(err))

	_, err = s.orch.CreateGuild(s.ctx, &CreateGuildInput{Name: "ravens", MasterID: "n"})
	s.True(errors.IsAlreadyExists(err))
}

func (s *OrchestratorTestSuite) TestJoinUntilFull() {
	ids := []string{"m", "p1", "p2", "p3", "p4", "p5"}
	for _, id := range ids {
		s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder(id).Build())
	}
	s.seedGuild("g", "m")

	// level 1 holds 2 + 3 members
	for _, id := range ids[1:5] {
		_, err := s.orch.JoinGuild(s.ctx, &MembershipInput{GuildID: "g", AccountID: id})
		s.Require().NoError(err)
	}

	_, err := s.orch.JoinGuild(s.ctx, &MembershipInput{GuildID: "g", AccountID: "p5"})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(errors.ReasonGuildFull, errors.GetReason(err))
	s.Empty(s.arena.Account(s.T(), "p5").GuildID)
	s.Len(s.arena.Guild(s.T(), "g").Members, 5)
}

func (s *OrchestratorTestSuite) TestLeaveGuild() {
	s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("m").Build(), builders.NewAccountBuilder("p").Build())
	s.seedGuild("g", "m", "p")

	_, err := s.orch.LeaveGuild(s.ctx, &MembershipInput{GuildID: "g", AccountID: "m"})
	s.True(errors.IsFailedPrecondition(err))

	out, err := s.orch.LeaveGuild(s.ctx, &MembershipInput{GuildID: "g", AccountID: "p"})
	s.Require().NoError(err)
	s.False(out.Disbanded)
	s.Empty(s.arena.Account(s.T(), "p").GuildID)

	out, err = s.orch.LeaveGuild(s.ctx, &MembershipInput{GuildID: "g", AccountID: "m"})
	s.Require().NoError(err)
	s.True(out.Disbanded)

	_, err = s.orch.GetGuild(s.ctx, &GetGuildInput{GuildID: "g"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestMasterCannotDisbandDuringGuildBattle() {
	s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("m").Build(), builders.NewAccountBuilder("r").Build())
	s.seedGuild("g", "m")
	s.seedGuild("h", "r")

	battle := &entities.GuildBattle{
		ID:                "gb_1",
		ChallengerGuildID: "h",
		ChallengedGuildID: "g",
		ChallengerRoster:  []string{"r"},
		ChallengedRoster:  []string{},
		Status:            entities.GuildBattleStatusPending,
	}
	saveBattle := func() {
		err := s.arena.Store.Atomically(s.ctx, func(tx store.Tx) error {
			return s.arena.GuildBattles.Tx(tx).Create(battle)
		})
		s.Require().NoError(err)
	}
	saveBattle()

	for _, status := range []entities.GuildBattleStatus{
		entities.GuildBattleStatusPending,
		entities.GuildBattleStatusInProgress,
	} {
		battle.Status = status
		saveBattle()

		_, err := s.orch.LeaveGuild(s.ctx, &MembershipInput{GuildID: "g", AccountID: "m"})
		s.Require().Error(err, status)
		s.True(errors.IsFailedPrecondition(err), status)
		s.Equal("g", s.arena.Account(s.T(), "m").GuildID)
	}

	battle.Status = entities.GuildBattleStatusCompleted
	saveBattle()

	out, err := s.orch.LeaveGuild(s.ctx, &MembershipInput{GuildID: "g", AccountID: "m"})
	s.Require().NoError(err)
	s.True(out.Disbanded)
}

func (s *OrchestratorTestSuite) TestDepositMovesFundsIntoBank() {
	s.arena.SeedAccounts(s.T(),
		builders.NewAccountBuilder("m").WithGold(500).Build(),
		builders.NewAccountBuilder("outsider").WithGold(500).Build(),
	)
	s.seedGuild("g", "m")

	_, err := s.orch.DepositToGuildBank(s.ctx, &DepositInput{
		GuildID: "g", ActorID: "outsider", Resource: entities.ResourceGold, Amount: 100,
	})
	s.True(errors.IsPermissionDenied(err))

	_, err = s.orch.DepositToGuildBank(s.ctx, &DepositInput{
		GuildID: "g", ActorID: "m", Resource: entities.ResourceGold, Amount: 501,
	})
	s.True(errors.IsInsufficientResources(err))
	s.Equal(entities.Num(500), s.arena.Account(s.T(), "m").Currencies.Gold)

	out, err := s.orch.DepositToGuildBank(s.ctx, &DepositInput{
		GuildID: "g", ActorID: "m", Resource: entities.ResourceGold, Amount: 200,
	})
	s.Require().NoError(err)
	s.Equal(entities.Num(200), out.Guild.Bank.Gold)
	s.Equal(entities.Num(300), s.arena.Account(s.T(), "m").Currencies.Gold)
	s.Equal(entities.Num(200), s.arena.Guild(s.T(), "g").Bank.Gold)
}

func (s *OrchestratorTestSuite) TestDistributeIsAllOrNothing() {
	s.arena.SeedAccounts(s.T(),
		builders.NewAccountBuilder("m").WithGold(0).Build(),
		builders.NewAccountBuilder("p").WithGold(0).Build(),
	)
	s.seedGuild("g", "m", "p")
	s.depositBank("g", entities.Currencies{Gold: 100})

	lines := []ledger.Distribution{
		{AccountID: "m", Resource: entities.ResourceGold, Amount: 60},
		{AccountID: "p", Resource: entities.ResourceGold, Amount: 60},
	}
	_, err := s.orch.DistributeFromGuildBank(s.ctx, &DistributeInput{GuildID: "g", MasterID: "p", Distributions: lines})
	s.True(errors.IsPermissionDenied(err))

	_, err = s.orch.DistributeFromGuildBank(s.ctx, &DistributeInput{GuildID: "g", MasterID: "m", Distributions: lines})
	s.True(errors.IsInsufficientResources(err))
	s.Zero(s.arena.Account(s.T(), "m").Currencies.Gold)
	s.Equal(entities.Num(100), s.arena.Guild(s.T(), "g").Bank.Gold)

	lines[1].Amount = 40
	out, err := s.orch.DistributeFromGuildBank(s.ctx, &DistributeInput{GuildID: "g", MasterID: "m", Distributions: lines})
	s.Require().NoError(err)
	s.Zero(out.Guild.Bank.Gold)
	s.Len(out.Recipients, 2)
	s.Equal(entities.Num(60), s.arena.Account(s.T(), "m").Currencies.Gold)
	s.Equal(entities.Num(40), s.arena.Account(s.T(), "p").Currencies.Gold)
}

func (s *OrchestratorTestSuite) TestLevelUpRequirements() {
	s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("m").Build())
	s.seedGuild("g", "m")

	_, err := s.orch.LevelUpGuild(s.ctx, &LevelUpInput{GuildID: "g", MasterID: "m"})
	s.True(errors.IsFailedPrecondition(err))

	s.updateGuild("g", func(g *entities.Guild) {
		g.Dungeon = entities.DungeonProgress{Floor: 2, Level: 1}
		g.Bank.Gold = 49_999
	})
	_, err = s.orch.LevelUpGuild(s.ctx, &LevelUpInput{GuildID: "g", MasterID: "m"})
	s.True(errors.IsInsufficientResources(err))

	s.updateGuild("g", func(g *entities.Guild) { g.Bank.Gold = 60_000 })
	out, err := s.orch.LevelUpGuild(s.ctx, &LevelUpInput{GuildID: "g", MasterID: "m"})
	s.Require().NoError(err)
	s.Equal(2, out.Guild.Level)
	s.Equal(LevelUpGoldPerLevel, out.Cost)
	s.Equal(entities.Num(10_000), s.arena.Guild(s.T(), "g").Bank.Gold)
	s.Equal(8, s.arena.Guild(s.T(), "g").MaxMembers())
}

func (s *OrchestratorTestSuite) TestDungeonVictoryPaysTheBank() {
	s.arena.SeedAccounts(s.T(),
		builders.NewAccountBuilder("m").WithStats(entities.Stats{Str: 20}).Build(),
		builders.NewAccountBuilder("p").WithStats(entities.Stats{Str: 20}).Build(),
		builders.NewAccountBuilder("away").WithStats(entities.Stats{Str: 1_000}).Build(),
	)
	s.seedGuild("g", "m", "p", "away")
	s.online["m"] = true
	s.online["p"] = true

	out, err := s.orch.FightGuildDungeon(s.ctx, &FightDungeonInput{GuildID: "g", ActorID: "m"})
	s.Require().NoError(err)

	s.True(out.Victory)
	s.Equal([]string{"m", "p"}, out.OnlineMembers)
	s.Equal(80.0, out.PlayerPower)
	s.Equal(30.0, out.NpcPower)
	s.Equal(entities.Currencies{Gold: 110, TrainingPoints: 22, SoulShards: 1}, out.Rewards)
	s.Equal(2, out.NewLevel)

	g := s.arena.Guild(s.T(), "g")
	s.Equal(entities.Num(110), g.Bank.Gold)
	s.Equal(entities.DungeonProgress{Floor: 1, Level: 2}, g.Dungeon)
	// members are never paid directly
	s.Equal(entities.Num(1000), s.arena.Account(s.T(), "m").Currencies.Gold)
}

func (s *OrchestratorTestSuite) TestDungeonTooWeakSkipsTheRoll() {
	s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("m").Build())
	s.seedGuild("g", "m")
	s.online["m"] = true

	out, err := s.orch.FightGuildDungeon(s.ctx, &FightDungeonInput{GuildID: "g", ActorID: "m"})
	s.Require().NoError(err)
	s.False(out.Victory)
	s.True(out.TooWeak)
	s.NotEmpty(out.Message)
	s.Equal(entities.DungeonProgress{Floor: 1, Level: 1}, s.arena.Guild(s.T(), "g").Dungeon)
}

func (s *OrchestratorTestSuite) TestDungeonPreconditions() {
	s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("m").Build(), builders.NewAccountBuilder("x").Build())
	s.seedGuild("g", "m")

	_, err := s.orch.FightGuildDungeon(s.ctx, &FightDungeonInput{GuildID: "g", ActorID: "x"})
	s.True(errors.IsPermissionDenied(err))

	_, err = s.orch.FightGuildDungeon(s.ctx, &FightDungeonInput{GuildID: "g", ActorID: "m"})
	s.True(errors.IsFailedPrecondition(err))

	_, err = s.orch.FightGuildDungeon(s.ctx, &FightDungeonInput{GuildID: "nope", ActorID: "m"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) depositBank(guildID string, c entities.Currencies) {
	s.updateGuild(guildID, func(g *entities.Guild) { g.Bank.Credit(c) })
}

func (s *OrchestratorTestSuite) updateGuild(guildID string, fn func(*entities.Guild)) {
	s.T().Helper()
	err := s.arena.Store.Atomically(s.ctx, func(tx store.Tx) error {
		repo := s.arena.Guilds.Tx(tx)
		g, err := repo.Get(s.ctx, guildID)
		if err != nil {
			return err
		}
		fn(g)
		return repo.Save(g)
	})
	s.Require().NoError(err)
}
