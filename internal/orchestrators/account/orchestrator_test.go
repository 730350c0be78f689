package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	notifymock "github.com/KirkDiggler/rpg-arena/internal/services/notify/mock"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
	"github.com/KirkDiggler/rpg-arena/internal/testutils/builders"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	arena   *testutils.Arena
	emitter *notifymock.MockEmitter
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

	var err error
	s.orch, err = NewOrchestrator(&Config{
		Store:       s.arena.Store,
		Accounts:    s.arena.Accounts,
		IDGenerator: idgen.NewSequential("acct"),
		Emitter:     s.emitter,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) TestConfigValidation() {
	_, err := NewOrchestrator(&Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestRegisterAppliesDefaults() {
	out, err := s.orch.Register(s.ctx, &RegisterInput{Name: "  Aria "})
	s.Require().NoError(err)

	acct := s.arena.Account(s.T(), out.Account.ID)
	s.Equal("Aria", acct.Name)
	s.Equal(entities.RolePlayer, acct.Role)
	s.Equal(entities.RankNovice, acct.Rank)
	s.Equal(StartingGold, acct.Currencies.Gold)
	s.Equal(entities.Stats{Str: 1, Def: 1, Spd: 1, Int: 1, Luck: 1, Pot: 1}, acct.Stats)
	s.Equal(entities.TowerProgress{Floor: 1, Level: 1}, acct.Tower)
	s.False(acct.IsAutomated)
}

func (s *OrchestratorTestSuite) TestRegisterRejectsDuplicateNames() {
	_, err := s.orch.Register(s.ctx, &RegisterInput{Name: "Aria"})
	s.Require().NoError(err)

	_, err = s.orch.Register(s.ctx, &RegisterInput{Name: "aria"})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *OrchestratorTestSuite) TestRegisterValidatesInput() {
	_, err := s.orch.Register(s.ctx, &RegisterInput{Name: " ", Role: "overlord"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestListAutomatedOnly() {
	s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("admin").Admin().Build())

	_, err := s.orch.Register(s.ctx, &RegisterInput{Name: "Bot", IsAutomated: true, CreatedBy: "admin"})
	s.Require().NoError(err)
	_, err = s.orch.Register(s.ctx, &RegisterInput{Name: "Human"})
	s.Require().NoError(err)

	out, err := s.orch.ListAccounts(s.ctx, &ListAccountsInput{AutomatedOnly: true})
	s.Require().NoError(err)
	s.Require().Len(out.Accounts, 1)
	s.Equal("Bot", out.Accounts[0].Name)
}

func (s *OrchestratorTestSuite) TestPrivilegedAccountsNeedAnAdminCreator() {
	s.arena.SeedAccounts(s.T(),
		builders.NewAccountBuilder("admin").Admin().Build(),
		builders.NewAccountBuilder("mallory").Build(),
	)

	s.Run("no creator", func() {
		_, err := s.orch.Register(s.ctx, &RegisterInput{Name: "Root", Role: entities.RoleAdmin})
		s.True(errors.IsPermissionDenied(err))
	})

	s.Run("player creator", func() {
		_, err := s.orch.Register(s.ctx, &RegisterInput{Name: "Root", Role: entities.RoleAdmin, CreatedBy: "mallory"})
		s.True(errors.IsPermissionDenied(err))

		_, err = s.orch.Register(s.ctx, &RegisterInput{Name: "Bot", IsAutomated: true, CreatedBy: "mallory"})
		s.True(errors.IsPermissionDenied(err))
	})

	s.Run("unknown creator", func() {
		_, err := s.orch.Register(s.ctx, &RegisterInput{Name: "Root", Role: entities.RoleAdmin, CreatedBy: "ghost"})
		s.True(errors.IsNotFound(err))
	})

	s.Run("admin creator", func() {
		out, err := s.orch.Register(s.ctx, &RegisterInput{Name: "Root", Role: entities.RoleAdmin, CreatedBy: "admin"})
		s.Require().NoError(err)
		s.True(s.arena.Account(s.T(), out.Account.ID).IsAdmin())
	})

	// nothing was created by the refused calls
	list, err := s.orch.ListAccounts(s.ctx, &ListAccountsInput{})
	s.Require().NoError(err)
	s.Len(list.Accounts, 3)
}

func (s *OrchestratorTestSuite) TestEnsureAdminIsIdempotent() {
	first, err := s.orch.EnsureAdmin(s.ctx, &EnsureAdminInput{Name: "root"})
	s.Require().NoError(err)
	s.True(first.Created)
	s.True(first.Account.IsAdmin())

	again, err := s.orch.EnsureAdmin(s.ctx, &EnsureAdminInput{Name: "Root"})
	s.Require().NoError(err)
	s.False(again.Created)
	s.Equal(first.Account.ID, again.Account.ID)
}

func (s *OrchestratorTestSuite) TestEnsureAdminRefusesPlayerName() {
	_, err := s.orch.Register(s.ctx, &RegisterInput{Name: "root"})
	s.Require().NoError(err)

	_, err = s.orch.EnsureAdmin(s.ctx, &EnsureAdminInput{Name: "root"})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestDeleteAccount() {
	s.arena.SeedAccounts(s.T(),
		builders.NewAccountBuilder("player").Build(),
		builders.NewAccountBuilder("admin").Admin().Build(),
		builders.NewAccountBuilder("member").WithGuild("g1").Build(),
	)

	_, err := s.orch.DeleteAccount(s.ctx, &DeleteAccountInput{AccountID: "admin"})
	s.True(errors.IsPermissionDenied(err))

	_, err = s.orch.DeleteAccount(s.ctx, &DeleteAccountInput{AccountID: "member"})
	s.True(errors.IsFailedPrecondition(err))

	_, err = s.orch.DeleteAccount(s.ctx, &DeleteAccountInput{AccountID: "player"})
	s.Require().NoError(err)

	_, err = s.orch.GetAccount(s.ctx, &GetAccountInput{AccountID: "player"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestSetRankRequiresAdmin() {
	s.arena.SeedAccounts(s.T(),
		builders.NewAccountBuilder("player").Build(),
		builders.NewAccountBuilder("admin").Admin().Build(),
	)

	_, err := s.orch.SetRank(s.ctx, &SetRankInput{AdminID: "player", AccountID: "player", Rank: entities.RankElite})
	s.True(errors.IsPermissionDenied(err))

	s.emitter.EXPECT().Emit(gomock.Any(), "playerUpdate", gomock.Any()).Return(nil)
	out, err := s.orch.SetRank(s.ctx, &SetRankInput{AdminID: "admin", AccountID: "player", Rank: entities.RankMaster})
	s.Require().NoError(err)
	s.Equal(entities.RankMaster, out.Account.Rank)
	s.Equal(entities.RankMaster, s.arena.Account(s.T(), "player").Rank)
}

func (s *OrchestratorTestSuite) TestComputeStrength() {
	s.arena.SeedAccounts(s.T(), builders.NewAccountBuilder("p1").
		WithStats(entities.Stats{Str: 10, Def: 100, Spd: 5, Int: 5, Luck: 2, Pot: 3}).
		WithItem(entities.SlotWeapon, &entities.Item{ID: "sword", Bonus: entities.ItemBonus{Str: 7}}).
		WithPet(builders.NewPet("pet", entities.PetTierEgg, entities.PetStats{Str: 1, Spd: 1, Luck: 1, ElementalPower: 4}), true).
		Build())

	out, err := s.orch.ComputeStrength(s.ctx, &ComputeStrengthInput{AccountID: "p1"})
	s.Require().NoError(err)
	// Def is not part of strength
	s.Equal(entities.Num(25+7+7), out.Strength)
	s.Equal(entities.Num(4), out.Breakdown.PetElemental)
}
