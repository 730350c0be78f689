package accounts_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/accounts"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
)

type AccountRepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   store.Store
	repo    accounts.Repository
	clock   *clock.Manual
	cleanup func()
}

func TestAccountRepositorySuite(t *testing.T) {
	suite.Run(t, new(AccountRepositoryTestSuite))
}

func (s *AccountRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	var err error
	s.store, err = store.NewRedis(&store.RedisConfig{Client: client})
	s.Require().NoError(err)

	s.clock = clock.NewManual(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	s.repo, err = accounts.New(&accounts.Config{Store: s.store, Clock: s.clock})
	s.Require().NoError(err)
}

func (s *AccountRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *AccountRepositoryTestSuite) create(acct *entities.Account) error {
	return s.store.Atomically(s.ctx, func(tx store.Tx) error {
		return s.repo.Tx(tx).Create(s.ctx, acct)
	})
}

func (s *AccountRepositoryTestSuite) TestCreateAndGet() {
	s.Require().NoError(s.create(&entities.Account{ID: "acct_1", Name: "Aria", Currencies: entities.Currencies{Gold: 10}}))

	out, err := s.repo.Get(s.ctx, accounts.GetInput{ID: "acct_1"})
	s.Require().NoError(err)
	s.Equal("Aria", out.Account.Name)
	s.Equal(entities.Num(10), out.Account.Currencies.Gold)
	s.True(s.clock.Now().Equal(out.Account.CreatedAt))
}

func (s *AccountRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, accounts.GetInput{ID: "nope"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Get(s.ctx, accounts.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *AccountRepositoryTestSuite) TestNamesAreUniqueIgnoringCase() {
	s.Require().NoError(s.create(&entities.Account{ID: "acct_1", Name: "Aria"}))

	err := s.create(&entities.Account{ID: "acct_2", Name: "aria"})
	s.True(errors.IsAlreadyExists(err))

	err = s.create(&entities.Account{ID: "acct_1", Name: "Other"})
	s.True(errors.IsAlreadyExists(err))

	err = s.store.Atomically(s.ctx, func(tx store.Tx) error {
		acct, err := s.repo.Tx(tx).GetByName(s.ctx, "  ARIA ")
		if err != nil {
			return err
		}
		s.Equal("acct_1", acct.ID)
		return nil
	})
	s.Require().NoError(err)
}

func (s *AccountRepositoryTestSuite) TestSaveClampsCurrencies() {
	s.Require().NoError(s.create(&entities.Account{ID: "acct_1", Name: "Aria"}))

	err := s.store.Atomically(s.ctx, func(tx store.Tx) error {
		txRepo := s.repo.Tx(tx)
		acct, err := txRepo.Get(s.ctx, "acct_1")
		if err != nil {
			return err
		}
		acct.Currencies.Gold = entities.MaxSafe + 100
		acct.Currencies.Rubies = -5
		return txRepo.Save(acct)
	})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, accounts.GetInput{ID: "acct_1"})
	s.Require().NoError(err)
	s.Equal(entities.MaxSafe, out.Account.Currencies.Gold)
	s.Equal(entities.Num(0), out.Account.Currencies.Rubies)
}

func (s *AccountRepositoryTestSuite) TestListAutomated() {
	s.Require().NoError(s.create(&entities.Account{ID: "acct_1", Name: "Aria"}))
	s.Require().NoError(s.create(&entities.Account{ID: "npc_1", Name: "Golem", IsAutomated: true}))

	all, err := s.repo.List(s.ctx, accounts.ListInput{})
	s.Require().NoError(err)
	s.Len(all.Accounts, 2)

	automated, err := s.repo.List(s.ctx, accounts.ListInput{AutomatedOnly: true})
	s.Require().NoError(err)
	s.Require().Len(automated.Accounts, 1)
	s.Equal("npc_1", automated.Accounts[0].ID)
}

func (s *AccountRepositoryTestSuite) TestDeleteFreesName() {
	acct := &entities.Account{ID: "acct_1", Name: "Aria"}
	s.Require().NoError(s.create(acct))

	s.Require().NoError(s.store.Atomically(s.ctx, func(tx store.Tx) error {
		s.repo.Tx(tx).Delete(acct)
		return nil
	}))

	_, err := s.repo.Get(s.ctx, accounts.GetInput{ID: "acct_1"})
	s.True(errors.IsNotFound(err))
	s.NoError(s.create(&entities.Account{ID: "acct_2", Name: "Aria"}))

	all, err := s.repo.List(s.ctx, accounts.ListInput{})
	s.Require().NoError(err)
	s.Len(all.Accounts, 1)
}
