package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-arena/internal/redis"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StoreTestSuite runs the same behaviour checks against every implementation
type StoreTestSuite struct {
	suite.Suite
	newStore func() store.Store
	store    store.Store
	ctx      context.Context
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, &StoreTestSuite{newStore: func() store.Store {
		client, cleanup := testutils.CreateTestRedisClient(t)
		t.Cleanup(cleanup)
		s, err := store.NewRedis(&store.RedisConfig{Client: client})
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		return s
	}})
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &StoreTestSuite{newStore: store.NewInMemory})
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore()
}

func (s *StoreTestSuite) TestGetMissing() {
	var d doc
	found, err := s.store.Get(s.ctx, "missing", &d)
	s.Require().NoError(err)
	s.False(found)
}

func (s *StoreTestSuite) TestCommitMakesWritesVisible() {
	err := s.store.Atomically(s.ctx, func(tx store.Tx) error {
		if err := tx.Save("doc:1", doc{Name: "one", Count: 1}); err != nil {
			return err
		}
		tx.AddToSet("docs", "1")
		return nil
	})
	s.Require().NoError(err)

	var d doc
	found, err := s.store.Get(s.ctx, "doc:1", &d)
	s.Require().NoError(err)
	s.True(found)
	s.Equal(doc{Name: "one", Count: 1}, d)

	members, err := s.store.Members(s.ctx, "docs")
	s.Require().NoError(err)
	s.Equal([]string{"1"}, members)
}

func (s *StoreTestSuite) TestFailedFunctionWritesNothing() {
	err := s.store.Atomically(s.ctx, func(tx store.Tx) error {
		_ = tx.Save("doc:1", doc{Name: "one"})
		tx.AddToSet("docs", "1")
		return errors.InsufficientResources("not enough gold")
	})
	s.True(errors.IsInsufficientResources(err))

	found, err := s.store.Get(s.ctx, "doc:1", &doc{})
	s.Require().NoError(err)
	s.False(found)

	members, err := s.store.Members(s.ctx, "docs")
	s.Require().NoError(err)
	s.Empty(members)
}

func (s *StoreTestSuite) TestReadYourWrites() {
	err := s.store.Atomically(s.ctx, func(tx store.Tx) error {
		s.Require().NoError(tx.Save("doc:1", doc{Count: 5}))

		var d doc
		found, err := tx.Load(s.ctx, "doc:1", &d)
		s.Require().NoError(err)
		s.True(found)
		s.Equal(5, d.Count)

		tx.Delete("doc:1")
		found, err = tx.Load(s.ctx, "doc:1", &d)
		s.Require().NoError(err)
		s.False(found)
		return nil
	})
	s.Require().NoError(err)
}

func (s *StoreTestSuite) TestDeleteAndSetRemove() {
	s.Require().NoError(s.store.Atomically(s.ctx, func(tx store.Tx) error {
		tx.AddToSet("docs", "a")
		tx.AddToSet("docs", "b")
		return tx.Save("doc:a", doc{Name: "a"})
	}))
	s.Require().NoError(s.store.Atomically(s.ctx, func(tx store.Tx) error {
		tx.Delete("doc:a")
		tx.RemoveFromSet("docs", "a")
		return nil
	}))

	found, err := s.store.Get(s.ctx, "doc:a", &doc{})
	s.Require().NoError(err)
	s.False(found)

	members, err := s.store.Members(s.ctx, "docs")
	s.Require().NoError(err)
	s.Equal([]string{"b"}, members)
}

func (s *StoreTestSuite) TestConcurrentIncrementsDoNotLoseUpdates() {
	s.Require().NoError(s.store.Atomically(s.ctx, func(tx store.Tx) error {
		return tx.Save("counter", doc{})
	}))

	const workers = 4
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.store.Atomically(s.ctx, func(tx store.Tx) error {
				var d doc
				if _, err := tx.Load(s.ctx, "counter", &d); err != nil {
					return err
				}
				d.Count++
				return tx.Save("counter", d)
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.True(errors.IsAborted(err), "unexpected error: %v", err)
	}

	var d doc
	_, err := s.store.Get(s.ctx, "counter", &d)
	s.Require().NoError(err)
	s.Equal(succeeded, d.Count)
}

type RedisConflictTestSuite struct {
	suite.Suite
	client  redisclient.Client
	cleanup func()
	ctx     context.Context
}

func TestRedisConflictSuite(t *testing.T) {
	suite.Run(t, new(RedisConflictTestSuite))
}

func (s *RedisConflictTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())
}

func (s *RedisConflictTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisConflictTestSuite) TestConflictRetriesWithFreshData() {
	st, err := store.NewRedis(&store.RedisConfig{Client: s.client})
	s.Require().NoError(err)
	s.Require().NoError(s.client.Set(s.ctx, "counter", `{"count":1}`, 0).Err())

	var seen []int
	err = st.Atomically(s.ctx, func(tx store.Tx) error {
		var d doc
		if _, err := tx.Load(s.ctx, "counter", &d); err != nil {
			return err
		}
		seen = append(seen, d.Count)
		if len(seen) == 1 {
			// a competing writer lands between our read and our commit
			s.Require().NoError(s.client.Set(s.ctx, "counter", `{"count":10}`, 0).Err())
		}
		d.Count++
		return tx.Save("counter", d)
	})
	s.Require().NoError(err)
	s.Equal([]int{1, 10}, seen)

	var d doc
	_, err = st.Get(s.ctx, "counter", &d)
	s.Require().NoError(err)
	s.Equal(11, d.Count)
}

func (s *RedisConflictTestSuite) TestPersistentConflictAborts() {
	st, err := store.NewRedis(&store.RedisConfig{Client: s.client, MaxAttempts: 3})
	s.Require().NoError(err)

	attempts := 0
	err = st.Atomically(s.ctx, func(tx store.Tx) error {
		attempts++
		var d doc
		if _, err := tx.Load(s.ctx, "counter", &d); err != nil {
			return err
		}
		s.Require().NoError(s.client.Set(s.ctx, "counter", `{"count":99}`, 0).Err())
		return tx.Save("counter", doc{Count: -1})
	})
	s.True(errors.IsAborted(err))
	s.Equal(3, attempts)

	var d doc
	_, err = st.Get(s.ctx, "counter", &d)
	s.Require().NoError(err)
	s.Equal(99, d.Count)
}

func (s *RedisConflictTestSuite) TestConfigValidation() {
	_, err := store.NewRedis(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = store.NewRedis(&store.RedisConfig{})
	s.True(errors.IsInvalidArgument(err))
}
