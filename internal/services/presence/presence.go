// Package presence answers whether an account is currently online. The
// transport that sees connections calls Touch; the core only asks IsOnline.
package presence

//go:generate mockgen -destination=mock/mock_checker.go -package=presencemock github.com/KirkDiggler/rpg-arena/internal/services/presence Checker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-arena/internal/redis"
)

const (
	keyPrefix = "presence:"
	// DefaultTTL is how long a touch keeps an account online
	DefaultTTL = 2 * time.Minute

	maxConcurrentLookups = 8
)

// Checker reports whether an account is online
type Checker interface {
	IsOnline(ctx context.Context, accountID string) (bool, error)
}

// Tracker is a Checker the transport can mark accounts online on
type Tracker interface {
	Checker
	Touch(ctx context.Context, accountID string) error
}

// RedisConfig contains configuration for the Redis presence tracker
type RedisConfig struct {
	Client redisclient.Client
	TTL    time.Duration
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil || cfg.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if cfg.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

// Redis tracks presence as expiring keys
type Redis struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedis creates a Redis presence tracker
func NewRedis(cfg *RedisConfig) (*Redis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: cfg.Client, ttl: ttl}, nil
}

var _ Tracker = (*Redis)(nil)

// Touch marks accountID online for the configured TTL
func (r *Redis) Touch(ctx context.Context, accountID string) error {
	if err := r.client.Set(ctx, keyPrefix+accountID, 1, r.ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to touch presence for %s", accountID)
	}
	return nil
}

// Forget marks accountID offline immediately
func (r *Redis) Forget(ctx context.Context, accountID string) error {
	if err := r.client.Del(ctx, keyPrefix+accountID).Err(); err != nil {
		return errors.Wrapf(err, "failed to clear presence for %s", accountID)
	}
	return nil
}

// IsOnline reports whether accountID was touched within the TTL
func (r *Redis) IsOnline(ctx context.Context, accountID string) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+accountID).Result()
	if err != nil {
		return false, errors.Wrapf(err, "failed to check presence for %s", accountID)
	}
	return n > 0, nil
}

// Memory tracks presence in process for single-node runs without Redis
type Memory struct {
	mu    sync.Mutex
	clock clock.Clock
	ttl   time.Duration
	seen  map[string]time.Time
}

// NewMemory creates an in-process tracker. A nil clock uses the wall clock and
// a non-positive ttl uses DefaultTTL.
func NewMemory(c clock.Clock, ttl time.Duration) *Memory {
	if c == nil {
		c = clock.New()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{clock: c, ttl: ttl, seen: map[string]time.Time{}}
}

var _ Tracker = (*Memory)(nil)

// Touch marks accountID online for the configured TTL
func (m *Memory) Touch(_ context.Context, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen[accountID] = m.clock.Now()
	return nil
}

// IsOnline reports whether accountID was touched within the TTL
func (m *Memory) IsOnline(_ context.Context, accountID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.seen[accountID]
	if !ok {
		return false, nil
	}
	if m.clock.Now().Sub(at) >= m.ttl {
		delete(m.seen, accountID)
		return false, nil
	}
	return true, nil
}

// Static is a fixed online set
type Static map[string]bool

// IsOnline reports membership in the set
func (s Static) IsOnline(_ context.Context, accountID string) (bool, error) {
	return s[accountID], nil
}

// FilterOnline returns the subset of ids that are online, preserving order.
// Lookups run concurrently.
func FilterOnline(ctx context.Context, checker Checker, ids []string) ([]string, error) {
	online := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, id := range ids {
		g.Go(func() error {
			ok, err := checker.IsOnline(gctx, id)
			if err != nil {
				return err
			}
			online[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(ids))
	for i, id := range ids {
		if online[i] {
			out = append(out, id)
		}
	}
	return out, nil
}
