package store

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-arena/internal/redis"
)

// RedisConfig contains configuration for the Redis store
type RedisConfig struct {
	Client redisclient.Client
	// MaxAttempts defaults to DefaultMaxAttempts
	MaxAttempts int
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.MaxAttempts < 0 {
		return errors.InvalidArgument("max attempts cannot be negative")
	}
	return nil
}

type redisStore struct {
	client      redisclient.Client
	maxAttempts int
}

// NewRedis creates a Store backed by Redis WATCH/MULTI/EXEC
func NewRedis(cfg *RedisConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	attempts := cfg.MaxAttempts
	if attempts == 0 {
		attempts = DefaultMaxAttempts
	}

	return &redisStore{
		client:      cfg.Client,
		maxAttempts: attempts,
	}, nil
}

var _ Store = (*redisStore)(nil)

func (s *redisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to get %s", key)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, errors.Wrapf(err, "failed to unmarshal %s", key)
	}
	return true, nil
}

func (s *redisStore) Members(ctx context.Context, setKey string) ([]string, error) {
	members, err := s.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", setKey)
	}
	return members, nil
}

func (s *redisStore) Atomically(ctx context.Context, fn func(tx Tx) error) error {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err := s.client.Watch(ctx, func(rtx *redis.Tx) error {
			tx := &redisTx{rtx: rtx, staging: newStaging()}
			if err := fn(tx); err != nil {
				return err
			}
			return tx.commit(ctx)
		})

		switch {
		case err == nil:
			return nil
		case err == redis.TxFailedErr:
			slog.DebugContext(ctx, "transaction conflict, retrying", "attempt", attempt)
			continue
		}

		var coded *errors.Error
		if errors.As(err, &coded) {
			return err
		}
		return errors.Wrap(err, "transaction failed")
	}

	return errors.Abortedf("transaction conflicted %d times", s.maxAttempts)
}

type redisTx struct {
	rtx *redis.Tx
	*staging
}

func (t *redisTx) Load(ctx context.Context, key string, dest any) (bool, error) {
	if data, found, staged := t.lookup(key); staged {
		if !found {
			return false, nil
		}
		return true, decode(key, data, dest)
	}

	if err := t.rtx.Watch(ctx, key).Err(); err != nil {
		return false, errors.Wrapf(err, "failed to watch %s", key)
	}
	data, err := t.rtx.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to load %s", key)
	}
	return true, decode(key, data, dest)
}

func (t *redisTx) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", key)
	}
	t.save(key, data)
	return nil
}

func (t *redisTx) Delete(key string) {
	t.remove(key)
}

func (t *redisTx) AddToSet(setKey, member string) {
	t.addToSet(setKey, member)
}

func (t *redisTx) RemoveFromSet(setKey, member string) {
	t.removeFromSet(setKey, member)
}

func (t *redisTx) commit(ctx context.Context) error {
	if len(t.ops) == 0 {
		return nil
	}
	_, err := t.rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, o := range t.ops {
			switch o.kind {
			case opSave:
				pipe.Set(ctx, o.key, o.data, 0)
			case opDelete:
				pipe.Del(ctx, o.key)
			case opSetAdd:
				pipe.SAdd(ctx, o.key, o.member)
			case opSetRemove:
				pipe.SRem(ctx, o.key, o.member)
			}
		}
		return nil
	})
	return err
}

func decode(key string, data []byte, dest any) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Wrapf(err, "failed to unmarshal %s", key)
	}
	return nil
}
