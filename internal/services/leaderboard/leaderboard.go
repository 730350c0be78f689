// Package leaderboard keeps ranked snapshots of guild results
package leaderboard

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/guilds"
)

const (
	guildWinsKey = "guild_wins"
	cacheSize    = 16
	// DefaultSize is how many guilds a snapshot keeps
	DefaultSize = 10
)

// Entry is one ranked guild
type Entry struct {
	Rank    int          `json:"rank"`
	GuildID string       `json:"guildId"`
	Name    string       `json:"name"`
	Level   int          `json:"level"`
	Wins    entities.Num `json:"wins"`
}

// Snapshot is a ranked list and when it was built
type Snapshot struct {
	Entries   []Entry   `json:"entries"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Service serves guild rankings
type Service interface {
	// GuildWins returns the cached snapshot, building it on first use
	GuildWins(ctx context.Context) (*Snapshot, error)

	// Refresh rebuilds the snapshot now. Callers that change battle results
	// refresh eagerly so the next read already reflects them.
	Refresh(ctx context.Context) (*Snapshot, error)
}

// Config holds the dependencies for the leaderboard
type Config struct {
	Guilds guilds.Repository
	Clock  clock.Clock
	Size   int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Guilds == nil {
		vb.RequiredField("Guilds")
	}
	if c.Size < 0 {
		vb.InvalidField("Size", "cannot be negative")
	}
	return vb.Build()
}

type service struct {
	guilds guilds.Repository
	clock  clock.Clock
	size   int
	cache  *lru.Cache

	// refreshMu orders rebuilds so a slow one cannot replace a newer snapshot
	refreshMu sync.Mutex
}

// New creates a leaderboard service
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create leaderboard cache")
	}

	size := cfg.Size
	if size == 0 {
		size = DefaultSize
	}
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &service{guilds: cfg.Guilds, clock: c, size: size, cache: cache}, nil
}

func (s *service) GuildWins(ctx context.Context) (*Snapshot, error) {
	if cached, ok := s.cache.Get(guildWinsKey); ok {
		if snap, ok := cached.(*Snapshot); ok {
			return snap, nil
		}
	}
	return s.Refresh(ctx)
}

func (s *service) Refresh(ctx context.Context) (*Snapshot, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	out, err := s.guilds.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load guilds for leaderboard")
	}

	list := out.Guilds
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].BattleWins != list[j].BattleWins {
			return list[i].BattleWins > list[j].BattleWins
		}
		return list[i].Name < list[j].Name
	})
	if len(list) > s.size {
		list = list[:s.size]
	}

	snap := &Snapshot{Entries: make([]Entry, 0, len(list)), UpdatedAt: s.clock.Now()}
	for i, g := range list {
		snap.Entries = append(snap.Entries, Entry{
			Rank:    i + 1,
			GuildID: g.ID,
			Name:    g.Name,
			Level:   g.Level,
			Wins:    g.BattleWins,
		})
	}

	s.cache.Add(guildWinsKey, snap)
	slog.DebugContext(ctx, "guild leaderboard refreshed", "entries", len(snap.Entries))
	return snap, nil
}
