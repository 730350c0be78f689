package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/accounts"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/auctions"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/challenges"
	guildbattles "github.com/KirkDiggler/rpg-arena/internal/repositories/guild_battles"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/guilds"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
)

// ArenaEpoch is the manual clock's starting time
var ArenaEpoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// Arena bundles every repository over one in-memory store
type Arena struct {
	Store        store.Store
	Clock        *clock.Manual
	Accounts     accounts.Repository
	Challenges   challenges.Repository
	Guilds       guilds.Repository
	GuildBattles guildbattles.Repository
	Auctions     auctions.Repository
}

// NewArena wires the repositories over an in-memory store and a manual clock
func NewArena(t *testing.T) *Arena {
	t.Helper()

	a := &Arena{
		Store: store.NewInMemory(),
		Clock: clock.NewManual(ArenaEpoch),
	}

	var err error
	a.Accounts, err = accounts.New(&accounts.Config{Store: a.Store, Clock: a.Clock})
	require.NoError(t, err)
	a.Challenges, err = challenges.New(&challenges.Config{Store: a.Store, Clock: a.Clock})
	require.NoError(t, err)
	a.Guilds, err = guilds.New(&guilds.Config{Store: a.Store, Clock: a.Clock})
	require.NoError(t, err)
	a.GuildBattles, err = guildbattles.New(&guildbattles.Config{Store: a.Store, Clock: a.Clock})
	require.NoError(t, err)
	a.Auctions, err = auctions.New(&auctions.Config{Store: a.Store, Clock: a.Clock})
	require.NoError(t, err)

	return a
}

// SeedAccounts stores accounts as if they had registered
func (a *Arena) SeedAccounts(t *testing.T, list ...*entities.Account) {
	t.Helper()
	ctx := context.Background()
	for _, acct := range list {
		err := a.Store.Atomically(ctx, func(tx store.Tx) error {
			return a.Accounts.Tx(tx).Create(ctx, acct)
		})
		require.NoError(t, err)
	}
}

// SeedGuild stores a guild and points each member account at it
func (a *Arena) SeedGuild(t *testing.T, guild *entities.Guild) {
	t.Helper()
	ctx := context.Background()
	err := a.Store.Atomically(ctx, func(tx store.Tx) error {
		accts := a.Accounts.Tx(tx)
		for _, id := range guild.Members {
			acct, err := accts.Get(ctx, id)
			if err != nil {
				return err
			}
			acct.GuildID = guild.ID
			if err := accts.Save(acct); err != nil {
				return err
			}
		}
		return a.Guilds.Tx(tx).Create(ctx, guild)
	})
	require.NoError(t, err)
}

// SaveAccount overwrites a stored account
func (a *Arena) SaveAccount(t *testing.T, acct *entities.Account) {
	t.Helper()
	err := a.Store.Atomically(context.Background(), func(tx store.Tx) error {
		return a.Accounts.Tx(tx).Save(acct)
	})
	require.NoError(t, err)
}

// Account reloads an account from storage
func (a *Arena) Account(t *testing.T, id string) *entities.Account {
	t.Helper()
	out, err := a.Accounts.Get(context.Background(), accounts.GetInput{ID: id})
	require.NoError(t, err)
	return out.Account
}

// Guild reloads a guild from storage
func (a *Arena) Guild(t *testing.T, id string) *entities.Guild {
	t.Helper()
	out, err := a.Guilds.Get(context.Background(), guilds.GetInput{ID: id})
	require.NoError(t, err)
	return out.Guild
}
