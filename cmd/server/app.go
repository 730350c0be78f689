package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-arena/internal/config"
	v1 "github.com/KirkDiggler/rpg-arena/internal/handlers/arena/v1"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/account"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/auction"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/challenge"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/economy"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/guild"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/guildbattle"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/tower"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/rng"
	redisclient "github.com/KirkDiggler/rpg-arena/internal/redis"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/accounts"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/auctions"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/challenges"
	guildbattles "github.com/KirkDiggler/rpg-arena/internal/repositories/guild_battles"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/guilds"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
	"github.com/KirkDiggler/rpg-arena/internal/scheduler"
	"github.com/KirkDiggler/rpg-arena/internal/services/leaderboard"
	"github.com/KirkDiggler/rpg-arena/internal/services/notify"
	"github.com/KirkDiggler/rpg-arena/internal/services/presence"
)

// app holds everything runServer starts and stops
type app struct {
	handler   *v1.Handler
	tracker   presence.Tracker
	scheduler *scheduler.Scheduler
	bus       events.EventBus
	redis     redisclient.Client
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err)
		}
	}
}

// buildApp wires storage, services, orchestrators and background jobs
func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{bus: events.NewBus()}
	clk := clock.New()

	var st store.Store
	if cfg.Redis.Enabled() {
		client, err := redisclient.Open(ctx, cfg.Redis.MasterName, cfg.Redis.Addrs, &redisclient.Options{
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			UseTLS:   cfg.Redis.UseTLS,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redis = client

		st, err = store.NewRedis(&store.RedisConfig{Client: client, MaxAttempts: cfg.Redis.MaxAttempts})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to create redis store: %w", err)
		}
		tracker, err := presence.NewRedis(&presence.RedisConfig{Client: client, TTL: cfg.Presence.TTL})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to create presence tracker: %w", err)
		}
		a.tracker = tracker
		slog.InfoContext(ctx, "using redis store", "addrs", cfg.Redis.Addrs)
	} else {
		st = store.NewInMemory()
		a.tracker = presence.NewMemory(clk, cfg.Presence.TTL)
		slog.InfoContext(ctx, "using in-memory store")
	}

	if err := a.wire(ctx, cfg, st, clk); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire(ctx context.Context, cfg *config.Config, st store.Store, clk clock.Clock) error {
	emitter, err := notify.NewBusEmitter(&notify.BusConfig{Bus: a.bus})
	if err != nil {
		return fmt.Errorf("failed to create emitter: %w", err)
	}
	random := rng.NewDice(nil)

	accountRepo, err := accounts.New(&accounts.Config{Store: st, Clock: clk})
	if err != nil {
		return fmt.Errorf("failed to create account repository: %w", err)
	}
	challengeRepo, err := challenges.New(&challenges.Config{Store: st, Clock: clk})
	if err != nil {
		return fmt.Errorf("failed to create challenge repository: %w", err)
	}
	guildRepo, err := guilds.New(&guilds.Config{Store: st, Clock: clk})
	if err != nil {
		return fmt.Errorf("failed to create guild repository: %w", err)
	}
	battleRepo, err := guildbattles.New(&guildbattles.Config{Store: st, Clock: clk})
	if err != nil {
		return fmt.Errorf("failed to create guild battle repository: %w", err)
	}
	auctionRepo, err := auctions.New(&auctions.Config{Store: st, Clock: clk})
	if err != nil {
		return fmt.Errorf("failed to create auction repository: %w", err)
	}

	board, err := leaderboard.New(&leaderboard.Config{Guilds: guildRepo, Clock: clk, Size: cfg.Leaderboard.Size})
	if err != nil {
		return fmt.Errorf("failed to create leaderboard: %w", err)
	}

	accountSvc, err := account.NewOrchestrator(&account.Config{
		Store:       st,
		Accounts:    accountRepo,
		IDGenerator: idgen.NewUUID("acct"),
		Emitter:     emitter,
	})
	if err != nil {
		return fmt.Errorf("failed to create account orchestrator: %w", err)
	}
	for _, name := range cfg.Accounts.Admins {
		out, err := accountSvc.EnsureAdmin(ctx, &account.EnsureAdminInput{Name: name})
		if err != nil {
			return fmt.Errorf("failed to seed admin %q: %w", name, err)
		}
		slog.InfoContext(ctx, "admin ready", "account_id", out.Account.ID, "created", out.Created)
	}
	towerSvc, err := tower.NewOrchestrator(&tower.Config{
		Store:    st,
		Accounts: accountRepo,
		Random:   random,
		Emitter:  emitter,
	})
	if err != nil {
		return fmt.Errorf("failed to create tower orchestrator: %w", err)
	}
	challengeSvc, err := challenge.NewOrchestrator(&challenge.Config{
		Store:       st,
		Accounts:    accountRepo,
		Challenges:  challengeRepo,
		IDGenerator: idgen.NewUUID("challenge"),
		Random:      random,
		Clock:       clk,
		Emitter:     emitter,
	})
	if err != nil {
		return fmt.Errorf("failed to create challenge orchestrator: %w", err)
	}
	guildSvc, err := guild.NewOrchestrator(&guild.Config{
		Store:       st,
		Accounts:    accountRepo,
		Guilds:       guildRepo,
		GuildBattles: battleRepo,
		Presence:     a.tracker,
		IDGenerator:  idgen.NewUUID("guild"),
		Random:       random,
		Emitter:      emitter,
	})
	if err != nil {
		return fmt.Errorf("failed to create guild orchestrator: %w", err)
	}
	battleSvc, err := guildbattle.NewOrchestrator(&guildbattle.Config{
		Store:        st,
		Accounts:     accountRepo,
		Guilds:       guildRepo,
		GuildBattles: battleRepo,
		Leaderboard:  board,
		IDGenerator:  idgen.NewUUID("battle"),
		Clock:        clk,
		Emitter:      emitter,
	})
	if err != nil {
		return fmt.Errorf("failed to create guild battle orchestrator: %w", err)
	}
	economySvc, err := economy.NewOrchestrator(&economy.Config{
		Store:       st,
		Accounts:    accountRepo,
		IDGenerator: idgen.NewUUID("pet"),
		Emitter:     emitter,
	})
	if err != nil {
		return fmt.Errorf("failed to create economy orchestrator: %w", err)
	}
	auctionSvc, err := auction.NewOrchestrator(&auction.Config{
		Store:       st,
		Accounts:    accountRepo,
		Auctions:    auctionRepo,
		IDGenerator: idgen.NewUUID("auction"),
		Clock:       clk,
		Emitter:     emitter,
		Window:      cfg.Auction.Window,
	})
	if err != nil {
		return fmt.Errorf("failed to create auction orchestrator: %w", err)
	}

	a.handler, err = v1.NewHandler(&v1.HandlerConfig{
		AccountService:     accountSvc,
		TowerService:       towerSvc,
		ChallengeService:   challengeSvc,
		GuildService:       guildSvc,
		GuildBattleService: battleSvc,
		EconomyService:     economySvc,
		AuctionService:     auctionSvc,
		Leaderboard:        board,
	})
	if err != nil {
		return fmt.Errorf("failed to create arena handler: %w", err)
	}

	jobs := []scheduler.Job{{
		Task:       &scheduler.AuctionSweep{Auctions: auctionSvc},
		Interval:   cfg.Auction.SweepInterval,
		RunOnStart: true,
	}}
	if cfg.Automated.Enabled {
		jobs = append(jobs, scheduler.Job{
			Task:     &scheduler.AutomatedTower{Tower: towerSvc},
			Interval: cfg.Automated.TowerInterval,
		})
	}
	a.scheduler, err = scheduler.New(&scheduler.Config{Jobs: jobs})
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	return nil
}
