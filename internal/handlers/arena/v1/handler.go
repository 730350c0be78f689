// Package v1 handles the arena gRPC service interface
package v1

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/account"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/auction"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/challenge"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/economy"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/guild"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/guildbattle"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/tower"
	"github.com/KirkDiggler/rpg-arena/internal/services/leaderboard"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	AccountService     account.Service
	TowerService       tower.Service
	ChallengeService   challenge.Service
	GuildService       guild.Service
	GuildBattleService guildbattle.Service
	EconomyService     economy.Service
	AuctionService     auction.Service
	Leaderboard        leaderboard.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.AccountService == nil {
		vb.RequiredField("AccountService")
	}
	if c.TowerService == nil {
		vb.RequiredField("TowerService")
	}
	if c.ChallengeService == nil {
		vb.RequiredField("ChallengeService")
	}
	if c.GuildService == nil {
		vb.RequiredField("GuildService")
	}
	if c.GuildBattleService == nil {
		vb.RequiredField("GuildBattleService")
	}
	if c.EconomyService == nil {
		vb.RequiredField("EconomyService")
	}
	if c.AuctionService == nil {
		vb.RequiredField("AuctionService")
	}
	if c.Leaderboard == nil {
		vb.RequiredField("Leaderboard")
	}

	return vb.Build()
}

// Handler implements the arena gRPC service
type Handler struct {
	accounts     account.Service
	tower        tower.Service
	challenges   challenge.Service
	guilds       guild.Service
	guildBattles guildbattle.Service
	economy      economy.Service
	auctions     auction.Service
	leaderboard  leaderboard.Service
}

var _ ArenaServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		accounts:     cfg.AccountService,
		tower:        cfg.TowerService,
		challenges:   cfg.ChallengeService,
		guilds:       cfg.GuildService,
		guildBattles: cfg.GuildBattleService,
		economy:      cfg.EconomyService,
		auctions:     cfg.AuctionService,
		leaderboard:  cfg.Leaderboard,
	}, nil
}

// Register creates a player account with starting stats and gold
func (h *Handler) Register(ctx context.Context, req *RegisterRequest) (*AccountResponse, error) {
	out, err := h.accounts.Register(ctx, &account.RegisterInput{Name: req.Name})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &AccountResponse{Account: out.Account}, nil
}

// CreateAccount lets an admin create admin or automated accounts
func (h *Handler) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*AccountResponse, error) {
	if req.AdminID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("adminId is required"))
	}

	out, err := h.accounts.Register(ctx, &account.RegisterInput{
		Name:        req.Name,
		Role:        req.Role,
		IsAutomated: req.IsAutomated,
		CreatedBy:   req.AdminID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &AccountResponse{Account: out.Account}, nil
}

// GetAccount returns one account
func (h *Handler) GetAccount(ctx context.Context, req *AccountRequest) (*AccountResponse, error) {
	if req.AccountID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("accountId is required"))
	}

	out, err := h.accounts.GetAccount(ctx, &account.GetAccountInput{AccountID: req.AccountID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &AccountResponse{Account: out.Account}, nil
}

// ListAccounts returns every account, optionally only automated ones
func (h *Handler) ListAccounts(ctx context.Context, req *ListAccountsRequest) (*ListAccountsResponse, error) {
	out, err := h.accounts.ListAccounts(ctx, &account.ListAccountsInput{AutomatedOnly: req.AutomatedOnly})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &ListAccountsResponse{Accounts: out.Accounts}, nil
}

// DeleteAccount removes a player account
func (h *Handler) DeleteAccount(ctx context.Context, req *AccountRequest) (*Empty, error) {
	if req.AccountID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("accountId is required"))
	}

	if _, err := h.accounts.DeleteAccount(ctx, &account.DeleteAccountInput{AccountID: req.AccountID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &Empty{}, nil
}

// SetRank changes an account's rank
func (h *Handler) SetRank(ctx context.Context, req *SetRankRequest) (*AccountResponse, error) {
	out, err := h.accounts.SetRank(ctx, &account.SetRankInput{
		AdminID:   req.AdminID,
		AccountID: req.AccountID,
		Rank:      req.Rank,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &AccountResponse{Account: out.Account}, nil
}

// ComputeStrength returns the strength scalar shown everywhere
func (h *Handler) ComputeStrength(ctx context.Context, req *AccountRequest) (*StrengthResponse, error) {
	if req.AccountID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("accountId is required"))
	}

	out, err := h.accounts.ComputeStrength(ctx, &account.ComputeStrengthInput{AccountID: req.AccountID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &StrengthResponse{
		AccountID:    req.AccountID,
		Strength:     out.Strength,
		Base:         out.Breakdown.Base,
		Equipment:    out.Breakdown.Equipment,
		Pet:          out.Breakdown.Pet,
		PetElemental: out.Breakdown.PetElemental,
	}, nil
}

// BattleNPC fights the next tower NPC
func (h *Handler) BattleNPC(ctx context.Context, req *AccountRequest) (*BattleNPCResponse, error) {
	if req.AccountID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("accountId is required"))
	}

	out, err := h.tower.BattleNPC(ctx, &tower.BattleNPCInput{AccountID: req.AccountID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &BattleNPCResponse{
		Won:                  out.Won,
		Boss:                 out.Boss,
		Floor:                out.Floor,
		Level:                out.Level,
		NewFloor:             out.NewFloor,
		NewLevel:             out.NewLevel,
		GlobalLevel:          out.GlobalLevel,
		Rewards:              out.Rewards,
		PetExpGranted:        out.PetExpGranted,
		PetImmune:            out.PetImmune,
		NpcImmunities:        out.NpcImmunities,
		NpcPower:             out.NpcPower,
		EffectiveNpcPower:    out.EffectiveNpcPower,
		PlayerPower:          out.PlayerPower,
		EffectivePlayerPower: out.EffectivePlayerPower,
		Account:              out.Account,
	}, nil
}
