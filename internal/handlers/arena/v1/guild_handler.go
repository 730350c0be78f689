package v1

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/engine/ledger"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/guild"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/guildbattle"
)

// CreateGuild founds a guild with the caller as master
func (h *Handler) CreateGuild(ctx context.Context, req *CreateGuildRequest) (*GuildResponse, error) {
	out, err := h.guilds.CreateGuild(ctx, &guild.CreateGuildInput{Name: req.Name, MasterID: req.MasterID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GuildResponse{Guild: out.Guild}, nil
}

// JoinGuild adds the account to the guild
func (h *Handler) JoinGuild(ctx context.Context, req *GuildMemberRequest) (*GuildResponse, error) {
	out, err := h.guilds.JoinGuild(ctx, &guild.MembershipInput{GuildID: req.GuildID, AccountID: req.AccountID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GuildResponse{Guild: out.Guild, Disbanded: out.Disbanded}, nil
}

// LeaveGuild removes the account from the guild
func (h *Handler) LeaveGuild(ctx context.Context, req *GuildMemberRequest) (*GuildResponse, error) {
	out, err := h.guilds.LeaveGuild(ctx, &guild.MembershipInput{GuildID: req.GuildID, AccountID: req.AccountID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GuildResponse{Guild: out.Guild, Disbanded: out.Disbanded}, nil
}

// GetGuild returns one guild
func (h *Handler) GetGuild(ctx context.Context, req *GuildRequest) (*GuildResponse, error) {
	out, err := h.guilds.GetGuild(ctx, &guild.GetGuildInput{GuildID: req.GuildID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GuildResponse{Guild: out.Guild}, nil
}

// ListGuilds returns every guild
func (h *Handler) ListGuilds(ctx context.Context, _ *Empty) (*ListGuildsResponse, error) {
	out, err := h.guilds.ListGuilds(ctx)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &ListGuildsResponse{Guilds: out.Guilds}, nil
}

// DepositToGuildBank moves a member's resource into the bank
func (h *Handler) DepositToGuildBank(ctx context.Context, req *DepositRequest) (*GuildResponse, error) {
	out, err := h.guilds.DepositToGuildBank(ctx, &guild.DepositInput{
		GuildID:  req.GuildID,
		ActorID:  req.ActorID,
		Resource: req.Resource,
		Amount:   req.Amount,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GuildResponse{Guild: out.Guild}, nil
}

// DistributeFromGuildBank pays members out of the bank
func (h *Handler) DistributeFromGuildBank(ctx context.Context, req *DistributeRequest) (*GuildResponse, error) {
	lines := make([]ledger.Distribution, 0, len(req.Distributions))
	for _, d := range req.Distributions {
		lines = append(lines, ledger.Distribution{
			AccountID: d.AccountID,
			Resource:  d.Resource,
			Amount:    d.Amount,
		})
	}

	out, err := h.guilds.DistributeFromGuildBank(ctx, &guild.DistributeInput{
		GuildID:       req.GuildID,
		MasterID:      req.MasterID,
		Distributions: lines,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GuildResponse{Guild: out.Guild}, nil
}

// LevelUpGuild spends bank gold on the next guild level. AccountID must be
// the guild master.
func (h *Handler) LevelUpGuild(ctx context.Context, req *GuildMemberRequest) (*GuildResponse, error) {
	out, err := h.guilds.LevelUpGuild(ctx, &guild.LevelUpInput{GuildID: req.GuildID, MasterID: req.AccountID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GuildResponse{Guild: out.Guild, LevelUpCost: out.Cost}, nil
}

// FightGuildDungeon fights the guild's next dungeon NPC with its online members
func (h *Handler) FightGuildDungeon(ctx context.Context, req *GuildMemberRequest) (*DungeonResponse, error) {
	out, err := h.guilds.FightGuildDungeon(ctx, &guild.FightDungeonInput{GuildID: req.GuildID, ActorID: req.AccountID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &DungeonResponse{
		Victory:         out.Victory,
		TooWeak:         out.TooWeak,
		Message:         out.Message,
		Boss:            out.Boss,
		DemonLord:       out.DemonLord,
		Floor:           out.Floor,
		Level:           out.Level,
		NewFloor:        out.NewFloor,
		NewLevel:        out.NewLevel,
		Rewards:         out.Rewards,
		PlayerPower:     out.PlayerPower,
		NpcPower:        out.NpcPower,
		AffinityApplied: out.AffinityApplied,
		NpcImmunities:   out.NpcImmunities,
		OnlineMembers:   out.OnlineMembers,
		Guild:           out.Guild,
	}, nil
}

// ChallengeGuild challenges another guild with a roster
func (h *Handler) ChallengeGuild(ctx context.Context, req *ChallengeGuildRequest) (*GuildBattleResponse, error) {
	out, err := h.guildBattles.ChallengeGuild(ctx, &guildbattle.ChallengeGuildInput{
		ChallengerGuildID: req.ChallengerGuildID,
		ChallengedGuildID: req.ChallengedGuildID,
		MasterID:          req.MasterID,
		Roster:            req.Roster,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GuildBattleResponse{Battle: out.Battle}, nil
}

// AcceptGuildBattle accepts a pending battle with the defending roster
func (h *Handler) AcceptGuildBattle(ctx context.Context, req *RespondGuildBattleRequest) (*GuildBattleResponse, error) {
	out, err := h.guildBattles.AcceptGuildBattle(ctx, &guildbattle.AcceptInput{
		BattleID: req.BattleID,
		MasterID: req.MasterID,
		Roster:   req.Roster,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GuildBattleResponse{Battle: out.Battle}, nil
}

// DeclineGuildBattle declines a pending battle
func (h *Handler) DeclineGuildBattle(ctx context.Context, req *RespondGuildBattleRequest) (*GuildBattleResponse, error) {
	out, err := h.guildBattles.DeclineGuildBattle(ctx, &guildbattle.DeclineInput{
		BattleID: req.BattleID,
		MasterID: req.MasterID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GuildBattleResponse{Battle: out.Battle}, nil
}

// SetGuildBattleRoundWinner records the current round's winner
func (h *Handler) SetGuildBattleRoundWinner(ctx context.Context, req *SetRoundWinnerRequest) (*GuildBattleResponse, error) {
	out, err := h.guildBattles.SetRoundWinner(ctx, &guildbattle.SetRoundWinnerInput{
		BattleID:      req.BattleID,
		AdminID:       req.AdminID,
		WinnerActorID: req.WinnerActorID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GuildBattleResponse{Battle: out.Battle, Completed: out.Completed, Draw: out.Draw}, nil
}

// GetGuildBattle returns a battle with its rosters resolved to fighters
func (h *Handler) GetGuildBattle(ctx context.Context, req *GuildBattleRequest) (*GuildBattleResponse, error) {
	out, err := h.guildBattles.GetGuildBattle(ctx, &guildbattle.GetGuildBattleInput{BattleID: req.BattleID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GuildBattleResponse{
		Battle:             out.Battle,
		ChallengerFighters: out.ChallengerFighters,
		ChallengedFighters: out.ChallengedFighters,
	}, nil
}

// ListGuildBattles returns every battle a guild took part in
func (h *Handler) ListGuildBattles(ctx context.Context, req *GuildRequest) (*ListGuildBattlesResponse, error) {
	out, err := h.guildBattles.ListGuildBattles(ctx, &guildbattle.ListGuildBattlesInput{GuildID: req.GuildID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &ListGuildBattlesResponse{Battles: out.Battles}, nil
}

// GetGuildLeaderboard returns the cached guild wins ranking
func (h *Handler) GetGuildLeaderboard(ctx context.Context, _ *Empty) (*LeaderboardResponse, error) {
	snap, err := h.leaderboard.GuildWins(ctx)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &LeaderboardResponse{Entries: snap.Entries, UpdatedAt: snap.UpdatedAt}, nil
}
