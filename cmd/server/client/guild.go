package client

import (
	"context"

	"github.com/spf13/cobra"

	v1 "github.com/KirkDiggler/rpg-arena/internal/handlers/arena/v1"
)

var (
	guildID   string
	guildName string
	memberID  string
)

var createGuildCmd = &cobra.Command{
	Use:   "create-guild",
	Short: "Found a guild",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("create guild", func(ctx context.Context, c *v1.Client) (*v1.GuildResponse, error) {
			return c.CreateGuild(ctx, &v1.CreateGuildRequest{Name: guildName, MasterID: memberID})
		})
	},
}

var joinGuildCmd = &cobra.Command{
	Use:   "join-guild",
	Short: "Join a guild",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("join guild", func(ctx context.Context, c *v1.Client) (*v1.GuildResponse, error) {
			return c.JoinGuild(ctx, &v1.GuildMemberRequest{GuildID: guildID, AccountID: memberID})
		})
	},
}

var dungeonCmd = &cobra.Command{
	Use:   "dungeon",
	Short: "Fight the guild's next dungeon NPC",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("fight dungeon", func(ctx context.Context, c *v1.Client) (*v1.DungeonResponse, error) {
			return c.FightGuildDungeon(ctx, &v1.GuildMemberRequest{GuildID: guildID, AccountID: memberID})
		})
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the guild wins leaderboard",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("get leaderboard", func(ctx context.Context, c *v1.Client) (*v1.LeaderboardResponse, error) {
			return c.GetGuildLeaderboard(ctx, &v1.Empty{})
		})
	},
}

func init() {
	createGuildCmd.Flags().StringVar(&guildName, "name", "", "Guild name (required)")
	createGuildCmd.Flags().StringVar(&memberID, "master-id", "", "Founding account ID (required)")
	_ = createGuildCmd.MarkFlagRequired("name")      // nolint:errcheck // safe to ignore in init
	_ = createGuildCmd.MarkFlagRequired("master-id") // nolint:errcheck // safe to ignore in init

	for _, cmd := range []*cobra.Command{joinGuildCmd, dungeonCmd} {
		cmd.Flags().StringVar(&guildID, "guild-id", "", "Guild ID (required)")
		cmd.Flags().StringVar(&memberID, "account-id", "", "Member account ID (required)")
		_ = cmd.MarkFlagRequired("guild-id")   // nolint:errcheck // safe to ignore in init
		_ = cmd.MarkFlagRequired("account-id") // nolint:errcheck // safe to ignore in init
	}
}
