package client

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	v1 "github.com/KirkDiggler/rpg-arena/internal/handlers/arena/v1"
)

var (
	accountID     string
	accountName   string
	accountRole   string
	automated     bool
	automatedOnly bool
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("register", func(ctx context.Context, c *v1.Client) (*v1.AccountResponse, error) {
			return c.Register(ctx, &v1.RegisterRequest{Name: accountName})
		})
	},
}

var createAccountCmd = &cobra.Command{
	Use:   "create-account",
	Short: "Create an admin or automated account (admin only)",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("create account", func(ctx context.Context, c *v1.Client) (*v1.AccountResponse, error) {
			return c.CreateAccount(ctx, &v1.CreateAccountRequest{
				AdminID:     adminID,
				Name:        accountName,
				Role:        entities.Role(accountRole),
				IsAutomated: automated,
			})
		})
	},
}

var getAccountCmd = &cobra.Command{
	Use:   "get-account",
	Short: "Show an account",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("get account", func(ctx context.Context, c *v1.Client) (*v1.AccountResponse, error) {
			return c.GetAccount(ctx, &v1.AccountRequest{AccountID: accountID})
		})
	},
}

var listAccountsCmd = &cobra.Command{
	Use:   "list-accounts",
	Short: "List accounts",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("list accounts", func(ctx context.Context, c *v1.Client) (*v1.ListAccountsResponse, error) {
			return c.ListAccounts(ctx, &v1.ListAccountsRequest{AutomatedOnly: automatedOnly})
		})
	},
}

var strengthCmd = &cobra.Command{
	Use:   "strength",
	Short: "Show an account's strength breakdown",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("compute strength", func(ctx context.Context, c *v1.Client) (*v1.StrengthResponse, error) {
			return c.ComputeStrength(ctx, &v1.AccountRequest{AccountID: accountID})
		})
	},
}

var battleCmd = &cobra.Command{
	Use:   "battle",
	Short: "Fight the next tower NPC",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("battle", func(ctx context.Context, c *v1.Client) (*v1.BattleNPCResponse, error) {
			return c.BattleNPC(ctx, &v1.AccountRequest{AccountID: accountID})
		})
	},
}

func init() {
	registerCmd.Flags().StringVar(&accountName, "name", "", "Display name (required)")
	_ = registerCmd.MarkFlagRequired("name") // nolint:errcheck // safe to ignore in init

	createAccountCmd.Flags().StringVar(&adminID, "admin-id", "", "Admin account ID (required)")
	createAccountCmd.Flags().StringVar(&accountName, "name", "", "Display name (required)")
	createAccountCmd.Flags().StringVar(&accountRole, "role", "", "Role: player or admin")
	createAccountCmd.Flags().BoolVar(&automated, "automated", false, "Create an automated account")
	_ = createAccountCmd.MarkFlagRequired("admin-id") // nolint:errcheck // safe to ignore in init
	_ = createAccountCmd.MarkFlagRequired("name")     // nolint:errcheck // safe to ignore in init

	listAccountsCmd.Flags().BoolVar(&automatedOnly, "automated-only", false, "Only automated accounts")

	for _, cmd := range []*cobra.Command{getAccountCmd, strengthCmd, battleCmd} {
		cmd.Flags().StringVar(&accountID, "account-id", "", "Account ID (required)")
		_ = cmd.MarkFlagRequired("account-id") // nolint:errcheck // safe to ignore in init
	}
}
