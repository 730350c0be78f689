// Package client provides test commands for the arena gRPC service
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	v1 "github.com/KirkDiggler/rpg-arena/internal/handlers/arena/v1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the arena",
	Long:  `Client commands exercise the arena service by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Account and tower commands
	ClientCmd.AddCommand(registerCmd)
	ClientCmd.AddCommand(createAccountCmd)
	ClientCmd.AddCommand(getAccountCmd)
	ClientCmd.AddCommand(listAccountsCmd)
	ClientCmd.AddCommand(strengthCmd)
	ClientCmd.AddCommand(battleCmd)

	// Challenge commands
	ClientCmd.AddCommand(challengeCmd)
	ClientCmd.AddCommand(acceptChallengeCmd)
	ClientCmd.AddCommand(combatActionCmd)

	// Guild commands
	ClientCmd.AddCommand(createGuildCmd)
	ClientCmd.AddCommand(joinGuildCmd)
	ClientCmd.AddCommand(dungeonCmd)
	ClientCmd.AddCommand(leaderboardCmd)

	// Economy commands
	ClientCmd.AddCommand(boostStatCmd)
	ClientCmd.AddCommand(evolvePetCmd)

	// Auction commands
	ClientCmd.AddCommand(enqueueAuctionCmd)
	ClientCmd.AddCommand(startAuctionCmd)
	ClientCmd.AddCommand(bidCmd)
	ClientCmd.AddCommand(listAuctionsCmd)
}

// createClient connects to the server and returns an arena client
func createClient() (*v1.Client, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}
	return v1.NewClient(conn), cleanup, nil
}

// call runs fn with a connected client under the request timeout and prints
// the response
func call[Resp any](action string, fn func(context.Context, *v1.Client) (*Resp, error)) error {
	client, cleanup, err := createClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := fn(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	return printJSON(resp)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
