package client

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	v1 "github.com/KirkDiggler/rpg-arena/internal/handlers/arena/v1"
)

var (
	challengerID string
	challengedID string
	challengeID  string
	actorID      string
	combatAction string
)

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Challenge another account to PvP",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("create challenge", func(ctx context.Context, c *v1.Client) (*v1.ChallengeResponse, error) {
			return c.CreateChallenge(ctx, &v1.CreateChallengeRequest{
				ChallengerID: challengerID,
				ChallengedID: challengedID,
			})
		})
	},
}

var acceptChallengeCmd = &cobra.Command{
	Use:   "accept-challenge",
	Short: "Accept a pending challenge",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("accept challenge", func(ctx context.Context, c *v1.Client) (*v1.ChallengeResponse, error) {
			return c.AcceptChallenge(ctx, &v1.ChallengeActorRequest{ChallengeID: challengeID, ActorID: actorID})
		})
	},
}

var combatActionCmd = &cobra.Command{
	Use:   "combat-action",
	Short: "Submit a combat action: attack, defend, dodge or trick",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("submit action", func(ctx context.Context, c *v1.Client) (*v1.CombatResponse, error) {
			return c.SubmitCombatAction(ctx, &v1.SubmitCombatActionRequest{
				ChallengeID: challengeID,
				ActorID:     actorID,
				Action:      entities.Action(combatAction),
			})
		})
	},
}

func init() {
	challengeCmd.Flags().StringVar(&challengerID, "challenger-id", "", "Challenger account ID (required)")
	challengeCmd.Flags().StringVar(&challengedID, "challenged-id", "", "Challenged account ID (required)")
	_ = challengeCmd.MarkFlagRequired("challenger-id") // nolint:errcheck // safe to ignore in init
	_ = challengeCmd.MarkFlagRequired("challenged-id") // nolint:errcheck // safe to ignore in init

	for _, cmd := range []*cobra.Command{acceptChallengeCmd, combatActionCmd} {
		cmd.Flags().StringVar(&challengeID, "challenge-id", "", "Challenge ID (required)")
		cmd.Flags().StringVar(&actorID, "actor-id", "", "Acting account ID (required)")
		_ = cmd.MarkFlagRequired("challenge-id") // nolint:errcheck // safe to ignore in init
		_ = cmd.MarkFlagRequired("actor-id")     // nolint:errcheck // safe to ignore in init
	}
	combatActionCmd.Flags().StringVar(&combatAction, "action", "attack", "Combat action")
}
