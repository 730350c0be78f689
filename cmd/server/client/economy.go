package client

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	v1 "github.com/KirkDiggler/rpg-arena/internal/handlers/arena/v1"
)

var (
	boostAccountID string
	boostStat      string
	boostPoints    int64
	petAccountID   string
	petID          string
)

var boostStatCmd = &cobra.Command{
	Use:   "boost-stat",
	Short: "Spend training points on a base stat",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("boost stat", func(ctx context.Context, c *v1.Client) (*v1.BoostResponse, error) {
			return c.BoostStat(ctx, &v1.BoostStatRequest{
				AccountID: boostAccountID,
				Stat:      entities.Stat(boostStat),
				Points:    entities.Num(boostPoints),
			})
		})
	},
}

var evolvePetCmd = &cobra.Command{
	Use:   "evolve-pet",
	Short: "Evolve a pet to its next tier",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("evolve pet", func(ctx context.Context, c *v1.Client) (*v1.PetResponse, error) {
			return c.EvolvePet(ctx, &v1.PetRequest{AccountID: petAccountID, PetID: petID})
		})
	},
}

func init() {
	boostStatCmd.Flags().StringVar(&boostAccountID, "account-id", "", "Account ID (required)")
	boostStatCmd.Flags().StringVar(&boostStat, "stat", "str", "Stat: str, def, spd, int, luck or pot")
	boostStatCmd.Flags().Int64Var(&boostPoints, "points", 1, "Points to add")
	_ = boostStatCmd.MarkFlagRequired("account-id") // nolint:errcheck // safe to ignore in init

	evolvePetCmd.Flags().StringVar(&petAccountID, "account-id", "", "Owner account ID (required)")
	evolvePetCmd.Flags().StringVar(&petID, "pet-id", "", "Pet ID (required)")
	_ = evolvePetCmd.MarkFlagRequired("account-id") // nolint:errcheck // safe to ignore in init
	_ = evolvePetCmd.MarkFlagRequired("pet-id")     // nolint:errcheck // safe to ignore in init
}
