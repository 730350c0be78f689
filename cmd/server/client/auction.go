package client

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	v1 "github.com/KirkDiggler/rpg-arena/internal/handlers/arena/v1"
)

var (
	adminID       string
	skillID       string
	skillName     string
	auctionID     string
	bidderID      string
	bidAmount     int64
	auctionStatus string
)

var enqueueAuctionCmd = &cobra.Command{
	Use:   "enqueue-auction",
	Short: "Queue a skill auction (admin)",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("enqueue auction", func(ctx context.Context, c *v1.Client) (*v1.AuctionResponse, error) {
			return c.EnqueueAuction(ctx, &v1.EnqueueAuctionRequest{
				AdminID:   adminID,
				SkillID:   skillID,
				SkillName: skillName,
			})
		})
	},
}

var startAuctionCmd = &cobra.Command{
	Use:   "start-auction",
	Short: "Start the next queued auction (admin)",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("start auction", func(ctx context.Context, c *v1.Client) (*v1.AuctionResponse, error) {
			return c.StartNextAuction(ctx, &v1.AdminRequest{AdminID: adminID})
		})
	},
}

var bidCmd = &cobra.Command{
	Use:   "bid",
	Short: "Bid gold on the active auction",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("place bid", func(ctx context.Context, c *v1.Client) (*v1.BidResponse, error) {
			return c.PlaceBid(ctx, &v1.PlaceBidRequest{
				AuctionID: auctionID,
				BidderID:  bidderID,
				Amount:    entities.Num(bidAmount),
			})
		})
	},
}

var listAuctionsCmd = &cobra.Command{
	Use:   "list-auctions",
	Short: "List auctions and the schedule",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("list auctions", func(ctx context.Context, c *v1.Client) (*v1.ListAuctionsResponse, error) {
			return c.ListAuctions(ctx, &v1.ListAuctionsRequest{Status: entities.AuctionStatus(auctionStatus)})
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{enqueueAuctionCmd, startAuctionCmd} {
		cmd.Flags().StringVar(&adminID, "admin-id", "", "Admin account ID (required)")
		_ = cmd.MarkFlagRequired("admin-id") // nolint:errcheck // safe to ignore in init
	}
	enqueueAuctionCmd.Flags().StringVar(&skillID, "skill-id", "", "Skill ID (required)")
	enqueueAuctionCmd.Flags().StringVar(&skillName, "skill-name", "", "Display name")
	_ = enqueueAuctionCmd.MarkFlagRequired("skill-id") // nolint:errcheck // safe to ignore in init

	bidCmd.Flags().StringVar(&auctionID, "auction-id", "", "Auction ID (required)")
	bidCmd.Flags().StringVar(&bidderID, "bidder-id", "", "Bidder account ID (required)")
	bidCmd.Flags().Int64Var(&bidAmount, "amount", 0, "Gold to bid (required)")
	_ = bidCmd.MarkFlagRequired("auction-id") // nolint:errcheck // safe to ignore in init
	_ = bidCmd.MarkFlagRequired("bidder-id")  // nolint:errcheck // safe to ignore in init
	_ = bidCmd.MarkFlagRequired("amount")     // nolint:errcheck // safe to ignore in init

	listAuctionsCmd.Flags().StringVar(&auctionStatus, "status", "", "Filter: queued, active or completed")
}
