package v1

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/auction"
)

// EnqueueAuction queues a skill auction
func (h *Handler) EnqueueAuction(ctx context.Context, req *EnqueueAuctionRequest) (*AuctionResponse, error) {
	out, err := h.auctions.EnqueueAuction(ctx, &auction.EnqueueAuctionInput{
		AdminID:   req.AdminID,
		SkillID:   req.SkillID,
		SkillName: req.SkillName,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &AuctionResponse{Auction: out.Auction}, nil
}

// StartNextAuction activates the head of the queue
func (h *Handler) StartNextAuction(ctx context.Context, req *AdminRequest) (*AuctionResponse, error) {
	out, err := h.auctions.StartNext(ctx, &auction.StartNextInput{AdminID: req.AdminID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &AuctionResponse{Auction: out.Auction}, nil
}

// PlaceBid bids gold on the active auction
func (h *Handler) PlaceBid(ctx context.Context, req *PlaceBidRequest) (*BidResponse, error) {
	out, err := h.auctions.PlaceBid(ctx, &auction.PlaceBidInput{
		AuctionID: req.AuctionID,
		BidderID:  req.BidderID,
		Amount:    req.Amount,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &BidResponse{Bid: out.Bid, Auction: out.Auction}, nil
}

// FinalizeAuction settles an auction ahead of its window
func (h *Handler) FinalizeAuction(ctx context.Context, req *FinalizeAuctionRequest) (*FinalizeAuctionResponse, error) {
	out, err := h.auctions.FinalizeAuction(ctx, &auction.FinalizeAuctionInput{
		AdminID:   req.AdminID,
		AuctionID: req.AuctionID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &FinalizeAuctionResponse{
		Auction:          out.Auction,
		WinnerID:         out.WinnerID,
		Defaulted:        out.Defaulted,
		AlreadyCompleted: out.AlreadyCompleted,
		Started:          out.Started,
	}, nil
}

// GetAuction returns one auction
func (h *Handler) GetAuction(ctx context.Context, req *AuctionRequest) (*AuctionResponse, error) {
	out, err := h.auctions.GetAuction(ctx, &auction.GetAuctionInput{AuctionID: req.AuctionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &AuctionResponse{Auction: out.Auction}, nil
}

// ListAuctions returns auctions with the current schedule
func (h *Handler) ListAuctions(ctx context.Context, req *ListAuctionsRequest) (*ListAuctionsResponse, error) {
	out, err := h.auctions.ListAuctions(ctx, &auction.ListAuctionsInput{Status: req.Status})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &ListAuctionsResponse{Auctions: out.Auctions, ActiveID: out.ActiveID, Queue: out.Queue}, nil
}
