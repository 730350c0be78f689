package v1

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"

	"github.com/KirkDiggler/rpg-arena/internal/services/presence"
)

// Acting is implemented by requests made on behalf of one account
type Acting interface {
	ActingAccountID() string
}

// PresenceInterceptor marks the acting account of every request online.
// A failed touch is logged and never fails the call.
func PresenceInterceptor(tracker presence.Tracker) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if a, ok := req.(Acting); ok {
			if id := a.ActingAccountID(); id != "" {
				if err := tracker.Touch(ctx, id); err != nil {
					slog.WarnContext(ctx, "failed to touch presence",
						"account_id", id,
						"error", err)
				}
			}
		}
		return handler(ctx, req)
	}
}

func (r *AccountRequest) ActingAccountID() string            { return r.AccountID }
func (r *CreateChallengeRequest) ActingAccountID() string    { return r.ChallengerID }
func (r *ChallengeActorRequest) ActingAccountID() string     { return r.ActorID }
func (r *SubmitCombatActionRequest) ActingAccountID() string { return r.ActorID }
func (r *CreateGuildRequest) ActingAccountID() string        { return r.MasterID }
func (r *GuildMemberRequest) ActingAccountID() string        { return r.AccountID }
func (r *DepositRequest) ActingAccountID() string            { return r.ActorID }
func (r *BoostStatRequest) ActingAccountID() string          { return r.AccountID }
func (r *BoostPetStatRequest) ActingAccountID() string       { return r.AccountID }
func (r *BoostItemRequest) ActingAccountID() string          { return r.AccountID }
func (r *PetRequest) ActingAccountID() string                { return r.AccountID }
func (r *MergePetsRequest) ActingAccountID() string          { return r.AccountID }
func (r *TradePetRequest) ActingAccountID() string           { return r.SellerID }
func (r *PlaceBidRequest) ActingAccountID() string           { return r.BidderID }
