package v1

import (
	"context"

	"google.golang.org/grpc"
)

// Client calls the arena service over a gRPC connection using the JSON codec
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps a connection
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func invoke[Resp any](ctx context.Context, c *Client, name string, req any, opts []grpc.CallOption) (*Resp, error) {
	resp := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.conn.Invoke(ctx, FullMethod(name), req, resp, opts...); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Register(ctx context.Context, req *RegisterRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c, "Register", req, opts)
}

func (c *Client) CreateAccount(ctx context.Context, req *CreateAccountRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c, "CreateAccount", req, opts)
}

func (c *Client) GetAccount(ctx context.Context, req *AccountRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c, "GetAccount", req, opts)
}

func (c *Client) ListAccounts(ctx context.Context, req *ListAccountsRequest, opts ...grpc.CallOption) (*ListAccountsResponse, error) {
	return invoke[ListAccountsResponse](ctx, c, "ListAccounts", req, opts)
}

func (c *Client) DeleteAccount(ctx context.Context, req *AccountRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "DeleteAccount", req, opts)
}

func (c *Client) SetRank(ctx context.Context, req *SetRankRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c, "SetRank", req, opts)
}

func (c *Client) ComputeStrength(ctx context.Context, req *AccountRequest, opts ...grpc.CallOption) (*StrengthResponse, error) {
	return invoke[StrengthResponse](ctx, c, "ComputeStrength", req, opts)
}

func (c *Client) BattleNPC(ctx context.Context, req *AccountRequest, opts ...grpc.CallOption) (*BattleNPCResponse, error) {
	return invoke[BattleNPCResponse](ctx, c, "BattleNPC", req, opts)
}

func (c *Client) CreateChallenge(ctx context.Context, req *CreateChallengeRequest, opts ...grpc.CallOption) (*ChallengeResponse, error) {
	return invoke[ChallengeResponse](ctx, c, "CreateChallenge", req, opts)
}

func (c *Client) AcceptChallenge(ctx context.Context, req *ChallengeActorRequest, opts ...grpc.CallOption) (*ChallengeResponse, error) {
	return invoke[ChallengeResponse](ctx, c, "AcceptChallenge", req, opts)
}

func (c *Client) DeclineChallenge(ctx context.Context, req *ChallengeActorRequest, opts ...grpc.CallOption) (*ChallengeResponse, error) {
	return invoke[ChallengeResponse](ctx, c, "DeclineChallenge", req, opts)
}

func (c *Client) CancelChallenge(ctx context.Context, req *ChallengeActorRequest, opts ...grpc.CallOption) (*ChallengeResponse, error) {
	return invoke[ChallengeResponse](ctx, c, "CancelChallenge", req, opts)
}

func (c *Client) GetChallenge(ctx context.Context, req *ChallengeRequest, opts ...grpc.CallOption) (*ChallengeResponse, error) {
	return invoke[ChallengeResponse](ctx, c, "GetChallenge", req, opts)
}

func (c *Client) ListChallenges(ctx context.Context, req *AccountRequest, opts ...grpc.CallOption) (*ListChallengesResponse, error) {
	return invoke[ListChallengesResponse](ctx, c, "ListChallenges", req, opts)
}

func (c *Client) GetCombatState(ctx context.Context, req *ChallengeActorRequest, opts ...grpc.CallOption) (*CombatResponse, error) {
	return invoke[CombatResponse](ctx, c, "GetCombatState", req, opts)
}

func (c *Client) SubmitCombatAction(ctx context.Context, req *SubmitCombatActionRequest, opts ...grpc.CallOption) (*CombatResponse, error) {
	return invoke[CombatResponse](ctx, c, "SubmitCombatAction", req, opts)
}

func (c *Client) OverrideNPCAction(ctx context.Context, req *OverrideNPCActionRequest, opts ...grpc.CallOption) (*CombatResponse, error) {
	return invoke[CombatResponse](ctx, c, "OverrideNPCAction", req, opts)
}

func (c *Client) CreateGuild(ctx context.Context, req *CreateGuildRequest, opts ...grpc.CallOption) (*GuildResponse, error) {
	return invoke[GuildResponse](ctx, c, "CreateGuild", req, opts)
}

func (c *Client) JoinGuild(ctx context.Context, req *GuildMemberRequest, opts ...grpc.CallOption) (*GuildResponse, error) {
	return invoke[GuildResponse](ctx, c, "JoinGuild", req, opts)
}

func (c *Client) LeaveGuild(ctx context.Context, req *GuildMemberRequest, opts ...grpc.CallOption) (*GuildResponse, error) {
	return invoke[GuildResponse](ctx, c, "LeaveGuild", req, opts)
}

func (c *Client) GetGuild(ctx context.Context, req *GuildRequest, opts ...grpc.CallOption) (*GuildResponse, error) {
	return invoke[GuildResponse](ctx, c, "GetGuild", req, opts)
}

func (c *Client) ListGuilds(ctx context.Context, req *Empty, opts ...grpc.CallOption) (*ListGuildsResponse, error) {
	return invoke[ListGuildsResponse](ctx, c, "ListGuilds", req, opts)
}

func (c *Client) DepositToGuildBank(ctx context.Context, req *DepositRequest, opts ...grpc.CallOption) (*GuildResponse, error) {
	return invoke[GuildResponse](ctx, c, "DepositToGuildBank", req, opts)
}

func (c *Client) DistributeFromGuildBank(ctx context.Context, req *DistributeRequest, opts ...grpc.CallOption) (*GuildResponse, error) {
	return invoke[GuildResponse](ctx, c, "DistributeFromGuildBank", req, opts)
}

func (c *Client) LevelUpGuild(ctx context.Context, req *GuildMemberRequest, opts ...grpc.CallOption) (*GuildResponse, error) {
	return invoke[GuildResponse](ctx, c, "LevelUpGuild", req, opts)
}

func (c *Client) FightGuildDungeon(ctx context.Context, req *GuildMemberRequest, opts ...grpc.CallOption) (*DungeonResponse, error) {
	return invoke[DungeonResponse](ctx, c, "FightGuildDungeon", req, opts)
}

func (c *Client) ChallengeGuild(ctx context.Context, req *ChallengeGuildRequest, opts ...grpc.CallOption) (*GuildBattleResponse, error) {
	return invoke[GuildBattleResponse](ctx, c, "ChallengeGuild", req, opts)
}

func (c *Client) AcceptGuildBattle(ctx context.Context, req *RespondGuildBattleRequest, opts ...grpc.CallOption) (*GuildBattleResponse, error) {
	return invoke[GuildBattleResponse](ctx, c, "AcceptGuildBattle", req, opts)
}

func (c *Client) DeclineGuildBattle(ctx context.Context, req *RespondGuildBattleRequest, opts ...grpc.CallOption) (*GuildBattleResponse, error) {
	return invoke[GuildBattleResponse](ctx, c, "DeclineGuildBattle", req, opts)
}

func (c *Client) SetGuildBattleRoundWinner(ctx context.Context, req *SetRoundWinnerRequest, opts ...grpc.CallOption) (*GuildBattleResponse, error) {
	return invoke[GuildBattleResponse](ctx, c, "SetGuildBattleRoundWinner", req, opts)
}

func (c *Client) GetGuildBattle(ctx context.Context, req *GuildBattleRequest, opts ...grpc.CallOption) (*GuildBattleResponse, error) {
	return invoke[GuildBattleResponse](ctx, c, "GetGuildBattle", req, opts)
}

func (c *Client) ListGuildBattles(ctx context.Context, req *GuildRequest, opts ...grpc.CallOption) (*ListGuildBattlesResponse, error) {
	return invoke[ListGuildBattlesResponse](ctx, c, "ListGuildBattles", req, opts)
}

func (c *Client) GetGuildLeaderboard(ctx context.Context, req *Empty, opts ...grpc.CallOption) (*LeaderboardResponse, error) {
	return invoke[LeaderboardResponse](ctx, c, "GetGuildLeaderboard", req, opts)
}

func (c *Client) BoostStat(ctx context.Context, req *BoostStatRequest, opts ...grpc.CallOption) (*BoostResponse, error) {
	return invoke[BoostResponse](ctx, c, "BoostStat", req, opts)
}

func (c *Client) BoostPetStat(ctx context.Context, req *BoostPetStatRequest, opts ...grpc.CallOption) (*BoostResponse, error) {
	return invoke[BoostResponse](ctx, c, "BoostPetStat", req, opts)
}

func (c *Client) BoostItem(ctx context.Context, req *BoostItemRequest, opts ...grpc.CallOption) (*BoostResponse, error) {
	return invoke[BoostResponse](ctx, c, "BoostItem", req, opts)
}

func (c *Client) EquipPet(ctx context.Context, req *PetRequest, opts ...grpc.CallOption) (*PetResponse, error) {
	return invoke[PetResponse](ctx, c, "EquipPet", req, opts)
}

func (c *Client) UnequipPet(ctx context.Context, req *AccountRequest, opts ...grpc.CallOption) (*PetResponse, error) {
	return invoke[PetResponse](ctx, c, "UnequipPet", req, opts)
}

func (c *Client) EvolvePet(ctx context.Context, req *PetRequest, opts ...grpc.CallOption) (*PetResponse, error) {
	return invoke[PetResponse](ctx, c, "EvolvePet", req, opts)
}

func (c *Client) MergePets(ctx context.Context, req *MergePetsRequest, opts ...grpc.CallOption) (*PetResponse, error) {
	return invoke[PetResponse](ctx, c, "MergePets", req, opts)
}

func (c *Client) TradePet(ctx context.Context, req *TradePetRequest, opts ...grpc.CallOption) (*TradePetResponse, error) {
	return invoke[TradePetResponse](ctx, c, "TradePet", req, opts)
}

func (c *Client) GrantPet(ctx context.Context, req *GrantPetRequest, opts ...grpc.CallOption) (*PetResponse, error) {
	return invoke[PetResponse](ctx, c, "GrantPet", req, opts)
}

func (c *Client) EnqueueAuction(ctx context.Context, req *EnqueueAuctionRequest, opts ...grpc.CallOption) (*AuctionResponse, error) {
	return invoke[AuctionResponse](ctx, c, "EnqueueAuction", req, opts)
}

func (c *Client) StartNextAuction(ctx context.Context, req *AdminRequest, opts ...grpc.CallOption) (*AuctionResponse, error) {
	return invoke[AuctionResponse](ctx, c, "StartNextAuction", req, opts)
}

func (c *Client) PlaceBid(ctx context.Context, req *PlaceBidRequest, opts ...grpc.CallOption) (*BidResponse, error) {
	return invoke[BidResponse](ctx, c, "PlaceBid", req, opts)
}

func (c *Client) FinalizeAuction(ctx context.Context, req *FinalizeAuctionRequest, opts ...grpc.CallOption) (*FinalizeAuctionResponse, error) {
	return invoke[FinalizeAuctionResponse](ctx, c, "FinalizeAuction", req, opts)
}

func (c *Client) GetAuction(ctx context.Context, req *AuctionRequest, opts ...grpc.CallOption) (*AuctionResponse, error) {
	return invoke[AuctionResponse](ctx, c, "GetAuction", req, opts)
}

func (c *Client) ListAuctions(ctx context.Context, req *ListAuctionsRequest, opts ...grpc.CallOption) (*ListAuctionsResponse, error) {
	return invoke[ListAuctionsResponse](ctx, c, "ListAuctions", req, opts)
}
