package v1

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "arena.v1.ArenaService"

// ArenaServiceServer is the server API for the arena service
type ArenaServiceServer interface {
	// Accounts
	Register(context.Context, *RegisterRequest) (*AccountResponse, error)
	CreateAccount(context.Context, *CreateAccountRequest) (*AccountResponse, error)
	GetAccount(context.Context, *AccountRequest) (*AccountResponse, error)
	ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error)
	DeleteAccount(context.Context, *AccountRequest) (*Empty, error)
	SetRank(context.Context, *SetRankRequest) (*AccountResponse, error)
	ComputeStrength(context.Context, *AccountRequest) (*StrengthResponse, error)

	// Tower
	BattleNPC(context.Context, *AccountRequest) (*BattleNPCResponse, error)

	// Challenges
	CreateChallenge(context.Context, *CreateChallengeRequest) (*ChallengeResponse, error)
	AcceptChallenge(context.Context, *ChallengeActorRequest) (*ChallengeResponse, error)
	DeclineChallenge(context.Context, *ChallengeActorRequest) (*ChallengeResponse, error)
	CancelChallenge(context.Context, *ChallengeActorRequest) (*ChallengeResponse, error)
	GetChallenge(context.Context, *ChallengeRequest) (*ChallengeResponse, error)
	ListChallenges(context.Context, *AccountRequest) (*ListChallengesResponse, error)
	GetCombatState(context.Context, *ChallengeActorRequest) (*CombatResponse, error)
	SubmitCombatAction(context.Context, *SubmitCombatActionRequest) (*CombatResponse, error)
	OverrideNPCAction(context.Context, *OverrideNPCActionRequest) (*CombatResponse, error)

	// Guilds
	CreateGuild(context.Context, *CreateGuildRequest) (*GuildResponse, error)
	JoinGuild(context.Context, *GuildMemberRequest) (*GuildResponse, error)
	LeaveGuild(context.Context, *GuildMemberRequest) (*GuildResponse, error)
	GetGuild(context.Context, *GuildRequest) (*GuildResponse, error)
	ListGuilds(context.Context, *Empty) (*ListGuildsResponse, error)
	DepositToGuildBank(context.Context, *DepositRequest) (*GuildResponse, error)
	DistributeFromGuildBank(context.Context, *DistributeRequest) (*GuildResponse, error)
	LevelUpGuild(context.Context, *GuildMemberRequest) (*GuildResponse, error)
	FightGuildDungeon(context.Context, *GuildMemberRequest) (*DungeonResponse, error)

	// Guild battles
	ChallengeGuild(context.Context, *ChallengeGuildRequest) (*GuildBattleResponse, error)
	AcceptGuildBattle(context.Context, *RespondGuildBattleRequest) (*GuildBattleResponse, error)
	DeclineGuildBattle(context.Context, *RespondGuildBattleRequest) (*GuildBattleResponse, error)
	SetGuildBattleRoundWinner(context.Context, *SetRoundWinnerRequest) (*GuildBattleResponse, error)
	GetGuildBattle(context.Context, *GuildBattleRequest) (*GuildBattleResponse, error)
	ListGuildBattles(context.Context, *GuildRequest) (*ListGuildBattlesResponse, error)
	GetGuildLeaderboard(context.Context, *Empty) (*LeaderboardResponse, error)

	// Economy
	BoostStat(context.Context, *BoostStatRequest) (*BoostResponse, error)
	BoostPetStat(context.Context, *BoostPetStatRequest) (*BoostResponse, error)
	BoostItem(context.Context, *BoostItemRequest) (*BoostResponse, error)
	EquipPet(context.Context, *PetRequest) (*PetResponse, error)
	UnequipPet(context.Context, *AccountRequest) (*PetResponse, error)
	EvolvePet(context.Context, *PetRequest) (*PetResponse, error)
	MergePets(context.Context, *MergePetsRequest) (*PetResponse, error)
	TradePet(context.Context, *TradePetRequest) (*TradePetResponse, error)
	GrantPet(context.Context, *GrantPetRequest) (*PetResponse, error)

	// Auctions
	EnqueueAuction(context.Context, *EnqueueAuctionRequest) (*AuctionResponse, error)
	StartNextAuction(context.Context, *AdminRequest) (*AuctionResponse, error)
	PlaceBid(context.Context, *PlaceBidRequest) (*BidResponse, error)
	FinalizeAuction(context.Context, *FinalizeAuctionRequest) (*FinalizeAuctionResponse, error)
	GetAuction(context.Context, *AuctionRequest) (*AuctionResponse, error)
	ListAuctions(context.Context, *ListAuctionsRequest) (*ListAuctionsResponse, error)
}

// unary adapts a typed server method to a grpc.MethodDesc
func unary[Req, Resp any](name string, call func(ArenaServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			req := new(Req)
			if err := dec(req); err != nil {
				return nil, err
			}
			server := srv.(ArenaServiceServer)
			if interceptor == nil {
				return call(server, ctx, req)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			return interceptor(ctx, req, info, func(ctx context.Context, req any) (any, error) {
				return call(server, ctx, req.(*Req))
			})
		},
	}
}

// FullMethod is the invoke path of a method on the arena service
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// ServiceDesc describes the arena service for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ArenaServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", ArenaServiceServer.Register),
		unary("CreateAccount", ArenaServiceServer.CreateAccount),
		unary("GetAccount", ArenaServiceServer.GetAccount),
		unary("ListAccounts", ArenaServiceServer.ListAccounts),
		unary("DeleteAccount", ArenaServiceServer.DeleteAccount),
		unary("SetRank", ArenaServiceServer.SetRank),
		unary("ComputeStrength", ArenaServiceServer.ComputeStrength),

		unary("BattleNPC", ArenaServiceServer.BattleNPC),

		unary("CreateChallenge", ArenaServiceServer.CreateChallenge),
		unary("AcceptChallenge", ArenaServiceServer.AcceptChallenge),
		unary("DeclineChallenge", ArenaServiceServer.DeclineChallenge),
		unary("CancelChallenge", ArenaServiceServer.CancelChallenge),
		unary("GetChallenge", ArenaServiceServer.GetChallenge),
		unary("ListChallenges", ArenaServiceServer.ListChallenges),
		unary("GetCombatState", ArenaServiceServer.GetCombatState),
		unary("SubmitCombatAction", ArenaServiceServer.SubmitCombatAction),
		unary("OverrideNPCAction", ArenaServiceServer.OverrideNPCAction),

		unary("CreateGuild", ArenaServiceServer.CreateGuild),
		unary("JoinGuild", ArenaServiceServer.JoinGuild),
		unary("LeaveGuild", ArenaServiceServer.LeaveGuild),
		unary("GetGuild", ArenaServiceServer.GetGuild),
		unary("ListGuilds", ArenaServiceServer.ListGuilds),
		unary("DepositToGuildBank", ArenaServiceServer.DepositToGuildBank),
		unary("DistributeFromGuildBank", ArenaServiceServer.DistributeFromGuildBank),
		unary("LevelUpGuild", ArenaServiceServer.LevelUpGuild),
		unary("FightGuildDungeon", ArenaServiceServer.FightGuildDungeon),

		unary("ChallengeGuild", ArenaServiceServer.ChallengeGuild),
		unary("AcceptGuildBattle", ArenaServiceServer.AcceptGuildBattle),
		unary("DeclineGuildBattle", ArenaServiceServer.DeclineGuildBattle),
		unary("SetGuildBattleRoundWinner", ArenaServiceServer.SetGuildBattleRoundWinner),
		unary("GetGuildBattle", ArenaServiceServer.GetGuildBattle),
		unary("ListGuildBattles", ArenaServiceServer.ListGuildBattles),
		unary("GetGuildLeaderboard", ArenaServiceServer.GetGuildLeaderboard),

		unary("BoostStat", ArenaServiceServer.BoostStat),
		unary("BoostPetStat", ArenaServiceServer.BoostPetStat),
		unary("BoostItem", ArenaServiceServer.BoostItem),
		unary("EquipPet", ArenaServiceServer.EquipPet),
		unary("UnequipPet", ArenaServiceServer.UnequipPet),
		unary("EvolvePet", ArenaServiceServer.EvolvePet),
		unary("MergePets", ArenaServiceServer.MergePets),
		unary("TradePet", ArenaServiceServer.TradePet),
		unary("GrantPet", ArenaServiceServer.GrantPet),

		unary("EnqueueAuction", ArenaServiceServer.EnqueueAuction),
		unary("StartNextAuction", ArenaServiceServer.StartNextAuction),
		unary("PlaceBid", ArenaServiceServer.PlaceBid),
		unary("FinalizeAuction", ArenaServiceServer.FinalizeAuction),
		unary("GetAuction", ArenaServiceServer.GetAuction),
		unary("ListAuctions", ArenaServiceServer.ListAuctions),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterArenaServiceServer registers srv on s
func RegisterArenaServiceServer(s grpc.ServiceRegistrar, srv ArenaServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
