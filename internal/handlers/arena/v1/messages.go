package v1

import (
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/guildbattle"
	"github.com/KirkDiggler/rpg-arena/internal/services/leaderboard"
)

// Empty is the message for calls without arguments or results
type Empty struct{}

// Shared requests

// AccountRequest addresses one account
type AccountRequest struct {
	AccountID string `json:"accountId"`
}

// AdminRequest carries only the calling admin
type AdminRequest struct {
	AdminID string `json:"adminId"`
}

// Accounts

// RegisterRequest creates a player account
type RegisterRequest struct {
	Name string `json:"name"`
}

// CreateAccountRequest is an admin creating an account with a chosen role
type CreateAccountRequest struct {
	AdminID     string        `json:"adminId"`
	Name        string        `json:"name"`
	Role        entities.Role `json:"role,omitempty"`
	IsAutomated bool          `json:"isAutomated,omitempty"`
}

// AccountResponse carries one account
type AccountResponse struct {
	Account *entities.Account `json:"account"`
}

// ListAccountsRequest filters the account listing
type ListAccountsRequest struct {
	AutomatedOnly bool `json:"automatedOnly,omitempty"`
}

// ListAccountsResponse carries accounts
type ListAccountsResponse struct {
	Accounts []*entities.Account `json:"accounts"`
}

// SetRankRequest changes an account's rank
type SetRankRequest struct {
	AdminID   string        `json:"adminId"`
	AccountID string        `json:"accountId"`
	Rank      entities.Rank `json:"rank"`
}

// StrengthResponse is the strength scalar and its parts
type StrengthResponse struct {
	AccountID    string       `json:"accountId"`
	Strength     entities.Num `json:"strength"`
	Base         entities.Num `json:"base"`
	Equipment    entities.Num `json:"equipment"`
	Pet          entities.Num `json:"pet"`
	PetElemental entities.Num `json:"petElemental"`
}

// Tower

// BattleNPCResponse reports a tower battle
type BattleNPCResponse struct {
	Won                  bool                `json:"won"`
	Boss                 bool                `json:"boss"`
	Floor                int                 `json:"floor"`
	Level                int                 `json:"level"`
	NewFloor             int                 `json:"newFloor"`
	NewLevel             int                 `json:"newLevel"`
	GlobalLevel          int                 `json:"globalLevel"`
	Rewards              entities.Currencies `json:"rewards"`
	PetExpGranted        bool                `json:"petExpGranted"`
	PetImmune            bool                `json:"petImmune"`
	NpcImmunities        []entities.Element  `json:"npcImmunities"`
	NpcPower             float64             `json:"npcPower"`
	EffectiveNpcPower    float64             `json:"effectiveNpcPower"`
	PlayerPower          float64             `json:"playerPower"`
	EffectivePlayerPower float64             `json:"effectivePlayerPower"`
	Account              *entities.Account   `json:"account"`
}

// Challenges

// CreateChallengeRequest opens a PvP challenge
type CreateChallengeRequest struct {
	ChallengerID string `json:"challengerId"`
	ChallengedID string `json:"challengedId"`
}

// ChallengeActorRequest is a participant acting on a challenge
type ChallengeActorRequest struct {
	ChallengeID string `json:"challengeId"`
	ActorID     string `json:"actorId"`
}

// ChallengeRequest addresses one challenge
type ChallengeRequest struct {
	ChallengeID string `json:"challengeId"`
}

// ChallengeResponse carries one challenge
type ChallengeResponse struct {
	Challenge *entities.Challenge `json:"challenge"`
}

// ListChallengesResponse carries challenges
type ListChallengesResponse struct {
	Challenges []*entities.Challenge `json:"challenges"`
}

// SubmitCombatActionRequest submits a round action
type SubmitCombatActionRequest struct {
	ChallengeID string          `json:"challengeId"`
	ActorID     string          `json:"actorId"`
	Action      entities.Action `json:"action"`
}

// OverrideNPCActionRequest replaces an automated combatant's pending action
type OverrideNPCActionRequest struct {
	AdminID     string          `json:"adminId"`
	ChallengeID string          `json:"challengeId"`
	NpcID       string          `json:"npcId"`
	Action      entities.Action `json:"action"`
}

// CombatResponse carries the combat state after a call
type CombatResponse struct {
	Challenge *entities.Challenge   `json:"challenge"`
	State     *entities.CombatState `json:"state"`
	Resolved  *entities.RoundLog    `json:"resolved,omitempty"`
	Finished  bool                  `json:"finished"`
	WinnerID  string                `json:"winnerId,omitempty"`
	Draw      bool                  `json:"draw,omitempty"`
}

// Guilds

// CreateGuildRequest founds a guild
type CreateGuildRequest struct {
	Name     string `json:"name"`
	MasterID string `json:"masterId"`
}

// GuildMemberRequest is an account acting on a guild
type GuildMemberRequest struct {
	GuildID   string `json:"guildId"`
	AccountID string `json:"accountId"`
}

// GuildRequest addresses one guild
type GuildRequest struct {
	GuildID string `json:"guildId"`
}

// GuildResponse carries one guild
type GuildResponse struct {
	Guild       *entities.Guild `json:"guild,omitempty"`
	Disbanded   bool            `json:"disbanded,omitempty"`
	LevelUpCost entities.Num    `json:"levelUpCost,omitempty"`
}

// ListGuildsResponse carries guilds
type ListGuildsResponse struct {
	Guilds []*entities.Guild `json:"guilds"`
}

// DepositRequest moves a member's resource into the bank
type DepositRequest struct {
	GuildID  string            `json:"guildId"`
	ActorID  string            `json:"actorId"`
	Resource entities.Resource `json:"resource"`
	Amount   entities.Num      `json:"amount"`
}

// DistributionLine is one bank payout
type DistributionLine struct {
	AccountID string            `json:"accountId"`
	Resource  entities.Resource `json:"resource"`
	Amount    entities.Num      `json:"amount"`
}

// DistributeRequest pays members out of the bank
type DistributeRequest struct {
	GuildID       string             `json:"guildId"`
	MasterID      string             `json:"masterId"`
	Distributions []DistributionLine `json:"distributions"`
}

// DungeonResponse reports a guild dungeon fight
type DungeonResponse struct {
	Victory         bool                `json:"victory"`
	TooWeak         bool                `json:"tooWeak,omitempty"`
	Message         string              `json:"message,omitempty"`
	Boss            bool                `json:"boss"`
	DemonLord       bool                `json:"demonLord"`
	Floor           int                 `json:"floor"`
	Level           int                 `json:"level"`
	NewFloor        int                 `json:"newFloor"`
	NewLevel        int                 `json:"newLevel"`
	Rewards         entities.Currencies `json:"rewards"`
	PlayerPower     float64             `json:"playerPower"`
	NpcPower        float64             `json:"npcPower"`
	AffinityApplied bool                `json:"affinityApplied"`
	NpcImmunities   []entities.Element  `json:"npcImmunities"`
	OnlineMembers   []string            `json:"onlineMembers"`
	Guild           *entities.Guild     `json:"guild"`
}

// Guild battles

// ChallengeGuildRequest challenges another guild with a roster
type ChallengeGuildRequest struct {
	ChallengerGuildID string   `json:"challengerGuildId"`
	ChallengedGuildID string   `json:"challengedGuildId"`
	MasterID          string   `json:"masterId"`
	Roster            []string `json:"roster"`
}

// RespondGuildBattleRequest accepts or declines a guild battle
type RespondGuildBattleRequest struct {
	BattleID string   `json:"battleId"`
	MasterID string   `json:"masterId"`
	Roster   []string `json:"roster,omitempty"`
}

// SetRoundWinnerRequest adjudicates the current round
type SetRoundWinnerRequest struct {
	BattleID      string `json:"battleId"`
	AdminID       string `json:"adminId"`
	WinnerActorID string `json:"winnerActorId"`
}

// GuildBattleRequest addresses one guild battle
type GuildBattleRequest struct {
	BattleID string `json:"battleId"`
}

// GuildBattleResponse carries one guild battle
type GuildBattleResponse struct {
	Battle             *entities.GuildBattle `json:"battle"`
	Completed          bool                  `json:"completed,omitempty"`
	Draw               bool                  `json:"draw,omitempty"`
	ChallengerFighters []guildbattle.Fighter `json:"challengerFighters,omitempty"`
	ChallengedFighters []guildbattle.Fighter `json:"challengedFighters,omitempty"`
}

// ListGuildBattlesResponse carries guild battles
type ListGuildBattlesResponse struct {
	Battles []*entities.GuildBattle `json:"battles"`
}

// LeaderboardResponse is the guild wins ranking
type LeaderboardResponse struct {
	Entries   []leaderboard.Entry `json:"entries"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// Economy

// BoostStatRequest spends training points on a base stat
type BoostStatRequest struct {
	AccountID string        `json:"accountId"`
	Stat      entities.Stat `json:"stat"`
	Points    entities.Num  `json:"points"`
}

// BoostPetStatRequest spends soul shards on a pet stat
type BoostPetStatRequest struct {
	AccountID string           `json:"accountId"`
	PetID     string           `json:"petId"`
	Stat      entities.PetStat `json:"stat"`
	Points    entities.Num     `json:"points"`
}

// BoostItemRequest spends training points on an equipped item
type BoostItemRequest struct {
	AccountID string        `json:"accountId"`
	Slot      entities.Slot `json:"slot"`
	Stat      entities.Stat `json:"stat"`
	Points    entities.Num  `json:"points"`
}

// BoostResponse reports any boost. Applied differs from Requested only when
// an item boost was clamped at its ceiling.
type BoostResponse struct {
	Account   *entities.Account `json:"account"`
	Cost      entities.Num      `json:"cost"`
	Requested entities.Num      `json:"requested"`
	Applied   entities.Num      `json:"applied"`
	Ceiling   entities.Num      `json:"ceiling,omitempty"`
}

// PetRequest addresses one of an account's pets
type PetRequest struct {
	AccountID string `json:"accountId"`
	PetID     string `json:"petId"`
}

// PetResponse carries a pet and its owner
type PetResponse struct {
	Account *entities.Account `json:"account"`
	Pet     *entities.Pet     `json:"pet,omitempty"`
}

// MergePetsRequest fuses two mythic pets
type MergePetsRequest struct {
	AccountID string `json:"accountId"`
	FirstID   string `json:"firstId"`
	SecondID  string `json:"secondId"`
	Name      string `json:"name,omitempty"`
}

// TradePetRequest sells a pet for gold
type TradePetRequest struct {
	SellerID string       `json:"sellerId"`
	BuyerID  string       `json:"buyerId"`
	PetID    string       `json:"petId"`
	Price    entities.Num `json:"price"`
}

// TradePetResponse carries both traders
type TradePetResponse struct {
	Seller *entities.Account `json:"seller"`
	Buyer  *entities.Account `json:"buyer"`
	Pet    *entities.Pet     `json:"pet"`
}

// GrantPetRequest gives an account a new pet
type GrantPetRequest struct {
	AdminID    string             `json:"adminId"`
	AccountID  string             `json:"accountId"`
	Name       string             `json:"name"`
	Tier       entities.PetTier   `json:"tier,omitempty"`
	Stats      entities.PetStats  `json:"stats"`
	Affinities []entities.Element `json:"affinities"`
}

// Auctions

// EnqueueAuctionRequest queues a skill auction
type EnqueueAuctionRequest struct {
	AdminID   string `json:"adminId"`
	SkillID   string `json:"skillId"`
	SkillName string `json:"skillName,omitempty"`
}

// PlaceBidRequest bids gold on the active auction
type PlaceBidRequest struct {
	AuctionID string       `json:"auctionId"`
	BidderID  string       `json:"bidderId"`
	Amount    entities.Num `json:"amount"`
}

// BidResponse carries the accepted bid
type BidResponse struct {
	Bid     *entities.Bid     `json:"bid"`
	Auction *entities.Auction `json:"auction"`
}

// FinalizeAuctionRequest ends an auction
type FinalizeAuctionRequest struct {
	AdminID   string `json:"adminId"`
	AuctionID string `json:"auctionId"`
}

// FinalizeAuctionResponse reports the settlement
type FinalizeAuctionResponse struct {
	Auction          *entities.Auction `json:"auction"`
	WinnerID         string            `json:"winnerId,omitempty"`
	Defaulted        bool              `json:"defaulted,omitempty"`
	AlreadyCompleted bool              `json:"alreadyCompleted,omitempty"`
	Started          *entities.Auction `json:"started,omitempty"`
}

// AuctionRequest addresses one auction
type AuctionRequest struct {
	AuctionID string `json:"auctionId"`
}

// AuctionResponse carries one auction
type AuctionResponse struct {
	Auction *entities.Auction `json:"auction"`
}

// ListAuctionsRequest filters auctions by status
type ListAuctionsRequest struct {
	Status entities.AuctionStatus `json:"status,omitempty"`
}

// ListAuctionsResponse carries auctions and the schedule
type ListAuctionsResponse struct {
	Auctions []*entities.Auction `json:"auctions"`
	ActiveID string              `json:"activeId,omitempty"`
	Queue    []string            `json:"queue"`
}
