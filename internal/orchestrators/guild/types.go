package guild

import (
	"github.com/KirkDiggler/rpg-arena/internal/engine/ledger"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
)

// CreateGuildInput defines the request for founding a guild
type CreateGuildInput struct {
	Name     string
	MasterID string
}

// CreateGuildOutput defines the response for founding a guild
type CreateGuildOutput struct {
	Guild *entities.Guild
}

// MembershipInput names a guild and the account joining or leaving it
type MembershipInput struct {
	GuildID   string
	AccountID string
}

// MembershipOutput defines the response for a membership change. Disbanded
// is set when the last member left and the guild was removed.
type MembershipOutput struct {
	Guild     *entities.Guild
	Disbanded bool
}

// GetGuildInput defines the request for loading a guild
type GetGuildInput struct {
	GuildID string
}

// GetGuildOutput defines the response for loading a guild
type GetGuildOutput struct {
	Guild *entities.Guild
}

// ListGuildsOutput defines the response for listing guilds
type ListGuildsOutput struct {
	Guilds []*entities.Guild
}

// DepositInput defines the request for paying into the guild bank
type DepositInput struct {
	GuildID  string
	ActorID  string
	Resource entities.Resource
	Amount   entities.Num
}

// DepositOutput defines the response for a deposit
type DepositOutput struct {
	Guild   *entities.Guild
	Account *entities.Account
}

// DistributeInput defines the master's request for paying out of the bank
type DistributeInput struct {
	GuildID       string
	MasterID      string
	Distributions []ledger.Distribution
}

// DistributeOutput defines the response for a distribution
type DistributeOutput struct {
	Guild      *entities.Guild
	Recipients []*entities.Account
}

// LevelUpInput defines the master's request for raising the guild level
type LevelUpInput struct {
	GuildID  string
	MasterID string
}

// LevelUpOutput defines the response for a level up
type LevelUpOutput struct {
	Guild *entities.Guild
	Cost  entities.Num
}

// FightDungeonInput defines the request for a dungeon attempt
type FightDungeonInput struct {
	GuildID string
	ActorID string
}

// FightDungeonOutput describes the attempt. A too-weak party or a lost
// roll is a normal result with Victory false.
type FightDungeonOutput struct {
	Victory         bool
	TooWeak         bool
	Message         string
	Boss            bool
	DemonLord       bool
	Floor           int
	Level           int
	NewFloor        int
	NewLevel        int
	Rewards         entities.Currencies
	PlayerPower     float64
	NpcPower        float64
	AffinityApplied bool
	NpcImmunities   []entities.Element
	OnlineMembers   []string
	Guild           *entities.Guild
}
