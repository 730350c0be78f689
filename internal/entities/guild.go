package entities

import "time"

// Guild level bounds
const (
	GuildMinLevel = 1
	GuildMaxLevel = 10
)

// DungeonProgress is a guild's dungeon pointer. Floors above 50 are the Demon Lord variant.
type DungeonProgress struct {
	Floor int `json:"floor"`
	Level int `json:"level"`
}

// Guild is a player guild with a shared bank
type Guild struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	MasterID   string          `json:"masterId"`
	Members    []string        `json:"members"`
	Level      int             `json:"level"`
	Bank       Currencies      `json:"bank"`
	Dungeon    DungeonProgress `json:"dungeon"`
	BattleWins Num             `json:"battleWins"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// MaxMembers is the member cap for the guild's level
func (g *Guild) MaxMembers() int {
	return 2 + g.Level*3
}

// IsMember reports whether accountID belongs to the guild
func (g *Guild) IsMember(accountID string) bool {
	for _, m := range g.Members {
		if m == accountID {
			return true
		}
	}
	return false
}

// RemoveMember drops accountID from the member list
func (g *Guild) RemoveMember(accountID string) {
	kept := g.Members[:0]
	for _, m := range g.Members {
		if m != accountID {
			kept = append(kept, m)
		}
	}
	g.Members = kept
}
