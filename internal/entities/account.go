package entities

import "time"

// Slot names an equipment slot
type Slot string

// Equipment slots
const (
	SlotWeapon     Slot = "weapon"
	SlotArmor      Slot = "armor"
	SlotAccessory1 Slot = "accessory1"
	SlotAccessory2 Slot = "accessory2"
)

// AllSlots lists every equipment slot
var AllSlots = []Slot{SlotWeapon, SlotArmor, SlotAccessory1, SlotAccessory2}

// Valid reports whether s is a known slot
func (s Slot) Valid() bool {
	for _, known := range AllSlots {
		if s == known {
			return true
		}
	}
	return false
}

// ItemBonus is the stat bonus carried by an equipped item
type ItemBonus struct {
	Str  Num `json:"str"`
	Int  Num `json:"int"`
	Spd  Num `json:"spd"`
	Luck Num `json:"luck"`
	Pot  Num `json:"pot"`
}

// Total sums every bonus field
func (b ItemBonus) Total() Num {
	return b.Str + b.Int + b.Spd + b.Luck + b.Pot
}

// Field returns a pointer to the bonus field for stat, or nil when items
// cannot carry it
func (b *ItemBonus) Field(stat Stat) *Num {
	switch stat {
	case StatStr:
		return &b.Str
	case StatInt:
		return &b.Int
	case StatSpd:
		return &b.Spd
	case StatLuck:
		return &b.Luck
	case StatPot:
		return &b.Pot
	}
	return nil
}

// Item is a piece of equipment
type Item struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Bonus ItemBonus `json:"bonus"`
}

// Bird is an owned bird companion. Every owned bird contributes to combat stats.
type Bird struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	DefBonus Num    `json:"defBonus"`
	SpdBonus Num    `json:"spdBonus"`
}

// TowerProgress is the NPC tower pointer
type TowerProgress struct {
	Floor int `json:"floor"`
	Level int `json:"level"`
}

// GlobalLevel linearizes the pointer as (floor-1)*100 + level
func (p TowerProgress) GlobalLevel() int {
	return (p.Floor-1)*100 + p.Level
}

// Account is a player or automated actor
type Account struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        Role   `json:"role"`
	IsAutomated bool   `json:"isAutomated"`

	Currencies Currencies     `json:"currencies"`
	Stats      Stats          `json:"stats"`
	Equipment  map[Slot]*Item `json:"equipment,omitempty"`
	Rank       Rank           `json:"rank"`
	Wins       Num            `json:"wins"`
	Losses     Num            `json:"losses"`
	Tower      TowerProgress  `json:"tower"`

	Pets          map[string]*Pet `json:"pets,omitempty"`
	EquippedPetID string          `json:"equippedPetId,omitempty"`
	Birds         []Bird          `json:"birds,omitempty"`
	Skills        []string        `json:"skills,omitempty"`
	GuildID       string          `json:"guildId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the account has the admin role
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// EquippedPet returns the equipped pet or nil
func (a *Account) EquippedPet() *Pet {
	if a.EquippedPetID == "" || a.Pets == nil {
		return nil
	}
	return a.Pets[a.EquippedPetID]
}

// HasSkill reports whether the account owns skillID
func (a *Account) HasSkill(skillID string) bool {
	for _, s := range a.Skills {
		if s == skillID {
			return true
		}
	}
	return false
}
