package tower

import (
	"github.com/KirkDiggler/rpg-arena/internal/entities"
)

// BattleNPCInput defines the request for one tower battle
type BattleNPCInput struct {
	AccountID string
}

// BattleNPCOutput describes the battle and where the account now stands.
// Rewards is zero on a loss.
type BattleNPCOutput struct {
	Won                  bool
	Boss                 bool
	Floor                int
	Level                int
	NewFloor             int
	NewLevel             int
	GlobalLevel          int
	Rewards              entities.Currencies
	PetExpGranted        bool
	PetImmune            bool
	NpcImmunities        []entities.Element
	NpcPower             float64
	EffectiveNpcPower    float64
	PlayerPower          float64
	EffectivePlayerPower float64
	LuckBonus            float64
	Account              *entities.Account
}

// AdvanceAutomatedInput defines the request for one automated progression tick
type AdvanceAutomatedInput struct{}

// AdvanceAutomatedOutput counts what the tick did
type AdvanceAutomatedOutput struct {
	Attempted int
	Won       int
	Blocked   int
}
