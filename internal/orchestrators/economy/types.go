package economy

import (
	"github.com/KirkDiggler/rpg-arena/internal/engine/ledger"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
)

// BoostStatInput defines the request for spending training points on a base stat
type BoostStatInput struct {
	AccountID string
	Stat      entities.Stat
	Points    entities.Num
}

// BoostStatOutput defines the response for a stat boost
type BoostStatOutput struct {
	Account *entities.Account
	Cost    entities.Num
}

// BoostPetStatInput defines the request for spending soul shards on a pet stat
type BoostPetStatInput struct {
	AccountID string
	PetID     string
	Stat      entities.PetStat
	Points    entities.Num
}

// BoostPetStatOutput defines the response for a pet stat boost
type BoostPetStatOutput struct {
	Account *entities.Account
	Pet     *entities.Pet
	Cost    entities.Num
}

// BoostItemInput defines the request for raising an equipped item's bonus
type BoostItemInput struct {
	AccountID string
	Slot      entities.Slot
	Stat      entities.Stat
	Points    entities.Num
}

// BoostItemOutput reports the clamped boost that was applied
type BoostItemOutput struct {
	Account *entities.Account
	Boost   ledger.ItemBoost
}

// PetInput names an account and one of its pets
type PetInput struct {
	AccountID string
	PetID     string
}

// PetOutput carries the pet and its owner after an operation
type PetOutput struct {
	Account *entities.Account
	Pet     *entities.Pet
}

// UnequipPetInput defines the request for clearing the equipped pet
type UnequipPetInput struct {
	AccountID string
}

// MergePetsInput defines the request for fusing two mythic pets
type MergePetsInput struct {
	AccountID string
	FirstID   string
	SecondID  string
	Name      string
}

// TradePetInput defines an agreed pet-for-gold exchange
type TradePetInput struct {
	SellerID string
	BuyerID  string
	PetID    string
	Price    entities.Num
}

// TradePetOutput carries both parties after the exchange
type TradePetOutput struct {
	Seller *entities.Account
	Buyer  *entities.Account
	Pet    *entities.Pet
}

// GrantPetInput defines the admin request for giving an account a new pet
type GrantPetInput struct {
	AdminID    string
	AccountID  string
	Name       string
	Tier       entities.PetTier
	Stats      entities.PetStats
	Affinities []entities.Element
}
