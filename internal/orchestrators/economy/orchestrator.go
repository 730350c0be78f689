// Package economy implements resource boosts and the pet lifecycle
package economy

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-arena/internal/engine/ledger"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/accounts"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/store"
	"github.com/KirkDiggler/rpg-arena/internal/services/notify"
)

// Service defines the interface for economy operations
type Service interface {
	BoostStat(ctx context.Context, input *BoostStatInput) (*BoostStatOutput, error)
	BoostPetStat(ctx context.Context, input *BoostPetStatInput) (*BoostPetStatOutput, error)
	BoostItem(ctx context.Context, input *BoostItemInput) (*BoostItemOutput, error)

	// Pets
	EquipPet(ctx context.Context, input *PetInput) (*PetOutput, error)
	UnequipPet(ctx context.Context, input *UnequipPetInput) (*PetOutput, error)
	EvolvePet(ctx context.Context, input *PetInput) (*PetOutput, error)
	MergePets(ctx context.Context, input *MergePetsInput) (*PetOutput, error)
	TradePet(ctx context.Context, input *TradePetInput) (*TradePetOutput, error)

	// Admin only
	GrantPet(ctx context.Context, input *GrantPetInput) (*PetOutput, error)
}

// Config holds the dependencies for the economy orchestrator
type Config struct {
	Store       store.Store
	Accounts    accounts.Repository
	IDGenerator idgen.Generator
	Emitter     notify.Emitter
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.Accounts == nil {
		vb.RequiredField("Accounts")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	store    store.Store
	accounts accounts.Repository
	idGen    idgen.Generator
	emitter  notify.Emitter
}

// NewOrchestrator creates a new economy orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	emitter := cfg.Emitter
	if emitter == nil {
		emitter = notify.Discard{}
	}

	return &orchestrator{
		store:    cfg.Store,
		accounts: cfg.Accounts,
		idGen:    cfg.IDGenerator,
		emitter:  emitter,
	}, nil
}

// mutate loads one account, applies fn and saves it in a single transaction
func (o *orchestrator) mutate(ctx context.Context, accountID string, fn func(acct *entities.Account) error) (*entities.Account, error) {
	if accountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}

	var acct *entities.Account
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		repo := o.accounts.Tx(tx)
		var err error
		acct, err = repo.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if err := fn(acct); err != nil {
			return err
		}
		return repo.Save(acct)
	})
	if err != nil {
		return nil, err
	}

	notify.Publish(ctx, o.emitter, notify.EventPlayerUpdate, acct)
	return acct, nil
}

func (o *orchestrator) BoostStat(ctx context.Context, input *BoostStatInput) (*BoostStatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out := &BoostStatOutput{}
	acct, err := o.mutate(ctx, input.AccountID, func(acct *entities.Account) error {
		cost, err := ledger.BoostStat(acct, input.Stat, input.Points)
		out.Cost = cost
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to boost stat")
	}
	out.Account = acct
	return out, nil
}

func (o *orchestrator) BoostPetStat(ctx context.Context, input *BoostPetStatInput) (*BoostPetStatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out := &BoostPetStatOutput{}
	acct, err := o.mutate(ctx, input.AccountID, func(acct *entities.Account) error {
		cost, err := ledger.BoostPetStat(acct, input.PetID, input.Stat, input.Points)
		out.Cost = cost
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to boost pet stat")
	}
	out.Account, out.Pet = acct, acct.Pets[input.PetID]
	return out, nil
}

func (o *orchestrator) BoostItem(ctx context.Context, input *BoostItemInput) (*BoostItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out := &BoostItemOutput{}
	acct, err := o.mutate(ctx, input.AccountID, func(acct *entities.Account) error {
		boost, err := ledger.BoostItem(acct, input.Slot, input.Stat, input.Points)
		out.Boost = boost
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to boost item")
	}
	out.Account = acct

	if out.Boost.Applied < out.Boost.Requested {
		slog.DebugContext(ctx, "item boost clamped at ceiling",
			"account_id", acct.ID,
			"slot", input.Slot,
			"requested", out.Boost.Requested,
			"applied", out.Boost.Applied)
	}
	return out, nil
}

func (o *orchestrator) EquipPet(ctx context.Context, input *PetInput) (*PetOutput, error) {
	if input == nil || input.PetID == "" {
		return nil, errors.InvalidArgument("pet ID is required")
	}

	acct, err := o.mutate(ctx, input.AccountID, func(acct *entities.Account) error {
		if acct.Pets[input.PetID] == nil {
			return errors.NotFoundf("pet %s not found", input.PetID)
		}
		acct.EquippedPetID = input.PetID
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to equip pet")
	}
	return &PetOutput{Account: acct, Pet: acct.EquippedPet()}, nil
}

func (o *orchestrator) UnequipPet(ctx context.Context, input *UnequipPetInput) (*PetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	acct, err := o.mutate(ctx, input.AccountID, func(acct *entities.Account) error {
		acct.EquippedPetID = ""
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to unequip pet")
	}
	return &PetOutput{Account: acct}, nil
}

func (o *orchestrator) EvolvePet(ctx context.Context, input *PetInput) (*PetOutput, error) {
	if input == nil || input.PetID == "" {
		return nil, errors.InvalidArgument("pet ID is required")
	}

	var pet *entities.Pet
	acct, err := o.mutate(ctx, input.AccountID, func(acct *entities.Account) error {
		var err error
		pet, err = ledger.EvolvePet(acct, input.PetID)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to evolve pet")
	}

	slog.InfoContext(ctx, "pet evolved", "account_id", acct.ID, "pet_id", pet.ID, "tier", pet.Tier)
	return &PetOutput{Account: acct, Pet: pet}, nil
}

func (o *orchestrator) MergePets(ctx context.Context, input *MergePetsInput) (*PetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("first_id", input.FirstID, vb)
	errors.ValidateRequired("second_id", input.SecondID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Egg"
	}

	var child *entities.Pet
	acct, err := o.mutate(ctx, input.AccountID, func(acct *entities.Account) error {
		var err error
		child, err = ledger.MergePets(acct, input.FirstID, input.SecondID, &entities.Pet{
			ID:   o.idGen.Generate(),
			Name: name,
		})
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to merge pets")
	}

	slog.InfoContext(ctx, "pets merged",
		"account_id", acct.ID,
		"first_id", input.FirstID,
		"second_id", input.SecondID,
		"child_id", child.ID)
	return &PetOutput{Account: acct, Pet: child}, nil
}

func (o *orchestrator) TradePet(ctx context.Context, input *TradePetInput) (*TradePetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("seller_id", input.SellerID, vb)
	errors.ValidateRequired("buyer_id", input.BuyerID, vb)
	errors.ValidateRequired("pet_id", input.PetID, vb)
	if input.Price < 0 {
		vb.InvalidField("price", "cannot be negative")
	}
	if input.SellerID != "" && input.SellerID == input.BuyerID {
		vb.InvalidField("buyer_id", "cannot trade with yourself")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out := &TradePetOutput{}
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		repo := o.accounts.Tx(tx)
		seller, err := repo.Get(ctx, input.SellerID)
		if err != nil {
			return err
		}
		buyer, err := repo.Get(ctx, input.BuyerID)
		if err != nil {
			return err
		}

		pet := seller.Pets[input.PetID]
		if pet == nil {
			return errors.NotFoundf("pet %s not found", input.PetID)
		}
		if input.Price > 0 {
			if err := ledger.Transfer(&buyer.Currencies, &seller.Currencies, entities.ResourceGold, input.Price); err != nil {
				return err
			}
		}

		delete(seller.Pets, pet.ID)
		if seller.EquippedPetID == pet.ID {
			seller.EquippedPetID = ""
		}
		if buyer.Pets == nil {
			buyer.Pets = map[string]*entities.Pet{}
		}
		buyer.Pets[pet.ID] = pet

		if err := repo.Save(seller); err != nil {
			return err
		}
		out.Seller, out.Buyer, out.Pet = seller, buyer, pet
		return repo.Save(buyer)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to trade pet")
	}

	slog.InfoContext(ctx, "pet traded",
		"pet_id", input.PetID,
		"seller_id", input.SellerID,
		"buyer_id", input.BuyerID,
		"price", input.Price)

	notify.Publish(ctx, o.emitter, notify.EventPlayerUpdate, out.Seller)
	notify.Publish(ctx, o.emitter, notify.EventPlayerUpdate, out.Buyer)
	return out, nil
}

func (o *orchestrator) GrantPet(ctx context.Context, input *GrantPetInput) (*PetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("admin_id", input.AdminID, vb)
	errors.ValidateRequired("account_id", input.AccountID, vb)
	errors.ValidateRequired("name", input.Name, vb)
	tier := input.Tier
	if tier == "" {
		tier = entities.PetTierEgg
	}
	if _, ok := tier.Config(); !ok {
		vb.InvalidField("tier", "unknown tier")
	}
	if len(input.Affinities) == 0 {
		vb.RequiredField("affinities")
	}
	for _, e := range input.Affinities {
		if !e.Valid() {
			vb.Fieldf("affinities", "unknown element %q", e)
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	pet := &entities.Pet{
		ID:         o.idGen.Generate(),
		Name:       strings.TrimSpace(input.Name),
		Tier:       tier,
		Stats:      input.Stats,
		Affinities: input.Affinities,
	}

	var acct *entities.Account
	err := o.store.Atomically(ctx, func(tx store.Tx) error {
		repo := o.accounts.Tx(tx)
		admin, err := repo.Get(ctx, input.AdminID)
		if err != nil {
			return err
		}
		if !admin.IsAdmin() {
			return errors.PermissionDenied("only admins can grant pets")
		}
		acct, err = repo.Get(ctx, input.AccountID)
		if err != nil {
			return err
		}
		if acct.Pets == nil {
			acct.Pets = map[string]*entities.Pet{}
		}
		acct.Pets[pet.ID] = pet
		return repo.Save(acct)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to grant pet")
	}

	notify.Publish(ctx, o.emitter, notify.EventPlayerUpdate, acct)
	return &PetOutput{Account: acct, Pet: pet}, nil
}
