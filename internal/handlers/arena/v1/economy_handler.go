package v1

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/economy"
)

// BoostStat spends training points on a base stat
func (h *Handler) BoostStat(ctx context.Context, req *BoostStatRequest) (*BoostResponse, error) {
	out, err := h.economy.BoostStat(ctx, &economy.BoostStatInput{
		AccountID: req.AccountID,
		Stat:      req.Stat,
		Points:    req.Points,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &BoostResponse{
		Account:   out.Account,
		Cost:      out.Cost,
		Requested: req.Points,
		Applied:   req.Points,
	}, nil
}

// BoostPetStat spends soul shards on a pet stat
func (h *Handler) BoostPetStat(ctx context.Context, req *BoostPetStatRequest) (*BoostResponse, error) {
	out, err := h.economy.BoostPetStat(ctx, &economy.BoostPetStatInput{
		AccountID: req.AccountID,
		PetID:     req.PetID,
		Stat:      req.Stat,
		Points:    req.Points,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &BoostResponse{
		Account:   out.Account,
		Cost:      out.Cost,
		Requested: req.Points,
		Applied:   req.Points,
	}, nil
}

// BoostItem spends training points on an equipped item, clamped at the rank
// ceiling
func (h *Handler) BoostItem(ctx context.Context, req *BoostItemRequest) (*BoostResponse, error) {
	out, err := h.economy.BoostItem(ctx, &economy.BoostItemInput{
		AccountID: req.AccountID,
		Slot:      req.Slot,
		Stat:      req.Stat,
		Points:    req.Points,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &BoostResponse{
		Account:   out.Account,
		Cost:      out.Boost.Cost,
		Requested: out.Boost.Requested,
		Applied:   out.Boost.Applied,
		Ceiling:   out.Boost.Ceiling,
	}, nil
}

// EquipPet makes a pet the account's active pet
func (h *Handler) EquipPet(ctx context.Context, req *PetRequest) (*PetResponse, error) {
	return h.pet(ctx, req, h.economy.EquipPet)
}

// UnequipPet clears the account's active pet
func (h *Handler) UnequipPet(ctx context.Context, req *AccountRequest) (*PetResponse, error) {
	out, err := h.economy.UnequipPet(ctx, &economy.UnequipPetInput{AccountID: req.AccountID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &PetResponse{Account: out.Account, Pet: out.Pet}, nil
}

// EvolvePet moves a pet to its next tier
func (h *Handler) EvolvePet(ctx context.Context, req *PetRequest) (*PetResponse, error) {
	return h.pet(ctx, req, h.economy.EvolvePet)
}

func (h *Handler) pet(
	ctx context.Context,
	req *PetRequest,
	call func(context.Context, *economy.PetInput) (*economy.PetOutput, error),
) (*PetResponse, error) {
	out, err := call(ctx, &economy.PetInput{AccountID: req.AccountID, PetID: req.PetID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &PetResponse{Account: out.Account, Pet: out.Pet}, nil
}

// MergePets fuses two mythic pets into a new egg
func (h *Handler) MergePets(ctx context.Context, req *MergePetsRequest) (*PetResponse, error) {
	out, err := h.economy.MergePets(ctx, &economy.MergePetsInput{
		AccountID: req.AccountID,
		FirstID:   req.FirstID,
		SecondID:  req.SecondID,
		Name:      req.Name,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &PetResponse{Account: out.Account, Pet: out.Pet}, nil
}

// TradePet sells a pet for gold
func (h *Handler) TradePet(ctx context.Context, req *TradePetRequest) (*TradePetResponse, error) {
	out, err := h.economy.TradePet(ctx, &economy.TradePetInput{
		SellerID: req.SellerID,
		BuyerID:  req.BuyerID,
		PetID:    req.PetID,
		Price:    req.Price,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &TradePetResponse{Seller: out.Seller, Buyer: out.Buyer, Pet: out.Pet}, nil
}

// GrantPet gives an account a new pet
func (h *Handler) GrantPet(ctx context.Context, req *GrantPetRequest) (*PetResponse, error) {
	out, err := h.economy.GrantPet(ctx, &economy.GrantPetInput{
		AdminID:    req.AdminID,
		AccountID:  req.AccountID,
		Name:       req.Name,
		Tier:       req.Tier,
		Stats:      req.Stats,
		Affinities: req.Affinities,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &PetResponse{Account: out.Account, Pet: out.Pet}, nil
}
