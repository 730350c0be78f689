package account

import (
	"github.com/KirkDiggler/rpg-arena/internal/engine/power"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
)

// RegisterInput defines the request for creating an account
type RegisterInput struct {
	Name        string
	Role        entities.Role
	IsAutomated bool
	// CreatedBy is the admin creating an admin or automated account. Plain
	// player accounts leave it empty.
	CreatedBy string
}

// RegisterOutput defines the response for creating an account
type RegisterOutput struct {
	Account *entities.Account
}

// EnsureAdminInput defines the bootstrap request for an admin account
type EnsureAdminInput struct {
	Name string
}

// EnsureAdminOutput defines the response for an admin bootstrap
type EnsureAdminOutput struct {
	Account *entities.Account
	Created bool
}

// GetAccountInput defines the request for loading an account
type GetAccountInput struct {
	AccountID string
}

// GetAccountOutput defines the response for loading an account
type GetAccountOutput struct {
	Account *entities.Account
}

// ListAccountsInput defines the request for listing accounts
type ListAccountsInput struct {
	AutomatedOnly bool
}

// ListAccountsOutput defines the response for listing accounts
type ListAccountsOutput struct {
	Accounts []*entities.Account
}

// DeleteAccountInput defines the request for removing an account
type DeleteAccountInput struct {
	AccountID string
}

// DeleteAccountOutput defines the response for removing an account
type DeleteAccountOutput struct{}

// SetRankInput defines the admin request for changing a rank
type SetRankInput struct {
	AdminID   string
	AccountID string
	Rank      entities.Rank
}

// SetRankOutput defines the response for changing a rank
type SetRankOutput struct {
	Account *entities.Account
}

// ComputeStrengthInput defines the request for an account's strength
type ComputeStrengthInput struct {
	AccountID string
}

// ComputeStrengthOutput defines the response for an account's strength
type ComputeStrengthOutput struct {
	Strength  entities.Num
	Breakdown power.Breakdown
}
