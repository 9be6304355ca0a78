package account

import (
	"context"

	accountRepo "traintrack/database/repository/account"
	"traintrack/models"
)

// AccountService covers login and credential housekeeping for platform
// accounts, including the trainer accounts the workflow provisions.
type AccountService interface {
	Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error)
	ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error
	GetTrainerProfile(ctx context.Context, accountID string) (*models.TrainerProfile, error)
}

// DefaultAccountService is the production implementation.
type DefaultAccountService struct {
	Repo accountRepo.AccountRepository
}
