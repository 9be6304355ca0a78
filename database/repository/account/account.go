package accountRepo

import (
	"context"

	"traintrack/models"
)

// AccountRepository persists platform accounts and trainer profiles.
// Lookups return (nil, nil) when no record exists.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	GetProfileByAccount(ctx context.Context, accountID string) (*models.TrainerProfile, error)
}
