package allocationRepo

import (
	"context"

	"traintrack/models"
)

// AllocationRepository persists trainer allocations.
//
// FindByTrainer returns the trainer's allocations sorted by start date
// ascending; with excludeCancelled it returns only the conflict set
// (status != CANCELLED).
//
// SetStatus treats CANCELLED as terminal: a lifecycle transition on a
// cancelled allocation matches nothing and returns (nil, nil). Update writes
// booking fields only and leaves the status column untouched.
type AllocationRepository interface {
	Create(ctx context.Context, alloc *models.Allocation) error
	GetByID(ctx context.Context, id string) (*models.Allocation, error)
	Update(ctx context.Context, alloc *models.Allocation) error
	SetStatus(ctx context.Context, id, status string) (*models.Allocation, error)
	Delete(ctx context.Context, id string) error
	FindByTrainer(ctx context.Context, trainerID string, excludeCancelled bool) ([]models.Allocation, error)
}
