package scheduler

import (
	"context"

	accountRepo "traintrack/database/repository/account"
	allocationRepo "traintrack/database/repository/allocation"
	recordsRepo "traintrack/database/repository/records"
	"traintrack/models"
	"traintrack/services/notification"
)

// SchedulingService validates and records trainer time allocations, rejecting
// any range that overlaps an existing active allocation for the same trainer.
type SchedulingService interface {
	ProposeAllocation(ctx context.Context, req models.AllocationRequest) (*models.Allocation, error)
	ReviseAllocation(ctx context.Context, id string, changes models.AllocationChanges) (*models.Allocation, error)
	CancelAllocation(ctx context.Context, id string) (*models.Allocation, error)
	UpdateAllocationStatus(ctx context.Context, id, status string) (*models.Allocation, error)
	ListForTrainer(ctx context.Context, trainerID string, excludeCancelled bool) ([]models.Allocation, error)
	// DeleteAllocation is an administrative override that removes the record
	// without re-validating the trainer's calendar.
	DeleteAllocation(ctx context.Context, id string) error
}

// LockManager hands out short-lived advisory locks. The scheduler keys them
// by trainer ID so concurrent proposals for the same trainer serialize their
// check-and-insert.
type LockManager interface {
	Acquire(ctx context.Context, key string) (func(), error)
}

// DefaultSchedulingService is the production implementation.
type DefaultSchedulingService struct {
	Repo     allocationRepo.AllocationRepository
	Records  recordsRepo.CatalogueRepository
	Accounts accountRepo.AccountRepository
	Locks    LockManager
	Notifier notification.NotificationService

	// ExclusiveBounds switches the boundary policy: false (default) means
	// touching ranges conflict.
	ExclusiveBounds bool
}
