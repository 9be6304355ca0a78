package scheduler

import (
	"context"
	"time"

	"traintrack/models"
	"traintrack/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func validateRequest(req models.AllocationRequest) error {
	fields := map[string]string{}
	if req.TrainerID == "" {
		fields["trainerId"] = "trainer id is required"
	}
	if req.SessionID == "" {
		fields["sessionId"] = "session id is required"
	}
	if req.ClientID == "" {
		fields["clientId"] = "client id is required"
	}
	if err := req.DateRange.Validate(); err != nil {
		fields["dateRange"] = err.Error()
	}
	if len(fields) > 0 {
		return ValidationError{Fields: fields}
	}
	return nil
}

// ProposeAllocation checks the trainer's calendar and records the allocation
// if the requested range is free. The per-trainer advisory lock is held
// across the check-and-insert so two concurrent proposals for the same
// trainer cannot both pass the overlap test.
func (s *DefaultSchedulingService) ProposeAllocation(ctx context.Context, req models.AllocationRequest) (*models.Allocation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	release, err := s.Locks.Acquire(ctx, req.TrainerID)
	if err != nil {
		return nil, DependencyError{Op: "acquire scheduling lock", Err: err}
	}
	defer release()

	existing, err := s.Repo.FindByTrainer(ctx, req.TrainerID, true)
	if err != nil {
		return nil, DependencyError{Op: "fetch trainer allocations", Err: err}
	}
	if conflicts := s.findConflicts(existing, req.DateRange, ""); len(conflicts) > 0 {
		s.resolveConflictTitles(ctx, conflicts)
		return nil, ConflictError{TrainerID: req.TrainerID, Conflicts: conflicts}
	}

	now := time.Now()
	alloc := &models.Allocation{
		ID:        uuid.New().String(),
		TrainerID: req.TrainerID,
		SessionID: req.SessionID,
		ClientID:  req.ClientID,
		DateRange: req.DateRange,
		Hours:     req.Hours,
		Location:  req.Location,
		Status:    models.AllocationScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, alloc); err != nil {
		return nil, DependencyError{Op: "create allocation", Err: err}
	}

	s.notifyBooked(ctx, *alloc, false)
	return alloc, nil
}

// ReviseAllocation applies field changes to an existing allocation. A date
// change re-runs the overlap test against the trainer's other active
// allocations under the same per-trainer lock.
func (s *DefaultSchedulingService) ReviseAllocation(ctx context.Context, id string, changes models.AllocationChanges) (*models.Allocation, error) {
	alloc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, DependencyError{Op: "fetch allocation", Err: err}
	}
	if alloc == nil {
		return nil, NotFoundError{AllocationID: id}
	}

	if changes.DateRange != nil {
		if err := changes.DateRange.Validate(); err != nil {
			return nil, ValidationError{Fields: map[string]string{"dateRange": err.Error()}}
		}
	}

	release, err := s.Locks.Acquire(ctx, alloc.TrainerID)
	if err != nil {
		return nil, DependencyError{Op: "acquire scheduling lock", Err: err}
	}
	defer release()

	if changes.DateRange != nil {
		existing, err := s.Repo.FindByTrainer(ctx, alloc.TrainerID, true)
		if err != nil {
			return nil, DependencyError{Op: "fetch trainer allocations", Err: err}
		}
		if conflicts := s.findConflicts(existing, *changes.DateRange, alloc.ID); len(conflicts) > 0 {
			s.resolveConflictTitles(ctx, conflicts)
			return nil, ConflictError{TrainerID: alloc.TrainerID, Conflicts: conflicts}
		}
		alloc.DateRange = *changes.DateRange
	}
	if changes.SessionID != nil {
		alloc.SessionID = *changes.SessionID
	}
	if changes.ClientID != nil {
		alloc.ClientID = *changes.ClientID
	}
	if changes.Hours != nil {
		alloc.Hours = *changes.Hours
	}
	if changes.Location != nil {
		alloc.Location = *changes.Location
	}

	if err := s.Repo.Update(ctx, alloc); err != nil {
		return nil, DependencyError{Op: "update allocation", Err: err}
	}

	s.notifyBooked(ctx, *alloc, true)
	return alloc, nil
}

// CancelAllocation sets the allocation to CANCELLED, which frees the
// trainer's range for future proposals immediately.
func (s *DefaultSchedulingService) CancelAllocation(ctx context.Context, id string) (*models.Allocation, error) {
	alloc, err := s.Repo.SetStatus(ctx, id, models.AllocationCancelled)
	if err != nil {
		return nil, DependencyError{Op: "cancel allocation", Err: err}
	}
	if alloc == nil {
		return nil, NotFoundError{AllocationID: id}
	}
	return alloc, nil
}

// UpdateAllocationStatus moves the allocation along its lifecycle. Dates are
// untouched, so no overlap re-check is needed; cancellation goes through
// CancelAllocation. CANCELLED is terminal: the range may already be rebooked,
// so a cancelled allocation is never reactivated.
func (s *DefaultSchedulingService) UpdateAllocationStatus(ctx context.Context, id, status string) (*models.Allocation, error) {
	switch status {
	case models.AllocationScheduled, models.AllocationInProgress, models.AllocationCompleted:
	default:
		return nil, ValidationError{Fields: map[string]string{"status": "unknown status " + status}}
	}

	alloc, err := s.Repo.SetStatus(ctx, id, status)
	if err != nil {
		return nil, DependencyError{Op: "update allocation status", Err: err}
	}
	if alloc == nil {
		// The guard matched nothing: either the allocation does not exist
		// or it is cancelled.
		existing, err := s.Repo.GetByID(ctx, id)
		if err != nil {
			return nil, DependencyError{Op: "fetch allocation", Err: err}
		}
		if existing == nil {
			return nil, NotFoundError{AllocationID: id}
		}
		return nil, ValidationError{Fields: map[string]string{
			"status": "allocation is cancelled; book a new one instead",
		}}
	}
	return alloc, nil
}

// ListForTrainer returns the trainer's calendar sorted by start date ascending.
func (s *DefaultSchedulingService) ListForTrainer(ctx context.Context, trainerID string, excludeCancelled bool) ([]models.Allocation, error) {
	allocs, err := s.Repo.FindByTrainer(ctx, trainerID, excludeCancelled)
	if err != nil {
		return nil, DependencyError{Op: "fetch trainer allocations", Err: err}
	}
	return allocs, nil
}

// DeleteAllocation hard-deletes the record. Administrative override only:
// the overlap invariant is not re-checked.
func (s *DefaultSchedulingService) DeleteAllocation(ctx context.Context, id string) error {
	alloc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return DependencyError{Op: "fetch allocation", Err: err}
	}
	if alloc == nil {
		return NotFoundError{AllocationID: id}
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return DependencyError{Op: "delete allocation", Err: err}
	}
	utils.GetLogger().Info("allocation hard-deleted",
		zap.String("allocationId", id), zap.String("trainerId", alloc.TrainerID))
	return nil
}
