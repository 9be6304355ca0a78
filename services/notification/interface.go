package notification

import (
	"context"

	"traintrack/models"
)

// NotificationService dispatches best-effort messages about scheduling and
// workflow outcomes. Implementations must never block the caller beyond a
// bounded attempt; callers log returned errors and continue.
type NotificationService interface {
	NotifyAllocationBooked(ctx context.Context, notice models.AllocationNotice) error
	NotifyAllocationRevised(ctx context.Context, notice models.AllocationNotice) error
	NotifyApplicationDecision(ctx context.Context, notice models.DecisionNotice) error
}
