package workflow

import (
	"context"

	accountRepo "traintrack/database/repository/account"
	applicationRepo "traintrack/database/repository/application"
	"traintrack/models"
	"traintrack/services/notification"
)

// WorkflowService advances trainer applications through their fixed state
// machine: PENDING -> ACCEPTED or PENDING -> REJECTED, both terminal.
// Acceptance provisions the trainer account and profile atomically with the
// status change.
type WorkflowService interface {
	Submit(ctx context.Context, req models.ApplicationRequest) (*models.Application, error)
	Accept(ctx context.Context, id, comment string) (*models.DecisionResult, error)
	Reject(ctx context.Context, id, comment string) (*models.Application, error)
	List(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error)
}

// DefaultWorkflowService is the production implementation.
type DefaultWorkflowService struct {
	Apps     applicationRepo.ApplicationRepository
	Accounts accountRepo.AccountRepository
	Notifier notification.NotificationService
}
