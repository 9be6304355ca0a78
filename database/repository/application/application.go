package applicationRepo

import (
	"context"
	"errors"
	"time"

	"traintrack/models"
)

// Sentinel errors so the workflow can map repository outcomes to its
// user-facing error kinds. ErrDuplicateEmail surfaces the partial unique
// index on pending emails, which is what closes the race between two
// concurrent submissions that both passed the pending check.
var (
	ErrNotFound       = errors.New("application not found")
	ErrAlreadyDecided = errors.New("application already decided")
	ErrDuplicateEmail = errors.New("pending application with this email already exists")
)

// Decision captures an administrative decision on a pending application.
type Decision struct {
	Status    string
	Comment   string
	DecidedAt time.Time
}

// ApplicationRepository persists trainer applications and performs the
// decision transition transactionally.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	// FindPendingByEmail returns the pending application for the given
	// (lowercased) email, or (nil, nil) when none exists.
	FindPendingByEmail(ctx context.Context, email string) (*models.Application, error)
	Find(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error)
	// Decide compare-and-swaps the application out of PENDING and, for an
	// acceptance, inserts the account and trainer profile in the same
	// transaction. It returns ErrNotFound or ErrAlreadyDecided when the
	// status guard does not match.
	Decide(ctx context.Context, id string, decision Decision, account *models.Account, profile *models.TrainerProfile) (*models.Application, error)
}
