package workflow

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	applicationRepo "traintrack/database/repository/application"
	"traintrack/models"
	"traintrack/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func validateSubmission(req models.ApplicationRequest) error {
	fields := map[string]string{}
	if strings.TrimSpace(req.FirstName) == "" {
		fields["firstName"] = "first name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		fields["lastName"] = "last name is required"
	}
	if req.Email == "" {
		fields["email"] = "email is required"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		fields["email"] = "invalid email address"
	}
	if req.ExperienceYears < 0 {
		fields["experienceYears"] = "experience years cannot be negative"
	}
	if len(fields) > 0 {
		return ValidationError{Fields: fields}
	}
	return nil
}

// normalizeList merges list values with delimited free text ("a, b; c") into
// a trimmed, de-duplicated slice preserving first-seen order.
func normalizeList(values []string, text string) []string {
	merged := make([]string, 0, len(values))
	merged = append(merged, values...)
	if text != "" {
		merged = append(merged, strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ';' || r == '\n'
		})...)
	}

	seen := make(map[string]bool, len(merged))
	out := make([]string, 0, len(merged))
	for _, v := range merged {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// Submit records a new pending application. The email must not collide with
// another pending application or an existing platform account.
func (s *DefaultWorkflowService) Submit(ctx context.Context, req models.ApplicationRequest) (*models.Application, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	pending, err := s.Apps.FindPendingByEmail(ctx, email)
	if err != nil {
		return nil, DependencyError{Op: "check pending applications", Err: err}
	}
	if pending != nil {
		return nil, DuplicateError{Email: email}
	}

	account, err := s.Accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, DependencyError{Op: "check existing accounts", Err: err}
	}
	if account != nil {
		return nil, DuplicateError{Email: email}
	}

	app := &models.Application{
		ID:              uuid.New().String(),
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Email:           email,
		Phone:           strings.TrimSpace(req.Phone),
		Skills:          normalizeList(req.Skills, req.SkillsText),
		Specialties:     normalizeList(req.Specialties, req.SpecialtiesText),
		ExperienceYears: req.ExperienceYears,
		ResumeRef:       req.ResumeRef,
		Notes:           req.Notes,
		Status:          models.ApplicationPending,
		SubmittedAt:     time.Now(),
	}
	if err := s.Apps.Create(ctx, app); err != nil {
		// A concurrent submission can slip past the pending check; the
		// partial unique index catches it at insert time.
		if errors.Is(err, applicationRepo.ErrDuplicateEmail) {
			return nil, DuplicateError{Email: email}
		}
		return nil, DependencyError{Op: "create application", Err: err}
	}
	return app, nil
}

// Accept decides a pending application positively and provisions the trainer
// account. The status guard and the account/profile inserts run in one
// repository transaction, so a concurrent Accept on the same application
// creates exactly one account and the loser gets AlreadyDecidedError.
func (s *DefaultWorkflowService) Accept(ctx context.Context, id, comment string) (*models.DecisionResult, error) {
	app, err := s.Apps.GetByID(ctx, id)
	if err != nil {
		return nil, DependencyError{Op: "fetch application", Err: err}
	}
	if app == nil {
		return nil, NotFoundError{ApplicationID: id}
	}

	account, profile, tempPassword, err := buildTrainerAccount(app)
	if err != nil {
		return nil, DependencyError{Op: "provision trainer account", Err: err}
	}

	if comment == "" {
		comment = "Application accepted"
	}
	decision := applicationRepo.Decision{
		Status:    models.ApplicationAccepted,
		Comment:   comment,
		DecidedAt: time.Now(),
	}

	decided, err := s.Apps.Decide(ctx, id, decision, account, profile)
	if err != nil {
		return nil, mapDecideError(id, err)
	}

	s.notifyDecision(ctx, models.DecisionNotice{
		Email:        decided.Email,
		FirstName:    decided.FirstName,
		Accepted:     true,
		Comment:      comment,
		TempPassword: tempPassword,
	})

	return &models.DecisionResult{
		Application:  decided,
		Account:      account,
		TempPassword: tempPassword,
	}, nil
}

// Reject decides a pending application negatively. Same status guard as
// Accept; a decided application is never touched again.
func (s *DefaultWorkflowService) Reject(ctx context.Context, id, comment string) (*models.Application, error) {
	if comment == "" {
		comment = "Application rejected"
	}
	decision := applicationRepo.Decision{
		Status:    models.ApplicationRejected,
		Comment:   comment,
		DecidedAt: time.Now(),
	}

	decided, err := s.Apps.Decide(ctx, id, decision, nil, nil)
	if err != nil {
		return nil, mapDecideError(id, err)
	}

	s.notifyDecision(ctx, models.DecisionNotice{
		Email:     decided.Email,
		FirstName: decided.FirstName,
		Accepted:  false,
		Comment:   comment,
	})
	return decided, nil
}

// List returns applications newest-first, optionally filtered by status and
// a case-insensitive name/email search.
func (s *DefaultWorkflowService) List(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error) {
	apps, err := s.Apps.Find(ctx, filter)
	if err != nil {
		return nil, DependencyError{Op: "list applications", Err: err}
	}
	return apps, nil
}

func mapDecideError(id string, err error) error {
	switch {
	case errors.Is(err, applicationRepo.ErrNotFound):
		return NotFoundError{ApplicationID: id}
	case errors.Is(err, applicationRepo.ErrAlreadyDecided):
		return AlreadyDecidedError{ApplicationID: id}
	default:
		return DependencyError{Op: "decide application", Err: err}
	}
}

func (s *DefaultWorkflowService) notifyDecision(ctx context.Context, notice models.DecisionNotice) {
	if s.Notifier == nil {
		return
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := s.Notifier.NotifyApplicationDecision(nctx, notice); err != nil {
		utils.GetLogger().Warn("application decision notification failed",
			zap.String("email", notice.Email), zap.Error(err))
	}
}
