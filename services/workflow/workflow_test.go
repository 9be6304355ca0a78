package workflow

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	applicationRepo "traintrack/database/repository/application"
	"traintrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeApplicationRepo mimics the Mongo repository: the compare-and-swap
// semantics of Decide, the partial unique index on pending emails enforced
// in Create, and Find's search and sort behavior. blindPendingCheck makes
// FindPendingByEmail miss, simulating a submission racing past the
// check-then-act guard.
type fakeApplicationRepo struct {
	apps              map[string]models.Application
	accounts          map[string]models.Account
	profiles          map[string]models.TrainerProfile
	err               error
	blindPendingCheck bool
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		apps:     map[string]models.Application{},
		accounts: map[string]models.Account{},
		profiles: map[string]models.TrainerProfile{},
	}
}

func (f *fakeApplicationRepo) Create(_ context.Context, app *models.Application) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.apps {
		if existing.Email == app.Email && existing.Status == models.ApplicationPending {
			return applicationRepo.ErrDuplicateEmail
		}
	}
	f.apps[app.ID] = *app
	return nil
}

func (f *fakeApplicationRepo) GetByID(_ context.Context, id string) (*models.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	app, ok := f.apps[id]
	if !ok {
		return nil, nil
	}
	return &app, nil
}

func (f *fakeApplicationRepo) FindPendingByEmail(_ context.Context, email string) (*models.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.blindPendingCheck {
		return nil, nil
	}
	for _, app := range f.apps {
		if app.Email == email && app.Status == models.ApplicationPending {
			found := app
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeApplicationRepo) Find(_ context.Context, filter models.ApplicationFilter) ([]models.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	search := strings.ToLower(filter.Search)
	var out []models.Application
	for _, app := range f.apps {
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(app.FirstName), search) &&
			!strings.Contains(strings.ToLower(app.LastName), search) &&
			!strings.Contains(strings.ToLower(app.Email), search) {
			continue
		}
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

func (f *fakeApplicationRepo) Decide(_ context.Context, id string, decision applicationRepo.Decision, account *models.Account, profile *models.TrainerProfile) (*models.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	app, ok := f.apps[id]
	if !ok {
		return nil, applicationRepo.ErrNotFound
	}
	if app.Status != models.ApplicationPending {
		return nil, applicationRepo.ErrAlreadyDecided
	}
	app.Status = decision.Status
	app.DecisionComment = decision.Comment
	app.DecidedAt = decision.DecidedAt
	f.apps[id] = app
	if account != nil {
		f.accounts[account.ID] = *account
	}
	if profile != nil {
		f.profiles[profile.ID] = *profile
	}
	return &app, nil
}

// fakeAccountRepo backs the duplicate-email guard in Submit.
type fakeAccountRepo struct {
	byEmail map[string]models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byEmail: map[string]models.Account{}}
}

func (f *fakeAccountRepo) Create(_ context.Context, account *models.Account) error {
	f.byEmail[account.Email] = *account
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*models.Account, error) {
	for _, acc := range f.byEmail {
		if acc.ID == id {
			found := acc
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	acc, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &acc, nil
}

func (f *fakeAccountRepo) Update(_ context.Context, account *models.Account) error {
	f.byEmail[account.Email] = *account
	return nil
}

func (f *fakeAccountRepo) GetProfileByAccount(_ context.Context, _ string) (*models.TrainerProfile, error) {
	return nil, nil
}

func newTestService() (*DefaultWorkflowService, *fakeApplicationRepo, *fakeAccountRepo) {
	apps := newFakeApplicationRepo()
	accounts := newFakeAccountRepo()
	svc := &DefaultWorkflowService{Apps: apps, Accounts: accounts}
	return svc, apps, accounts
}

func validSubmission() models.ApplicationRequest {
	return models.ApplicationRequest{
		FirstName:       "Maya",
		LastName:        "Odhiambo",
		Email:           "maya@example.com",
		Skills:          []string{"Go", "Kubernetes"},
		ExperienceYears: 6,
	}
}

func TestSubmit(t *testing.T) {
	svc, apps, _ := newTestService()

	app, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	require.NotNil(t, app)

	assert.NotEmpty(t, app.ID)
	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.Equal(t, "maya@example.com", app.Email)
	assert.False(t, app.SubmittedAt.IsZero())
	assert.Contains(t, apps.apps, app.ID)
}

func TestSubmitNormalizesEmail(t *testing.T) {
	svc, _, _ := newTestService()

	req := validSubmission()
	req.Email = "  Maya@Example.COM "
	app, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "maya@example.com", app.Email)
}

func TestSubmitValidation(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*models.ApplicationRequest)
		field  string
	}{
		{"missing first name", func(r *models.ApplicationRequest) { r.FirstName = "  " }, "firstName"},
		{"missing last name", func(r *models.ApplicationRequest) { r.LastName = "" }, "lastName"},
		{"missing email", func(r *models.ApplicationRequest) { r.Email = "" }, "email"},
		{"malformed email", func(r *models.ApplicationRequest) { r.Email = "not-an-address" }, "email"},
		{"negative experience", func(r *models.ApplicationRequest) { r.ExperienceYears = -1 }, "experienceYears"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmission()
			tt.mutate(&req)

			_, err := svc.Submit(context.Background(), req)
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestSubmitDuplicateGuards(t *testing.T) {
	svc, _, accounts := newTestService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, validSubmission())
	require.NoError(t, err)

	// A second pending application for the same email is rejected, even with
	// different casing.
	req := validSubmission()
	req.Email = "MAYA@example.com"
	_, err = svc.Submit(ctx, req)
	var derr DuplicateError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "maya@example.com", derr.Email)

	// An existing platform account also blocks submission.
	require.NoError(t, accounts.Create(ctx, &models.Account{ID: "acc-1", Email: "held@example.com"}))
	req = validSubmission()
	req.Email = "held@example.com"
	_, err = svc.Submit(ctx, req)
	assert.ErrorAs(t, err, &derr)
}

func TestSubmitRaceCaughtAtInsert(t *testing.T) {
	svc, apps, _ := newTestService()
	ctx := context.Background()

	// Both submissions pass the pending lookup; the unique index on pending
	// emails rejects the second insert.
	apps.blindPendingCheck = true

	_, err := svc.Submit(ctx, validSubmission())
	require.NoError(t, err)

	_, err = svc.Submit(ctx, validSubmission())
	var derr DuplicateError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "maya@example.com", derr.Email)
	assert.Len(t, apps.apps, 1, "exactly one pending application per email")
}

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		text   string
		want   []string
	}{
		{"nil input", nil, "", []string{}},
		{"list only", []string{" Go ", "Go", "Rust"}, "", []string{"Go", "Rust"}},
		{"text only", nil, "Go, Kubernetes; Terraform\nGo", []string{"Go", "Kubernetes", "Terraform"}},
		{"merged case-insensitive dedupe", []string{"go"}, "GO, Docker", []string{"go", "Docker"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeList(tt.values, tt.text))
		})
	}
}

func TestAcceptProvisionsTrainer(t *testing.T) {
	svc, apps, _ := newTestService()
	ctx := context.Background()

	app, err := svc.Submit(ctx, validSubmission())
	require.NoError(t, err)

	result, err := svc.Accept(ctx, app.ID, "strong profile")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, models.ApplicationAccepted, result.Application.Status)
	assert.Equal(t, "strong profile", result.Application.DecisionComment)
	assert.False(t, result.Application.DecidedAt.IsZero())

	require.NotNil(t, result.Account)
	assert.Equal(t, models.RoleTrainer, result.Account.Role)
	assert.Equal(t, app.Email, result.Account.Email)

	// The temporary credential is returned in plaintext and stored hashed.
	require.NotEmpty(t, result.TempPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(result.Account.PasswordHash), []byte(result.TempPassword)))

	// Account and profile landed in the same decision write.
	require.Len(t, apps.accounts, 1)
	require.Len(t, apps.profiles, 1)
	for _, profile := range apps.profiles {
		assert.Equal(t, result.Account.ID, profile.AccountID)
		assert.Equal(t, result.Application.Skills, profile.Skills)
	}
}

func TestAcceptDefaultComment(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	app, err := svc.Submit(ctx, validSubmission())
	require.NoError(t, err)

	result, err := svc.Accept(ctx, app.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Application accepted", result.Application.DecisionComment)
}

func TestAcceptIsTerminal(t *testing.T) {
	svc, apps, _ := newTestService()
	ctx := context.Background()

	app, err := svc.Submit(ctx, validSubmission())
	require.NoError(t, err)
	_, err = svc.Accept(ctx, app.ID, "")
	require.NoError(t, err)

	// A second decision of either kind is refused and provisions nothing new.
	_, err = svc.Accept(ctx, app.ID, "")
	var aerr AlreadyDecidedError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, app.ID, aerr.ApplicationID)

	_, err = svc.Reject(ctx, app.ID, "")
	assert.ErrorAs(t, err, &aerr)

	assert.Len(t, apps.accounts, 1, "exactly one account provisioned")
	assert.Len(t, apps.profiles, 1)
}

func TestRejectLeavesNoAccount(t *testing.T) {
	svc, apps, _ := newTestService()
	ctx := context.Background()

	app, err := svc.Submit(ctx, validSubmission())
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, app.ID, "no availability this quarter")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationRejected, rejected.Status)
	assert.Equal(t, "no availability this quarter", rejected.DecisionComment)
	assert.Empty(t, apps.accounts)
	assert.Empty(t, apps.profiles)

	// Rejection is terminal too.
	_, err = svc.Accept(ctx, app.ID, "")
	var aerr AlreadyDecidedError
	assert.ErrorAs(t, err, &aerr)
}

func TestDecisionOnUnknownApplication(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Accept(ctx, "missing", "")
	var nerr NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "missing", nerr.ApplicationID)

	_, err = svc.Reject(ctx, "missing", "")
	assert.ErrorAs(t, err, &nerr)
}

func TestListFiltersByStatus(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Submit(ctx, validSubmission())
	require.NoError(t, err)

	second := validSubmission()
	second.Email = "tomas@example.com"
	_, err = svc.Submit(ctx, second)
	require.NoError(t, err)

	_, err = svc.Reject(ctx, first.ID, "")
	require.NoError(t, err)

	pending, err := svc.List(ctx, models.ApplicationFilter{Status: models.ApplicationPending})
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := svc.List(ctx, models.ApplicationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListSortedNewestFirst(t *testing.T) {
	svc, apps, _ := newTestService()
	ctx := context.Background()

	submittedAt := map[string]time.Time{
		"old@example.com": time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		"mid@example.com": time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC),
		"new@example.com": time.Date(2024, 3, 30, 9, 0, 0, 0, time.UTC),
	}
	for email, at := range submittedAt {
		req := validSubmission()
		req.Email = email
		app, err := svc.Submit(ctx, req)
		require.NoError(t, err)

		stored := apps.apps[app.ID]
		stored.SubmittedAt = at
		apps.apps[app.ID] = stored
	}

	listed, err := svc.List(ctx, models.ApplicationFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "new@example.com", listed[0].Email)
	assert.Equal(t, "mid@example.com", listed[1].Email)
	assert.Equal(t, "old@example.com", listed[2].Email)
}

func TestListSearchMatchesCaseInsensitively(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, validSubmission())
	require.NoError(t, err)

	other := validSubmission()
	other.FirstName = "Tomas"
	other.LastName = "Berg"
	other.Email = "tomas@example.com"
	_, err = svc.Submit(ctx, other)
	require.NoError(t, err)

	// Name hit, regardless of casing.
	hits, err := svc.List(ctx, models.ApplicationFilter{Search: "ODHIAMBO"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "maya@example.com", hits[0].Email)

	// Email hit.
	hits, err = svc.List(ctx, models.ApplicationFilter{Search: "tomas@"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "tomas@example.com", hits[0].Email)

	// Miss.
	hits, err = svc.List(ctx, models.ApplicationFilter{Search: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestDependencyErrorsWrapCause(t *testing.T) {
	svc, apps, _ := newTestService()
	cause := errors.New("mongo down")
	apps.err = cause

	_, err := svc.Submit(context.Background(), validSubmission())
	var derr DependencyError
	require.ErrorAs(t, err, &derr)
	assert.ErrorIs(t, err, cause)
}

func TestGenerateTempPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		pass, err := generateTempPassword(tempPasswordLength)
		require.NoError(t, err)
		assert.Len(t, pass, tempPasswordLength)
		assert.False(t, seen[pass], "passwords must not repeat")
		seen[pass] = true
	}
}
