package scheduler

import (
	"context"
	"errors"
	"sort"
	"testing"

	"traintrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAllocationRepo is an in-memory AllocationRepository mirroring the
// Mongo implementation's semantics: terminal CANCELLED in SetStatus, booking
// fields only in Update, start-ascending sort in FindByTrainer. afterGet lets
// a test interleave a write between a service's read and its update.
type fakeAllocationRepo struct {
	allocs   map[string]models.Allocation
	err      error
	afterGet func()
}

func newFakeAllocationRepo() *fakeAllocationRepo {
	return &fakeAllocationRepo{allocs: map[string]models.Allocation{}}
}

func (f *fakeAllocationRepo) Create(_ context.Context, alloc *models.Allocation) error {
	if f.err != nil {
		return f.err
	}
	f.allocs[alloc.ID] = *alloc
	return nil
}

func (f *fakeAllocationRepo) GetByID(_ context.Context, id string) (*models.Allocation, error) {
	if f.err != nil {
		return nil, f.err
	}
	alloc, ok := f.allocs[id]
	if f.afterGet != nil {
		f.afterGet()
	}
	if !ok {
		return nil, nil
	}
	return &alloc, nil
}

func (f *fakeAllocationRepo) Update(_ context.Context, alloc *models.Allocation) error {
	if f.err != nil {
		return f.err
	}
	stored, ok := f.allocs[alloc.ID]
	if !ok {
		return errors.New("allocation not found")
	}
	stored.SessionID = alloc.SessionID
	stored.ClientID = alloc.ClientID
	stored.DateRange = alloc.DateRange
	stored.Hours = alloc.Hours
	stored.Location = alloc.Location
	f.allocs[alloc.ID] = stored
	*alloc = stored
	return nil
}

func (f *fakeAllocationRepo) SetStatus(_ context.Context, id, status string) (*models.Allocation, error) {
	if f.err != nil {
		return nil, f.err
	}
	alloc, ok := f.allocs[id]
	if !ok {
		return nil, nil
	}
	if status != models.AllocationCancelled && alloc.Status == models.AllocationCancelled {
		return nil, nil
	}
	alloc.Status = status
	f.allocs[id] = alloc
	return &alloc, nil
}

func (f *fakeAllocationRepo) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.allocs, id)
	return nil
}

func (f *fakeAllocationRepo) FindByTrainer(_ context.Context, trainerID string, excludeCancelled bool) ([]models.Allocation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Allocation
	for _, alloc := range f.allocs {
		if alloc.TrainerID != trainerID {
			continue
		}
		if excludeCancelled && alloc.Status == models.AllocationCancelled {
			continue
		}
		out = append(out, alloc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateRange.Start < out[j].DateRange.Start
	})
	return out, nil
}

// fakeLockManager counts acquisitions and releases so tests can verify the
// lock bracketing around check-and-insert.
type fakeLockManager struct {
	acquired []string
	released int
	err      error
}

func (f *fakeLockManager) Acquire(_ context.Context, key string) (func(), error) {
	if f.err != nil {
		return nil, f.err
	}
	f.acquired = append(f.acquired, key)
	return func() { f.released++ }, nil
}

func newTestService() (*DefaultSchedulingService, *fakeAllocationRepo, *fakeLockManager) {
	repo := newFakeAllocationRepo()
	locks := &fakeLockManager{}
	svc := &DefaultSchedulingService{Repo: repo, Locks: locks}
	return svc, repo, locks
}

func validRequest() models.AllocationRequest {
	return models.AllocationRequest{
		TrainerID: "trainer-1",
		SessionID: "session-1",
		ClientID:  "client-1",
		DateRange: models.DateRange{Start: "2024-03-01", End: "2024-03-05"},
	}
}

func TestProposeAllocationSuccess(t *testing.T) {
	svc, repo, locks := newTestService()

	alloc, err := svc.ProposeAllocation(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, alloc)

	assert.NotEmpty(t, alloc.ID)
	assert.Equal(t, models.AllocationScheduled, alloc.Status)
	assert.Equal(t, "trainer-1", alloc.TrainerID)
	assert.Contains(t, repo.allocs, alloc.ID)

	assert.Equal(t, []string{"trainer-1"}, locks.acquired)
	assert.Equal(t, 1, locks.released)
}

func TestProposeAllocationValidation(t *testing.T) {
	svc, repo, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*models.AllocationRequest)
		field  string
	}{
		{"missing trainer", func(r *models.AllocationRequest) { r.TrainerID = "" }, "trainerId"},
		{"missing session", func(r *models.AllocationRequest) { r.SessionID = "" }, "sessionId"},
		{"missing client", func(r *models.AllocationRequest) { r.ClientID = "" }, "clientId"},
		{"malformed date", func(r *models.AllocationRequest) { r.DateRange.Start = "03/01/2024" }, "dateRange"},
		{"start after end", func(r *models.AllocationRequest) {
			r.DateRange = models.DateRange{Start: "2024-03-09", End: "2024-03-05"}
		}, "dateRange"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.ProposeAllocation(context.Background(), req)
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
	assert.Empty(t, repo.allocs, "no writes on validation failure")
}

func TestProposeAllocationConflict(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.ProposeAllocation(ctx, validRequest())
	require.NoError(t, err)

	// Touching at the boundary: conflicts under inclusive bounds.
	req := validRequest()
	req.DateRange = models.DateRange{Start: "2024-03-05", End: "2024-03-06"}
	_, err = svc.ProposeAllocation(ctx, req)

	var cerr ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "trainer-1", cerr.TrainerID)
	require.Len(t, cerr.Conflicts, 1)
	assert.Equal(t, first.ID, cerr.Conflicts[0].AllocationID)
	assert.Equal(t, "2024-03-01", cerr.Conflicts[0].Start)
	assert.Equal(t, "2024-03-05", cerr.Conflicts[0].End)

	// The next free day is fine.
	req.DateRange = models.DateRange{Start: "2024-03-06", End: "2024-03-07"}
	_, err = svc.ProposeAllocation(ctx, req)
	assert.NoError(t, err)
}

func TestProposeAllocationExclusiveBounds(t *testing.T) {
	svc, _, _ := newTestService()
	svc.ExclusiveBounds = true
	ctx := context.Background()

	_, err := svc.ProposeAllocation(ctx, validRequest())
	require.NoError(t, err)

	// Back-to-back on the shared boundary day is allowed.
	req := validRequest()
	req.DateRange = models.DateRange{Start: "2024-03-05", End: "2024-03-06"}
	_, err = svc.ProposeAllocation(ctx, req)
	assert.NoError(t, err)
}

func TestProposeAllocationOtherTrainerUnaffected(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.ProposeAllocation(ctx, validRequest())
	require.NoError(t, err)

	// Same range, different trainer: no conflict.
	req := validRequest()
	req.TrainerID = "trainer-2"
	_, err = svc.ProposeAllocation(ctx, req)
	assert.NoError(t, err)
}

func TestProposeAllocationLockFailure(t *testing.T) {
	svc, repo, locks := newTestService()
	locks.err = errors.New("redis unavailable")

	_, err := svc.ProposeAllocation(context.Background(), validRequest())
	var derr DependencyError
	require.ErrorAs(t, err, &derr)
	assert.Empty(t, repo.allocs)
}

func TestReviseAllocation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.ProposeAllocation(ctx, validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.DateRange = models.DateRange{Start: "2024-03-10", End: "2024-03-12"}
	other, err := svc.ProposeAllocation(ctx, second)
	require.NoError(t, err)

	// Shifting within its own original range: the allocation does not
	// conflict with itself.
	newRange := models.DateRange{Start: "2024-03-02", End: "2024-03-04"}
	revised, err := svc.ReviseAllocation(ctx, first.ID, models.AllocationChanges{DateRange: &newRange})
	require.NoError(t, err)
	assert.Equal(t, newRange, revised.DateRange)

	// Moving onto the other allocation conflicts.
	clash := models.DateRange{Start: "2024-03-11", End: "2024-03-13"}
	_, err = svc.ReviseAllocation(ctx, first.ID, models.AllocationChanges{DateRange: &clash})
	var cerr ConflictError
	require.ErrorAs(t, err, &cerr)
	require.Len(t, cerr.Conflicts, 1)
	assert.Equal(t, other.ID, cerr.Conflicts[0].AllocationID)

	// Non-date changes skip the overlap check entirely.
	hours := "10:00-16:00"
	revised, err = svc.ReviseAllocation(ctx, first.ID, models.AllocationChanges{Hours: &hours})
	require.NoError(t, err)
	assert.Equal(t, hours, revised.Hours)
	assert.Equal(t, newRange, revised.DateRange, "range untouched")
}

func TestReviseAllocationNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ReviseAllocation(context.Background(), "missing", models.AllocationChanges{})
	var nerr NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "missing", nerr.AllocationID)
}

func TestCancelAllocationFreesRange(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	alloc, err := svc.ProposeAllocation(ctx, validRequest())
	require.NoError(t, err)

	// Occupied: an identical proposal is rejected.
	_, err = svc.ProposeAllocation(ctx, validRequest())
	var cerr ConflictError
	require.ErrorAs(t, err, &cerr)

	cancelled, err := svc.CancelAllocation(ctx, alloc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AllocationCancelled, cancelled.Status)

	// Cancellation frees the range immediately.
	_, err = svc.ProposeAllocation(ctx, validRequest())
	assert.NoError(t, err)
}

func TestUpdateAllocationStatus(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	alloc, err := svc.ProposeAllocation(ctx, validRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateAllocationStatus(ctx, alloc.ID, models.AllocationInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.AllocationInProgress, updated.Status)

	_, err = svc.UpdateAllocationStatus(ctx, alloc.ID, "PAUSED")
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")

	_, err = svc.UpdateAllocationStatus(ctx, "missing", models.AllocationCompleted)
	var nerr NotFoundError
	require.ErrorAs(t, err, &nerr)
}

func TestUpdateAllocationStatusCancelledIsTerminal(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.ProposeAllocation(ctx, validRequest())
	require.NoError(t, err)
	_, err = svc.CancelAllocation(ctx, first.ID)
	require.NoError(t, err)

	// The freed range is rebooked.
	second, err := svc.ProposeAllocation(ctx, validRequest())
	require.NoError(t, err)

	// Reactivating the cancelled allocation would overlap the new booking;
	// every lifecycle target is refused.
	for _, status := range []string{models.AllocationScheduled, models.AllocationInProgress, models.AllocationCompleted} {
		_, err = svc.UpdateAllocationStatus(ctx, first.ID, status)
		var verr ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "status")
	}

	active, err := svc.ListForTrainer(ctx, "trainer-1", true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
}

func TestReviseAllocationPreservesConcurrentCancel(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	alloc, err := svc.ProposeAllocation(ctx, validRequest())
	require.NoError(t, err)

	// Cancel lands between the revision's read and its write.
	repo.afterGet = func() {
		stored := repo.allocs[alloc.ID]
		stored.Status = models.AllocationCancelled
		repo.allocs[alloc.ID] = stored
	}

	hours := "10:00-16:00"
	revised, err := svc.ReviseAllocation(ctx, alloc.ID, models.AllocationChanges{Hours: &hours})
	require.NoError(t, err)

	// The revision applies its fields but does not resurrect the allocation.
	assert.Equal(t, hours, revised.Hours)
	assert.Equal(t, models.AllocationCancelled, revised.Status)
	assert.Equal(t, models.AllocationCancelled, repo.allocs[alloc.ID].Status)
}

func TestDeleteAllocation(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	alloc, err := svc.ProposeAllocation(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAllocation(ctx, alloc.ID))
	assert.NotContains(t, repo.allocs, alloc.ID)

	err = svc.DeleteAllocation(ctx, alloc.ID)
	var nerr NotFoundError
	assert.ErrorAs(t, err, &nerr)
}

func TestListForTrainer(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	alloc, err := svc.ProposeAllocation(ctx, validRequest())
	require.NoError(t, err)
	_, err = svc.CancelAllocation(ctx, alloc.ID)
	require.NoError(t, err)

	second := validRequest()
	second.DateRange = models.DateRange{Start: "2024-04-01", End: "2024-04-02"}
	_, err = svc.ProposeAllocation(ctx, second)
	require.NoError(t, err)

	active, err := svc.ListForTrainer(ctx, "trainer-1", true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.ListForTrainer(ctx, "trainer-1", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListForTrainerSortedByStart(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// Booked out of chronological order.
	for _, r := range []models.DateRange{
		{Start: "2024-05-10", End: "2024-05-12"},
		{Start: "2024-03-01", End: "2024-03-05"},
		{Start: "2024-04-20", End: "2024-04-21"},
	} {
		req := validRequest()
		req.DateRange = r
		_, err := svc.ProposeAllocation(ctx, req)
		require.NoError(t, err)
	}

	allocs, err := svc.ListForTrainer(ctx, "trainer-1", true)
	require.NoError(t, err)
	require.Len(t, allocs, 3)
	assert.Equal(t, "2024-03-01", allocs[0].DateRange.Start)
	assert.Equal(t, "2024-04-20", allocs[1].DateRange.Start)
	assert.Equal(t, "2024-05-10", allocs[2].DateRange.Start)
}
