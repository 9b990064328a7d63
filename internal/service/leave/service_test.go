package leave

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workly-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workly-hq/hrms-backend-go/internal/domain/leave"
)

type fakeLeaveRepo struct {
	requests map[string]leave.Request
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: map[string]leave.Request{}}
}

func (f *fakeLeaveRepo) Create(_ context.Context, req leave.Request) (leave.Request, error) {
	req.ID = uuid.NewString()
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeLeaveRepo) Update(_ context.Context, req leave.Request) error {
	if _, ok := f.requests[req.ID]; !ok {
		return leave.ErrRequestNotFound
	}
	f.requests[req.ID] = req
	return nil
}

func (f *fakeLeaveRepo) ListByEmployee(_ context.Context, employeeID string, year int) ([]leave.Request, error) {
	var out []leave.Request
	for _, req := range f.requests {
		if req.EmployeeID == employeeID && req.StartDate.Year() == year {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListPending(_ context.Context, _, _ int) ([]leave.Request, int64, error) {
	var out []leave.Request
	for _, req := range f.requests {
		if req.Status == leave.StatusPending {
			out = append(out, req)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRepo) ApprovedInRange(_ context.Context, employeeID string, from, to time.Time) ([]leave.Request, error) {
	var out []leave.Request
	for _, req := range f.requests {
		if req.EmployeeID == employeeID && req.Status == leave.StatusApproved &&
			!req.StartDate.After(to) && !req.EndDate.Before(from) {
			out = append(out, req)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	byUserID map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(context.Context, string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	emp, ok := f.byUserID[userID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) Update(context.Context, employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(context.Context, string) error           { return nil }

func (f *fakeEmployeeRepo) List(context.Context, employee.Filter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func newTestService() (*LeaveServiceImpl, *fakeLeaveRepo) {
	leaveRepo := newFakeLeaveRepo()
	employeeRepo := &fakeEmployeeRepo{byUserID: map[string]employee.Employee{
		"user-1": {ID: "emp-1", UserID: strPtr("user-1")},
	}}
	return NewLeaveService(leaveRepo, employeeRepo), leaveRepo
}

func strPtr(s string) *string { return &s }

func TestApplyExcludesWeekends(t *testing.T) {
	svc, _ := newTestService()

	// Fri 2025-03-07 through Mon 2025-03-10 spans a weekend.
	resp, err := svc.Apply(context.Background(), leave.ApplyRequest{
		EmployeeID: "emp-1",
		Type:       "casual",
		StartDate:  "2025-03-07",
		EndDate:    "2025-03-10",
		Reason:     "family visit",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Days)
	assert.Equal(t, string(leave.StatusPending), resp.Status)
}

func TestApplyWeekendOnlyRangeRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Apply(context.Background(), leave.ApplyRequest{
		EmployeeID: "emp-1",
		Type:       "casual",
		StartDate:  "2025-03-08",
		EndDate:    "2025-03-09",
		Reason:     "weekend getaway",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestApplyInsufficientBalance(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Casual allocation is 12 days; a three-week request blows through it.
	_, err := svc.Apply(ctx, leave.ApplyRequest{
		EmployeeID: "emp-1",
		Type:       "casual",
		StartDate:  "2025-03-03",
		EndDate:    "2025-03-21",
		Reason:     "long trip",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestApplyWFHIgnoresBalance(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Apply(context.Background(), leave.ApplyRequest{
		EmployeeID: "emp-1",
		Type:       "wfh",
		StartDate:  "2025-03-03",
		EndDate:    "2025-03-28",
		Reason:     "renovation",
	})
	assert.NoError(t, err)
}

func TestCancelOnlyOwnPendingRequest(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Apply(ctx, leave.ApplyRequest{
		EmployeeID: "emp-1",
		Type:       "sick",
		StartDate:  "2025-03-11",
		EndDate:    "2025-03-11",
		Reason:     "flu",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Cancel(ctx, resp.ID, "emp-2"), leave.ErrNotRequestOwner)
	assert.NoError(t, svc.Cancel(ctx, resp.ID, "emp-1"))
	// A cancelled request cannot be cancelled again.
	assert.ErrorIs(t, svc.Cancel(ctx, resp.ID, "emp-1"), leave.ErrAlreadyProcessed)
}

func TestApproveAndReject(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Apply(ctx, leave.ApplyRequest{
		EmployeeID: "emp-1",
		Type:       "earned",
		StartDate:  "2025-03-12",
		EndDate:    "2025-03-13",
		Reason:     "travel",
	})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, leave.ReviewRequest{ID: resp.ID, ReviewerID: "hr-1"})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), approved.Status)

	// Already processed requests cannot flip.
	_, err = svc.Reject(ctx, leave.ReviewRequest{ID: resp.ID, ReviewerID: "hr-1", Reason: "late"})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestRejectRequiresReason(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Reject(context.Background(), leave.ReviewRequest{ID: "any", ReviewerID: "hr-1"})
	assert.Error(t, err)
}

func TestLeaveDaysInMonth(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	// One approved leave spanning a weekend and one approved WFH day.
	vacation := leave.Request{
		EmployeeID: "emp-1",
		Type:       leave.TypeEarned,
		StartDate:  time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Days:       2,
		Status:     leave.StatusApproved,
	}
	_, err := repo.Create(ctx, vacation)
	require.NoError(t, err)

	wfh := leave.Request{
		EmployeeID: "emp-1",
		Type:       leave.TypeWFH,
		StartDate:  time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		Days:       1,
		Status:     leave.StatusApproved,
	}
	_, err = repo.Create(ctx, wfh)
	require.NoError(t, err)

	days, err := svc.LeaveDaysInMonth(ctx, "user-1", 2025, time.March)
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusLeave, days["2025-03-07"])
	assert.Equal(t, attendance.StatusLeave, days["2025-03-10"])
	assert.Equal(t, attendance.StatusWFH, days["2025-03-12"])
	// Weekend days inside the range are not reported.
	assert.NotContains(t, days, "2025-03-08")
	assert.NotContains(t, days, "2025-03-09")
	assert.Len(t, days, 3)
}

func TestLeaveDaysInMonthNoEmployeeProfile(t *testing.T) {
	svc, _ := newTestService()

	days, err := svc.LeaveDaysInMonth(context.Background(), "user-without-profile", 2025, time.March)
	require.NoError(t, err)
	assert.Empty(t, days)
}
