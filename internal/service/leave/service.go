package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workly-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workly-hq/hrms-backend-go/internal/domain/leave"
)

// Annual allocation per leave type. WFH is tracked but not budgeted.
var annualAllocation = map[leave.Type]int{
	leave.TypeCasual: 12,
	leave.TypeSick:   10,
	leave.TypeEarned: 15,
}

type LeaveServiceImpl struct {
	leave.LeaveRepository
	employee.EmployeeRepository
}

func NewLeaveService(leaveRepository leave.LeaveRepository, employeeRepository employee.EmployeeRepository) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		LeaveRepository:    leaveRepository,
		EmployeeRepository: employeeRepository,
	}
}

var _ leave.LeaveService = (*LeaveServiceImpl)(nil)
var _ attendance.LeaveSource = (*LeaveServiceImpl)(nil)

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	leaveType := leave.Type(req.Type)

	days := countWorkingDays(start, end)
	if days == 0 {
		return leave.RequestResponse{}, leave.ErrInvalidDateRange
	}

	if allocation, budgeted := annualAllocation[leaveType]; budgeted {
		used, err := s.usedDays(ctx, req.EmployeeID, leaveType, start.Year())
		if err != nil {
			return leave.RequestResponse{}, err
		}
		if used+days > allocation {
			return leave.RequestResponse{}, leave.ErrInsufficientBalance
		}
	}

	created, err := s.LeaveRepository.Create(ctx, leave.Request{
		EmployeeID: req.EmployeeID,
		Type:       leaveType,
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}
	return mapRequestToResponse(created), nil
}

// Cancel implements leave.LeaveService.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, id, employeeID string) error {
	req, err := s.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req.EmployeeID != employeeID {
		return leave.ErrNotRequestOwner
	}
	if req.Status != leave.StatusPending {
		return leave.ErrAlreadyProcessed
	}

	req.Status = leave.StatusCancelled
	return s.LeaveRepository.Update(ctx, req)
}

// MyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) MyRequests(ctx context.Context, employeeID string, year int) ([]leave.RequestResponse, error) {
	requests, err := s.LeaveRepository.ListByEmployee(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, mapRequestToResponse(req))
	}
	return responses, nil
}

// MyBalances implements leave.LeaveService.
func (s *LeaveServiceImpl) MyBalances(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	requests, err := s.LeaveRepository.ListByEmployee(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	used := map[leave.Type]int{}
	for _, req := range requests {
		if req.Status == leave.StatusApproved || req.Status == leave.StatusPending {
			used[req.Type] += req.Days
		}
	}

	balances := make([]leave.Balance, 0, len(annualAllocation))
	for _, t := range []leave.Type{leave.TypeCasual, leave.TypeSick, leave.TypeEarned} {
		allocation := annualAllocation[t]
		balances = append(balances, leave.Balance{
			Type:      t,
			Allocated: allocation,
			Used:      used[t],
			Remaining: allocation - used[t],
		})
	}
	return balances, nil
}

// ListPending implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPending(ctx context.Context, page, limit int) (leave.ListRequestsResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	requests, total, err := s.LeaveRepository.ListPending(ctx, page, limit)
	if err != nil {
		return leave.ListRequestsResponse{}, err
	}

	resp := leave.ListRequestsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		Requests:   make([]leave.RequestResponse, 0, len(requests)),
	}
	for _, req := range requests {
		resp.Requests = append(resp.Requests, mapRequestToResponse(req))
	}
	return resp, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, review leave.ReviewRequest) (leave.RequestResponse, error) {
	return s.reviewRequest(ctx, review, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, review leave.ReviewRequest) (leave.RequestResponse, error) {
	if review.Reason == "" {
		return leave.RequestResponse{}, fmt.Errorf("rejection reason is required")
	}
	return s.reviewRequest(ctx, review, leave.StatusRejected)
}

func (s *LeaveServiceImpl) reviewRequest(ctx context.Context, review leave.ReviewRequest, status leave.Status) (leave.RequestResponse, error) {
	req, err := s.LeaveRepository.GetByID(ctx, review.ID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if req.Status != leave.StatusPending {
		return leave.RequestResponse{}, leave.ErrAlreadyProcessed
	}

	now := time.Now()
	req.Status = status
	req.ReviewedBy = &review.ReviewerID
	req.ReviewedAt = &now
	if status == leave.StatusRejected {
		req.RejectionReason = &review.Reason
	}

	if err := s.LeaveRepository.Update(ctx, req); err != nil {
		return leave.RequestResponse{}, err
	}
	return mapRequestToResponse(req), nil
}

// LeaveDaysInMonth implements attendance.LeaveSource. Days are keyed by
// YYYY-MM-DD; weekends inside a leave range are skipped so the calendar's
// weekend status wins.
func (s *LeaveServiceImpl) LeaveDaysInMonth(ctx context.Context, userID string, year int, month time.Month) (map[string]attendance.DayStatus, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return map[string]attendance.DayStatus{}, nil
		}
		return nil, err
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	requests, err := s.LeaveRepository.ApprovedInRange(ctx, emp.ID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	days := map[string]attendance.DayStatus{}
	for _, req := range requests {
		status := attendance.StatusLeave
		if req.Type == leave.TypeWFH {
			status = attendance.StatusWFH
		}
		for d := req.StartDate; !d.After(req.EndDate); d = d.AddDate(0, 0, 1) {
			if d.Before(monthStart) || d.After(monthEnd) {
				continue
			}
			if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
			days[d.Format("2006-01-02")] = status
		}
	}
	return days, nil
}

func (s *LeaveServiceImpl) usedDays(ctx context.Context, employeeID string, leaveType leave.Type, year int) (int, error) {
	requests, err := s.LeaveRepository.ListByEmployee(ctx, employeeID, year)
	if err != nil {
		return 0, err
	}

	used := 0
	for _, req := range requests {
		if req.Type != leaveType {
			continue
		}
		if req.Status == leave.StatusApproved || req.Status == leave.StatusPending {
			used += req.Days
		}
	}
	return used, nil
}

func countWorkingDays(start, end time.Time) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days++
	}
	return days
}

func mapRequestToResponse(req leave.Request) leave.RequestResponse {
	return leave.RequestResponse{
		ID:              req.ID,
		EmployeeID:      req.EmployeeID,
		EmployeeName:    req.EmployeeName,
		Type:            string(req.Type),
		StartDate:       req.StartDate.Format("2006-01-02"),
		EndDate:         req.EndDate.Format("2006-01-02"),
		Days:            req.Days,
		Reason:          req.Reason,
		Status:          string(req.Status),
		RejectionReason: req.RejectionReason,
	}
}
