package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workly-hq/hrms-backend-go/internal/domain/leave"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, employee_id, type, start_date, end_date, days, reason, status, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.Type, req.StartDate, req.EndDate, req.Days, req.Reason, req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return req, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	var req leave.Request
	err := q.QueryRow(ctx, `
		SELECT lr.id, lr.employee_id, lr.type, lr.start_date, lr.end_date, lr.days, lr.reason,
		       lr.status, lr.reviewed_by, lr.reviewed_at, lr.rejection_reason,
		       lr.created_at, lr.updated_at, e.full_name
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		WHERE lr.id = $1`, id,
	).Scan(
		&req.ID, &req.EmployeeID, &req.Type, &req.StartDate, &req.EndDate, &req.Days, &req.Reason,
		&req.Status, &req.ReviewedBy, &req.ReviewedAt, &req.RejectionReason,
		&req.CreatedAt, &req.UpdatedAt, &req.EmployeeName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

// Update implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Update(ctx context.Context, req leave.Request) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET status = $1, reviewed_by = $2, reviewed_at = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $5`,
		req.Status, req.ReviewedBy, req.ReviewedAt, req.RejectionReason, req.ID)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

// ListByEmployee implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, year int) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, type, start_date, end_date, days, reason,
		       status, reviewed_by, reviewed_at, rejection_reason, created_at, updated_at
		FROM leave_requests
		WHERE employee_id = $1 AND EXTRACT(YEAR FROM start_date) = $2
		ORDER BY start_date DESC`, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	return scanLeaveRows(rows, false)
}

// ListPending implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListPending(ctx context.Context, page, limit int) ([]leave.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM leave_requests WHERE status = $1`, leave.StatusPending,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count pending leave requests: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT lr.id, lr.employee_id, lr.type, lr.start_date, lr.end_date, lr.days, lr.reason,
		       lr.status, lr.reviewed_by, lr.reviewed_at, lr.rejection_reason,
		       lr.created_at, lr.updated_at, e.full_name
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		WHERE lr.status = $1
		ORDER BY lr.created_at
		LIMIT $2 OFFSET $3`, leave.StatusPending, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	defer rows.Close()

	requests, err := scanLeaveRows(rows, true)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// ApprovedInRange implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, type, start_date, end_date, days, reason,
		       status, reviewed_by, reviewed_at, rejection_reason, created_at, updated_at
		FROM leave_requests
		WHERE employee_id = $1 AND status = $2 AND start_date <= $3 AND end_date >= $4
		ORDER BY start_date`, employeeID, leave.StatusApproved, to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave requests: %w", err)
	}
	defer rows.Close()

	return scanLeaveRows(rows, false)
}

func scanLeaveRows(rows pgx.Rows, withName bool) ([]leave.Request, error) {
	var requests []leave.Request
	for rows.Next() {
		var req leave.Request
		dest := []interface{}{
			&req.ID, &req.EmployeeID, &req.Type, &req.StartDate, &req.EndDate, &req.Days, &req.Reason,
			&req.Status, &req.ReviewedBy, &req.ReviewedAt, &req.RejectionReason,
			&req.CreatedAt, &req.UpdatedAt,
		}
		if withName {
			dest = append(dest, &req.EmployeeName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
