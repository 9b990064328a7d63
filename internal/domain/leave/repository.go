package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	Update(ctx context.Context, req Request) error
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]Request, error)
	ListPending(ctx context.Context, page, limit int) ([]Request, int64, error)
	// ApprovedInRange returns approved requests overlapping [from, to].
	ApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Request, error)
}
