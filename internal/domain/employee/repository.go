package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	Update(ctx context.Context, emp Employee) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter Filter) ([]Employee, int64, error)
}
