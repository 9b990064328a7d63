package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	GetSelf(ctx context.Context, userID string) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter Filter) (ListEmployeesResponse, error)
}
