package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/workly-hq/hrms-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
}

func NewEmployeeService(employeeRepository employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepository,
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	joinDate, err := time.Parse("2006-01-02", req.JoinDate)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to parse join date: %w", err)
	}

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		Code:       req.Code,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Position:   req.Position,
		JoinDate:   joinDate,
		Status:     employee.StatusActive,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

// GetSelf implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetSelf(ctx context.Context, userID string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}
	if req.Phone != nil {
		emp.Phone = req.Phone
	}
	if req.Department != nil {
		emp.Department = *req.Department
	}
	if req.Position != nil {
		emp.Position = *req.Position
	}
	if req.Status != nil {
		emp.Status = employee.Status(*req.Status)
	}

	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	return s.EmployeeRepository.Delete(ctx, id)
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.Filter) (employee.ListEmployeesResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	resp := employee.ListEmployeesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Employees:  make([]employee.EmployeeResponse, 0, len(employees)),
	}
	for _, emp := range employees {
		resp.Employees = append(resp.Employees, mapEmployeeToResponse(emp))
	}
	return resp, nil
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:         emp.ID,
		Code:       emp.Code,
		FullName:   emp.FullName,
		Email:      emp.Email,
		Phone:      emp.Phone,
		Department: emp.Department,
		Position:   emp.Position,
		JoinDate:   emp.JoinDate.Format("2006-01-02"),
		Status:     string(emp.Status),
	}
}
