package employee

import (
	"github.com/workly-hq/hrms-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Code       string  `json:"code"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone,omitempty"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	JoinDate   string  `json:"join_date"` // YYYY-MM-DD
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}
	if _, ok := validator.IsValidDate(r.JoinDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "join_date", Message: "join_date must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID         string  `json:"-"`
	FullName   *string `json:"full_name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	Status     *string `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusActive), string(StatusInactive)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be active or inactive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	Search     *string `json:"search,omitempty"`
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *Filter) Validate() error {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	return nil
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	Code       string  `json:"code"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone,omitempty"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	JoinDate   string  `json:"join_date"`
	Status     string  `json:"status"`
}

type ListEmployeesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Employees  []EmployeeResponse `json:"employees"`
}
