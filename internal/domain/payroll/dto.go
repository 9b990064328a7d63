package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/validator"
)

type CreatePayslipRequest struct {
	EmployeeID  string          `json:"employee_id"`
	PeriodMonth string          `json:"period_month"` // YYYY-MM
	BasicPay    decimal.Decimal `json:"basic_pay"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  decimal.Decimal `json:"deductions"`
}

func (r *CreatePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidMonth(r.PeriodMonth); !ok {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "period_month must be YYYY-MM"})
	}
	if r.BasicPay.IsNegative() || r.Allowances.IsNegative() || r.Deductions.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amounts", Message: "pay components must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpsertProvidentFundRequest struct {
	EmployeeID    string          `json:"employee_id"`
	UAN           string          `json:"uan"`
	EmployeeShare decimal.Decimal `json:"employee_share"`
	EmployerShare decimal.Decimal `json:"employer_share"`
}

func (r *UpsertProvidentFundRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !validator.IsValidUAN(r.UAN) {
		errs = append(errs, validator.ValidationError{Field: "uan", Message: "uan must be 12 digits"})
	}
	if r.EmployeeShare.IsNegative() || r.EmployerShare.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "shares", Message: "shares must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	PeriodMonth  string  `json:"period_month"`
	BasicPay     string  `json:"basic_pay"`
	Allowances   string  `json:"allowances"`
	Deductions   string  `json:"deductions"`
	NetPay       string  `json:"net_pay"`
	Status       string  `json:"status"`
	PaidAt       *string `json:"paid_at,omitempty"`
}

type ProvidentFundResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	UAN           string  `json:"uan"`
	EmployeeShare string  `json:"employee_share"`
	EmployerShare string  `json:"employer_share"`
	Balance       string  `json:"balance"`
}

type ListPayslipsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Payslips   []PayslipResponse `json:"payslips"`
}

type ListProvidentFundsResponse struct {
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	Accounts   []ProvidentFundResponse `json:"accounts"`
}
