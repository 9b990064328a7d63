package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayslipStatus string

const (
	PayslipDraft PayslipStatus = "draft"
	PayslipPaid  PayslipStatus = "paid"
)

// Payslip is one employee's pay record for one period month.
type Payslip struct {
	ID          string
	EmployeeID  string
	PeriodMonth string // YYYY-MM
	BasicPay    decimal.Decimal
	Allowances  decimal.Decimal
	Deductions  decimal.Decimal
	NetPay      decimal.Decimal
	Status      PayslipStatus
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	EmployeeName *string
}

// ComputeNetPay derives net pay from the component amounts.
func (p *Payslip) ComputeNetPay() {
	p.NetPay = p.BasicPay.Add(p.Allowances).Sub(p.Deductions)
}

// ProvidentFund is one employee's PF account snapshot.
type ProvidentFund struct {
	ID            string
	EmployeeID    string
	UAN           string // universal account number, 12 digits
	EmployeeShare decimal.Decimal
	EmployerShare decimal.Decimal
	Balance       decimal.Decimal
	UpdatedAt     time.Time

	// DTO / Join
	EmployeeName *string
}
