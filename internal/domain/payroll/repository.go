package payroll

import "context"

type PayrollRepository interface {
	CreatePayslip(ctx context.Context, slip Payslip) (Payslip, error)
	GetPayslipByID(ctx context.Context, id string) (Payslip, error)
	ListPayslipsByEmployee(ctx context.Context, employeeID string) ([]Payslip, error)
	ListPayslipsByPeriod(ctx context.Context, periodMonth string, page, limit int) ([]Payslip, int64, error)
	MarkPayslipPaid(ctx context.Context, id string) error

	UpsertProvidentFund(ctx context.Context, pf ProvidentFund) (ProvidentFund, error)
	GetProvidentFundByEmployee(ctx context.Context, employeeID string) (ProvidentFund, error)
	ListProvidentFunds(ctx context.Context, page, limit int) ([]ProvidentFund, int64, error)
}
