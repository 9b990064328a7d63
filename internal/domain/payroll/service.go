package payroll

import "context"

type PayrollService interface {
	CreatePayslip(ctx context.Context, req CreatePayslipRequest) (PayslipResponse, error)
	GetPayslip(ctx context.Context, id, requesterEmployeeID string, isHR bool) (PayslipResponse, error)
	MyPayslips(ctx context.Context, employeeID string) ([]PayslipResponse, error)
	ListPayslips(ctx context.Context, periodMonth string, page, limit int) (ListPayslipsResponse, error)
	MarkPaid(ctx context.Context, id string) error

	MyProvidentFund(ctx context.Context, employeeID string) (ProvidentFundResponse, error)
	UpsertProvidentFund(ctx context.Context, req UpsertProvidentFundRequest) (ProvidentFundResponse, error)
	ListProvidentFunds(ctx context.Context, page, limit int) (ListProvidentFundsResponse, error)
}
