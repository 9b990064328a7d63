package payroll

import (
	"context"
	"time"

	"github.com/workly-hq/hrms-backend-go/internal/domain/payroll"
)

type PayrollServiceImpl struct {
	payroll.PayrollRepository
}

func NewPayrollService(payrollRepository payroll.PayrollRepository) payroll.PayrollService {
	return &PayrollServiceImpl{
		PayrollRepository: payrollRepository,
	}
}

// CreatePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreatePayslip(ctx context.Context, req payroll.CreatePayslipRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	slip := payroll.Payslip{
		EmployeeID:  req.EmployeeID,
		PeriodMonth: req.PeriodMonth,
		BasicPay:    req.BasicPay,
		Allowances:  req.Allowances,
		Deductions:  req.Deductions,
		Status:      payroll.PayslipDraft,
	}
	slip.ComputeNetPay()

	created, err := s.PayrollRepository.CreatePayslip(ctx, slip)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return mapPayslipToResponse(created), nil
}

// GetPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id, requesterEmployeeID string, isHR bool) (payroll.PayslipResponse, error) {
	slip, err := s.PayrollRepository.GetPayslipByID(ctx, id)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	if !isHR && slip.EmployeeID != requesterEmployeeID {
		return payroll.PayslipResponse{}, payroll.ErrNotPayslipOwner
	}
	return mapPayslipToResponse(slip), nil
}

// MyPayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) MyPayslips(ctx context.Context, employeeID string) ([]payroll.PayslipResponse, error) {
	slips, err := s.PayrollRepository.ListPayslipsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayslipResponse, 0, len(slips))
	for _, slip := range slips {
		responses = append(responses, mapPayslipToResponse(slip))
	}
	return responses, nil
}

// ListPayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, periodMonth string, page, limit int) (payroll.ListPayslipsResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	slips, total, err := s.PayrollRepository.ListPayslipsByPeriod(ctx, periodMonth, page, limit)
	if err != nil {
		return payroll.ListPayslipsResponse{}, err
	}

	resp := payroll.ListPayslipsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		Payslips:   make([]payroll.PayslipResponse, 0, len(slips)),
	}
	for _, slip := range slips {
		resp.Payslips = append(resp.Payslips, mapPayslipToResponse(slip))
	}
	return resp, nil
}

// MarkPaid implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) error {
	return s.PayrollRepository.MarkPayslipPaid(ctx, id)
}

// MyProvidentFund implements payroll.PayrollService.
func (s *PayrollServiceImpl) MyProvidentFund(ctx context.Context, employeeID string) (payroll.ProvidentFundResponse, error) {
	pf, err := s.PayrollRepository.GetProvidentFundByEmployee(ctx, employeeID)
	if err != nil {
		return payroll.ProvidentFundResponse{}, err
	}
	return mapProvidentFundToResponse(pf), nil
}

// UpsertProvidentFund implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpsertProvidentFund(ctx context.Context, req payroll.UpsertProvidentFundRequest) (payroll.ProvidentFundResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ProvidentFundResponse{}, err
	}

	pf := payroll.ProvidentFund{
		EmployeeID:    req.EmployeeID,
		UAN:           req.UAN,
		EmployeeShare: req.EmployeeShare,
		EmployerShare: req.EmployerShare,
		Balance:       req.EmployeeShare.Add(req.EmployerShare),
	}

	saved, err := s.PayrollRepository.UpsertProvidentFund(ctx, pf)
	if err != nil {
		return payroll.ProvidentFundResponse{}, err
	}
	return mapProvidentFundToResponse(saved), nil
}

// ListProvidentFunds implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListProvidentFunds(ctx context.Context, page, limit int) (payroll.ListProvidentFundsResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	funds, total, err := s.PayrollRepository.ListProvidentFunds(ctx, page, limit)
	if err != nil {
		return payroll.ListProvidentFundsResponse{}, err
	}

	resp := payroll.ListProvidentFundsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		Accounts:   make([]payroll.ProvidentFundResponse, 0, len(funds)),
	}
	for _, pf := range funds {
		resp.Accounts = append(resp.Accounts, mapProvidentFundToResponse(pf))
	}
	return resp, nil
}

func mapPayslipToResponse(slip payroll.Payslip) payroll.PayslipResponse {
	resp := payroll.PayslipResponse{
		ID:           slip.ID,
		EmployeeID:   slip.EmployeeID,
		EmployeeName: slip.EmployeeName,
		PeriodMonth:  slip.PeriodMonth,
		BasicPay:     slip.BasicPay.StringFixed(2),
		Allowances:   slip.Allowances.StringFixed(2),
		Deductions:   slip.Deductions.StringFixed(2),
		NetPay:       slip.NetPay.StringFixed(2),
		Status:       string(slip.Status),
	}
	if slip.PaidAt != nil {
		paidAt := slip.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	return resp
}

func mapProvidentFundToResponse(pf payroll.ProvidentFund) payroll.ProvidentFundResponse {
	return payroll.ProvidentFundResponse{
		ID:            pf.ID,
		EmployeeID:    pf.EmployeeID,
		EmployeeName:  pf.EmployeeName,
		UAN:           pf.UAN,
		EmployeeShare: pf.EmployeeShare.StringFixed(2),
		EmployerShare: pf.EmployerShare.StringFixed(2),
		Balance:       pf.Balance.StringFixed(2),
	}
}
