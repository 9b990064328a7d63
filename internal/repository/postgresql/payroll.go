package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workly-hq/hrms-backend-go/internal/domain/payroll"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

// CreatePayslip implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) CreatePayslip(ctx context.Context, slip payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (id, employee_id, period_month, basic_pay, allowances, deductions, net_pay, status, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		slip.EmployeeID, slip.PeriodMonth, slip.BasicPay, slip.Allowances,
		slip.Deductions, slip.NetPay, slip.Status,
	).Scan(&slip.ID, &slip.CreatedAt, &slip.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.Payslip{}, payroll.ErrPayslipExists
		}
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}
	return slip, nil
}

// GetPayslipByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetPayslipByID(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	var slip payroll.Payslip
	err := q.QueryRow(ctx, `
		SELECT p.id, p.employee_id, p.period_month, p.basic_pay, p.allowances, p.deductions,
		       p.net_pay, p.status, p.paid_at, p.created_at, p.updated_at, e.full_name
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1`, id,
	).Scan(
		&slip.ID, &slip.EmployeeID, &slip.PeriodMonth, &slip.BasicPay, &slip.Allowances,
		&slip.Deductions, &slip.NetPay, &slip.Status, &slip.PaidAt,
		&slip.CreatedAt, &slip.UpdatedAt, &slip.EmployeeName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return slip, nil
}

// ListPayslipsByEmployee implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListPayslipsByEmployee(ctx context.Context, employeeID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, period_month, basic_pay, allowances, deductions,
		       net_pay, status, paid_at, created_at, updated_at
		FROM payslips
		WHERE employee_id = $1
		ORDER BY period_month DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	return scanPayslipRows(rows, false)
}

// ListPayslipsByPeriod implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListPayslipsByPeriod(ctx context.Context, periodMonth string, page, limit int) ([]payroll.Payslip, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM payslips WHERE period_month = $1`, periodMonth,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payslips: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT p.id, p.employee_id, p.period_month, p.basic_pay, p.allowances, p.deductions,
		       p.net_pay, p.status, p.paid_at, p.created_at, p.updated_at, e.full_name
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.period_month = $1
		ORDER BY e.full_name
		LIMIT $2 OFFSET $3`, periodMonth, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payslips by period: %w", err)
	}
	defer rows.Close()

	slips, err := scanPayslipRows(rows, true)
	if err != nil {
		return nil, 0, err
	}
	return slips, total, nil
}

// MarkPayslipPaid implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) MarkPayslipPaid(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payslips SET status = $1, paid_at = NOW(), updated_at = NOW() WHERE id = $2`,
		payroll.PayslipPaid, id)
	if err != nil {
		return fmt.Errorf("failed to mark payslip paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}
	return nil
}

// UpsertProvidentFund implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) UpsertProvidentFund(ctx context.Context, pf payroll.ProvidentFund) (payroll.ProvidentFund, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO provident_funds (id, employee_id, uan, employee_share, employer_share, balance, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, NOW())
		ON CONFLICT (employee_id) DO UPDATE
		SET uan = EXCLUDED.uan,
		    employee_share = EXCLUDED.employee_share,
		    employer_share = EXCLUDED.employer_share,
		    balance = EXCLUDED.balance,
		    updated_at = NOW()
		RETURNING id, updated_at
	`

	err := q.QueryRow(ctx, query,
		pf.EmployeeID, pf.UAN, pf.EmployeeShare, pf.EmployerShare, pf.Balance,
	).Scan(&pf.ID, &pf.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "uan") {
			return payroll.ProvidentFund{}, payroll.ErrUANExists
		}
		return payroll.ProvidentFund{}, fmt.Errorf("failed to upsert provident fund: %w", err)
	}
	return pf, nil
}

// GetProvidentFundByEmployee implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetProvidentFundByEmployee(ctx context.Context, employeeID string) (payroll.ProvidentFund, error) {
	q := GetQuerier(ctx, r.db)

	var pf payroll.ProvidentFund
	err := q.QueryRow(ctx, `
		SELECT id, employee_id, uan, employee_share, employer_share, balance, updated_at
		FROM provident_funds
		WHERE employee_id = $1`, employeeID,
	).Scan(&pf.ID, &pf.EmployeeID, &pf.UAN, &pf.EmployeeShare, &pf.EmployerShare, &pf.Balance, &pf.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.ProvidentFund{}, payroll.ErrPFAccountNotFound
	}
	if err != nil {
		return payroll.ProvidentFund{}, fmt.Errorf("failed to get provident fund: %w", err)
	}
	return pf, nil
}

// ListProvidentFunds implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListProvidentFunds(ctx context.Context, page, limit int) ([]payroll.ProvidentFund, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM provident_funds`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count provident funds: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT pf.id, pf.employee_id, pf.uan, pf.employee_share, pf.employer_share, pf.balance,
		       pf.updated_at, e.full_name
		FROM provident_funds pf
		JOIN employees e ON e.id = pf.employee_id
		ORDER BY e.full_name
		LIMIT $1 OFFSET $2`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list provident funds: %w", err)
	}
	defer rows.Close()

	var funds []payroll.ProvidentFund
	for rows.Next() {
		var pf payroll.ProvidentFund
		if err := rows.Scan(
			&pf.ID, &pf.EmployeeID, &pf.UAN, &pf.EmployeeShare, &pf.EmployerShare,
			&pf.Balance, &pf.UpdatedAt, &pf.EmployeeName,
		); err != nil {
			return nil, 0, err
		}
		funds = append(funds, pf)
	}
	return funds, total, rows.Err()
}

func scanPayslipRows(rows pgx.Rows, withName bool) ([]payroll.Payslip, error) {
	var slips []payroll.Payslip
	for rows.Next() {
		var slip payroll.Payslip
		dest := []interface{}{
			&slip.ID, &slip.EmployeeID, &slip.PeriodMonth, &slip.BasicPay, &slip.Allowances,
			&slip.Deductions, &slip.NetPay, &slip.Status, &slip.PaidAt,
			&slip.CreatedAt, &slip.UpdatedAt,
		}
		if withName {
			dest = append(dest, &slip.EmployeeName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		slips = append(slips, slip)
	}
	return slips, rows.Err()
}
