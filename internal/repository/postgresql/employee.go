package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workly-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, user_id, code, full_name, email, phone, department, position, join_date, status, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.UserID, &emp.Code, &emp.FullName, &emp.Email, &emp.Phone,
		&emp.Department, &emp.Position, &emp.JoinDate, &emp.Status,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, user_id, code, full_name, email, phone, department, position, join_date, status, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newEmployee.UserID, newEmployee.Code, newEmployee.FullName, newEmployee.Email,
		newEmployee.Phone, newEmployee.Department, newEmployee.Position,
		newEmployee.JoinDate, newEmployee.Status,
	).Scan(&newEmployee.ID, &newEmployee.CreatedAt, &newEmployee.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "code") {
				return employee.Employee{}, employee.ErrEmployeeCodeExists
			}
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return newEmployee, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	emp, err := scanEmployee(q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1 AND deleted_at IS NULL`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	emp, err := scanEmployee(q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE user_id = $1 AND deleted_at IS NULL`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee by user: %w", err)
	}
	return emp, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees
		SET full_name = $1, email = $2, phone = $3, department = $4, position = $5, status = $6, updated_at = NOW()
		WHERE id = $7 AND deleted_at IS NULL`,
		emp.FullName, emp.Email, emp.Phone, emp.Department, emp.Position, emp.Status, emp.ID)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete implements employee.EmployeeRepository. Soft delete.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"deleted_at IS NULL"}
	args := []interface{}{}
	argN := 1

	if filter.Search != nil {
		where = append(where, fmt.Sprintf("(full_name ILIKE $%d OR code ILIKE $%d OR email ILIKE $%d)", argN, argN, argN))
		args = append(args, "%"+*filter.Search+"%")
		argN++
	}
	if filter.Department != nil {
		where = append(where, fmt.Sprintf("department = $%d", argN))
		args = append(args, *filter.Department)
		argN++
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argN))
		args = append(args, *filter.Status)
		argN++
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	if err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM employees WHERE `+whereClause, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM employees WHERE %s ORDER BY full_name LIMIT $%d OFFSET $%d`,
		employeeColumns, whereClause, argN, argN+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, emp)
	}
	return employees, total, rows.Err()
}
