package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workly-hq/hrms-backend-go/internal/domain/holiday"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO holidays (id, date, name, created_at)
		VALUES (gen_random_uuid(), $1, $2, NOW())
		RETURNING id, created_at`, h.Date, h.Name,
	).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return h, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

// ListInRange implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListInRange(ctx context.Context, from, to string) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, date, name, created_at
		FROM holidays
		WHERE date >= $1 AND date <= $2
		ORDER BY date`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
