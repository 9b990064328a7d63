package holiday

import "context"

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
	// ListInRange returns holidays with from <= date <= to (dates are
	// YYYY-MM-DD strings, so string comparison is date order).
	ListInRange(ctx context.Context, from, to string) ([]Holiday, error)
}
