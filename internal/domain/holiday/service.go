package holiday

import (
	"context"
	"time"
)

type HolidayService interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	ListYear(ctx context.Context, year int) ([]HolidayResponse, error)
	// HolidaysInMonth satisfies the attendance tracker's HolidaySource.
	HolidaysInMonth(ctx context.Context, year int, month time.Month) (map[string]string, error)
}
