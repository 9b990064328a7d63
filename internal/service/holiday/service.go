package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workly-hq/hrms-backend-go/internal/domain/holiday"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
}

func NewHolidayService(holidayRepository holiday.HolidayRepository) *HolidayServiceImpl {
	return &HolidayServiceImpl{
		HolidayRepository: holidayRepository,
	}
}

var _ holiday.HolidayService = (*HolidayServiceImpl)(nil)
var _ attendance.HolidaySource = (*HolidayServiceImpl)(nil)

// Create implements holiday.HolidayService.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	created, err := s.HolidayRepository.Create(ctx, holiday.Holiday{
		Date: req.Date,
		Name: req.Name,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return mapHolidayToResponse(created), nil
}

// Delete implements holiday.HolidayService.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	return s.HolidayRepository.Delete(ctx, id)
}

// ListYear implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListYear(ctx context.Context, year int) ([]holiday.HolidayResponse, error) {
	from := fmt.Sprintf("%04d-01-01", year)
	to := fmt.Sprintf("%04d-12-31", year)

	holidays, err := s.HolidayRepository.ListInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, mapHolidayToResponse(h))
	}
	return responses, nil
}

// HolidaysInMonth implements attendance.HolidaySource.
func (s *HolidayServiceImpl) HolidaysInMonth(ctx context.Context, year int, month time.Month) (map[string]string, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	from := monthStart.Format("2006-01-02")
	to := monthStart.AddDate(0, 1, -1).Format("2006-01-02")

	holidays, err := s.HolidayRepository.ListInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]string, len(holidays))
	for _, h := range holidays {
		byDate[h.Date] = h.Name
	}
	return byDate, nil
}

func mapHolidayToResponse(h holiday.Holiday) holiday.HolidayResponse {
	return holiday.HolidayResponse{
		ID:   h.ID,
		Date: h.Date,
		Name: h.Name,
	}
}
