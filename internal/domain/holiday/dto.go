package holiday

import (
	"github.com/workly-hq/hrms-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}
