package leave

import (
	"github.com/workly-hq/hrms-backend-go/internal/pkg/validator"
)

type ApplyRequest struct {
	EmployeeID string `json:"-"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
	Reason     string `json:"reason"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Type, []string{
		string(TypeCasual), string(TypeSick), string(TypeEarned), string(TypeWFH),
	}) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be casual, sick, earned or wfh"})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewRequest struct {
	ID         string `json:"-"`
	ReviewerID string `json:"-"`
	Reason     string `json:"reason,omitempty"` // required for rejection
}

type RequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	Type            string  `json:"type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Days            int     `json:"days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type ListRequestsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Requests   []RequestResponse `json:"requests"`
}
