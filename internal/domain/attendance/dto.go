package attendance

import (
	"github.com/workly-hq/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	UserID    string   `json:"-"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "latitude and longitude must be provided together",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	UserID    string   `json:"-"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateNotesRequest struct {
	UserID string `json:"-"`
	Notes  string `json:"notes"`
}

type RecordResponse struct {
	Date          string `json:"date"`
	CheckInTime   string `json:"check_in_time,omitempty"`
	CheckInTime24 string `json:"check_in_time_24,omitempty"`
	CheckOutTime  string `json:"check_out_time,omitempty"`
	CheckedIn     bool   `json:"checked_in"`
	WorkHours     string `json:"work_hours"`
	Location      string `json:"location,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Status        string `json:"status"`
}

// MapRecordToResponse converts a Record to its API shape. Status mirrors the
// history table labels: a closed session is Completed, an open one is
// In Progress.
func MapRecordToResponse(r Record) RecordResponse {
	resp := RecordResponse{
		Date:      r.Date,
		CheckedIn: r.CheckedIn,
		WorkHours: FormatWorkDuration(r.WorkDuration),
		Location:  r.Location,
		Notes:     r.Notes,
		Status:    "In Progress",
	}
	sr := r.Stored()
	resp.CheckInTime = sr.CheckInTime
	resp.CheckInTime24 = sr.CheckInTime24
	resp.CheckOutTime = sr.CheckOutTime
	if r.State() == StateClosed {
		resp.Status = "Completed"
	}
	return resp
}

type HistoryResponse struct {
	Days    int              `json:"days"`
	Records []RecordResponse `json:"records"`
}
