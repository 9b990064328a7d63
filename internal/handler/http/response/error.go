package response

import (
	"errors"
	"net/http"

	"github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workly-hq/hrms-backend-go/internal/domain/auth"
	"github.com/workly-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workly-hq/hrms-backend-go/internal/domain/holiday"
	"github.com/workly-hq/hrms-backend-go/internal/domain/leave"
	"github.com/workly-hq/hrms-backend-go/internal/domain/payroll"
	"github.com/workly-hq/hrms-backend-go/internal/domain/user"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrHRAccessRequired),
		errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "You have not checked in today", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "You have already checked out today")
	case errors.Is(err, attendance.ErrSessionNotOpen):
		Conflict(w, "No open attendance session")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrPersistFailed):
		ServiceUnavailable(w, "Attendance could not be saved, please retry")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Leave range contains no working days", nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Leave request belongs to another employee")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrPayslipExists):
		Conflict(w, "Payslip already exists for this period")
	case errors.Is(err, payroll.ErrPFAccountNotFound):
		NotFound(w, "Provident fund account not found")
	case errors.Is(err, payroll.ErrUANExists):
		Conflict(w, "UAN already registered")
	case errors.Is(err, payroll.ErrNotPayslipOwner):
		Forbidden(w, "Payslip belongs to another employee")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "Holiday already exists for this date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
