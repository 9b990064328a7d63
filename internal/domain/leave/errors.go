package leave

import "errors"

var (
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrAlreadyProcessed    = errors.New("leave request has already been approved or rejected")
	ErrInvalidDateRange    = errors.New("leave end date must not be before start date")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrNotRequestOwner     = errors.New("leave request belongs to another employee")
)
