package employee

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Employee struct {
	ID         string
	UserID     *string
	Code       string // employee code, e.g. "EMP-0042"
	FullName   string
	Email      string
	Phone      *string
	Department string
	Position   string
	JoinDate   time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
