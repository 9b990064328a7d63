package leave

import "time"

type Type string

const (
	TypeCasual Type = "casual"
	TypeSick   Type = "sick"
	TypeEarned Type = "earned"
	TypeWFH    Type = "wfh"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

type Request struct {
	ID              string
	EmployeeID      string
	Type            Type
	StartDate       time.Time
	EndDate         time.Time
	Days            int // working days in range, weekends excluded
	Reason          string
	Status          Status
	ReviewedBy      *string
	ReviewedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	EmployeeName *string
}

// Balance is the per-type remaining allowance for one employee-year.
type Balance struct {
	Type      Type `json:"type"`
	Allocated int  `json:"allocated"`
	Used      int  `json:"used"`
	Remaining int  `json:"remaining"`
}
