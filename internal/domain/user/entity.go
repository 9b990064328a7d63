package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full administrative access
	RoleHR       Role = "hr"       // Manages employees, leave, payroll
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user has full administrative access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsHR checks if user is HR or admin
func (u *User) IsHR() bool {
	return u.Role == RoleHR || u.Role == RoleAdmin
}

// CanApprove checks if user can approve leave and attendance corrections
func (u *User) CanApprove() bool {
	return u.IsHR()
}
