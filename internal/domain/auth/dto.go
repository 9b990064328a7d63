package auth

import (
	"github.com/workly-hq/hrms-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserInfo struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

type LoginResponse struct {
	AccessToken  string   `json:"access_token"`
	ExpiresAt    int64    `json:"expires_at"`
	RefreshToken string   `json:"-"` // delivered as an HttpOnly cookie
	RefreshExp   int64    `json:"-"`
	User         UserInfo `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}
