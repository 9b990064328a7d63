package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workly-hq/hrms-backend-go/internal/domain/user"
)

// Identity is the caller as asserted by the access token.
type Identity struct {
	UserID     string
	Email      string
	EmployeeID *string
	Role       user.Role
}

// IdentityFromRequest extracts the caller identity from the verified token.
// Returns false when the token is absent or missing the user_id claim.
func IdentityFromRequest(r *http.Request) (Identity, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return Identity{}, false
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, false
	}

	id := Identity{UserID: userID}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		id.Role = user.Role(role)
	}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		id.EmployeeID = &employeeID
	}
	return id, true
}

// IsHR reports whether the identity can manage other employees' data.
func (id Identity) IsHR() bool {
	return id.Role == user.RoleHR || id.Role == user.RoleAdmin
}
