package auth

import "hrms/internal/domain/errs"

// UserContext is the caller identity resolved from a bearer credential.
type UserContext struct {
	UserID     string `json:"id"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	EmployeeID string `json:"employeeId,omitempty"`
}

func (u UserContext) Authenticated() bool {
	return u.UserID != ""
}

func (u UserContext) Can(c Capability) bool {
	return u.Authenticated() && c.Allows(u.Role)
}

// RequireAnyOf fails with ErrUnauthorized when no identity was resolved and
// with ErrForbidden when the caller's role is outside the capability.
func RequireAnyOf(user UserContext, c Capability) error {
	if !user.Authenticated() {
		return errs.ErrUnauthorized
	}
	if !c.Allows(user.Role) {
		return errs.ErrForbidden
	}
	return nil
}

func RequireRole(user UserContext, allowed ...Role) error {
	return RequireAnyOf(user, AnyOf(allowed...))
}
