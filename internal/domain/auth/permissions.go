package auth

import "strings"

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleHR    Role = "HR"
	RoleStaff Role = "Staff"
)

var Roles = []Role{RoleAdmin, RoleHR, RoleStaff}

// ParseRole matches case-insensitively against the closed role set.
func ParseRole(value string) (Role, bool) {
	for _, role := range Roles {
		if strings.EqualFold(strings.TrimSpace(value), string(role)) {
			return role, true
		}
	}
	return "", false
}

func (r Role) bit() Capability {
	switch r {
	case RoleAdmin:
		return 1 << 0
	case RoleHR:
		return 1 << 1
	case RoleStaff:
		return 1 << 2
	}
	return 0
}

// Capability is the set of roles permitted to invoke an operation.
type Capability uint8

func AnyOf(roles ...Role) Capability {
	var c Capability
	for _, role := range roles {
		c |= role.bit()
	}
	return c
}

func (c Capability) Allows(role Role) bool {
	bit := role.bit()
	return bit != 0 && c&bit != 0
}

func (c Capability) Roles() []Role {
	var out []Role
	for _, role := range Roles {
		if c.Allows(role) {
			out = append(out, role)
		}
	}
	return out
}

var (
	// CapManage covers leave decisions, employee and shift writes, reports and audit reads.
	CapManage        = AnyOf(RoleAdmin, RoleHR)
	CapAdmin         = AnyOf(RoleAdmin)
	CapAuthenticated = AnyOf(RoleAdmin, RoleHR, RoleStaff)
)
