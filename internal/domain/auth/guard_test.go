package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hrms/internal/domain/errs"
)

func TestRequireAnyOf(t *testing.T) {
	tests := []struct {
		name string
		user UserContext
		cap  Capability
		want error
	}{
		{"anonymous", UserContext{}, CapAuthenticated, errs.ErrUnauthorized},
		{"staff on manage", UserContext{UserID: "u", Role: RoleStaff}, CapManage, errs.ErrForbidden},
		{"hr on manage", UserContext{UserID: "u", Role: RoleHR}, CapManage, nil},
		{"admin on manage", UserContext{UserID: "u", Role: RoleAdmin}, CapManage, nil},
		{"hr on admin", UserContext{UserID: "u", Role: RoleHR}, CapAdmin, errs.ErrForbidden},
		{"unknown role", UserContext{UserID: "u", Role: Role("Manager")}, CapAuthenticated, errs.ErrForbidden},
		{"staff authenticated", UserContext{UserID: "u", Role: RoleStaff}, CapAuthenticated, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := RequireAnyOf(tc.user, tc.cap)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRequireRole(t *testing.T) {
	assert.NoError(t, RequireRole(UserContext{UserID: "u", Role: RoleAdmin}, RoleAdmin))
	assert.ErrorIs(t, RequireRole(UserContext{UserID: "u", Role: RoleHR}, RoleAdmin), errs.ErrForbidden)
	assert.ErrorIs(t, RequireRole(UserContext{UserID: "u", Role: RoleHR}), errs.ErrForbidden, "empty role set")
}

func TestCapabilityRoles(t *testing.T) {
	assert.Equal(t, []Role{RoleAdmin, RoleHR}, CapManage.Roles())

	role, ok := ParseRole(" staff ")
	assert.True(t, ok)
	assert.Equal(t, RoleStaff, role)

	_, ok = ParseRole("Manager")
	assert.False(t, ok)
}
