package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hrms/internal/domain/auth"
)

func TestFilterFields(t *testing.T) {
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	base := Employee{ID: "e1", Phone: "555-0100", ContractEndDate: &end, LeaveBalance: DefaultLeaveBalance()}

	cases := []struct {
		name   string
		user   auth.UserContext
		redact bool
	}{
		{"hr", auth.UserContext{UserID: "h", Role: auth.RoleHR}, false},
		{"admin", auth.UserContext{UserID: "a", Role: auth.RoleAdmin}, false},
		{"self", auth.UserContext{UserID: "s", Role: auth.RoleStaff, EmployeeID: "e1"}, false},
		{"colleague", auth.UserContext{UserID: "c", Role: auth.RoleStaff, EmployeeID: "e2"}, true},
		{"unlinked staff", auth.UserContext{UserID: "u", Role: auth.RoleStaff}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			emp := base
			FilterFields(&emp, tc.user)
			if tc.redact {
				assert.Empty(t, emp.Phone)
				assert.Nil(t, emp.ContractEndDate)
				assert.Zero(t, emp.LeaveBalance.Total())
				return
			}
			assert.Equal(t, base.Phone, emp.Phone)
			assert.Equal(t, base.LeaveBalance, emp.LeaveBalance)
		})
	}
}
