package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		action Action
		want   Category
	}{
		{ActionEmployeeAdded, CategoryEmployee},
		{ActionEmployeeDeleted, CategoryEmployee},
		{ActionLeaveRequested, CategoryLeave},
		{ActionLeaveApproved, CategoryLeave},
		{Action("Approval Granted"), CategoryApproval},
		{ActionReportGenerated, CategoryReport},
		{ActionLogin, CategorySystem},
		{ActionProfileUpdated, CategorySystem},
		{ActionShiftAdded, CategorySystem},
	}
	for _, tc := range tests {
		t.Run(string(tc.action), func(t *testing.T) {
			assert.Equal(t, tc.want, CategoryOf(tc.action))
		})
	}
}

func TestSeverityOf(t *testing.T) {
	tests := []struct {
		action Action
		want   Severity
	}{
		{ActionEmployeeDeleted, SeverityCritical},
		{Action("Critical Failure"), SeverityCritical},
		{ActionLeaveApproved, SeverityHigh},
		{ActionLeaveRejected, SeverityHigh},
		{ActionEmployeeUpdated, SeverityMedium},
		{ActionEmployeeAdded, SeverityMedium},
		{ActionLeaveRequested, SeverityLow},
		{ActionLogin, SeverityLow},
	}
	for _, tc := range tests {
		t.Run(string(tc.action), func(t *testing.T) {
			assert.Equal(t, tc.want, SeverityOf(tc.action))
		})
	}
}
