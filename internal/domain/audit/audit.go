package audit

import (
	"encoding/json"
	"strings"
	"time"
)

type Action string

const (
	ActionEmployeeAdded   Action = "Employee Added"
	ActionEmployeeUpdated Action = "Employee Updated"
	ActionEmployeeDeleted Action = "Employee Deleted"
	ActionProfileUpdated  Action = "Profile Updated"
	ActionLeaveRequested  Action = "Leave Requested"
	ActionLeaveApproved   Action = "Leave Approved"
	ActionLeaveRejected   Action = "Leave Rejected"
	ActionLeaveCancelled  Action = "Leave Cancelled"
	ActionClockedIn       Action = "Attendance Clock In"
	ActionClockedOut      Action = "Attendance Clock Out"
	ActionShiftAdded      Action = "Shift Added"
	ActionShiftUpdated    Action = "Shift Updated"
	ActionShiftDeleted    Action = "Shift Deleted"
	ActionLogin           Action = "Login"
	ActionSignup          Action = "Signup"
	ActionReportGenerated Action = "Report Generated"
	ActionDataExported    Action = "Data Exported"
)

type Category string

const (
	CategoryEmployee Category = "Employee"
	CategoryLeave    Category = "Leave"
	CategoryApproval Category = "Approval"
	CategoryReport   Category = "Report"
	CategorySystem   Category = "System"
)

type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// CategoryOf applies the substring rules in order; the first match wins.
func CategoryOf(action Action) Category {
	a := string(action)
	switch {
	case strings.Contains(a, "Employee"):
		return CategoryEmployee
	case strings.Contains(a, "Leave"):
		return CategoryLeave
	case strings.Contains(a, "Approval"):
		return CategoryApproval
	case strings.Contains(a, "Report"):
		return CategoryReport
	}
	return CategorySystem
}

func SeverityOf(action Action) Severity {
	a := string(action)
	switch {
	case strings.Contains(a, "Deleted"), strings.Contains(a, "Critical"):
		return SeverityCritical
	case strings.Contains(a, "Approved"), strings.Contains(a, "Rejected"):
		return SeverityHigh
	case strings.Contains(a, "Updated"), strings.Contains(a, "Added"):
		return SeverityMedium
	}
	return SeverityLow
}

type Entry struct {
	ID        string          `json:"id"`
	Action    Action          `json:"action"`
	Actor     string          `json:"user"`
	UserID    string          `json:"userId,omitempty"`
	Target    string          `json:"target,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
	IPAddress string          `json:"ipAddress,omitempty"`
	UserAgent string          `json:"userAgent,omitempty"`
	RequestID string          `json:"requestId,omitempty"`
	Category  Category        `json:"category"`
	Severity  Severity        `json:"severity"`
	Timestamp time.Time       `json:"timestamp"`
}

// Detail marshals v for Entry.Details, yielding nil when v cannot be encoded.
func Detail(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return payload
}

// Filter narrows a log listing. Since is inclusive and Until exclusive;
// zero values leave that bound open.
type Filter struct {
	Action   string
	Category string
	Severity string
	Actor    string
	Since    time.Time
	Until    time.Time
}
