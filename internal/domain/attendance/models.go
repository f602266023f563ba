package attendance

import "time"

type Source string

const (
	SourceManual Source = "Manual"
	SourceWeb    Source = "Web"
	SourceMobile Source = "Mobile"
)

// Record is one employee's attendance for one calendar day.
type Record struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName,omitempty"`
	Date         time.Time  `json:"date"`
	ClockIn      *time.Time `json:"clockIn,omitempty"`
	ClockOut     *time.Time `json:"clockOut,omitempty"`
	TotalMinutes int        `json:"totalMinutes"`
	Source       Source     `json:"source"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type Range struct {
	From time.Time
	To   time.Time
}

type Filter struct {
	EmployeeID string
	Range
}
