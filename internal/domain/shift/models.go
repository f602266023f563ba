package shift

import "time"

type Shift struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employeeId"`
	Name          string     `json:"name"`
	StartTime     string     `json:"startTime"`
	EndTime       string     `json:"endTime"`
	DaysOfWeek    []int      `json:"daysOfWeek"`
	EffectiveFrom time.Time  `json:"effectiveFrom"`
	EffectiveTo   *time.Time `json:"effectiveTo,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type Input struct {
	EmployeeID    string     `json:"employeeId"`
	Name          string     `json:"name"`
	StartTime     string     `json:"startTime"`
	EndTime       string     `json:"endTime"`
	DaysOfWeek    []int      `json:"daysOfWeek"`
	EffectiveFrom *time.Time `json:"effectiveFrom"`
	EffectiveTo   *time.Time `json:"effectiveTo"`
}

var defaultDays = []int{1, 2, 3, 4, 5}
