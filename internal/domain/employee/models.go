package employee

import "time"

type Status string

const (
	StatusActive     Status = "Active"
	StatusInactive   Status = "Inactive"
	StatusOnLeave    Status = "On Leave"
	StatusTerminated Status = "Terminated"
)

var Statuses = []Status{StatusActive, StatusInactive, StatusOnLeave, StatusTerminated}

type ContractType string

const (
	ContractFullTime   ContractType = "Full-time"
	ContractPartTime   ContractType = "Part-time"
	ContractContract   ContractType = "Contract"
	ContractInternship ContractType = "Internship"
)

var ContractTypes = []ContractType{ContractFullTime, ContractPartTime, ContractContract, ContractInternship}

// LeaveBalance holds the remaining whole days per tracked leave category.
type LeaveBalance struct {
	Annual    int `json:"annual"`
	Sick      int `json:"sick"`
	Personal  int `json:"personal"`
	Maternity int `json:"maternity"`
	Paternity int `json:"paternity"`
}

func DefaultLeaveBalance() LeaveBalance {
	return LeaveBalance{Annual: 20, Sick: 10, Personal: 5, Maternity: 90, Paternity: 10}
}

func (b LeaveBalance) Total() int {
	return b.Annual + b.Sick + b.Personal + b.Maternity + b.Paternity
}

func (b LeaveBalance) Valid() bool {
	return b.Annual >= 0 && b.Sick >= 0 && b.Personal >= 0 && b.Maternity >= 0 && b.Paternity >= 0
}

type Employee struct {
	ID                string       `json:"id"`
	EmployeeCode      string       `json:"employeeId"`
	FirstName         string       `json:"firstName"`
	LastName          string       `json:"lastName"`
	Email             string       `json:"email"`
	Phone             string       `json:"phone"`
	Location          string       `json:"location"`
	Department        string       `json:"department"`
	JobRole           string       `json:"role"`
	Status            Status       `json:"status"`
	ContractType      ContractType `json:"contractType"`
	ContractEndDate   *time.Time   `json:"contractEndDate,omitempty"`
	DateOfJoining     time.Time    `json:"dateOfJoining"`
	LeaveBalance      LeaveBalance `json:"leaveBalance"`
	LastProfileUpdate *time.Time   `json:"lastProfileUpdate,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type Filter struct {
	Department string
	Status     string
	Search     string
}

type CreateInput struct {
	EmployeeCode    string        `json:"employeeId"`
	FirstName       string        `json:"firstName"`
	LastName        string        `json:"lastName"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	Location        string        `json:"location"`
	Department      string        `json:"department"`
	JobRole         string        `json:"role"`
	Status          Status        `json:"status"`
	ContractType    ContractType  `json:"contractType"`
	ContractEndDate *time.Time    `json:"contractEndDate"`
	DateOfJoining   *time.Time    `json:"dateOfJoining"`
	LeaveBalance    *LeaveBalance `json:"leaveBalance"`
	Password        string        `json:"password"`
	UserRole        string        `json:"userRole"`
}

// UpdateInput carries the fields HR may change; nil leaves a field as is.
type UpdateInput struct {
	FirstName       *string       `json:"firstName"`
	LastName        *string       `json:"lastName"`
	Email           *string       `json:"email"`
	Phone           *string       `json:"phone"`
	Location        *string       `json:"location"`
	Department      *string       `json:"department"`
	JobRole         *string       `json:"role"`
	Status          *Status       `json:"status"`
	ContractType    *ContractType `json:"contractType"`
	ContractEndDate *time.Time    `json:"contractEndDate"`
	LeaveBalance    *LeaveBalance `json:"leaveBalance"`
}

type ProfileInput struct {
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
}

type SignupInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Department string `json:"department"`
	JobRole    string `json:"role"`
}

type BalanceView struct {
	EmployeeID string       `json:"employeeId"`
	Name       string       `json:"name"`
	Balance    LeaveBalance `json:"leaveBalance"`
	Total      int          `json:"total"`
}
