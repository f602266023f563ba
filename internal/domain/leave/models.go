package leave

import (
	"strings"
	"time"

	"hrms/internal/domain/employee"
)

type Category string

const (
	CategoryAnnual    Category = "Annual"
	CategorySick      Category = "Sick"
	CategoryPersonal  Category = "Personal"
	CategoryMaternity Category = "Maternity"
	CategoryPaternity Category = "Paternity"
	CategoryUnpaid    Category = "Unpaid"
)

var Categories = []Category{CategoryAnnual, CategorySick, CategoryPersonal, CategoryMaternity, CategoryPaternity, CategoryUnpaid}

func ParseCategory(value string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(value)) {
			return c, true
		}
	}
	return "", false
}

// Slot returns the balance field debited by c, or nil when c is untracked.
func (c Category) Slot(b *employee.LeaveBalance) *int {
	switch c {
	case CategoryAnnual:
		return &b.Annual
	case CategorySick:
		return &b.Sick
	case CategoryPersonal:
		return &b.Personal
	case CategoryMaternity:
		return &b.Maternity
	case CategoryPaternity:
		return &b.Paternity
	}
	return nil
}

func (c Category) Tracked() bool {
	var scratch employee.LeaveBalance
	return c.Slot(&scratch) != nil
}

type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled}

func ParseStatus(value string) (Status, bool) {
	for _, st := range Statuses {
		if strings.EqualFold(string(st), strings.TrimSpace(value)) {
			return st, true
		}
	}
	return "", false
}

type Event string

const (
	EventApprove Event = "approve"
	EventReject  Event = "reject"
	EventCancel  Event = "cancel"
)

type Request struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName,omitempty"`
	Category     Category   `json:"leaveType"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Days         int        `json:"days"`
	Reason       string     `json:"reason"`
	Status       Status     `json:"status"`
	DecidedBy    string     `json:"approvedBy,omitempty"`
	DecidedAt    *time.Time `json:"approvedDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type RequestInput struct {
	EmployeeID string
	Category   Category
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}

type Filter struct {
	Status     string
	Category   string
	EmployeeID string
}

// Change is a single state transition handed to the store. Debit is the
// number of days to take from Category's balance; zero means no debit.
type Change struct {
	RequestID  string
	EmployeeID string
	From       Status
	To         Status
	Category   Category
	Debit      int
	DecidedBy  string
	At         time.Time
}
