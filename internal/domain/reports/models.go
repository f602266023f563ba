package reports

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(value string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatJSON:
		return FormatJSON, true
	case FormatPDF:
		return FormatPDF, true
	case FormatXLSX:
		return FormatXLSX, true
	}
	return "", false
}

type Range struct {
	From time.Time `json:"from,omitempty"`
	To   time.Time `json:"to,omitempty"`
}

func (r Range) contains(t time.Time) bool {
	day := t.Format(time.DateOnly)
	if !r.From.IsZero() && day < r.From.Format(time.DateOnly) {
		return false
	}
	if !r.To.IsZero() && day > r.To.Format(time.DateOnly) {
		return false
	}
	return true
}

// Table is the tabular form every report renders to for export.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type Headcount struct {
	Total        int     `json:"total"`
	ByStatus     []Count `json:"byStatus"`
	ByDepartment []Count `json:"byDepartment"`
	ByJobRole    []Count `json:"byRole"`
}

type LeaveSummary struct {
	Range                  Range   `json:"range"`
	Total                  int     `json:"total"`
	ByStatus               []Count `json:"byStatus"`
	ApprovedDaysByCategory []Count `json:"approvedDaysByLeaveType"`
}

type AttendanceRow struct {
	EmployeeID   string          `json:"employeeId"`
	Name         string          `json:"name"`
	DaysPresent  int             `json:"daysPresent"`
	TotalMinutes int             `json:"totalMinutes"`
	Hours        decimal.Decimal `json:"hours"`
}

type AttendanceSummary struct {
	Range Range           `json:"range"`
	Rows  []AttendanceRow `json:"rows"`
}

// Document is a rendered export ready to stream to a client.
type Document struct {
	FileName    string
	ContentType string
	Body        []byte
}
