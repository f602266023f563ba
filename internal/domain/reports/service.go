package reports

import (
	"context"
	"slices"
	"strings"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/leave"
)

type Service struct {
	Employees  employee.StoreAPI
	Leaves     leave.StoreAPI
	Attendance attendance.StoreAPI
	Audit      audit.Recorder
}

func NewService(employees employee.StoreAPI, leaves leave.StoreAPI, records attendance.StoreAPI, recorder audit.Recorder) *Service {
	return &Service{Employees: employees, Leaves: leaves, Attendance: records, Audit: recorder}
}

func (s *Service) Headcount(ctx context.Context, user auth.UserContext, filter employee.Filter) (Headcount, error) {
	if err := auth.RequireAnyOf(user, auth.CapManage); err != nil {
		return Headcount{}, err
	}
	emps, err := s.Employees.ListEmployees(ctx, filter)
	if err != nil {
		return Headcount{}, err
	}
	byStatus, byDept, byRole := tally{}, tally{}, tally{}
	for _, emp := range emps {
		byStatus[string(emp.Status)]++
		byDept[emp.Department]++
		byRole[emp.JobRole]++
	}
	report := Headcount{
		Total:        len(emps),
		ByStatus:     byStatus.counts(),
		ByDepartment: byDept.counts(),
		ByJobRole:    byRole.counts(),
	}
	s.generated(ctx, user, "headcount")
	return report, nil
}

// LeaveSummary aggregates requests whose start date falls within r.
func (s *Service) LeaveSummary(ctx context.Context, user auth.UserContext, r Range) (LeaveSummary, error) {
	if err := auth.RequireAnyOf(user, auth.CapManage); err != nil {
		return LeaveSummary{}, err
	}
	reqs, err := s.Leaves.ListRequests(ctx, leave.Filter{})
	if err != nil {
		return LeaveSummary{}, err
	}
	byStatus, approvedDays := tally{}, tally{}
	total := 0
	for _, req := range reqs {
		if !r.contains(req.StartDate) {
			continue
		}
		total++
		byStatus[string(req.Status)]++
		if req.Status == leave.StatusApproved {
			approvedDays[string(req.Category)] += req.Days
		}
	}
	report := LeaveSummary{
		Range:                  r,
		Total:                  total,
		ByStatus:               byStatus.counts(),
		ApprovedDaysByCategory: approvedDays.counts(),
	}
	s.generated(ctx, user, "leaves")
	return report, nil
}

// AttendanceSummary totals each employee's recorded days within r. A day
// counts as present once clock-in was stamped.
func (s *Service) AttendanceSummary(ctx context.Context, user auth.UserContext, r Range) (AttendanceSummary, error) {
	if err := auth.RequireAnyOf(user, auth.CapManage); err != nil {
		return AttendanceSummary{}, err
	}
	records, err := s.Attendance.ListRecords(ctx, attendance.Filter{Range: attendance.Range{From: r.From, To: r.To}})
	if err != nil {
		return AttendanceSummary{}, err
	}
	rows := map[string]*AttendanceRow{}
	for _, rec := range records {
		if rec.ClockIn == nil {
			continue
		}
		row, ok := rows[rec.EmployeeID]
		if !ok {
			row = &AttendanceRow{EmployeeID: rec.EmployeeID, Name: rec.EmployeeName}
			rows[rec.EmployeeID] = row
		}
		row.DaysPresent++
		row.TotalMinutes += rec.TotalMinutes
	}
	report := AttendanceSummary{Range: r, Rows: make([]AttendanceRow, 0, len(rows))}
	for _, row := range rows {
		row.Hours = Hours(row.TotalMinutes)
		report.Rows = append(report.Rows, *row)
	}
	slices.SortFunc(report.Rows, func(a, b AttendanceRow) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.EmployeeID, b.EmployeeID)
	})
	s.generated(ctx, user, "attendance")
	return report, nil
}

// Export renders t and records the export in the audit log.
func (s *Service) Export(ctx context.Context, user auth.UserContext, name string, t Table, format Format) (Document, error) {
	if err := auth.RequireAnyOf(user, auth.CapManage); err != nil {
		return Document{}, err
	}
	doc, err := Render(t, format, name+"-report")
	if err != nil {
		return Document{}, err
	}
	s.Audit.Record(ctx, audit.Entry{
		Action:  audit.ActionDataExported,
		Actor:   user.Email,
		UserID:  user.UserID,
		Target:  "Report: " + name,
		Details: audit.Detail(map[string]any{"format": format, "rows": len(t.Rows)}),
	})
	return doc, nil
}

func (s *Service) generated(ctx context.Context, user auth.UserContext, name string) {
	s.Audit.Record(ctx, audit.Entry{
		Action: audit.ActionReportGenerated,
		Actor:  user.Email,
		UserID: user.UserID,
		Target: "Report: " + name,
	})
}
