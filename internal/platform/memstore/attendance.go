package memstore

import (
	"context"
	"time"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/errs"
)

func dayKey(employeeID string, day time.Time) string {
	return employeeID + "|" + day.Format(time.DateOnly)
}

func (s *Store) FindDay(_ context.Context, employeeID string, day time.Time) (attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.attendance[dayKey(employeeID, day)]
	if !ok {
		return attendance.Record{}, errs.ErrNotFound
	}
	rec.EmployeeName = s.employeeName(rec.EmployeeID)
	return rec, nil
}

func (s *Store) CreateRecord(_ context.Context, rec attendance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := dayKey(rec.EmployeeID, rec.Date)
	if _, ok := s.attendance[key]; ok {
		return duplicate("attendance_employee_day_key")
	}
	s.attendance[key] = rec
	s.stamp(rec.ID)
	return nil
}

func (s *Store) SetClockIn(_ context.Context, id string, at time.Time) (attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, rec, ok := s.recordByID(id)
	if !ok {
		return attendance.Record{}, errs.ErrNotFound
	}
	if rec.ClockIn != nil {
		return attendance.Record{}, errs.ErrAlreadyClockedIn
	}
	rec.ClockIn = &at
	rec.UpdatedAt = at
	s.attendance[key] = rec
	rec.EmployeeName = s.employeeName(rec.EmployeeID)
	return rec, nil
}

func (s *Store) SetClockOut(_ context.Context, id string, at time.Time, totalMinutes int) (attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, rec, ok := s.recordByID(id)
	if !ok {
		return attendance.Record{}, errs.ErrNotFound
	}
	if rec.ClockOut != nil {
		return attendance.Record{}, errs.ErrAlreadyClockedOut
	}
	rec.ClockOut = &at
	rec.TotalMinutes = totalMinutes
	rec.UpdatedAt = at
	s.attendance[key] = rec
	rec.EmployeeName = s.employeeName(rec.EmployeeID)
	return rec, nil
}

func (s *Store) ListRecords(_ context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []attendance.Record
	for _, rec := range s.attendance {
		if filter.EmployeeID != "" && rec.EmployeeID != filter.EmployeeID {
			continue
		}
		day := rec.Date.Format(time.DateOnly)
		if !filter.From.IsZero() && day < filter.From.Format(time.DateOnly) {
			continue
		}
		if !filter.To.IsZero() && day > filter.To.Format(time.DateOnly) {
			continue
		}
		rec.EmployeeName = s.employeeName(rec.EmployeeID)
		out = append(out, rec)
	}
	newestFirst(s, out, func(r attendance.Record) time.Time { return r.Date }, func(r attendance.Record) string { return r.ID })
	return out, nil
}

func (s *Store) recordByID(id string) (string, attendance.Record, bool) {
	for key, rec := range s.attendance {
		if rec.ID == id {
			return key, rec, true
		}
	}
	return "", attendance.Record{}, false
}
