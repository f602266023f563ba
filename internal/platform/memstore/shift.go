package memstore

import (
	"context"
	"slices"
	"time"

	"hrms/internal/domain/errs"
	"hrms/internal/domain/shift"
)

func (s *Store) CreateShift(_ context.Context, sh shift.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.shifts[sh.ID]; ok {
		return duplicate("shifts_pkey")
	}
	sh.DaysOfWeek = slices.Clone(sh.DaysOfWeek)
	s.shifts[sh.ID] = sh
	s.stamp(sh.ID)
	return nil
}

func (s *Store) GetShift(_ context.Context, id string) (shift.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shifts[id]
	if !ok {
		return shift.Shift{}, errs.ErrNotFound
	}
	sh.DaysOfWeek = slices.Clone(sh.DaysOfWeek)
	return sh, nil
}

func (s *Store) UpdateShift(_ context.Context, sh shift.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.shifts[sh.ID]; !ok {
		return errs.ErrNotFound
	}
	sh.DaysOfWeek = slices.Clone(sh.DaysOfWeek)
	s.shifts[sh.ID] = sh
	return nil
}

func (s *Store) DeleteShift(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.shifts[id]; !ok {
		return errs.ErrNotFound
	}
	delete(s.shifts, id)
	return nil
}

func (s *Store) ListShifts(_ context.Context, employeeID string) ([]shift.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []shift.Shift
	for _, sh := range s.shifts {
		if sh.EmployeeID == employeeID {
			sh.DaysOfWeek = slices.Clone(sh.DaysOfWeek)
			out = append(out, sh)
		}
	}
	newestFirst(s, out, func(sh shift.Shift) time.Time { return sh.CreatedAt }, func(sh shift.Shift) string { return sh.ID })
	return out, nil
}
