package memstore

import (
	"context"
	"fmt"
	"time"

	"hrms/internal/domain/errs"
	"hrms/internal/domain/leave"
)

func (s *Store) CreateRequest(_ context.Context, req leave.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[req.ID]; ok {
		return duplicate("leave_requests_pkey")
	}
	s.requests[req.ID] = req
	s.stamp(req.ID)
	return nil
}

func (s *Store) GetRequest(_ context.Context, id string) (leave.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return leave.Request{}, errs.ErrNotFound
	}
	req.EmployeeName = s.employeeName(req.EmployeeID)
	return req, nil
}

func (s *Store) ListRequests(_ context.Context, filter leave.Filter) ([]leave.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []leave.Request
	for _, req := range s.requests {
		if filter.Status != "" && string(req.Status) != filter.Status {
			continue
		}
		if filter.Category != "" && string(req.Category) != filter.Category {
			continue
		}
		if filter.EmployeeID != "" && req.EmployeeID != filter.EmployeeID {
			continue
		}
		req.EmployeeName = s.employeeName(req.EmployeeID)
		out = append(out, req)
	}
	newestFirst(s, out, func(r leave.Request) time.Time { return r.CreatedAt }, func(r leave.Request) string { return r.ID })
	return out, nil
}

// ApplyChange checks both preconditions before writing either record, so a
// failed debit leaves the request untouched.
func (s *Store) ApplyChange(_ context.Context, c leave.Change) (leave.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[c.RequestID]
	if !ok {
		return leave.Request{}, errs.ErrNotFound
	}
	if req.Status != c.From {
		return leave.Request{}, fmt.Errorf("request %s is no longer %s: %w", c.RequestID, c.From, errs.ErrInvalidState)
	}
	if c.Debit > 0 {
		emp, ok := s.employees[c.EmployeeID]
		if !ok {
			return leave.Request{}, fmt.Errorf("employee %s: %w", c.EmployeeID, errs.ErrNotFound)
		}
		slot := c.Category.Slot(&emp.LeaveBalance)
		if slot == nil {
			return leave.Request{}, fmt.Errorf("category %s has no balance", c.Category)
		}
		if *slot < c.Debit {
			return leave.Request{}, &errs.InsufficientBalanceError{Category: string(c.Category), Available: *slot, Requested: c.Debit}
		}
		*slot -= c.Debit
		emp.UpdatedAt = c.At
		s.employees[emp.ID] = emp
	}
	at := c.At
	req.Status = c.To
	req.DecidedBy = c.DecidedBy
	req.DecidedAt = &at
	req.UpdatedAt = at
	s.requests[req.ID] = req
	req.EmployeeName = s.employeeName(req.EmployeeID)
	return req, nil
}
