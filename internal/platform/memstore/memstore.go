// Package memstore keeps every domain store in process memory. It backs the
// test suites and STORE_DRIVER=memory, and mirrors the conditional-update
// semantics of the Postgres stores.
package memstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/errs"
	"hrms/internal/domain/leave"
	"hrms/internal/domain/shift"
	"hrms/internal/platform/idempotency"
)

type Store struct {
	mu sync.Mutex

	seq        int64
	order      map[string]int64
	users      map[string]auth.User
	employees  map[string]employee.Employee
	requests   map[string]leave.Request
	attendance map[string]attendance.Record
	shifts     map[string]shift.Shift
	entries    []audit.Entry
	replays    map[string]idempotency.Record
}

var (
	_ auth.StoreAPI        = (*Store)(nil)
	_ employee.StoreAPI    = (*Store)(nil)
	_ leave.StoreAPI       = (*Store)(nil)
	_ attendance.StoreAPI  = (*Store)(nil)
	_ shift.StoreAPI       = (*Store)(nil)
	_ audit.StoreAPI       = (*Store)(nil)
	_ idempotency.StoreAPI = (*Store)(nil)
)

func New() *Store {
	return &Store{
		order:      map[string]int64{},
		users:      map[string]auth.User{},
		employees:  map[string]employee.Employee{},
		requests:   map[string]leave.Request{},
		attendance: map[string]attendance.Record{},
		shifts:     map[string]shift.Shift{},
		replays:    map[string]idempotency.Record{},
	}
}

// Ping always succeeds; it lets the store stand in for a readiness check.
func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) stamp(id string) {
	s.seq++
	s.order[id] = s.seq
}

// newestFirst sorts by created time then insertion order, both descending.
func newestFirst[T any](s *Store, items []T, created func(T) time.Time, id func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		if c := created(b).Compare(created(a)); c != 0 {
			return c
		}
		return cmp.Compare(s.order[id(b)], s.order[id(a)])
	})
}

func duplicate(what string) error {
	return fmt.Errorf("%w: %s", errs.ErrDuplicateRecord, what)
}

// Users

func (s *Store) CreateUser(_ context.Context, user auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.Email = strings.ToLower(user.Email)
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return duplicate("users_email_key")
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return auth.User{}, errs.ErrNotFound
}

func (s *Store) DeleteUsersByEmployee(_ context.Context, employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, user := range s.users {
		if user.EmployeeID == employeeID {
			delete(s.users, id)
		}
	}
	return nil
}

// Employees

func (s *Store) CreateEmployee(_ context.Context, emp employee.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.employees {
		if strings.EqualFold(existing.Email, emp.Email) {
			return duplicate("employees_email_key")
		}
		if existing.EmployeeCode == emp.EmployeeCode {
			return duplicate("employees_employee_code_key")
		}
	}
	s.employees[emp.ID] = emp
	s.stamp(emp.ID)
	return nil
}

func (s *Store) GetEmployee(_ context.Context, id string) (employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	emp, ok := s.employees[id]
	if !ok {
		return employee.Employee{}, errs.ErrNotFound
	}
	return emp, nil
}

func (s *Store) ListEmployees(_ context.Context, filter employee.Filter) ([]employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []employee.Employee
	for _, emp := range s.employees {
		if filter.Department != "" && emp.Department != filter.Department {
			continue
		}
		if filter.Status != "" && string(emp.Status) != filter.Status {
			continue
		}
		if search != "" && !matchesSearch(emp, search) {
			continue
		}
		out = append(out, emp)
	}
	newestFirst(s, out, func(e employee.Employee) time.Time { return e.CreatedAt }, func(e employee.Employee) string { return e.ID })
	return out, nil
}

func matchesSearch(emp employee.Employee, search string) bool {
	for _, field := range []string{emp.FirstName, emp.LastName, emp.Email, emp.EmployeeCode} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func (s *Store) UpdateEmployee(_ context.Context, emp employee.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[emp.ID]; !ok {
		return errs.ErrNotFound
	}
	for id, existing := range s.employees {
		if id != emp.ID && strings.EqualFold(existing.Email, emp.Email) {
			return duplicate("employees_email_key")
		}
	}
	s.employees[emp.ID] = emp
	return nil
}

func (s *Store) DeleteEmployee(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[id]; !ok {
		return errs.ErrNotFound
	}
	delete(s.employees, id)
	for userID, user := range s.users {
		if user.EmployeeID == id {
			user.EmployeeID = ""
			s.users[userID] = user
		}
	}
	return nil
}

func (s *Store) employeeName(id string) string {
	if emp, ok := s.employees[id]; ok {
		return emp.FullName()
	}
	return ""
}
