package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/errs"
	"hrms/internal/domain/notifications"
)

// Counter receives named domain events; *metrics.Collector satisfies it.
type Counter interface {
	Count(event string)
}

type Service struct {
	Store     StoreAPI
	Employees employee.StoreAPI
	Audit     audit.Recorder
	Notify    *notifications.Service
	Metrics   Counter
	Location  *time.Location
	Now       func() time.Time
}

func NewService(store StoreAPI, employees employee.StoreAPI, recorder audit.Recorder, notify *notifications.Service) *Service {
	return &Service{
		Store:     store,
		Employees: employees,
		Audit:     recorder,
		Notify:    notify,
		Location:  time.Local,
		Now:       time.Now,
	}
}

// RequestLeave files a Pending request. Staff always file for themselves;
// HR and Admin may name another employee. Balances are checked here but only
// debited on approval.
func (s *Service) RequestLeave(ctx context.Context, user auth.UserContext, in RequestInput) (Request, error) {
	if err := auth.RequireAnyOf(user, auth.CapAuthenticated); err != nil {
		return Request{}, err
	}
	target := user.EmployeeID
	if user.Can(auth.CapManage) && strings.TrimSpace(in.EmployeeID) != "" {
		target = strings.TrimSpace(in.EmployeeID)
	}
	if target == "" {
		return Request{}, fmt.Errorf("no employee record for %s: %w", user.Email, errs.ErrNotFound)
	}
	category, ok := ParseCategory(string(in.Category))
	if !ok {
		return Request{}, errs.Invalid("leaveType", "must be one of Annual, Sick, Personal, Maternity, Paternity, Unpaid")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return Request{}, errs.Invalid("startDate", "start and end dates are required")
	}
	days, err := CountDays(in.StartDate, in.EndDate, s.Location)
	if err != nil {
		return Request{}, err
	}
	emp, err := s.Employees.GetEmployee(ctx, target)
	if err != nil {
		return Request{}, err
	}
	if slot := category.Slot(&emp.LeaveBalance); slot != nil && *slot < days {
		return Request{}, &errs.InsufficientBalanceError{Category: string(category), Available: *slot, Requested: days}
	}

	now := s.Now()
	req := Request{
		ID:           uuid.NewString(),
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName(),
		Category:     category,
		StartDate:    Midnight(in.StartDate, s.Location),
		EndDate:      Midnight(in.EndDate, s.Location),
		Days:         days,
		Reason:       strings.TrimSpace(in.Reason),
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.CreateRequest(ctx, req); err != nil {
		return Request{}, err
	}
	s.record(ctx, user, audit.ActionLeaveRequested, req)
	s.count("leave.requested")
	return req, nil
}

// Decide approves or rejects a Pending request. An approval of a tracked
// category debits the employee's balance atomically with the status change.
func (s *Service) Decide(ctx context.Context, user auth.UserContext, id string, outcome Event) (Request, error) {
	if err := auth.RequireAnyOf(user, auth.CapManage); err != nil {
		return Request{}, err
	}
	if outcome != EventApprove && outcome != EventReject {
		return Request{}, errs.Invalid("outcome", "must be approve or reject")
	}
	req, err := s.Store.GetRequest(ctx, id)
	if err != nil {
		return Request{}, err
	}
	to, err := req.Status.Next(outcome)
	if err != nil {
		return Request{}, err
	}
	change := Change{
		RequestID:  req.ID,
		EmployeeID: req.EmployeeID,
		From:       req.Status,
		To:         to,
		Category:   req.Category,
		DecidedBy:  user.Email,
		At:         s.Now(),
	}
	if to == StatusApproved && req.Category.Tracked() {
		change.Debit = req.Days
	}
	updated, err := s.Store.ApplyChange(ctx, change)
	if err != nil {
		return Request{}, err
	}

	action, ntype := audit.ActionLeaveApproved, notifications.TypeLeaveApproved
	if to == StatusRejected {
		action, ntype = audit.ActionLeaveRejected, notifications.TypeLeaveRejected
	}
	s.record(ctx, user, action, updated)
	s.count("leave." + strings.ToLower(string(to)))
	s.notifyEmployee(ctx, ntype, updated)
	return updated, nil
}

// Cancel withdraws a Pending request. The owner and HR/Admin may cancel;
// balances are untouched.
func (s *Service) Cancel(ctx context.Context, user auth.UserContext, id string) (Request, error) {
	if err := auth.RequireAnyOf(user, auth.CapAuthenticated); err != nil {
		return Request{}, err
	}
	req, err := s.Store.GetRequest(ctx, id)
	if err != nil {
		return Request{}, err
	}
	owner := user.EmployeeID != "" && req.EmployeeID == user.EmployeeID
	if !owner && !user.Can(auth.CapManage) {
		return Request{}, errs.ErrForbidden
	}
	to, err := req.Status.Next(EventCancel)
	if err != nil {
		return Request{}, err
	}
	updated, err := s.Store.ApplyChange(ctx, Change{
		RequestID:  req.ID,
		EmployeeID: req.EmployeeID,
		From:       req.Status,
		To:         to,
		Category:   req.Category,
		DecidedBy:  user.Email,
		At:         s.Now(),
	})
	if err != nil {
		return Request{}, err
	}
	s.record(ctx, user, audit.ActionLeaveCancelled, updated)
	s.count("leave.cancelled")
	if !owner {
		s.notifyEmployee(ctx, notifications.TypeLeaveCancelled, updated)
	}
	return updated, nil
}

func (s *Service) ListMine(ctx context.Context, user auth.UserContext) ([]Request, error) {
	if err := auth.RequireAnyOf(user, auth.CapAuthenticated); err != nil {
		return nil, err
	}
	if user.EmployeeID == "" {
		return []Request{}, nil
	}
	return s.list(ctx, Filter{EmployeeID: user.EmployeeID})
}

func (s *Service) List(ctx context.Context, user auth.UserContext, filter Filter) ([]Request, error) {
	if err := auth.RequireAnyOf(user, auth.CapManage); err != nil {
		return nil, err
	}
	return s.list(ctx, filter)
}

func (s *Service) Get(ctx context.Context, user auth.UserContext, id string) (Request, error) {
	if err := auth.RequireAnyOf(user, auth.CapAuthenticated); err != nil {
		return Request{}, err
	}
	req, err := s.Store.GetRequest(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if req.EmployeeID != user.EmployeeID && !user.Can(auth.CapManage) {
		return Request{}, errs.ErrForbidden
	}
	return req, nil
}

func (s *Service) list(ctx context.Context, filter Filter) ([]Request, error) {
	out, err := s.Store.ListRequests(ctx, filter)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Request{}
	}
	return out, nil
}

func (s *Service) record(ctx context.Context, user auth.UserContext, action audit.Action, req Request) {
	if s.Audit == nil {
		return
	}
	target := "Leave Request: " + req.ID
	if req.EmployeeName != "" {
		target = "Leave Request: " + req.EmployeeName
	}
	s.Audit.Record(ctx, audit.Entry{
		Action: action,
		Actor:  user.Email,
		UserID: user.UserID,
		Target: target,
		Details: audit.Detail(map[string]any{
			"requestId":  req.ID,
			"employeeId": req.EmployeeID,
			"leaveType":  req.Category,
			"days":       req.Days,
			"status":     req.Status,
		}),
	})
}

func (s *Service) count(event string) {
	if s.Metrics != nil {
		s.Metrics.Count(event)
	}
}

func (s *Service) notifyEmployee(ctx context.Context, ntype string, req Request) {
	if s.Notify == nil {
		return
	}
	emp, err := s.Employees.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		slog.Warn("leave notification lookup failed", "requestId", req.ID, "err", err)
		return
	}
	s.Notify.Notify(ctx, notifications.LeaveDecision(
		ntype, emp.Email, emp.FirstName, string(req.Category), req.Days,
		req.StartDate.Format(time.DateOnly), req.EndDate.Format(time.DateOnly),
	))
}
