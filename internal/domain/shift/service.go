package shift

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/errs"
)

type Service struct {
	Store     StoreAPI
	Employees employee.StoreAPI
	Audit     audit.Recorder
	Now       func() time.Time
}

func NewService(store StoreAPI, employees employee.StoreAPI, recorder audit.Recorder) *Service {
	return &Service{Store: store, Employees: employees, Audit: recorder, Now: time.Now}
}

func (s *Service) Create(ctx context.Context, user auth.UserContext, in Input) (Shift, error) {
	if err := auth.RequireAnyOf(user, auth.CapManage); err != nil {
		return Shift{}, err
	}
	now := s.Now()
	sh := Shift{
		ID:            uuid.NewString(),
		EmployeeID:    strings.TrimSpace(in.EmployeeID),
		Name:          strings.TrimSpace(in.Name),
		StartTime:     strings.TrimSpace(in.StartTime),
		EndTime:       strings.TrimSpace(in.EndTime),
		DaysOfWeek:    slices.Clone(defaultDays),
		EffectiveFrom: now,
		EffectiveTo:   in.EffectiveTo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if sh.Name == "" {
		sh.Name = "Default"
	}
	if in.DaysOfWeek != nil {
		sh.DaysOfWeek = normalizeDays(in.DaysOfWeek)
	}
	if in.EffectiveFrom != nil {
		sh.EffectiveFrom = *in.EffectiveFrom
	}
	if err := validate(sh); err != nil {
		return Shift{}, err
	}
	if _, err := s.Employees.GetEmployee(ctx, sh.EmployeeID); err != nil {
		return Shift{}, err
	}
	if err := s.Store.CreateShift(ctx, sh); err != nil {
		return Shift{}, err
	}
	s.record(ctx, user, audit.ActionShiftAdded, sh)
	return sh, nil
}

// Update replaces the mutable fields present in in.
func (s *Service) Update(ctx context.Context, user auth.UserContext, id string, in Input) (Shift, error) {
	if err := auth.RequireAnyOf(user, auth.CapManage); err != nil {
		return Shift{}, err
	}
	sh, err := s.Store.GetShift(ctx, id)
	if err != nil {
		return Shift{}, err
	}
	if v := strings.TrimSpace(in.Name); v != "" {
		sh.Name = v
	}
	if v := strings.TrimSpace(in.StartTime); v != "" {
		sh.StartTime = v
	}
	if v := strings.TrimSpace(in.EndTime); v != "" {
		sh.EndTime = v
	}
	if in.DaysOfWeek != nil {
		sh.DaysOfWeek = normalizeDays(in.DaysOfWeek)
	}
	if in.EffectiveFrom != nil {
		sh.EffectiveFrom = *in.EffectiveFrom
	}
	if in.EffectiveTo != nil {
		sh.EffectiveTo = in.EffectiveTo
	}
	sh.UpdatedAt = s.Now()
	if err := validate(sh); err != nil {
		return Shift{}, err
	}
	if err := s.Store.UpdateShift(ctx, sh); err != nil {
		return Shift{}, err
	}
	s.record(ctx, user, audit.ActionShiftUpdated, sh)
	return sh, nil
}

func (s *Service) Delete(ctx context.Context, user auth.UserContext, id string) error {
	if err := auth.RequireAnyOf(user, auth.CapManage); err != nil {
		return err
	}
	sh, err := s.Store.GetShift(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteShift(ctx, id); err != nil {
		return err
	}
	s.record(ctx, user, audit.ActionShiftDeleted, sh)
	return nil
}

// List returns the caller's shifts, or another employee's when the caller
// is HR or Admin.
func (s *Service) List(ctx context.Context, user auth.UserContext, employeeID string) ([]Shift, error) {
	if err := auth.RequireAnyOf(user, auth.CapAuthenticated); err != nil {
		return nil, err
	}
	target := user.EmployeeID
	if employeeID != "" && employeeID != user.EmployeeID {
		if !user.Can(auth.CapManage) {
			return nil, errs.ErrForbidden
		}
		target = employeeID
	}
	if target == "" {
		return []Shift{}, nil
	}
	out, err := s.Store.ListShifts(ctx, target)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Shift{}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, user auth.UserContext, id string) (Shift, error) {
	if err := auth.RequireAnyOf(user, auth.CapAuthenticated); err != nil {
		return Shift{}, err
	}
	sh, err := s.Store.GetShift(ctx, id)
	if err != nil {
		return Shift{}, err
	}
	if sh.EmployeeID != user.EmployeeID && !user.Can(auth.CapManage) {
		return Shift{}, errs.ErrForbidden
	}
	return sh, nil
}

func (s *Service) record(ctx context.Context, user auth.UserContext, action audit.Action, sh Shift) {
	if s.Audit == nil {
		return
	}
	s.Audit.Record(ctx, audit.Entry{
		Action:  action,
		Actor:   user.Email,
		UserID:  user.UserID,
		Target:  "Shift: " + sh.Name,
		Details: audit.Detail(map[string]any{"shiftId": sh.ID, "employeeId": sh.EmployeeID}),
	})
}
