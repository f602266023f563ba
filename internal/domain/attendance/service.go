package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/errs"
)

type Service struct {
	Store    StoreAPI
	Audit    audit.Recorder
	Location *time.Location
	Now      func() time.Time
}

func NewService(store StoreAPI, recorder audit.Recorder) *Service {
	return &Service{Store: store, Audit: recorder, Location: time.Local, Now: time.Now}
}

// ClockIn stamps the start of today's record for the caller, creating the
// record on first use.
func (s *Service) ClockIn(ctx context.Context, user auth.UserContext) (Record, error) {
	employeeID, err := s.employeeOf(user)
	if err != nil {
		return Record{}, err
	}
	now := s.Now()
	day := Day(now, s.Location)

	rec, err := s.Store.FindDay(ctx, employeeID, day)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		rec = Record{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			Date:       day,
			ClockIn:    &now,
			Source:     SourceWeb,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.Store.CreateRecord(ctx, rec); err != nil {
			if errors.Is(err, errs.ErrDuplicateRecord) {
				return Record{}, errs.ErrAlreadyClockedIn
			}
			return Record{}, err
		}
	case err != nil:
		return Record{}, err
	case rec.ClockIn != nil:
		return Record{}, errs.ErrAlreadyClockedIn
	default:
		rec, err = s.Store.SetClockIn(ctx, rec.ID, now)
		if err != nil {
			return Record{}, err
		}
	}
	s.record(ctx, user, audit.ActionClockedIn, rec)
	return rec, nil
}

// ClockOut closes today's record for the caller.
func (s *Service) ClockOut(ctx context.Context, user auth.UserContext) (Record, error) {
	employeeID, err := s.employeeOf(user)
	if err != nil {
		return Record{}, err
	}
	now := s.Now()
	rec, err := s.Store.FindDay(ctx, employeeID, Day(now, s.Location))
	if errors.Is(err, errs.ErrNotFound) {
		return Record{}, errs.ErrNotClockedIn
	}
	if err != nil {
		return Record{}, err
	}
	if rec.ClockIn == nil {
		return Record{}, errs.ErrNotClockedIn
	}
	if rec.ClockOut != nil {
		return Record{}, errs.ErrAlreadyClockedOut
	}
	rec, err = s.Store.SetClockOut(ctx, rec.ID, now, WorkedMinutes(*rec.ClockIn, now))
	if err != nil {
		return Record{}, err
	}
	s.record(ctx, user, audit.ActionClockedOut, rec)
	return rec, nil
}

// History lists the caller's own records, most recent first.
func (s *Service) History(ctx context.Context, user auth.UserContext, r Range) ([]Record, error) {
	employeeID, err := s.employeeOf(user)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, Filter{EmployeeID: employeeID, Range: s.normalize(r)})
}

func (s *Service) List(ctx context.Context, user auth.UserContext, filter Filter) ([]Record, error) {
	if err := auth.RequireAnyOf(user, auth.CapManage); err != nil {
		return nil, err
	}
	filter.Range = s.normalize(filter.Range)
	return s.list(ctx, filter)
}

func (s *Service) list(ctx context.Context, filter Filter) ([]Record, error) {
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, errs.ErrInvalidRange
	}
	out, err := s.Store.ListRecords(ctx, filter)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Record{}
	}
	return out, nil
}

func (s *Service) normalize(r Range) Range {
	if !r.From.IsZero() {
		r.From = Day(r.From, s.Location)
	}
	if !r.To.IsZero() {
		r.To = Day(r.To, s.Location)
	}
	return r
}

func (s *Service) employeeOf(user auth.UserContext) (string, error) {
	if err := auth.RequireAnyOf(user, auth.CapAuthenticated); err != nil {
		return "", err
	}
	if user.EmployeeID == "" {
		return "", errs.ErrForbidden
	}
	return user.EmployeeID, nil
}

func (s *Service) record(ctx context.Context, user auth.UserContext, action audit.Action, rec Record) {
	if s.Audit == nil {
		return
	}
	s.Audit.Record(ctx, audit.Entry{
		Action: action,
		Actor:  user.Email,
		UserID: user.UserID,
		Target: "Attendance: " + rec.Date.Format(time.DateOnly),
		Details: audit.Detail(map[string]any{
			"recordId":     rec.ID,
			"employeeId":   rec.EmployeeID,
			"totalMinutes": rec.TotalMinutes,
		}),
	})
}
