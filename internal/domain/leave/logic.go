package leave

import (
	"fmt"
	"time"

	"hrms/internal/domain/errs"
)

var transitions = map[Status]map[Event]Status{
	StatusPending: {
		EventApprove: StatusApproved,
		EventReject:  StatusRejected,
		EventCancel:  StatusCancelled,
	},
}

// Next returns the state reached from s on e. Only Pending has outgoing
// transitions; every other pairing is ErrInvalidState.
func (s Status) Next(e Event) (Status, error) {
	if to, ok := transitions[s][e]; ok {
		return to, nil
	}
	return "", fmt.Errorf("cannot %s a %s request: %w", e, s, errs.ErrInvalidState)
}

func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Midnight truncates t to the start of its calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// CountDays returns the inclusive number of calendar days between start and
// end after truncating both to local midnight. Counting calendar dates keeps
// the result exact across daylight-saving shifts.
func CountDays(start, end time.Time, loc *time.Location) (int, error) {
	s, e := Midnight(start, loc), Midnight(end, loc)
	sDay := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	eDay := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC)
	days := int(eDay.Sub(sDay).Hours()/24) + 1
	if days <= 0 {
		return 0, fmt.Errorf("end date %s before start date %s: %w", e.Format(time.DateOnly), s.Format(time.DateOnly), errs.ErrInvalidRange)
	}
	return days, nil
}
