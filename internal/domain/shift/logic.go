package shift

import (
	"regexp"
	"slices"

	"hrms/internal/domain/errs"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func validate(s Shift) error {
	if s.EmployeeID == "" {
		return errs.Invalid("employeeId", "is required")
	}
	if !clockPattern.MatchString(s.StartTime) {
		return errs.Invalid("startTime", "must be HH:MM")
	}
	if !clockPattern.MatchString(s.EndTime) {
		return errs.Invalid("endTime", "must be HH:MM")
	}
	if len(s.DaysOfWeek) == 0 {
		return errs.Invalid("daysOfWeek", "must not be empty")
	}
	for _, d := range s.DaysOfWeek {
		if d < 0 || d > 6 {
			return errs.Invalid("daysOfWeek", "values must be between 0 and 6")
		}
	}
	if s.EffectiveTo != nil && s.EffectiveTo.Before(s.EffectiveFrom) {
		return errs.Invalid("effectiveTo", "must be on or after effectiveFrom")
	}
	return nil
}

func normalizeDays(days []int) []int {
	out := slices.Clone(days)
	slices.Sort(out)
	return slices.Compact(out)
}
