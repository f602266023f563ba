package shared

import (
	"net/http"
	"time"
)

// ParseDate accepts RFC3339 or YYYY-MM-DD. Bare dates are read as local
// midnight so they land on the same calendar day the services count in.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.ParseInLocation(time.DateOnly, value, time.Local)
}

// QueryDates reads the from/to query parameters.
func QueryDates(r *http.Request, v *Validator) (from, to time.Time) {
	q := r.URL.Query()
	if raw := q.Get("from"); raw != "" {
		from, _ = v.Date("from", raw)
	}
	if raw := q.Get("to"); raw != "" {
		to, _ = v.Date("to", raw)
	}
	v.DateOrder("from", from, "to", to)
	return from, to
}
