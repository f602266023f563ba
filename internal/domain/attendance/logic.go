package attendance

import (
	"math"
	"time"
)

// Day truncates t to midnight of its calendar day in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// WorkedMinutes rounds the span between in and out to whole minutes. A
// clock-out earlier than the clock-in yields zero.
func WorkedMinutes(in, out time.Time) int {
	minutes := math.Round(out.Sub(in).Minutes())
	if minutes < 0 {
		return 0
	}
	return int(minutes)
}
