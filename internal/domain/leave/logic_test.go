package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/errs"
)

func TestCountDays(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		loc   *time.Location
		want  int
	}{
		{"same day", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), time.UTC, 1},
		{"working week", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), time.UTC, 5},
		{"times of day ignored", time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC), time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC), time.UTC, 2},
		{"across dst start", time.Date(2026, 3, 7, 0, 0, 0, 0, newYork), time.Date(2026, 3, 9, 0, 0, 0, 0, newYork), newYork, 3},
		{"across dst end", time.Date(2026, 10, 31, 0, 0, 0, 0, newYork), time.Date(2026, 11, 2, 0, 0, 0, 0, newYork), newYork, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CountDays(tc.start, tc.end, tc.loc)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCountDaysInvalid(t *testing.T) {
	start := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 9, 0, 0, 0, 0, time.UTC)

	_, err := CountDays(start, end, time.UTC)
	assert.ErrorIs(t, err, errs.ErrInvalidRange)
}

func TestStatusTransitions(t *testing.T) {
	events := []Event{EventApprove, EventReject, EventCancel}
	for _, event := range events {
		_, err := StatusPending.Next(event)
		assert.NoError(t, err, "pending should accept %s", event)
	}
	for _, status := range []Status{StatusApproved, StatusRejected, StatusCancelled} {
		assert.True(t, status.Terminal(), "%s should be terminal", status)
		for _, event := range events {
			_, err := status.Next(event)
			assert.ErrorIs(t, err, errs.ErrInvalidState, "%s on %s", event, status)
		}
	}
}

func TestCategoryTracking(t *testing.T) {
	assert.False(t, CategoryUnpaid.Tracked())
	for _, c := range []Category{CategoryAnnual, CategorySick, CategoryPersonal, CategoryMaternity, CategoryPaternity} {
		assert.True(t, c.Tracked(), "%s should be tracked", c)
	}
	c, ok := ParseCategory(" sick ")
	assert.True(t, ok)
	assert.Equal(t, CategorySick, c)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"pending", StatusPending, true},
		{"APPROVED", StatusApproved, true},
		{" Rejected ", StatusRejected, true},
		{"cancelled", StatusCancelled, true},
		{"done", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseStatus(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
