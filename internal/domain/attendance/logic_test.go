package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkedMinutes(t *testing.T) {
	in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		out  time.Time
		want int
	}{
		{"ninety minutes", in.Add(90 * time.Minute), 90},
		{"rounds half up", in.Add(30*time.Second + 30*time.Minute), 31},
		{"rounds down", in.Add(29 * time.Second), 0},
		{"negative floors to zero", in.Add(-15 * time.Minute), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WorkedMinutes(in, tc.out))
		})
	}
}

func TestDayTruncatesInLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	at := time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)
	day := Day(at, tokyo)
	assert.Equal(t, 3, day.Day())
	assert.Equal(t, 0, day.Hour())
}
