package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2026-03-08")
	require.NoError(t, err)
	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, 8, day.Day())
	assert.Equal(t, time.March, day.Month())

	stamp, err := ParseDate("2026-03-08T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, stamp.Hour())

	_, err = ParseDate("08/03/2026")
	assert.Error(t, err)
}

func TestQueryDatesRejectsInvertedRange(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?from=2026-03-10&to=2026-03-01", nil)
	v := NewValidator()
	QueryDates(req, v)
	assert.True(t, v.HasIssues())
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		limit  int
		offset int
	}{
		{"clamped limit", "limit=500&offset=20", 200, 20},
		{"page", "limit=25&page=3", 25, 50},
		{"defaults", "limit=-4", 50, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
			page := ParsePagination(req, 50, 200)
			assert.Equal(t, tc.limit, page.Limit)
			assert.Equal(t, tc.offset, page.Offset)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ada"}`))
	require.True(t, DecodeJSON(rec, req, &dst, ""))
	assert.Equal(t, "Ada", dst.Name)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.False(t, DecodeJSON(rec, req, &dst, ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
