package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/auth"
)

var noContent = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

type call struct {
	method, path, remote, body, user string
}

func (p call) request() *http.Request {
	req := httptest.NewRequest(p.method, p.path, strings.NewReader(p.body))
	if p.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.RemoteAddr = p.remote
	if p.user != "" {
		req = req.WithContext(context.WithValue(context.Background(), ctxKeyUser, auth.UserContext{UserID: p.user}))
	}
	return req
}

func statuses(h http.Handler, calls ...call) []int {
	out := make([]int, 0, len(calls))
	for _, p := range calls {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, p.request())
		out = append(out, rec.Code)
	}
	return out
}

func TestRateLimitKeys(t *testing.T) {
	cases := []struct {
		name   string
		calls []call
		want   []int
	}{
		{
			name: "user key spans addresses",
			calls: []call{
				{method: http.MethodGet, path: "/api/leaves/my", remote: "198.51.100.11:1", user: "u1"},
				{method: http.MethodGet, path: "/api/leaves/my", remote: "198.51.100.12:2", user: "u1"},
			},
			want: []int{http.StatusNoContent, http.StatusTooManyRequests},
		},
		{
			name: "distinct users are independent",
			calls: []call{
				{method: http.MethodGet, path: "/api/leaves/my", remote: "198.51.100.11:1", user: "u1"},
				{method: http.MethodGet, path: "/api/leaves/my", remote: "198.51.100.11:1", user: "u2"},
			},
			want: []int{http.StatusNoContent, http.StatusNoContent},
		},
		{
			name: "anonymous callers fall back to ip",
			calls: []call{
				{method: http.MethodPost, path: "/api/auth/signin", remote: "203.0.113.10:1", body: `{"email":"a@example.com"}`},
				{method: http.MethodPost, path: "/api/auth/signin", remote: "203.0.113.10:2", body: `{"email":"b@example.com"}`},
			},
			want: []int{http.StatusNoContent, http.StatusTooManyRequests},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			limited := RateLimit(1, time.Minute)(noContent)
			assert.Equal(t, tc.want, statuses(limited, tc.calls...))
		})
	}
}

func TestRateLimitHeaders(t *testing.T) {
	limited := RateLimit(1, time.Minute)(noContent)
	p := call{method: http.MethodGet, path: "/api/shifts", remote: "192.0.2.30:1234"}
	limited.ServeHTTP(httptest.NewRecorder(), p.request())

	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, p.request())
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate_limited")
}

func TestWindowResetsAndSweeps(t *testing.T) {
	w := newWindow(1, time.Minute, clientIPKey)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	assert.True(t, w.hit("a", now).allowed)
	assert.False(t, w.hit("a", now.Add(time.Second)).allowed)
	w.hit("b", now.Add(2*time.Second))

	assert.True(t, w.hit("a", now.Add(2*time.Minute)).allowed)
	assert.NotContains(t, w.buckets, "b")
}

func TestCeilSeconds(t *testing.T) {
	assert.Equal(t, 2, ceilSeconds(1500*time.Millisecond))
	assert.Equal(t, 0, ceilSeconds(-time.Second))
}

func TestSensitiveMutationRateLimit(t *testing.T) {
	limited := SensitiveMutationRateLimit(4, time.Minute)(noContent)

	reads := make([]call, 6)
	for i := range reads {
		reads[i] = call{method: http.MethodGet, path: "/api/reports/headcount", remote: "198.51.100.40:1"}
	}
	for _, code := range statuses(limited, reads...) {
		assert.Equal(t, http.StatusNoContent, code)
	}

	approve := call{method: http.MethodPost, path: "/api/leaves/l1/approve", remote: "198.51.100.41:1", user: "hr-1"}
	assert.Equal(t,
		[]int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests},
		statuses(limited, approve, approve, approve))

	// signin budget is base/4 per ip and per email
	signin := call{method: http.MethodPost, path: "/api/auth/signin", remote: "198.51.100.42:1", body: `{"email":"x@example.com"}`}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusTooManyRequests}, statuses(limited, signin, signin))
}

func TestEmailKeyRestoresBody(t *testing.T) {
	req := call{method: http.MethodPost, path: "/api/auth/signin", remote: "192.0.2.1:1", body: `{"email":" Ada@Example.com "}`}.request()
	assert.Equal(t, "email:ada@example.com", emailOrIPKey(req))

	var buf strings.Builder
	_, err := io.Copy(&buf, req.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Ada@Example.com")
}

func TestSensitiveRateScope(t *testing.T) {
	cases := []struct {
		method string
		path   string
		want   sensitiveScope
	}{
		{http.MethodPost, "/api/auth/signin", sensitiveScopeAuth},
		{http.MethodPost, "/api/auth/signup", sensitiveScopeAuth},
		{http.MethodPut, "/api/leaves/l1/reject", sensitiveScopeActor},
		{http.MethodPost, "/api/employees", sensitiveScopeActor},
		{http.MethodDelete, "/api/employees/e1", sensitiveScopeActor},
		{http.MethodPut, "/api/employees/e1", sensitiveScopeNone},
		{http.MethodGet, "/api/leaves/l1/approve", sensitiveScopeNone},
		{http.MethodPost, "/api/attendance/clock-in", sensitiveScopeNone},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		assert.Equal(t, tc.want, sensitiveRateScope(req), "%s %s", tc.method, tc.path)
	}
}
