package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"hrms/internal/transport/http/api"
)

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(r *http.Request) string

// window is a fixed-window counter keyed by caller. Expired buckets are swept
// lazily once per window so idle callers do not accumulate.
type window struct {
	mu        sync.Mutex
	limit     int
	span      time.Duration
	key       KeyFunc
	buckets   map[string]*bucket
	nextSweep time.Time
}

type bucket struct {
	hits  int
	reset time.Time
}

type verdict struct {
	allowed   bool
	remaining int
	resetIn   time.Duration
}

func newWindow(limit int, span time.Duration, key KeyFunc) *window {
	return &window{limit: limit, span: span, key: key, buckets: make(map[string]*bucket)}
}

func (w *window) hit(key string, now time.Time) verdict {
	w.mu.Lock()
	defer w.mu.Unlock()

	if now.After(w.nextSweep) {
		for k, b := range w.buckets {
			if now.After(b.reset) {
				delete(w.buckets, k)
			}
		}
		w.nextSweep = now.Add(w.span)
	}

	b, ok := w.buckets[key]
	if !ok || now.After(b.reset) {
		b = &bucket{reset: now.Add(w.span)}
		w.buckets[key] = b
	}
	b.hits++
	return verdict{
		allowed:   b.hits <= w.limit,
		remaining: max(w.limit-b.hits, 0),
		resetIn:   b.reset.Sub(now),
	}
}

// admit counts r and writes a 429 when the caller is over the limit.
func (w *window) admit(rw http.ResponseWriter, r *http.Request) bool {
	if w.limit <= 0 {
		return true
	}
	key := w.key(r)
	if key == "" {
		key = clientIPKey(r)
	}
	v := w.hit(key, time.Now())

	resetSec := ceilSeconds(v.resetIn)
	h := rw.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(w.limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(v.remaining))
	h.Set("X-RateLimit-Reset", strconv.Itoa(resetSec))
	if v.allowed {
		return true
	}

	h.Set("Retry-After", strconv.Itoa(max(resetSec, 1)))
	slog.Warn("rate limit exceeded", "key", key, "method", r.Method, "path", r.URL.Path, "limit", w.limit)
	api.Fail(rw, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
	return false
}

// RateLimit applies a per-caller budget of limit requests per span. Callers
// are keyed by user id when authenticated and by client IP otherwise.
func RateLimit(limit int, span time.Duration) func(http.Handler) http.Handler {
	w := newWindow(limit, span, userOrIPKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			if w.admit(rw, r) {
				next.ServeHTTP(rw, r)
			}
		})
	}
}

// SensitiveMutationRateLimit adds tighter budgets on credential endpoints and
// on privileged mutations. Sign-in and sign-up are counted both per IP and per
// submitted email.
func SensitiveMutationRateLimit(base int, span time.Duration) func(http.Handler) http.Handler {
	credentials := []*window{
		newWindow(max(base/4, 1), span, clientIPKey),
		newWindow(max(base/4, 1), span, emailOrIPKey),
	}
	privileged := []*window{newWindow(max(base/2, 1), span, userOrIPKey)}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			var windows []*window
			switch sensitiveRateScope(r) {
			case sensitiveScopeAuth:
				windows = credentials
			case sensitiveScopeActor:
				windows = privileged
			}
			for _, w := range windows {
				if !w.admit(rw, r) {
					return
				}
			}
			next.ServeHTTP(rw, r)
		})
	}
}

func userOrIPKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok && user.UserID != "" {
		return "user:" + user.UserID
	}
	return clientIPKey(r)
}

// emailOrIPKey peeks at the JSON body for an email and restores the body for
// the handler.
func emailOrIPKey(r *http.Request) string {
	if r.Body == nil || !strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
		return clientIPKey(r)
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return clientIPKey(r)
	}
	var payload struct {
		Email string `json:"email"`
	}
	if json.Unmarshal(raw, &payload) != nil || strings.TrimSpace(payload.Email) == "" {
		return clientIPKey(r)
	}
	return "email:" + strings.ToLower(strings.TrimSpace(payload.Email))
}

func clientIPKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

type sensitiveScope string

const (
	sensitiveScopeNone  sensitiveScope = ""
	sensitiveScopeAuth  sensitiveScope = "auth"
	sensitiveScopeActor sensitiveScope = "actor"
)

func sensitiveRateScope(r *http.Request) sensitiveScope {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	switch r.Method {
	case http.MethodPost:
		switch {
		case path == "/auth/signin", path == "/auth/signup":
			return sensitiveScopeAuth
		case path == "/employees", isLeaveDecision(path):
			return sensitiveScopeActor
		}
	case http.MethodPut:
		if isLeaveDecision(path) {
			return sensitiveScopeActor
		}
	case http.MethodDelete:
		if strings.HasPrefix(path, "/employees/") {
			return sensitiveScopeActor
		}
	}
	return sensitiveScopeNone
}

func isLeaveDecision(path string) bool {
	rest, ok := strings.CutPrefix(path, "/leaves/")
	if !ok {
		return false
	}
	return strings.HasSuffix(rest, "/approve") || strings.HasSuffix(rest, "/reject")
}
