package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/idempotency"
	"hrms/internal/platform/memstore"
)

func keyedRequest(user, key, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/leaves/request", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	ctx := context.WithValue(context.Background(), ctxKeyUser, auth.UserContext{UserID: user, Role: auth.RoleStaff})
	return req.WithContext(ctx)
}

func countingCreate(calls *atomic.Int32, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"success":true,"data":{"n":` + strconv.Itoa(int(n)) + `}}`))
	})
}

func TestIdempotentReplaysStoredResponse(t *testing.T) {
	var calls atomic.Int32
	h := Idempotent(memstore.New(), "leave.request")(countingCreate(&calls, http.StatusCreated))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, keyedRequest("u1", "k-1", `{"leaveType":"Annual"}`))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, keyedRequest("u1", "k-1", `{"leaveType":"Annual"}`))

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
}

func TestIdempotentKeyScope(t *testing.T) {
	var calls atomic.Int32
	h := Idempotent(memstore.New(), "leave.request")(countingCreate(&calls, http.StatusCreated))

	h.ServeHTTP(httptest.NewRecorder(), keyedRequest("u1", "k-1", `{}`))
	h.ServeHTTP(httptest.NewRecorder(), keyedRequest("u2", "k-1", `{}`))
	h.ServeHTTP(httptest.NewRecorder(), keyedRequest("u1", "", `{}`))
	h.ServeHTTP(httptest.NewRecorder(), keyedRequest("u1", "", `{}`))
	assert.Equal(t, int32(4), calls.Load())
}

func TestIdempotentRejectsReusedKeyWithOtherPayload(t *testing.T) {
	var calls atomic.Int32
	h := Idempotent(memstore.New(), "leave.request")(countingCreate(&calls, http.StatusCreated))

	h.ServeHTTP(httptest.NewRecorder(), keyedRequest("u1", "k-1", `{"days":1}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, keyedRequest("u1", "k-1", `{"days":2}`))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "idempotency_conflict")
	assert.Equal(t, int32(1), calls.Load())
}

func TestIdempotentDoesNotStoreFailures(t *testing.T) {
	var calls atomic.Int32
	store := memstore.New()
	h := Idempotent(store, "leave.request")(countingCreate(&calls, http.StatusBadRequest))

	h.ServeHTTP(httptest.NewRecorder(), keyedRequest("u1", "k-1", `{}`))
	h.ServeHTTP(httptest.NewRecorder(), keyedRequest("u1", "k-1", `{}`))
	assert.Equal(t, int32(2), calls.Load())

	_, err := store.FindKey(context.Background(), "u1", "leave.request", "k-1")
	assert.Error(t, err)
}

func TestRequestHash(t *testing.T) {
	assert.Equal(t, idempotency.RequestHash([]byte("payload")), idempotency.RequestHash([]byte("payload")))
	assert.NotEqual(t, idempotency.RequestHash([]byte("payload")), idempotency.RequestHash([]byte("other")))
}
