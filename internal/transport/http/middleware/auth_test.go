package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/auth"
)

// resolved runs Auth over a request with the given bearer token and returns
// the user the wrapped handler saw.
func resolved(t *testing.T, secret, token string) (auth.UserContext, bool) {
	t.Helper()
	var (
		user  auth.UserContext
		found bool
	)
	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, found = GetUser(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return user, found
}

func TestAuthMiddlewareSetsUser(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{UserID: "u1", Email: "hr@example.com", Role: auth.RoleHR, EmployeeID: "e1"}, time.Hour)
	require.NoError(t, err)

	user, ok := resolved(t, secret, token)
	require.True(t, ok)
	assert.Equal(t, "u1", user.UserID)
	assert.Equal(t, auth.RoleHR, user.Role)
	assert.Equal(t, "e1", user.EmployeeID)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	_, ok := resolved(t, "secret", "")
	assert.False(t, ok)
}

func TestAuthMiddlewareIgnoresForeignSignature(t *testing.T) {
	token, err := auth.GenerateToken("other-secret", auth.Claims{UserID: "u1", Role: auth.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	_, ok := resolved(t, "secret", token)
	assert.False(t, ok)
}

func TestRequireCapability(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	cases := []struct {
		name   string
		user   *auth.UserContext
		status int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"staff", &auth.UserContext{UserID: "s1", Role: auth.RoleStaff}, http.StatusForbidden},
		{"hr", &auth.UserContext{UserID: "h1", Role: auth.RoleHR}, http.StatusNoContent},
		{"admin", &auth.UserContext{UserID: "a1", Role: auth.RoleAdmin}, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
			if tc.user != nil {
				req = req.WithContext(WithUser(req.Context(), *tc.user))
			}
			rec := httptest.NewRecorder()
			RequireCapability(auth.CapManage)(ok).ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
