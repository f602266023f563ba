package middleware

import (
	"net/http"

	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/api"
)

// RequireAuth rejects anonymous callers with 401.
func RequireAuth(next http.Handler) http.Handler {
	return RequireCapability(auth.CapAuthenticated)(next)
}

// RequireCapability admits only callers whose role is in c.
func RequireCapability(c auth.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := GetUser(r.Context())
			if err := auth.RequireAnyOf(user, c); err != nil {
				api.FailError(w, err, GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
