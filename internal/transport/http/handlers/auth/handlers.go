package authhandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/errs"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Auth      *auth.Service
	Employees *employee.Service
}

func NewHandler(authSvc *auth.Service, employees *employee.Service) *Handler {
	return &Handler{Auth: authSvc, Employees: employees}
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.handleSignup)
		r.Post("/signin", h.handleSignin)
		r.Get("/verify", h.handleVerify)
	})
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload employee.SignupInput
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	session, err := h.Employees.Signup(r.Context(), payload)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Created(w, session, reqID)
}

func (h *Handler) handleSignin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload signinRequest
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	session, err := h.Auth.Signin(r.Context(), strings.TrimSpace(payload.Email), payload.Password)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, session, reqID)
}

// handleVerify re-resolves the presented token rather than trusting the
// anonymous pass-through of the auth middleware.
func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		api.FailError(w, errs.ErrUnauthorized, reqID)
		return
	}
	user, err := h.Auth.Verify(parts[1])
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, map[string]any{"valid": true, "user": user}, reqID)
}
