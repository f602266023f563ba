package employeehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/employee"
	"hrms/internal/platform/idempotency"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
	Replays idempotency.StoreAPI
}

func NewHandler(service *employee.Service, replays idempotency.StoreAPI) *Handler {
	return &Handler{Service: service, Replays: replays}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.With(middleware.Idempotent(h.Replays, "employee.create")).Post("/", h.handleCreate)
		r.Put("/profile", h.handleUpdateProfile)
		r.Put("/profile/update", h.handleUpdateProfile)
		r.Get("/{employeeID}", h.handleGet)
		r.Put("/{employeeID}", h.handleUpdate)
		r.Delete("/{employeeID}", h.handleDelete)
		r.Get("/{employeeID}/leave-balance", h.handleLeaveBalance)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	q := r.URL.Query()
	list, err := h.Service.List(r.Context(), user, employee.Filter{
		Department: q.Get("department"),
		Status:     q.Get("status"),
		Search:     q.Get("search"),
	})
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	var payload employee.CreateInput
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	emp, err := h.Service.Create(r.Context(), user, payload)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Created(w, emp, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	emp, err := h.Service.Get(r.Context(), user, chi.URLParam(r, "employeeID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	var payload employee.UpdateInput
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	emp, err := h.Service.Update(r.Context(), user, chi.URLParam(r, "employeeID"), payload)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if err := h.Service.Delete(r.Context(), user, chi.URLParam(r, "employeeID")); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Message(w, "employee deleted", reqID)
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	var payload employee.ProfileInput
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	emp, err := h.Service.UpdateProfile(r.Context(), user, payload)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleLeaveBalance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	view, err := h.Service.LeaveBalance(r.Context(), user, chi.URLParam(r, "employeeID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, view, reqID)
}
