package shifthandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/shift"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *shift.Service
}

func NewHandler(service *shift.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/shifts", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{shiftID}", h.handleGet)
		r.Put("/{shiftID}", h.handleUpdate)
		r.Delete("/{shiftID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	list, err := h.Service.List(r.Context(), user, r.URL.Query().Get("employee"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	var payload shift.Input
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	sh, err := h.Service.Create(r.Context(), user, payload)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Created(w, sh, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	sh, err := h.Service.Get(r.Context(), user, chi.URLParam(r, "shiftID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, sh, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	var payload shift.Input
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	sh, err := h.Service.Update(r.Context(), user, chi.URLParam(r, "shiftID"), payload)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, sh, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if err := h.Service.Delete(r.Context(), user, chi.URLParam(r, "shiftID")); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Message(w, "shift deleted", reqID)
}
