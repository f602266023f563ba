package attendancehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/attendance"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
}

func NewHandler(service *attendance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/clock-in", h.handleClockIn)
		r.Post("/clock-out", h.handleClockOut)
		r.Get("/my", h.handleHistory)
		r.Get("/", h.handleList)
	})
}

func (h *Handler) handleClockIn(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	rec, err := h.Service.ClockIn(r.Context(), user)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, rec, reqID)
}

func (h *Handler) handleClockOut(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	rec, err := h.Service.ClockOut(r.Context(), user)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, rec, reqID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	v := shared.NewValidator()
	from, to := shared.QueryDates(r, v)
	if v.Reject(w, reqID) {
		return
	}
	list, err := h.Service.History(r.Context(), user, attendance.Range{From: from, To: to})
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	v := shared.NewValidator()
	from, to := shared.QueryDates(r, v)
	if v.Reject(w, reqID) {
		return
	}
	list, err := h.Service.List(r.Context(), user, attendance.Filter{
		EmployeeID: r.URL.Query().Get("employee"),
		Range:      attendance.Range{From: from, To: to},
	})
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, list, reqID)
}
