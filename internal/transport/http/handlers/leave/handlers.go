package leavehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/leave"
	"hrms/internal/platform/idempotency"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Replays idempotency.StoreAPI
}

func NewHandler(service *leave.Service, replays idempotency.StoreAPI) *Handler {
	return &Handler{Service: service, Replays: replays}
}

type requestPayload struct {
	EmployeeID string `json:"employeeId"`
	LeaveType  string `json:"leaveType"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leaves", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.Idempotent(h.Replays, "leave.request")).Post("/request", h.handleRequest)
		r.Get("/my", h.handleListMine)
		r.Get("/", h.handleList)
		r.Get("/{requestID}", h.handleGet)
		for _, route := range []struct {
			path  string
			event leave.Event
		}{
			{"/{requestID}/approve", leave.EventApprove},
			{"/{requestID}/reject", leave.EventReject},
			{"/{requestID}/cancel", leave.EventCancel},
		} {
			handler := h.handleTransition(route.event)
			r.Post(route.path, handler)
			r.Put(route.path, handler)
		}
	})
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	var payload requestPayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}

	v := shared.NewValidator()
	v.Required("leaveType", payload.LeaveType, "is required")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	if v.Reject(w, reqID) {
		return
	}

	req, err := h.Service.RequestLeave(r.Context(), user, leave.RequestInput{
		EmployeeID: payload.EmployeeID,
		Category:   leave.Category(payload.LeaveType),
		StartDate:  start,
		EndDate:    end,
		Reason:     payload.Reason,
	})
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Created(w, req, reqID)
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	list, err := h.Service.ListMine(r.Context(), user)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	q := r.URL.Query()
	filter := leave.Filter{EmployeeID: q.Get("employee")}
	v := shared.NewValidator()
	if raw := q.Get("status"); raw != "" {
		status, ok := leave.ParseStatus(raw)
		if !ok {
			v.Add("status", "must be one of Pending, Approved, Rejected, Cancelled")
		}
		filter.Status = string(status)
	}
	if raw := q.Get("leaveType"); raw != "" {
		category, ok := leave.ParseCategory(raw)
		if !ok {
			v.Add("leaveType", "is not a known leave type")
		}
		filter.Category = string(category)
	}
	if v.Reject(w, reqID) {
		return
	}
	list, err := h.Service.List(r.Context(), user, filter)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	req, err := h.Service.Get(r.Context(), user, chi.URLParam(r, "requestID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, req, reqID)
}

func (h *Handler) handleTransition(event leave.Event) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())
		user, _ := middleware.GetUser(r.Context())
		id := chi.URLParam(r, "requestID")

		var (
			req leave.Request
			err error
		)
		if event == leave.EventCancel {
			req, err = h.Service.Cancel(r.Context(), user, id)
		} else {
			req, err = h.Service.Decide(r.Context(), user, id, event)
		}
		if err != nil {
			api.FailError(w, err, reqID)
			return
		}
		api.Success(w, req, reqID)
	}
}
