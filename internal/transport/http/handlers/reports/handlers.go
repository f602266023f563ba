package reportshandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/reports"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

// tabular is any report that can be exported as a document.
type tabular interface {
	Table() reports.Table
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireCapability(auth.CapManage))
		r.Get("/headcount", h.handleHeadcount)
		r.Get("/leaves", h.handleLeaves)
		r.Get("/attendance", h.handleAttendance)
	})
}

func (h *Handler) handleHeadcount(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	format, ok := parseFormat(w, r, reqID)
	if !ok {
		return
	}
	user, _ := middleware.GetUser(r.Context())
	q := r.URL.Query()
	report, err := h.Service.Headcount(r.Context(), user, employee.Filter{Department: q.Get("department"), Status: q.Get("status")})
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.respond(w, r, user, "headcount", format, report)
}

func (h *Handler) handleLeaves(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	format, rng, ok := parseQuery(w, r, reqID)
	if !ok {
		return
	}
	user, _ := middleware.GetUser(r.Context())
	report, err := h.Service.LeaveSummary(r.Context(), user, rng)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.respond(w, r, user, "leaves", format, report)
}

func (h *Handler) handleAttendance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	format, rng, ok := parseQuery(w, r, reqID)
	if !ok {
		return
	}
	user, _ := middleware.GetUser(r.Context())
	report, err := h.Service.AttendanceSummary(r.Context(), user, rng)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.respond(w, r, user, "attendance", format, report)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, user auth.UserContext, name string, format reports.Format, report tabular) {
	reqID := middleware.GetRequestID(r.Context())
	if format == reports.FormatJSON {
		api.Success(w, report, reqID)
		return
	}
	doc, err := h.Service.Export(r.Context(), user, name, report.Table(), format)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+doc.FileName)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}

func parseFormat(w http.ResponseWriter, r *http.Request, reqID string) (reports.Format, bool) {
	format, ok := reports.ParseFormat(r.URL.Query().Get("format"))
	if !ok {
		v := shared.NewValidator()
		v.Add("format", "must be one of json, pdf, xlsx")
		v.Reject(w, reqID)
	}
	return format, ok
}

func parseQuery(w http.ResponseWriter, r *http.Request, reqID string) (reports.Format, reports.Range, bool) {
	format, ok := parseFormat(w, r, reqID)
	if !ok {
		return "", reports.Range{}, false
	}
	v := shared.NewValidator()
	from, to := shared.QueryDates(r, v)
	if v.Reject(w, reqID) {
		return "", reports.Range{}, false
	}
	return format, reports.Range{From: from, To: to}, true
}
