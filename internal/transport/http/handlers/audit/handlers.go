package audithandler

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

const exportLimit = 10000

type Handler struct {
	Service *audit.Service
	Audit   audit.Recorder
}

func NewHandler(service *audit.Service, recorder audit.Recorder) *Handler {
	return &Handler{Service: service, Audit: recorder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/logs", func(r chi.Router) {
		r.Use(middleware.RequireCapability(auth.CapManage))
		r.Get("/", h.handleList)
		r.Get("/export", h.handleExport)
	})
}

// filterFrom reads the listing filter; the to date is inclusive.
func filterFrom(w http.ResponseWriter, r *http.Request, reqID string) (audit.Filter, bool) {
	q := r.URL.Query()
	v := shared.NewValidator()
	from, to := shared.QueryDates(r, v)
	if v.Reject(w, reqID) {
		return audit.Filter{}, false
	}
	filter := audit.Filter{
		Action:   q.Get("action"),
		Category: q.Get("category"),
		Severity: q.Get("severity"),
		Actor:    q.Get("user"),
		Since:    from,
	}
	if !to.IsZero() {
		filter.Until = to.AddDate(0, 0, 1)
	}
	return filter, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	filter, ok := filterFrom(w, r, reqID)
	if !ok {
		return
	}
	page := shared.ParsePagination(r, 100, 500)
	result, err := h.Service.List(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(result.Total))
	api.Success(w, result, reqID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	filter, ok := filterFrom(w, r, reqID)
	if !ok {
		return
	}
	result, err := h.Service.List(r.Context(), filter, exportLimit, 0)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Audit.Record(r.Context(), audit.Entry{
		Action:  audit.ActionDataExported,
		Actor:   user.Email,
		UserID:  user.UserID,
		Target:  "Activity Logs",
		Details: audit.Detail(map[string]any{"format": "csv", "rows": len(result.Entries)}),
	})

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=activity-logs.csv")
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "timestamp", "action", "category", "severity", "user", "target", "ip", "request_id"}); err != nil {
		slog.Warn("audit export header failed", "err", err)
	}
	for _, e := range result.Entries {
		row := []string{e.ID, e.Timestamp.UTC().Format(time.RFC3339), string(e.Action), string(e.Category), string(e.Severity), e.Actor, e.Target, e.IPAddress, e.RequestID}
		if err := writer.Write(row); err != nil {
			slog.Warn("audit export row failed", "err", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Warn("audit export flush failed", "err", err)
	}
}
