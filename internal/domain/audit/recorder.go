package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"hrms/internal/requestctx"
)

const JobAuditWrite = "audit_write"

// Recorder accepts audit entries. Record never reports failure to the caller:
// the business operation that triggered the entry is independent of it.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// Dispatcher runs work off the request path. Enqueue reports false when the
// work was not accepted.
type Dispatcher interface {
	Enqueue(jobType string, run func(context.Context) error) bool
}

type AsyncRecorder struct {
	store    StoreAPI
	dispatch Dispatcher
	now      func() time.Time
}

func NewRecorder(store StoreAPI, dispatch Dispatcher) *AsyncRecorder {
	return &AsyncRecorder{store: store, dispatch: dispatch, now: time.Now}
}

func (r *AsyncRecorder) Record(ctx context.Context, entry Entry) {
	entry = r.prepare(ctx, entry)
	write := func(jobCtx context.Context) error {
		if err := r.store.InsertEntry(jobCtx, entry); err != nil {
			slog.Warn("audit write failed", "action", entry.Action, "err", err)
			return err
		}
		return nil
	}
	if r.dispatch == nil {
		_ = write(context.WithoutCancel(ctx))
		return
	}
	if !r.dispatch.Enqueue(JobAuditWrite, write) {
		slog.Warn("audit entry dropped", "action", entry.Action, "actor", entry.Actor)
	}
}

func (r *AsyncRecorder) prepare(ctx context.Context, entry Entry) Entry {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = r.now()
	}
	entry.Category = CategoryOf(entry.Action)
	entry.Severity = SeverityOf(entry.Action)
	if entry.RequestID == "" {
		entry.RequestID = requestctx.GetRequestID(ctx)
	}
	client := requestctx.GetClient(ctx)
	if entry.IPAddress == "" {
		entry.IPAddress = client.IP
	}
	if entry.UserAgent == "" {
		entry.UserAgent = client.UserAgent
	}
	return entry
}

// Discard drops every entry.
type Discard struct{}

func (Discard) Record(context.Context, Entry) {}
