package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/audit"
	"hrms/internal/platform/memstore"
	"hrms/internal/requestctx"
)

type captureDispatcher struct {
	mu     sync.Mutex
	jobs   []func(context.Context) error
	reject bool
}

func (d *captureDispatcher) Enqueue(_ string, run func(context.Context) error) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.reject {
		return false
	}
	d.jobs = append(d.jobs, run)
	return true
}

func (d *captureDispatcher) runAll(ctx context.Context) []error {
	var out []error
	for _, job := range d.jobs {
		out = append(out, job(ctx))
	}
	return out
}

type failingStore struct{ audit.StoreAPI }

func (failingStore) InsertEntry(context.Context, audit.Entry) error {
	return errors.New("insert failed")
}

func TestRecordEnrichesEntryFromRequest(t *testing.T) {
	store := memstore.New()
	dispatch := &captureDispatcher{}
	recorder := audit.NewRecorder(store, dispatch)

	ctx := requestctx.WithRequestID(context.Background(), "req-42")
	ctx = requestctx.WithClient(ctx, requestctx.Client{IP: "203.0.113.9", UserAgent: "test-agent"})
	recorder.Record(ctx, audit.Entry{Action: audit.ActionEmployeeDeleted, Actor: "admin@example.com"})

	entries, err := store.ListEntries(ctx, audit.Filter{}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries, "entry must not be written before the job runs")

	for _, err := range dispatch.runAll(context.Background()) {
		require.NoError(t, err)
	}
	entries, err = store.ListEntries(ctx, audit.Filter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	got := entries[0]
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "req-42", got.RequestID)
	assert.Equal(t, "203.0.113.9", got.IPAddress)
	assert.Equal(t, "test-agent", got.UserAgent)
	assert.Equal(t, audit.CategoryEmployee, got.Category)
	assert.Equal(t, audit.SeverityCritical, got.Severity)
	assert.WithinDuration(t, time.Now(), got.Timestamp, time.Minute)
}

func TestRecordSwallowsFailures(t *testing.T) {
	dispatch := &captureDispatcher{}
	recorder := audit.NewRecorder(failingStore{}, dispatch)
	recorder.Record(context.Background(), audit.Entry{Action: audit.ActionLogin})
	errs := dispatch.runAll(context.Background())
	require.Len(t, errs, 1)
	assert.Error(t, errs[0])

	full := &captureDispatcher{reject: true}
	audit.NewRecorder(failingStore{}, full).Record(context.Background(), audit.Entry{Action: audit.ActionLogin})
	assert.Empty(t, full.jobs)

	audit.NewRecorder(failingStore{}, nil).Record(context.Background(), audit.Entry{Action: audit.ActionLogin})
}

func TestServiceListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	recorder := audit.NewRecorder(store, nil)
	for _, action := range []audit.Action{audit.ActionLogin, audit.ActionLeaveRequested, audit.ActionLeaveApproved, audit.ActionReportGenerated} {
		recorder.Record(ctx, audit.Entry{Action: action, Actor: "hr@example.com"})
	}

	svc := audit.New(store)
	page, err := svc.List(ctx, audit.Filter{Category: string(audit.CategoryLeave)}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, audit.ActionLeaveApproved, page.Entries[0].Action)

	page, err = svc.List(ctx, audit.Filter{}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, audit.ActionLeaveApproved, page.Entries[0].Action)

	page, err = svc.List(ctx, audit.Filter{Actor: "nobody"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.NotNil(t, page.Entries)
}
