package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/audit"
)

func TestListEntriesFiltersNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, action := range []audit.Action{audit.ActionLogin, audit.ActionLeaveRequested, audit.ActionLogin} {
		require.NoError(t, s.InsertEntry(ctx, audit.Entry{
			Action:    action,
			Actor:     "hr@example.com",
			Timestamp: base.AddDate(0, 0, i),
		}))
	}

	logins, err := s.ListEntries(ctx, audit.Filter{Action: string(audit.ActionLogin)}, 10, 0)
	require.NoError(t, err)
	require.Len(t, logins, 2)
	assert.True(t, logins[0].Timestamp.After(logins[1].Timestamp))

	window := audit.Filter{Since: base.AddDate(0, 0, 1), Until: base.AddDate(0, 0, 2)}
	count, err := s.CountEntries(ctx, window)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	page, err := s.ListEntries(ctx, audit.Filter{}, 1, 5)
	require.NoError(t, err)
	assert.Empty(t, page)
}
