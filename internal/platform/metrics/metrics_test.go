package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(500, 30*time.Millisecond)
	c.Record(429, 0)
	c.RecordJob("audit_write", nil)
	c.RecordJob("audit_write", errors.New("down"))
	c.Count("leave.approved")
	c.Count("leave.approved")

	snap := c.Snapshot()
	assert.Equal(t, uint64(3), snap["requestsTotal"])
	assert.Equal(t, uint64(1), snap["errorsTotal"])
	assert.Equal(t, uint64(1), snap["rateLimitedTotal"])
	assert.Equal(t, uint64(1), snap["clientErrorsTotal"])
	assert.InDelta(t, 13.33, snap["avgDurationMs"], 0.01)
	assert.Equal(t, uint64(2), snap["jobsTotal"])
	assert.Equal(t, uint64(1), snap["jobsFailedTotal"])
	assert.Equal(t, map[string]uint64{"leave.approved": 2}, snap["events"])
}
