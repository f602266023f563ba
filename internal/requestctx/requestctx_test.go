package requestctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Equal(t, Client{}, GetClient(ctx))

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithClient(ctx, Client{IP: "203.0.113.5", UserAgent: "curl/8"})
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "203.0.113.5", GetClient(ctx).IP)
	assert.Equal(t, "curl/8", GetClient(ctx).UserAgent)
}
