// Package idempotency remembers the response to a keyed mutation so a client
// retry replays it instead of creating a second record.
package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrConflict means the key was already used with a different payload.
var ErrConflict = errors.New("idempotency key conflicts with an earlier request")

// Record is a completed keyed request. Keys are scoped per user and endpoint.
type Record struct {
	UserID      string
	Endpoint    string
	Key         string
	RequestHash string
	Status      int
	Response    []byte
}

type StoreAPI interface {
	// FindKey returns errs.ErrNotFound when the key has not been used.
	FindKey(ctx context.Context, userID, endpoint, key string) (Record, error)
	// SaveKey returns ErrConflict when the key is held by a different hash.
	SaveKey(ctx context.Context, rec Record) error
}

func RequestHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
