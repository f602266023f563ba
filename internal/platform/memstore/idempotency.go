package memstore

import (
	"context"
	"slices"

	"hrms/internal/domain/errs"
	"hrms/internal/platform/idempotency"
)

func replayKey(userID, endpoint, key string) string {
	return userID + "\x00" + endpoint + "\x00" + key
}

func (s *Store) FindKey(_ context.Context, userID, endpoint, key string) (idempotency.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.replays[replayKey(userID, endpoint, key)]
	if !ok {
		return idempotency.Record{}, errs.ErrNotFound
	}
	rec.Response = slices.Clone(rec.Response)
	return rec, nil
}

func (s *Store) SaveKey(_ context.Context, rec idempotency.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := replayKey(rec.UserID, rec.Endpoint, rec.Key)
	if existing, ok := s.replays[k]; ok && existing.RequestHash != rec.RequestHash {
		return idempotency.ErrConflict
	}
	rec.Response = slices.Clone(rec.Response)
	s.replays[k] = rec
	return nil
}
