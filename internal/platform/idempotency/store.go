package idempotency

import (
	"context"

	"hrms/internal/platform/db"
	"hrms/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(q querier.Querier) *Store {
	return &Store{DB: q}
}

func (s *Store) FindKey(ctx context.Context, userID, endpoint, key string) (Record, error) {
	rec := Record{UserID: userID, Endpoint: endpoint, Key: key}
	err := s.DB.QueryRow(ctx, `
    SELECT request_hash, status, response
    FROM idempotency_keys
    WHERE user_id = $1 AND endpoint = $2 AND key = $3
  `, userID, endpoint, key).Scan(&rec.RequestHash, &rec.Status, &rec.Response)
	if err != nil {
		return Record{}, db.Classify(err)
	}
	return rec, nil
}

func (s *Store) SaveKey(ctx context.Context, rec Record) error {
	tag, err := s.DB.Exec(ctx, `
    INSERT INTO idempotency_keys (user_id, endpoint, key, request_hash, status, response)
    VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (user_id, endpoint, key)
    DO UPDATE SET status = EXCLUDED.status, response = EXCLUDED.response
    WHERE idempotency_keys.request_hash = EXCLUDED.request_hash
  `, rec.UserID, rec.Endpoint, rec.Key, rec.RequestHash, rec.Status, rec.Response)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}
