package audit

import (
	"context"
	"fmt"

	"hrms/internal/platform/db"
	"hrms/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(q querier.Querier) *Store {
	return &Store{DB: q}
}

func (s *Store) InsertEntry(ctx context.Context, entry Entry) error {
	var details any
	if len(entry.Details) > 0 {
		details = []byte(entry.Details)
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_logs (id, action, actor, user_id, target, details, ip_address, user_agent, category, severity, request_id, logged_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
  `, entry.ID, string(entry.Action), entry.Actor, entry.UserID, entry.Target, details, entry.IPAddress, entry.UserAgent,
		string(entry.Category), string(entry.Severity), entry.RequestID, entry.Timestamp)
	return db.Classify(err)
}

func (s *Store) CountEntries(ctx context.Context, filter Filter) (int, error) {
	query, args := buildBaseQuery("SELECT COUNT(1)", filter)
	var total int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, db.Classify(err)
	}
	return total, nil
}

func (s *Store) ListEntries(ctx context.Context, filter Filter, limit, offset int) ([]Entry, error) {
	query, args := buildBaseQuery(`SELECT id, action, actor, user_id, target, details, ip_address, user_agent, category, severity, request_id, logged_at`, filter)
	query += fmt.Sprintf(" ORDER BY logged_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var action, category, severity string
		var details []byte
		if err := rows.Scan(&e.ID, &action, &e.Actor, &e.UserID, &e.Target, &details, &e.IPAddress, &e.UserAgent, &category, &severity, &e.RequestID, &e.Timestamp); err != nil {
			return nil, err
		}
		e.Action = Action(action)
		e.Category = Category(category)
		e.Severity = Severity(severity)
		e.Details = details
		out = append(out, e)
	}
	return out, rows.Err()
}

func buildBaseQuery(prefix string, filter Filter) (string, []any) {
	query := prefix + " FROM audit_logs WHERE 1=1"
	var args []any
	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Severity != "" {
		args = append(args, filter.Severity)
		query += fmt.Sprintf(" AND severity = $%d", len(args))
	}
	if filter.Actor != "" {
		args = append(args, filter.Actor)
		query += fmt.Sprintf(" AND actor = $%d", len(args))
	}
	if !filter.Since.IsZero() {
		args = append(args, filter.Since)
		query += fmt.Sprintf(" AND logged_at >= $%d", len(args))
	}
	if !filter.Until.IsZero() {
		args = append(args, filter.Until)
		query += fmt.Sprintf(" AND logged_at < $%d", len(args))
	}
	return query, args
}
