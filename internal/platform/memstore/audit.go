package memstore

import (
	"context"
	"slices"

	"hrms/internal/domain/audit"
)

func (s *Store) InsertEntry(_ context.Context, entry audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *Store) CountEntries(_ context.Context, filter audit.Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.matchEntries(filter)), nil
}

func (s *Store) ListEntries(_ context.Context, filter audit.Filter, limit, offset int) ([]audit.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := s.matchEntries(filter)
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

// matchEntries returns the filtered entries newest first.
func (s *Store) matchEntries(filter audit.Filter) []audit.Entry {
	var out []audit.Entry
	for _, e := range slices.Backward(s.entries) {
		if filter.Action != "" && string(e.Action) != filter.Action {
			continue
		}
		if filter.Category != "" && string(e.Category) != filter.Category {
			continue
		}
		if filter.Severity != "" && string(e.Severity) != filter.Severity {
			continue
		}
		if filter.Actor != "" && e.Actor != filter.Actor {
			continue
		}
		if !filter.Since.IsZero() && e.Timestamp.Before(filter.Since) {
			continue
		}
		if !filter.Until.IsZero() && !e.Timestamp.Before(filter.Until) {
			continue
		}
		out = append(out, e)
	}
	return out
}
