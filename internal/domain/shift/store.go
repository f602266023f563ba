package shift

import (
	"context"
	"time"

	"hrms/internal/domain/errs"
	"hrms/internal/platform/db"
	"hrms/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(q querier.Querier) *Store {
	return &Store{DB: q}
}

const shiftColumns = `id, employee_id, name, start_time, end_time, days_of_week, effective_from, effective_to, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShift(row rowScanner) (Shift, error) {
	var sh Shift
	var days []int32
	err := row.Scan(&sh.ID, &sh.EmployeeID, &sh.Name, &sh.StartTime, &sh.EndTime, &days, &sh.EffectiveFrom, &sh.EffectiveTo, &sh.CreatedAt, &sh.UpdatedAt)
	sh.DaysOfWeek = make([]int, len(days))
	for i, d := range days {
		sh.DaysOfWeek[i] = int(d)
	}
	return sh, err
}

func dateOnly(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.DateOnly)
}

func (s *Store) CreateShift(ctx context.Context, sh Shift) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO shifts (`+shiftColumns+`)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
  `, sh.ID, sh.EmployeeID, sh.Name, sh.StartTime, sh.EndTime, sh.DaysOfWeek, dateOnly(&sh.EffectiveFrom), dateOnly(sh.EffectiveTo), sh.CreatedAt, sh.UpdatedAt)
	return db.Classify(err)
}

func (s *Store) GetShift(ctx context.Context, id string) (Shift, error) {
	if !db.ValidID(id) {
		return Shift{}, errs.ErrNotFound
	}
	sh, err := scanShift(s.DB.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id))
	if err != nil {
		return Shift{}, db.Classify(err)
	}
	return sh, nil
}

func (s *Store) UpdateShift(ctx context.Context, sh Shift) error {
	if !db.ValidID(sh.ID) {
		return errs.ErrNotFound
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE shifts
    SET name = $2, start_time = $3, end_time = $4, days_of_week = $5, effective_from = $6, effective_to = $7, updated_at = $8
    WHERE id = $1
  `, sh.ID, sh.Name, sh.StartTime, sh.EndTime, sh.DaysOfWeek, dateOnly(&sh.EffectiveFrom), dateOnly(sh.EffectiveTo), sh.UpdatedAt)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteShift(ctx context.Context, id string) error {
	if !db.ValidID(id) {
		return errs.ErrNotFound
	}
	tag, err := s.DB.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *Store) ListShifts(ctx context.Context, employeeID string) ([]Shift, error) {
	if !db.ValidID(employeeID) {
		return nil, nil
	}
	rows, err := s.DB.Query(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE employee_id = $1 ORDER BY created_at DESC`, employeeID)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	var out []Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sh)
	}
	return out, rows.Err()
}
