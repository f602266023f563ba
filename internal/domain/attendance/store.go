package attendance

import (
	"context"
	"errors"
	"fmt"
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

const recordColumns = `a.id, a.employee_id, COALESCE(e.first_name || ' ' || e.last_name, ''), a.work_date,
           a.clock_in, a.clock_out, a.total_minutes, a.source, a.notes, a.created_at, a.updated_at`

const recordFrom = ` FROM attendance_records a LEFT JOIN employees e ON e.id = a.employee_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var source string
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.Date, &rec.ClockIn, &rec.ClockOut,
		&rec.TotalMinutes, &source, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt)
	rec.Source = Source(source)
	return rec, err
}

func (s *Store) FindDay(ctx context.Context, employeeID string, day time.Time) (Record, error) {
	if !db.ValidID(employeeID) {
		return Record{}, errs.ErrNotFound
	}
	rec, err := scanRecord(s.DB.QueryRow(ctx, `SELECT `+recordColumns+recordFrom+` WHERE a.employee_id = $1 AND a.work_date = $2`,
		employeeID, day.Format(time.DateOnly)))
	if err != nil {
		return Record{}, db.Classify(err)
	}
	return rec, nil
}

func (s *Store) CreateRecord(ctx context.Context, rec Record) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO attendance_records (id, employee_id, work_date, clock_in, clock_out, total_minutes, source, notes, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
  `, rec.ID, rec.EmployeeID, rec.Date.Format(time.DateOnly), rec.ClockIn, rec.ClockOut, rec.TotalMinutes, string(rec.Source), rec.Notes, rec.CreatedAt, rec.UpdatedAt)
	return db.Classify(err)
}

func (s *Store) SetClockIn(ctx context.Context, id string, at time.Time) (Record, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE attendance_records SET clock_in = $2, updated_at = $2
    WHERE id = $1 AND clock_in IS NULL
  `, id, at)
	if err != nil {
		return Record{}, db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return Record{}, s.missOr(ctx, id, errs.ErrAlreadyClockedIn)
	}
	return s.get(ctx, id)
}

func (s *Store) SetClockOut(ctx context.Context, id string, at time.Time, totalMinutes int) (Record, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE attendance_records SET clock_out = $2, total_minutes = $3, updated_at = $2
    WHERE id = $1 AND clock_out IS NULL
  `, id, at, totalMinutes)
	if err != nil {
		return Record{}, db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return Record{}, s.missOr(ctx, id, errs.ErrAlreadyClockedOut)
	}
	return s.get(ctx, id)
}

func (s *Store) ListRecords(ctx context.Context, filter Filter) ([]Record, error) {
	if filter.EmployeeID != "" && !db.ValidID(filter.EmployeeID) {
		return nil, nil
	}
	query := `SELECT ` + recordColumns + recordFrom + ` WHERE 1=1`
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND a.employee_id = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From.Format(time.DateOnly))
		query += fmt.Sprintf(" AND a.work_date >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To.Format(time.DateOnly))
		query += fmt.Sprintf(" AND a.work_date <= $%d", len(args))
	}
	query += " ORDER BY a.work_date DESC, a.created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) get(ctx context.Context, id string) (Record, error) {
	if !db.ValidID(id) {
		return Record{}, errs.ErrNotFound
	}
	rec, err := scanRecord(s.DB.QueryRow(ctx, `SELECT `+recordColumns+recordFrom+` WHERE a.id = $1`, id))
	if err != nil {
		return Record{}, db.Classify(err)
	}
	return rec, nil
}

// missOr distinguishes a vanished record from a failed precondition.
func (s *Store) missOr(ctx context.Context, id string, precondition error) error {
	_, err := s.get(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return err
	}
	return precondition
}
