package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hrms/internal/domain/errs"
	"hrms/internal/platform/db"
	"hrms/internal/platform/querier"
)

type Store struct {
	DB querier.Beginner
}

func NewStore(q querier.Beginner) *Store {
	return &Store{DB: q}
}

const requestColumns = `lr.id, lr.employee_id, COALESCE(e.first_name || ' ' || e.last_name, ''), lr.category,
           lr.start_date, lr.end_date, lr.days, lr.reason, lr.status, COALESCE(lr.decided_by, ''), lr.decided_at,
           lr.created_at, lr.updated_at`

const requestFrom = ` FROM leave_requests lr LEFT JOIN employees e ON e.id = lr.employee_id`

// balanceColumns maps tracked categories to their employees column.
var balanceColumns = map[Category]string{
	CategoryAnnual:    "leave_annual",
	CategorySick:      "leave_sick",
	CategoryPersonal:  "leave_personal",
	CategoryMaternity: "leave_maternity",
	CategoryPaternity: "leave_paternity",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (Request, error) {
	var req Request
	var category, status string
	err := row.Scan(&req.ID, &req.EmployeeID, &req.EmployeeName, &category, &req.StartDate, &req.EndDate, &req.Days,
		&req.Reason, &status, &req.DecidedBy, &req.DecidedAt, &req.CreatedAt, &req.UpdatedAt)
	req.Category = Category(category)
	req.Status = Status(status)
	return req, err
}

func (s *Store) CreateRequest(ctx context.Context, req Request) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO leave_requests (id, employee_id, category, start_date, end_date, days, reason, status, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
  `, req.ID, req.EmployeeID, string(req.Category), req.StartDate, req.EndDate, req.Days, req.Reason, string(req.Status), req.CreatedAt, req.UpdatedAt)
	return db.Classify(err)
}

func (s *Store) GetRequest(ctx context.Context, id string) (Request, error) {
	return getRequest(ctx, s.DB, id)
}

func getRequest(ctx context.Context, q querier.Querier, id string) (Request, error) {
	if !db.ValidID(id) {
		return Request{}, errs.ErrNotFound
	}
	req, err := scanRequest(q.QueryRow(ctx, `SELECT `+requestColumns+requestFrom+` WHERE lr.id = $1`, id))
	if err != nil {
		return Request{}, db.Classify(err)
	}
	return req, nil
}

func (s *Store) ListRequests(ctx context.Context, filter Filter) ([]Request, error) {
	if filter.EmployeeID != "" && !db.ValidID(filter.EmployeeID) {
		return nil, nil
	}
	query := `SELECT ` + requestColumns + requestFrom + ` WHERE 1=1`
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND lr.status = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND lr.category = $%d", len(args))
	}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND lr.employee_id = $%d", len(args))
	}
	query += " ORDER BY lr.created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (s *Store) ApplyChange(ctx context.Context, c Change) (Request, error) {
	if !db.ValidID(c.RequestID) {
		return Request{}, errs.ErrNotFound
	}
	var out Request
	err := pgx.BeginTxFunc(ctx, s.DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
      UPDATE leave_requests
      SET status = $2, decided_by = $3, decided_at = $4, updated_at = $4
      WHERE id = $1 AND status = $5
    `, c.RequestID, string(c.To), c.DecidedBy, c.At, string(c.From))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("request %s is no longer %s: %w", c.RequestID, c.From, errs.ErrInvalidState)
		}
		if c.Debit > 0 {
			if err := debit(ctx, tx, c); err != nil {
				return err
			}
		}
		out, err = getRequest(ctx, tx, c.RequestID)
		return err
	})
	if err != nil {
		return Request{}, db.Classify(err)
	}
	return out, nil
}

func debit(ctx context.Context, tx pgx.Tx, c Change) error {
	column, ok := balanceColumns[c.Category]
	if !ok {
		return fmt.Errorf("category %s has no balance", c.Category)
	}
	tag, err := tx.Exec(ctx, `
    UPDATE employees
    SET `+column+` = `+column+` - $2, updated_at = $3
    WHERE id = $1 AND `+column+` >= $2
  `, c.EmployeeID, c.Debit, c.At)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	var available int
	err = tx.QueryRow(ctx, `SELECT `+column+` FROM employees WHERE id = $1`, c.EmployeeID).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("employee %s: %w", c.EmployeeID, errs.ErrNotFound)
	}
	if err != nil {
		return err
	}
	return &errs.InsufficientBalanceError{Category: string(c.Category), Available: available, Requested: c.Debit}
}
