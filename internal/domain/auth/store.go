package auth

import (
	"context"
	"strings"

	"hrms/internal/platform/db"
	"hrms/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(q querier.Querier) *Store {
	return &Store{DB: q}
}

func (s *Store) CreateUser(ctx context.Context, user User) error {
	var employeeID any
	if user.EmployeeID != "" {
		employeeID = user.EmployeeID
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO users (id, email, password_hash, role, employee_id, created_at)
    VALUES ($1,$2,$3,$4,$5,$6)
  `, user.ID, strings.ToLower(user.Email), user.PasswordHash, string(user.Role), employeeID, user.CreatedAt)
	return db.Classify(err)
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (User, error) {
	var out User
	var role string
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role, COALESCE(employee_id::text, ''), created_at
    FROM users
    WHERE email = $1
  `, strings.ToLower(strings.TrimSpace(email))).Scan(&out.ID, &out.Email, &out.PasswordHash, &role, &out.EmployeeID, &out.CreatedAt)
	if err != nil {
		return User{}, db.Classify(err)
	}
	out.Role = Role(role)
	return out, nil
}

func (s *Store) DeleteUsersByEmployee(ctx context.Context, employeeID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM users WHERE employee_id = $1", employeeID)
	return db.Classify(err)
}
