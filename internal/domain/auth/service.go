package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/errs"
)

type Service struct {
	Store  StoreAPI
	Audit  audit.Recorder
	secret string
	ttl    time.Duration
}

func NewService(store StoreAPI, recorder audit.Recorder, secret string, ttl time.Duration) *Service {
	return &Service{Store: store, Audit: recorder, secret: secret, ttl: ttl}
}

type Session struct {
	Token string      `json:"token"`
	User  UserContext `json:"user"`
}

// Register creates a login for an employee record. Roles outside the closed
// set fall back to Staff.
func (s *Service) Register(ctx context.Context, email, password string, role Role, employeeID string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return User{}, errs.Invalid("email", "required when setting a password")
	}
	if err := validatePassword(password); err != nil {
		return User{}, err
	}
	if _, ok := ParseRole(string(role)); !ok {
		role = RoleStaff
	}
	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		EmployeeID:   employeeID,
		CreatedAt:    time.Now(),
	}
	if err := s.Store.CreateUser(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// EmailAvailable reports whether no login exists for email yet.
func (s *Service) EmailAvailable(ctx context.Context, email string) (bool, error) {
	_, err := s.Store.FindUserByEmail(ctx, email)
	if errors.Is(err, errs.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func (s *Service) Signin(ctx context.Context, email, password string) (Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Session{}, errs.Invalid("", "email and password are required")
	}
	user, err := s.Store.FindUserByEmail(ctx, email)
	if errors.Is(err, errs.ErrNotFound) {
		return Session{}, errs.ErrUnauthorized
	}
	if err != nil {
		return Session{}, err
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return Session{}, errs.ErrUnauthorized
	}
	session, err := s.IssueSession(user)
	if err != nil {
		return Session{}, err
	}
	s.Audit.Record(ctx, audit.Entry{
		Action: audit.ActionLogin,
		Actor:  user.Email,
		UserID: user.ID,
		Target: "User: " + user.Email,
	})
	return session, nil
}

func (s *Service) IssueSession(user User) (Session, error) {
	userCtx := user.Context()
	token, err := GenerateToken(s.secret, Claims{
		UserID:     userCtx.UserID,
		Email:      userCtx.Email,
		Role:       userCtx.Role,
		EmployeeID: userCtx.EmployeeID,
	}, s.ttl)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: userCtx}, nil
}

func (s *Service) Verify(token string) (UserContext, error) {
	return ResolveToken(s.secret, token)
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return errs.Invalid("password", "must be at least 8 characters")
	}
	return nil
}

// EnsureAdmin provisions the bootstrap administrator when email and password
// are both set and no login exists for email yet.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil
	}
	available, err := s.EmailAvailable(ctx, email)
	if err != nil || !available {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	err = s.Store.CreateUser(ctx, User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         RoleAdmin,
		CreatedAt:    time.Now(),
	})
	if errors.Is(err, errs.ErrDuplicateRecord) {
		return nil
	}
	if err != nil {
		return err
	}
	slog.Info("seeded admin user", "email", email)
	return nil
}
