package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/errs"
	"hrms/internal/platform/memstore"
)

func TestSigninAndAudit(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := auth.NewService(store, audit.NewRecorder(store, nil), "secret", time.Hour)

	_, err := svc.Register(ctx, "Ada@Example.com", "long-password", auth.Role("Owner"), "emp-1")
	require.NoError(t, err)

	session, err := svc.Signin(ctx, "ada@example.com", "long-password")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleStaff, session.User.Role)
	assert.Equal(t, "emp-1", session.User.EmployeeID)

	_, err = svc.Signin(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	_, err = svc.Signin(ctx, "nobody@example.com", "long-password")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	_, err = svc.Signin(ctx, "", "")
	assert.ErrorIs(t, err, errs.ErrValidation)

	entries, err := store.ListEntries(ctx, audit.Filter{Action: string(audit.ActionLogin)}, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ada@example.com", entries[0].Actor)
	assert.Equal(t, audit.CategorySystem, entries[0].Category)
}

func TestRegisterRejectsDuplicatesAndWeakPasswords(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := auth.NewService(store, audit.Discard{}, "secret", time.Hour)

	_, err := svc.Register(ctx, "a@example.com", "short", auth.RoleStaff, "")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.Register(ctx, "a@example.com", "long-password", auth.RoleHR, "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "A@example.com", "long-password", auth.RoleHR, "")
	assert.ErrorIs(t, err, errs.ErrDuplicateRecord)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := auth.NewService(store, audit.Discard{}, "secret", time.Hour)

	require.NoError(t, svc.EnsureAdmin(ctx, "", ""))
	require.NoError(t, svc.EnsureAdmin(ctx, "root@example.com", "bootstrap-pass"))
	require.NoError(t, svc.EnsureAdmin(ctx, "root@example.com", "different-pass"))

	session, err := svc.Signin(ctx, "root@example.com", "bootstrap-pass")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, session.User.Role)
}
