package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/errs"
)

func TestResolveTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u1", Email: "a@example.com", Role: RoleHR, EmployeeID: "e1"}, time.Hour)
	require.NoError(t, err)

	user, err := ResolveToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, UserContext{UserID: "u1", Email: "a@example.com", Role: RoleHR, EmployeeID: "e1"}, user)
}

func TestResolveTokenRejects(t *testing.T) {
	expired, _ := GenerateToken("secret", Claims{UserID: "u1", Role: RoleStaff}, -time.Minute)
	wrongSecret, _ := GenerateToken("other", Claims{UserID: "u1", Role: RoleStaff}, time.Hour)
	badRole, _ := GenerateToken("secret", Claims{UserID: "u1", Role: Role("Root")}, time.Hour)
	noneAlg, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1", Role: RoleAdmin}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	foreign, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           "u1",
		Role:             RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "elsewhere", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))
	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           "u1",
		Role:             RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer},
	}).SignedString([]byte("secret"))

	for name, token := range map[string]string{
		"expired":      expired,
		"wrong secret": wrongSecret,
		"bad role":     badRole,
		"alg none":     noneAlg,
		"other issuer": foreign,
		"no expiry":    noExpiry,
		"garbage":      "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ResolveToken("secret", token)
			assert.ErrorIs(t, err, errs.ErrUnauthorized)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(hash, "correct-horse"))
	assert.Error(t, CheckPassword(hash, "wrong"))
}
