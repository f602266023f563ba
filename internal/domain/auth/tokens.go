package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"hrms/internal/domain/errs"
)

const tokenIssuer = "hrms"

// Claims is the signed payload of a session token.
type Claims struct {
	UserID     string `json:"uid"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	EmployeeID string `json:"eid,omitempty"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashed), err
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GenerateToken signs claims with HS256. Registered claims are overwritten.
func GenerateToken(secret string, claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ParseToken(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}

// ResolveToken turns a bearer token into a caller identity. Any parse or
// validation failure, and any role outside the closed set, is ErrUnauthorized.
func ResolveToken(secret, raw string) (UserContext, error) {
	claims, err := ParseToken(secret, raw)
	if err != nil {
		return UserContext{}, errs.ErrUnauthorized
	}
	role, ok := ParseRole(string(claims.Role))
	if !ok || claims.UserID == "" {
		return UserContext{}, errs.ErrUnauthorized
	}
	return UserContext{
		UserID:     claims.UserID,
		Email:      claims.Email,
		Role:       role,
		EmployeeID: claims.EmployeeID,
	}, nil
}
