/*
Package auth provides user accounts and token-based authentication.

PURPOSE:
  Every ledger record is row-level scoped to a single user. This package
  owns the user record, bcrypt password hashing, and the signed JWT that
  carries the user identity into the API layer.

TOKENS:
  HS256 JWTs with a configurable TTL. The claims carry only the user id
  and username; handlers re-read anything else they need from the store.
*/
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// =============================================================================
// USER RECORD
// =============================================================================

// User is an account owning ledger records.
type User struct {
	ID           string
	Username     string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

// Store persists user accounts.
type Store interface {
	// CreateUser stores a new user. Returns ErrUsernameTaken if the
	// username is already in use.
	CreateUser(ctx context.Context, u User) error

	// UserByUsername returns the user with the given username, or nil.
	UserByUsername(ctx context.Context, username string) (*User, error)

	// UserByID returns the user with the given id, or nil.
	UserByID(ctx context.Context, id string) (*User, error)
}

// ErrUsernameTaken is returned when registering an existing username.
var ErrUsernameTaken = errors.New("username already taken")

// =============================================================================
// PASSWORDS
// =============================================================================

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a stored hash against a plaintext candidate.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// =============================================================================
// TOKENS
// =============================================================================

// Claims is the JWT payload identifying an authenticated user.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates user tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates an issuer with the given HMAC secret and TTL.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Generate issues a signed token for the user.
func (i *TokenIssuer) Generate(u *User) (string, error) {
	claims := &Claims{
		UserID:   u.ID,
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Validate parses and verifies a token, returning its claims.
func (i *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}
