package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens signs and verifies the HS256 access tokens issued at login.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

var ErrInvalidToken = errors.New("invalid or expired token")

// NewTokens builds a signer around the shared secret. ttl <= 0 defaults
// to seven days.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Sign issues a token carrying the user's numeric ID and public UUID.
func (t *Tokens) Sign(userID int64, userUUID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"uuid":   userUUID,
		"iat":    now.Unix(),
		"exp":    now.Add(t.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses and validates a token, returning the embedded user ID.
func (t *Tokens) Verify(token string) (int64, error) {
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	// JSON numbers decode as float64
	id, ok := claims["userId"].(float64)
	if !ok || id <= 0 {
		return 0, ErrInvalidToken
	}
	return int64(id), nil
}
