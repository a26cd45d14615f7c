package auth

import (
	"errors"
	"time"

	"github.com/urban-loft/urban_loft/internal/config"
	"github.com/urban-loft/urban_loft/internal/user"
)

// ErrInvalidToken covers every token verification failure: bad format, bad
// signature, malformed claims or an expired token.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the verified contents of a session token.
type Claims struct {
	UserID string
	Email  string
}

// Service issues and verifies signed session tokens. Tokens are stateless;
// there is no server-side revocation or lookup.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service from the configured secret and TTL.
func NewService(cfg config.Config) *Service {
	return &Service{secret: []byte(cfg.JWTSecret), ttl: cfg.TokenTTL}
}

// Issue signs a token embedding the user id and email, expiring after the
// configured TTL (24h by default).
func (s *Service) Issue(u user.User) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.ttl)
	claims := map[string]any{
		"sub":   u.ID,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	signed, err := SignHS256(claims, s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify checks the signature and expiry and returns the embedded claims.
func (s *Service) Verify(token string) (Claims, error) {
	claims, err := ParseAndVerifyHS256(token, s.secret)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	expFloat, ok := claims["exp"].(float64)
	if !ok || time.Now().After(time.Unix(int64(expFloat), 0)) {
		return Claims{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" || email == "" {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: sub, Email: email}, nil
}
