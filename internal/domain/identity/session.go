package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the locally persisted proof of authentication: the bearer
// token plus the profile fields the backend returns on login/registration.
// It is created by the identity service and read-only everywhere else.
type Session struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Expired reports whether the session token carries an expiry claim in the
// past. The token is parsed without signature verification: the signing
// secret lives on the backend, and the check only avoids sending calls the
// backend would reject anyway. A token that cannot be parsed, or carries no
// expiry, is left for the backend to judge.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.Token == "" {
		return true
	}
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.Token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}

// Active reports whether a usable session is present.
func (s *Session) Active(now time.Time) bool {
	return s != nil && s.Token != "" && !s.Expired(now)
}
