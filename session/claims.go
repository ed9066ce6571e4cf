package session

import (
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

// Claims is what the client can read from its access token. The signature
// is not verified; only the backend can do that.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry in the past
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ParseClaims decodes the claims of a JWT access token
func ParseClaims(token string) (Claims, error) {
	var std jwt.StandardClaims
	if _, _, err := new(jwt.Parser).ParseUnverified(token, &std); err != nil {
		return Claims{}, err
	}

	claims := Claims{Subject: std.Subject}
	if std.IssuedAt > 0 {
		claims.IssuedAt = time.Unix(std.IssuedAt, 0)
	}
	if std.ExpiresAt > 0 {
		claims.ExpiresAt = time.Unix(std.ExpiresAt, 0)
	}
	return claims, nil
}

// Claims decodes the current token, reporting false when there is none or
// it is not a JWT
func (s *Session) Claims() (Claims, bool) {
	token := s.Token()
	if token == "" {
		return Claims{}, false
	}
	claims, err := ParseClaims(token)
	if err != nil {
		return Claims{}, false
	}
	return claims, true
}
