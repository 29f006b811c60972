package domain

import "time"

// TokenPair is what the login and refresh operations return: the short-lived
// access token (JWT) and, at login only, the opaque refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// RefreshToken models the stored refresh token record in the DB. Only the
// SHA-256 fingerprint of the opaque value is persisted; the plaintext is
// returned to the caller exactly once, at issue time.
type RefreshToken struct {
	ID        string // ULID
	AccountID int64
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// Active reports whether the token may still mint new access tokens.
func (t RefreshToken) Active(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}
