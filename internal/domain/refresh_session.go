package domain

import "time"

// RefreshSession is one row per issued refresh token. The row id doubles as
// the public token identifier; the secret itself is only stored hashed.
// Sessions are revoked, never deleted, so the table is an audit trail.
type RefreshSession struct {
	ID         int64      `json:"id" db:"id"`
	UsuarioID  int64      `json:"usuario_id" db:"usuario_id"`
	TokenHash  string     `json:"-" db:"token_hash"`
	ExpiresAt  time.Time  `json:"expires_at" db:"expires_at"`
	LastUsedAt time.Time  `json:"last_used_at" db:"last_used_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty" db:"revoked_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// Usable reports whether the session can still be redeemed at instant now,
// given the idle-timeout window.
func (s *RefreshSession) Usable(now time.Time, idleTimeout time.Duration) bool {
	if s.RevokedAt != nil {
		return false
	}
	if now.After(s.ExpiresAt) {
		return false
	}
	return !now.After(s.LastUsedAt.Add(idleTimeout))
}
