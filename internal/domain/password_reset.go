package domain

import "time"

// PasswordResetToken is one row per issued reset code; the code is stored
// hashed. At most one outstanding (unused, unexpired) token exists per user:
// issuing a new one marks all prior outstanding tokens as used.
type PasswordResetToken struct {
	ID        int64      `json:"id" db:"id"`
	UsuarioID int64      `json:"usuario_id" db:"usuario_id"`
	TokenHash string     `json:"-" db:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty" db:"used_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// Outstanding reports whether the token is still redeemable at instant now.
func (t *PasswordResetToken) Outstanding(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
