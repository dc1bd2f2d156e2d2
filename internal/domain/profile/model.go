package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile maps to the profiles table: one row per authenticated identity,
// materialized at registration.
type Profile struct {
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	Email        string    `db:"email" json:"email"`
	FullName     *string   `db:"full_name" json:"full_name,omitempty"`
	Role         string    `db:"role" json:"role"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// RefreshToken maps to the refresh_tokens table. Only the SHA-256 hash of
// the opaque token is stored.
type RefreshToken struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
	CreatedAt time.Time  `db:"created_at"`
}
