package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNoEffect is the uniform zero-rows failure signal.
var ErrNoEffect = errors.New("no rows affected")

// ErrDuplicateEmail reports a registration against an email that already
// has a profile.
var ErrDuplicateEmail = errors.New("email already registered")

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	// UpdateName sets full_name and refreshes updated_at.
	UpdateName(ctx context.Context, userID uuid.UUID, fullName *string) error
	// GrantAdmin promotes the profile with the given email.
	GrantAdmin(ctx context.Context, email string) error
}

type RefreshTokenRepository interface {
	Store(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	// Consume revokes the token and returns its owner. Expired, revoked and
	// unknown tokens all return ErrNoEffect.
	Consume(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}
