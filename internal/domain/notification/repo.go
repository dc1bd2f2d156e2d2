package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNoEffect is the uniform failure signal for reads and writes that match
// zero rows. Callers cannot tell a missing record from a denied one.
var ErrNoEffect = errors.New("no rows affected")

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, int, error)
	// MarkRead flips is_read for the given notification when it is owned by
	// userID. Returns ErrNoEffect when no row matches.
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	// CountUnread returns the number of unread notifications for a user.
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}
