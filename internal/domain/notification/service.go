package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medibook/medibook/internal/access"
)

type Service struct {
	notifications Repository
}

func NewService(notifications Repository) *Service {
	return &Service{notifications: notifications}
}

// List returns the actor's own notifications. There is no admin override:
// notifications are visible to their owner only.
func (s *Service) List(ctx context.Context, actor access.Actor, limit, offset int) ([]*Notification, int, error) {
	userID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid actor id: %w", err)
	}
	return s.notifications.ListByUser(ctx, userID, limit, offset)
}

// MarkRead marks one of the actor's notifications as read. A notification
// owned by someone else, or one that does not exist, yields ErrNoEffect.
func (s *Service) MarkRead(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	userID, err := uuid.Parse(actor.ID)
	if err != nil {
		return fmt.Errorf("invalid actor id: %w", err)
	}
	// Ownership is enforced by the repository predicate: the update matches
	// zero rows unless the actor owns the notification.
	return s.notifications.MarkRead(ctx, id, userID)
}

// UnreadCount returns the number of unread notifications for the actor.
func (s *Service) UnreadCount(ctx context.Context, actor access.Actor) (int, error) {
	userID, err := uuid.Parse(actor.ID)
	if err != nil {
		return 0, fmt.Errorf("invalid actor id: %w", err)
	}
	return s.notifications.CountUnread(ctx, userID)
}
