package hospital

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNoEffect = errors.New("no effect")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error)
	List(ctx context.Context, limit, offset int) ([]*Hospital, int, error)
	// ListAll returns the full directory without pagination. The dataset
	// is small and distance sorting happens in memory.
	ListAll(ctx context.Context) ([]*Hospital, error)
}
