package consultation

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNoEffect is the uniform failure signal: a read or write that matched
// zero rows. Access denial and absence are deliberately indistinguishable so
// callers cannot probe for record existence.
var ErrNoEffect = errors.New("no rows affected")

type Repository interface {
	Create(ctx context.Context, c *Consultation) error
	// GetByID returns ErrNoEffect when no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Consultation, error)
	// GetByIDForUpdate row-locks the consultation for the duration of the
	// surrounding transaction, serializing concurrent transitions.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Consultation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Consultation, int, error)
	ListAll(ctx context.Context, limit, offset int) ([]*Consultation, int, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Consultation, int, error)
	// Update writes the mutable fields and refreshes updated_at. Returns
	// ErrNoEffect when no row matches.
	Update(ctx context.Context, c *Consultation) error
}
