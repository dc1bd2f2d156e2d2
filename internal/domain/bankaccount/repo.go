package bankaccount

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNoEffect is the uniform zero-rows failure signal.
var ErrNoEffect = errors.New("no rows affected")

type Repository interface {
	Create(ctx context.Context, a *BankAccount) error
	// GetByID returns ErrNoEffect when no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*BankAccount, error)
	// ListActive returns active accounts only, the regular-user view.
	ListActive(ctx context.Context) ([]*BankAccount, error)
	// ListAll includes inactive accounts, the admin view.
	ListAll(ctx context.Context) ([]*BankAccount, error)
	// Update returns ErrNoEffect when no row matches.
	Update(ctx context.Context, a *BankAccount) error
}
