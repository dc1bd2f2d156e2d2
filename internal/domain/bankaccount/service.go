package bankaccount

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medibook/medibook/internal/access"
)

type Service struct {
	accounts Repository
}

func NewService(accounts Repository) *Service {
	return &Service{accounts: accounts}
}

// List returns the accounts visible to the actor: active ones for regular
// users, every account when an administrator asks for the full view.
func (s *Service) List(ctx context.Context, actor access.Actor, includeInactive bool) ([]*BankAccount, error) {
	if includeInactive && actor.IsAdmin() {
		return s.accounts.ListAll(ctx)
	}
	return s.accounts.ListActive(ctx)
}

// Get returns one account, filtered by the actor's visibility. An inactive
// account is invisible to regular users regardless of query.
func (s *Service) Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*BankAccount, error) {
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := access.CanReadBankAccount(actor, a.IsActive); !d.Allowed {
		return nil, ErrNoEffect
	}
	return a, nil
}

// Create adds a payment destination. Admin only.
func (s *Service) Create(ctx context.Context, actor access.Actor, a *BankAccount) error {
	if d := access.CanWriteBankAccount(actor); !d.Allowed {
		return ErrNoEffect
	}
	if a.BankName == "" || a.AccountName == "" || a.AccountNumber == "" {
		return fmt.Errorf("bank_name, account_name and account_number are required")
	}
	return s.accounts.Create(ctx, a)
}

// Update modifies a payment destination. Admin only.
func (s *Service) Update(ctx context.Context, actor access.Actor, a *BankAccount) error {
	if d := access.CanWriteBankAccount(actor); !d.Allowed {
		return ErrNoEffect
	}
	if a.BankName == "" || a.AccountName == "" || a.AccountNumber == "" {
		return fmt.Errorf("bank_name, account_name and account_number are required")
	}
	return s.accounts.Update(ctx, a)
}

// VerifyActive reports whether the account exists and is active. Used by
// the consultation payment flow before accepting a transfer confirmation.
func (s *Service) VerifyActive(ctx context.Context, id uuid.UUID) error {
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !a.IsActive {
		return ErrNoEffect
	}
	return nil
}
