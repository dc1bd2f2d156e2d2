package bankaccount

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/medibook/medibook/internal/access"
)

// -- Mock Repository --

type mockBankAccountRepo struct {
	store map[uuid.UUID]*BankAccount
}

func newMockBankAccountRepo() *mockBankAccountRepo {
	return &mockBankAccountRepo{store: make(map[uuid.UUID]*BankAccount)}
}

func (m *mockBankAccountRepo) Create(_ context.Context, a *BankAccount) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	m.store[a.ID] = a
	return nil
}

func (m *mockBankAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*BankAccount, error) {
	a, ok := m.store[id]
	if !ok {
		return nil, ErrNoEffect
	}
	return a, nil
}

func (m *mockBankAccountRepo) ListActive(_ context.Context) ([]*BankAccount, error) {
	var r []*BankAccount
	for _, a := range m.store {
		if a.IsActive {
			r = append(r, a)
		}
	}
	return r, nil
}

func (m *mockBankAccountRepo) ListAll(_ context.Context) ([]*BankAccount, error) {
	var r []*BankAccount
	for _, a := range m.store {
		r = append(r, a)
	}
	return r, nil
}

func (m *mockBankAccountRepo) Update(_ context.Context, a *BankAccount) error {
	if _, ok := m.store[a.ID]; !ok {
		return ErrNoEffect
	}
	m.store[a.ID] = a
	return nil
}

var (
	user  = access.Actor{ID: uuid.New().String(), Role: access.RoleUser}
	admin = access.Actor{ID: uuid.New().String(), Role: access.RoleAdmin}
)

func seed(t *testing.T, repo *mockBankAccountRepo, active bool) *BankAccount {
	t.Helper()
	a := &BankAccount{
		BankName:      "First National",
		AccountName:   "MediBook Ltd",
		AccountNumber: "0123456789",
		IsActive:      active,
	}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("seed error: %v", err)
	}
	return a
}

// -- Tests --

func TestList_UserSeesActiveOnly(t *testing.T) {
	repo := newMockBankAccountRepo()
	svc := NewService(repo)
	seed(t, repo, true)
	seed(t, repo, false)

	items, err := svc.List(context.Background(), user, false)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 active account, got %d", len(items))
	}
	if !items[0].IsActive {
		t.Error("regular users must only see active accounts")
	}

	// even when asking for the full view
	items, err = svc.List(context.Background(), user, true)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(items) != 1 {
		t.Error("all=true must not widen a regular user's view")
	}
}

func TestList_AdminSeesAll(t *testing.T) {
	repo := newMockBankAccountRepo()
	svc := NewService(repo)
	seed(t, repo, true)
	seed(t, repo, false)

	items, err := svc.List(context.Background(), admin, true)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("admin full view should contain 2 accounts, got %d", len(items))
	}
}

func TestGet_InactiveInvisibleToUser(t *testing.T) {
	repo := newMockBankAccountRepo()
	svc := NewService(repo)
	a := seed(t, repo, false)

	if _, err := svc.Get(context.Background(), user, a.ID); !errors.Is(err, ErrNoEffect) {
		t.Errorf("expected ErrNoEffect for inactive account, got %v", err)
	}
	if _, err := svc.Get(context.Background(), admin, a.ID); err != nil {
		t.Errorf("admin should read inactive account: %v", err)
	}
}

func TestCreate_AdminOnly(t *testing.T) {
	repo := newMockBankAccountRepo()
	svc := NewService(repo)

	a := &BankAccount{BankName: "First National", AccountName: "MediBook Ltd", AccountNumber: "0123456789", IsActive: true}
	if err := svc.Create(context.Background(), user, a); !errors.Is(err, ErrNoEffect) {
		t.Errorf("expected ErrNoEffect for non-admin create, got %v", err)
	}
	if err := svc.Create(context.Background(), admin, a); err != nil {
		t.Errorf("admin create failed: %v", err)
	}
}

func TestCreate_RequiredFields(t *testing.T) {
	repo := newMockBankAccountRepo()
	svc := NewService(repo)

	a := &BankAccount{BankName: "First National"}
	if err := svc.Create(context.Background(), admin, a); err == nil {
		t.Error("expected error for missing required fields")
	}
}

func TestUpdate_AdminOnly(t *testing.T) {
	repo := newMockBankAccountRepo()
	svc := NewService(repo)
	a := seed(t, repo, true)

	a.IsActive = false
	if err := svc.Update(context.Background(), user, a); !errors.Is(err, ErrNoEffect) {
		t.Errorf("expected ErrNoEffect for non-admin update, got %v", err)
	}
	if err := svc.Update(context.Background(), admin, a); err != nil {
		t.Errorf("admin update failed: %v", err)
	}
	if repo.store[a.ID].IsActive {
		t.Error("expected account to be deactivated")
	}
}

func TestVerifyActive(t *testing.T) {
	repo := newMockBankAccountRepo()
	svc := NewService(repo)
	active := seed(t, repo, true)
	inactive := seed(t, repo, false)

	if err := svc.VerifyActive(context.Background(), active.ID); err != nil {
		t.Errorf("expected active account to verify: %v", err)
	}
	if err := svc.VerifyActive(context.Background(), inactive.ID); err == nil {
		t.Error("expected error for inactive account")
	}
	if err := svc.VerifyActive(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for missing account")
	}
}
