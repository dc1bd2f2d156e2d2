package integration

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/medibook/medibook/internal/domain/bankaccount"
	"github.com/medibook/medibook/internal/domain/consultation"
	"github.com/medibook/medibook/internal/domain/notification"
)

func TestConsultationLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newConsultationService()
	owner := actorFor(createTestUser(t, ctx))
	admin := adminActor()

	t.Run("CreateAppliesDefaults", func(t *testing.T) {
		c := createTestConsultation(t, ctx, svc, owner)
		if c.Status != consultation.StatusPending {
			t.Errorf("expected status pending, got %s", c.Status)
		}
		if c.PaymentStatus != consultation.PaymentUnpaid {
			t.Errorf("expected payment_status unpaid, got %s", c.PaymentStatus)
		}
		if c.Amount != 50 {
			t.Errorf("expected video call amount 50, got %.2f", c.Amount)
		}
		if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
			t.Error("expected timestamps to be populated by the store")
		}
	})

	t.Run("GetRoundTrip", func(t *testing.T) {
		created := createTestConsultation(t, ctx, svc, owner)

		fetched, err := svc.Get(ctx, owner, created.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if fetched.DoctorName != created.DoctorName {
			t.Errorf("expected doctor %q, got %q", created.DoctorName, fetched.DoctorName)
		}
		if fetched.UserID != created.UserID {
			t.Errorf("expected owner %s, got %s", created.UserID, fetched.UserID)
		}
	})

	t.Run("DeclineEmitsNotificationWithReason", func(t *testing.T) {
		c := createTestConsultation(t, ctx, svc, owner)

		declined := consultation.StatusDeclined
		updated, err := svc.SetStatus(ctx, admin, c.ID, consultation.StatusChange{
			Status:     &declined,
			AdminNotes: ptrStr("doctor unavailable that week"),
		})
		if err != nil {
			t.Fatalf("SetStatus: %v", err)
		}
		if updated.Status != consultation.StatusDeclined {
			t.Errorf("expected declined, got %s", updated.Status)
		}

		if n := countNotifications(t, ctx, c.ID); n != 1 {
			t.Fatalf("expected exactly 1 notification, got %d", n)
		}
		notifs, _, err := notification.NewRepoPG(globalDB.Pool).ListByUser(ctx, c.UserID, 50, 0)
		if err != nil {
			t.Fatalf("list notifications: %v", err)
		}
		var found bool
		for _, n := range notifs {
			if n.ConsultationID != nil && *n.ConsultationID == c.ID {
				found = true
				if n.Title != notification.TitleDeclined {
					t.Errorf("expected title %q, got %q", notification.TitleDeclined, n.Title)
				}
				if !strings.HasSuffix(n.Message, "Reason: doctor unavailable that week") {
					t.Errorf("expected reason suffix, got %q", n.Message)
				}
			}
		}
		if !found {
			t.Fatal("expected a notification referencing the consultation")
		}
	})
}

// Two writers racing on one row: the row lock serializes them, the second
// sees the already-approved status and emits nothing, so exactly one
// notification exists afterwards.
func TestConcurrentApprovals_SingleNotification(t *testing.T) {
	ctx := context.Background()
	svc := newConsultationService()
	owner := actorFor(createTestUser(t, ctx))
	admin := adminActor()
	c := createTestConsultation(t, ctx, svc, owner)

	approved := consultation.StatusApproved
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SetStatus(ctx, admin, c.ID, consultation.StatusChange{Status: &approved})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent SetStatus: %v", err)
		}
	}

	final, err := svc.Get(ctx, admin, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if final.Status != consultation.StatusApproved {
		t.Errorf("expected approved, got %s", final.Status)
	}
	if n := countNotifications(t, ctx, c.ID); n != 1 {
		t.Errorf("expected exactly 1 notification after concurrent approvals, got %d", n)
	}
}

// failingNotificationRepo delegates everything except Create, which always
// errors, so the surrounding transaction must roll back.
type failingNotificationRepo struct {
	notification.Repository
}

func (f *failingNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	return errors.New("notification store unavailable")
}

func TestNotificationFailureRollsBackTransition(t *testing.T) {
	ctx := context.Background()
	owner := actorFor(createTestUser(t, ctx))
	admin := adminActor()

	healthy := newConsultationService()
	c := createTestConsultation(t, ctx, healthy, owner)

	broken := consultation.NewService(
		globalDB.Pool,
		consultation.NewRepoPG(globalDB.Pool),
		&failingNotificationRepo{Repository: notification.NewRepoPG(globalDB.Pool)},
		bankaccount.NewService(bankaccount.NewRepoPG(globalDB.Pool)),
	)

	approved := consultation.StatusApproved
	if _, err := broken.SetStatus(ctx, admin, c.ID, consultation.StatusChange{Status: &approved}); err == nil {
		t.Fatal("expected transition to fail when the notification insert fails")
	}

	// The status update rode the same transaction, so nothing stuck.
	after, err := healthy.Get(ctx, admin, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if after.Status != consultation.StatusPending {
		t.Errorf("expected rollback to pending, got %s", after.Status)
	}
	if !after.UpdatedAt.Equal(c.UpdatedAt) {
		t.Errorf("expected updated_at unchanged after rollback, got %s -> %s", c.UpdatedAt, after.UpdatedAt)
	}
	if n := countNotifications(t, ctx, c.ID); n != 0 {
		t.Errorf("expected no notifications after rollback, got %d", n)
	}
}

func TestUpdatedAtAdvancesOnlyOnAcceptedWrites(t *testing.T) {
	ctx := context.Background()
	svc := newConsultationService()
	owner := actorFor(createTestUser(t, ctx))
	admin := adminActor()
	c := createTestConsultation(t, ctx, svc, owner)

	time.Sleep(20 * time.Millisecond)

	approved := consultation.StatusApproved
	updated, err := svc.SetStatus(ctx, admin, c.ID, consultation.StatusChange{Status: &approved})
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if !updated.UpdatedAt.After(c.UpdatedAt) {
		t.Errorf("expected updated_at to advance, got %s -> %s", c.UpdatedAt, updated.UpdatedAt)
	}

	// A rejected write must not touch the row.
	if _, err := svc.SetStatus(ctx, admin, c.ID, consultation.StatusChange{Status: ptrStr("archived")}); err == nil {
		t.Fatal("expected invalid status to be rejected")
	}
	after, err := svc.Get(ctx, admin, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !after.UpdatedAt.Equal(updated.UpdatedAt) {
		t.Errorf("expected updated_at unchanged after rejected write, got %s -> %s", updated.UpdatedAt, after.UpdatedAt)
	}
}

func TestStrangerTransitionHasNoEffect(t *testing.T) {
	ctx := context.Background()
	svc := newConsultationService()
	owner := actorFor(createTestUser(t, ctx))
	stranger := actorFor(createTestUser(t, ctx))
	c := createTestConsultation(t, ctx, svc, owner)

	cancelled := consultation.StatusCancelled
	_, err := svc.SetStatus(ctx, stranger, c.ID, consultation.StatusChange{Status: &cancelled})
	if !errors.Is(err, consultation.ErrNoEffect) {
		t.Fatalf("expected ErrNoEffect for stranger, got %v", err)
	}

	after, err := svc.Get(ctx, owner, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if after.Status != consultation.StatusPending {
		t.Errorf("expected row untouched, got status %s", after.Status)
	}
	if !after.UpdatedAt.Equal(c.UpdatedAt) {
		t.Errorf("expected updated_at unchanged, got %s -> %s", c.UpdatedAt, after.UpdatedAt)
	}
}

func TestConfirmPaymentAgainstActiveAccount(t *testing.T) {
	ctx := context.Background()
	svc := newConsultationService()
	owner := actorFor(createTestUser(t, ctx))
	admin := adminActor()
	c := createTestConsultation(t, ctx, svc, owner)

	bankSvc := bankaccount.NewService(bankaccount.NewRepoPG(globalDB.Pool))
	account := &bankaccount.BankAccount{
		BankName:      "First Bank",
		AccountName:   "MediBook Ltd",
		AccountNumber: "0123456789",
		IsActive:      true,
	}
	if err := bankSvc.Create(ctx, admin, account); err != nil {
		t.Fatalf("create bank account: %v", err)
	}

	paid, err := svc.ConfirmPayment(ctx, owner, c.ID, account.ID)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if paid.PaymentStatus != consultation.PaymentPaid {
		t.Errorf("expected paid, got %s", paid.PaymentStatus)
	}
	if paid.BankAccountID == nil || *paid.BankAccountID != account.ID {
		t.Errorf("expected bank account reference %s, got %v", account.ID, paid.BankAccountID)
	}

	if _, err := svc.ConfirmPayment(ctx, owner, c.ID, account.ID); err == nil {
		t.Fatal("expected second payment confirmation to be rejected")
	}
}
