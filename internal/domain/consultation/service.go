package consultation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medibook/medibook/internal/access"
	"github.com/medibook/medibook/internal/domain/notification"
	"github.com/medibook/medibook/internal/platform/db"
)

// BankAccountVerifier checks that a payment destination exists and is
// active before a consultation may reference it.
type BankAccountVerifier interface {
	VerifyActive(ctx context.Context, id uuid.UUID) error
}

// StatusChange describes a requested transition. Nil fields are untouched.
// Enum values are validated before any write.
type StatusChange struct {
	Status        *string
	PaymentStatus *string
	AdminNotes    *string
	BankAccountID *uuid.UUID
}

type Service struct {
	consultations Repository
	notifications notification.Repository
	bankAccounts  BankAccountVerifier
	runTx         func(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewService wires the consultation core. The pool drives the transaction
// boundary around status transitions; a nil pool (tests) runs the
// transition body directly.
func NewService(pool *pgxpool.Pool, consultations Repository, notifications notification.Repository, bankAccounts BankAccountVerifier) *Service {
	s := &Service{
		consultations: consultations,
		notifications: notifications,
		bankAccounts:  bankAccounts,
	}
	s.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		if pool == nil {
			return fn(ctx)
		}
		return db.WithTx(ctx, pool, fn)
	}
	return s
}

// Create books a new consultation owned by the actor. Status starts at
// pending and payment at unpaid regardless of input; the amount defaults
// from the consultation kind when absent.
func (s *Service) Create(ctx context.Context, actor access.Actor, c *Consultation) error {
	ownerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return fmt.Errorf("invalid actor id: %w", err)
	}
	if c.UserID == uuid.Nil {
		c.UserID = ownerID
	}
	if d := access.CanCreateConsultation(actor, c.UserID.String()); !d.Allowed {
		return fmt.Errorf("cannot create consultation for another user")
	}
	if c.DoctorName == "" {
		return fmt.Errorf("doctor_name is required")
	}
	if !validTypes[c.ConsultationType] {
		return fmt.Errorf("invalid consultation_type: %s", c.ConsultationType)
	}
	if c.Amount < 0 {
		return fmt.Errorf("amount must be non-negative")
	}
	if c.Amount == 0 {
		c.Amount = DefaultAmount(c.ConsultationType)
	}
	c.Status = StatusPending
	c.PaymentStatus = PaymentUnpaid
	c.BankAccountID = nil
	c.AdminNotes = nil
	return s.consultations.Create(ctx, c)
}

// Get returns one consultation visible to the actor. Denied and missing
// records both come back as ErrNoEffect.
func (s *Service) Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*Consultation, error) {
	c, err := s.consultations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := access.CanReadConsultation(actor, c.UserID.String()); !d.Allowed {
		return nil, ErrNoEffect
	}
	return c, nil
}

// List returns the actor's consultations; administrators see every record
// and may filter by status.
func (s *Service) List(ctx context.Context, actor access.Actor, status string, limit, offset int) ([]*Consultation, int, error) {
	if status != "" && !validStatuses[status] {
		return nil, 0, fmt.Errorf("invalid status: %s", status)
	}
	if actor.IsAdmin() {
		if status != "" {
			return s.consultations.ListByStatus(ctx, status, limit, offset)
		}
		return s.consultations.ListAll(ctx, limit, offset)
	}
	userID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid actor id: %w", err)
	}
	return s.consultations.ListByUser(ctx, userID, limit, offset)
}

// SetStatus applies an administrator transition: status and/or
// payment_status, with optional notes. Emits the decision notification
// when the status actually changes to approved or declined.
func (s *Service) SetStatus(ctx context.Context, actor access.Actor, id uuid.UUID, change StatusChange) (*Consultation, error) {
	return s.transition(ctx, actor, id, change)
}

// Cancel is the owner flow for withdrawing a request. No notification is
// emitted for cancellations.
func (s *Service) Cancel(ctx context.Context, actor access.Actor, id uuid.UUID) (*Consultation, error) {
	status := StatusCancelled
	return s.transition(ctx, actor, id, StatusChange{Status: &status})
}

// ConfirmPayment is the owner's self-reported bank transfer: unpaid
// becomes paid against a selected active bank account.
func (s *Service) ConfirmPayment(ctx context.Context, actor access.Actor, id, bankAccountID uuid.UUID) (*Consultation, error) {
	if bankAccountID == uuid.Nil {
		return nil, fmt.Errorf("bank_account_id is required")
	}
	if err := s.bankAccounts.VerifyActive(ctx, bankAccountID); err != nil {
		return nil, fmt.Errorf("bank account unavailable: %w", err)
	}

	var result *Consultation
	err := s.runTx(ctx, func(ctx context.Context) error {
		cur, err := s.consultations.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d := access.CanUpdateConsultation(actor, cur.UserID.String()); !d.Allowed {
			return ErrNoEffect
		}
		if cur.PaymentStatus != PaymentUnpaid {
			return fmt.Errorf("payment already %s", cur.PaymentStatus)
		}
		cur.PaymentStatus = PaymentPaid
		cur.BankAccountID = &bankAccountID
		if err := s.consultations.Update(ctx, cur); err != nil {
			return err
		}
		result = cur
		return nil
	})
	return result, err
}

// transition validates, authorizes, and applies one atomic update to a
// single consultation. The row lock serializes concurrent writers; the
// notification insert shares the transaction, so a failed insert rolls the
// whole transition back.
func (s *Service) transition(ctx context.Context, actor access.Actor, id uuid.UUID, change StatusChange) (*Consultation, error) {
	if change.Status != nil && !validStatuses[*change.Status] {
		return nil, fmt.Errorf("invalid status: %s", *change.Status)
	}
	if change.PaymentStatus != nil && !validPaymentStatuses[*change.PaymentStatus] {
		return nil, fmt.Errorf("invalid payment_status: %s", *change.PaymentStatus)
	}
	if change.Status == nil && change.PaymentStatus == nil && change.AdminNotes == nil {
		return nil, fmt.Errorf("nothing to update")
	}

	var result *Consultation
	err := s.runTx(ctx, func(ctx context.Context) error {
		cur, err := s.consultations.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d := access.CanUpdateConsultation(actor, cur.UserID.String()); !d.Allowed {
			return ErrNoEffect
		}

		priorStatus := cur.Status
		if change.Status != nil {
			cur.Status = *change.Status
		}
		if change.PaymentStatus != nil {
			cur.PaymentStatus = *change.PaymentStatus
		}
		if change.AdminNotes != nil {
			cur.AdminNotes = change.AdminNotes
		}
		if change.BankAccountID != nil {
			cur.BankAccountID = change.BankAccountID
		}

		if err := s.consultations.Update(ctx, cur); err != nil {
			return err
		}

		if err := s.emitStatusNotification(ctx, cur, priorStatus); err != nil {
			return err
		}
		result = cur
		return nil
	})
	return result, err
}

// emitStatusNotification inserts the owner's decision notification when a
// status transition lands on approved or declined and the value actually
// changed. Re-applying the same status emits nothing.
func (s *Service) emitStatusNotification(ctx context.Context, c *Consultation, priorStatus string) error {
	if c.Status == priorStatus {
		return nil
	}
	switch c.Status {
	case StatusApproved:
		return s.notifications.Create(ctx, notification.Approved(c.UserID, c.ID))
	case StatusDeclined:
		notes := ""
		if c.AdminNotes != nil {
			notes = *c.AdminNotes
		}
		return s.notifications.Create(ctx, notification.Declined(c.UserID, c.ID, notes))
	}
	return nil
}
