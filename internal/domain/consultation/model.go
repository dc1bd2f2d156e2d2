package consultation

import (
	"time"

	"github.com/google/uuid"
)

// Consultation maps to the consultations table. One row per booking
// request; rows are never deleted in normal operation.
type Consultation struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	UserID           uuid.UUID  `db:"user_id" json:"user_id"`
	DoctorName       string     `db:"doctor_name" json:"doctor_name"`
	ConsultationType string     `db:"consultation_type" json:"consultation_type"`
	PreferredDate    time.Time  `db:"preferred_date" json:"preferred_date"`
	PreferredTime    string     `db:"preferred_time" json:"preferred_time"`
	Symptoms         string     `db:"symptoms" json:"symptoms"`
	Status           string     `db:"status" json:"status"`
	PaymentStatus    string     `db:"payment_status" json:"payment_status"`
	Amount           float64    `db:"amount" json:"amount"`
	BankAccountID    *uuid.UUID `db:"bank_account_id" json:"bank_account_id,omitempty"`
	AdminNotes       *string    `db:"admin_notes" json:"admin_notes,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusDeclined  = "declined"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"

	PaymentUnpaid   = "unpaid"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"

	TypeVideoCall = "video_call"
	TypePhoneCall = "phone_call"
	TypeChat      = "chat"
)

var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusApproved:  true,
	StatusDeclined:  true,
	StatusCompleted: true,
	StatusCancelled: true,
}

var validPaymentStatuses = map[string]bool{
	PaymentUnpaid:   true,
	PaymentPaid:     true,
	PaymentRefunded: true,
}

var validTypes = map[string]bool{
	TypeVideoCall: true,
	TypePhoneCall: true,
	TypeChat:      true,
}

// defaultAmounts are the consultation fees by kind.
var defaultAmounts = map[string]float64{
	TypeVideoCall: 50,
	TypePhoneCall: 40,
	TypeChat:      30,
}

// DefaultAmount returns the fee for a consultation kind.
func DefaultAmount(consultationType string) float64 {
	return defaultAmounts[consultationType]
}
