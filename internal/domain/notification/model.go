package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification maps to the notifications table. Rows are created by the
// system only; there is no user-facing creation path.
type Notification struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	UserID         uuid.UUID  `db:"user_id" json:"user_id"`
	ConsultationID *uuid.UUID `db:"consultation_id" json:"consultation_id,omitempty"`
	Title          string     `db:"title" json:"title"`
	Message        string     `db:"message" json:"message"`
	IsRead         bool       `db:"is_read" json:"is_read"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

const (
	TitleApproved = "Consultation Approved"
	TitleDeclined = "Consultation Declined"

	bodyApproved = "Your consultation request has been approved. Please proceed with payment to confirm your booking."
	bodyDeclined = "Your consultation request has been declined."

	declinedReasonPrefix  = " Reason: "
	declinedSupportSuffix = " Please contact support for more information."
)

// Approved builds the notification emitted when a consultation is approved.
func Approved(userID, consultationID uuid.UUID) *Notification {
	cid := consultationID
	return &Notification{
		UserID:         userID,
		ConsultationID: &cid,
		Title:          TitleApproved,
		Message:        bodyApproved,
	}
}

// Declined builds the notification emitted when a consultation is declined.
// A non-empty adminNotes value is appended as the decline reason; otherwise
// a generic contact-support instruction is used.
func Declined(userID, consultationID uuid.UUID, adminNotes string) *Notification {
	cid := consultationID
	msg := bodyDeclined
	if adminNotes != "" {
		msg += declinedReasonPrefix + adminNotes
	} else {
		msg += declinedSupportSuffix
	}
	return &Notification{
		UserID:         userID,
		ConsultationID: &cid,
		Title:          TitleDeclined,
		Message:        msg,
	}
}
