package bankaccount

import (
	"time"

	"github.com/google/uuid"
)

// BankAccount maps to the bank_accounts table. Accounts are shared payment
// destinations: admin-managed, referenced (not copied) by consultations.
type BankAccount struct {
	ID            uuid.UUID `db:"id" json:"id"`
	BankName      string    `db:"bank_name" json:"bank_name"`
	AccountName   string    `db:"account_name" json:"account_name"`
	AccountNumber string    `db:"account_number" json:"account_number"`
	RoutingNumber *string   `db:"routing_number" json:"routing_number,omitempty"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
