package wallet

import (
	"database/sql"
	"errors"
	"sync"
)

// store handles all database operations for wallets, transactions and
// payment-webhook bookkeeping.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// TransactionType classifies a wallet transaction.
type TransactionType string

const (
	TypeTopup   TransactionType = "topup"
	TypePayment TransactionType = "payment"
	TypeRefund  TransactionType = "refund"
)

// TransactionStatus is the stored lifecycle status of a transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Wallet is a user's stored balance.
type Wallet struct {
	UserID    string  `json:"user_id"`
	Balance   float64 `json:"balance"`
	UpdatedAt int64   `json:"updated_at"`
}

// Transaction is a single wallet movement. Top-ups stay pending until the
// payment provider confirms them over the webhook.
type Transaction struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	Amount        float64           `json:"amount"`
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	PaymentMethod string            `json:"payment_method"`
	Description   string            `json:"description"`
	ExternalID    *string           `json:"external_id,omitempty"`
	CreatedAt     int64             `json:"created_at"`
	UpdatedAt     int64             `json:"updated_at"`
}

// InvoiceEvent is a payment-provider webhook delivery. EventID identifies the
// delivery itself and drives idempotency; ExternalID carries our transaction ID
// back to us.
type InvoiceEvent struct {
	EventID    string  `json:"event_id"`
	InvoiceID  string  `json:"invoice_id"`
	ExternalID string  `json:"external_id"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
}

// Invoice statuses the provider reports. SETTLED follows PAID once the funds
// clear and carries the same meaning for us.
const (
	InvoicePaid    = "PAID"
	InvoiceSettled = "SETTLED"
	InvoiceExpired = "EXPIRED"
)

// Result is the outcome of processing an invoice event.
type Result string

const (
	// ResultCredited means the transaction completed and the wallet was credited.
	ResultCredited Result = "credited"
	// ResultFailed means the transaction was marked failed (invoice expired).
	ResultFailed Result = "failed"
	// ResultDuplicate means this event ID was seen before; nothing changed.
	ResultDuplicate Result = "duplicate"
	// ResultStale means the transaction had already left the pending state;
	// the event was recorded but no balance moved.
	ResultStale Result = "stale"
	// ResultIgnored means the invoice status carries no state change.
	ResultIgnored Result = "ignored"
)

// ErrTransactionNotFound is returned when a lookup or event references an
// unknown transaction.
var ErrTransactionNotFound = errors.New("transaction not found")
