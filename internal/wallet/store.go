package wallet

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new WalletStore.
func New(db *sql.DB) WalletStore {
	return &store{
		db: db,
	}
}

// CreateTransaction inserts a new transaction. Top-ups start pending.
func (s *store) CreateTransaction(t *Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Status == "" {
		t.Status = StatusPending
	}
	_, err := s.db.Exec(`
		INSERT INTO transactions (id, user_id, amount, type, status, payment_method, description, external_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.UserID, t.Amount, t.Type, t.Status, t.PaymentMethod, t.Description, t.ExternalID, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// SetExternalID records the payment provider's invoice ID on a transaction.
func (s *store) SetExternalID(transactionID, externalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE transactions SET external_id = ? WHERE id = ?`, externalID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to set external ID: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// GetTransaction retrieves a single transaction by its ID.
func (s *store) GetTransaction(transactionID string) (*Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, user_id, amount, type, status, payment_method, description, external_id, created_at, updated_at
		FROM transactions WHERE id = ?
	`, transactionID)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

// ListTransactions retrieves a user's transactions, newest first.
func (s *store) ListTransactions(userID string) ([]*Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, user_id, amount, type, status, payment_method, description, external_id, created_at, updated_at
		FROM transactions WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var out []*Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetWallet retrieves a user's wallet. A user without a wallet row has a zero
// balance.
func (s *store) GetWallet(userID string) (*Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w := &Wallet{UserID: userID}
	err := s.db.QueryRow(`SELECT balance, updated_at FROM wallets WHERE user_id = ?`, userID).
		Scan(&w.Balance, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		return w, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return w, nil
}

// ProcessInvoiceEvent applies a payment-provider webhook delivery. The event
// record, the status flip and the wallet credit commit atomically, so a crash
// can never leave a credited wallet without its event row. Replays of the same
// event ID and out-of-order deliveries fall out as duplicate/stale results
// instead of double credits.
func (s *store) ProcessInvoiceEvent(ev *InvoiceEvent, now int64) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO webhook_events (event_id, transaction_id, status, received_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(event_id) DO NOTHING
	`, ev.EventID, ev.ExternalID, ev.Status, now)
	if err != nil {
		return "", fmt.Errorf("failed to record webhook event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		log.Info("Duplicate webhook event ignored", "eventID", ev.EventID)
		return ResultDuplicate, nil
	}

	var userID string
	var amount float64
	err = tx.QueryRow(`SELECT user_id, amount FROM transactions WHERE id = ?`, ev.ExternalID).
		Scan(&userID, &amount)
	if err == sql.ErrNoRows {
		return "", ErrTransactionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up transaction: %w", err)
	}

	switch ev.Status {
	case InvoicePaid, InvoiceSettled:
		res, err = tx.Exec(`
			UPDATE transactions SET status = ?, updated_at = ?
			WHERE id = ? AND status = ?
		`, StatusCompleted, now, ev.ExternalID, StatusPending)
		if err != nil {
			return "", fmt.Errorf("failed to complete transaction: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			if err := tx.Commit(); err != nil {
				return "", fmt.Errorf("failed to commit: %w", err)
			}
			return ResultStale, nil
		}

		_, err = tx.Exec(`
			INSERT INTO wallets (user_id, balance, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(user_id) DO UPDATE SET
				balance = balance + excluded.balance,
				updated_at = excluded.updated_at
		`, userID, amount, now)
		if err != nil {
			return "", fmt.Errorf("failed to credit wallet: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return "", fmt.Errorf("failed to commit: %w", err)
		}
		log.Info("Wallet credited", "userID", userID, "amount", amount, "transactionID", ev.ExternalID)
		return ResultCredited, nil

	case InvoiceExpired:
		res, err = tx.Exec(`
			UPDATE transactions SET status = ?, updated_at = ?
			WHERE id = ? AND status = ?
		`, StatusFailed, now, ev.ExternalID, StatusPending)
		if err != nil {
			return "", fmt.Errorf("failed to fail transaction: %w", err)
		}
		n, _ := res.RowsAffected()
		if err := tx.Commit(); err != nil {
			return "", fmt.Errorf("failed to commit: %w", err)
		}
		if n == 0 {
			return ResultStale, nil
		}
		return ResultFailed, nil

	default:
		if err := tx.Commit(); err != nil {
			return "", fmt.Errorf("failed to commit: %w", err)
		}
		log.Info("Invoice status carries no state change", "status", ev.Status, "eventID", ev.EventID)
		return ResultIgnored, nil
	}
}

// Clear removes all wallet data. Intended for tests and the demo environment.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"webhook_events", "transactions", "wallets"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
		}
	}
}

func scanTransaction(row interface{ Scan(dest ...any) error }) (*Transaction, error) {
	t := &Transaction{}
	err := row.Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &t.Status, &t.PaymentMethod, &t.Description, &t.ExternalID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}
