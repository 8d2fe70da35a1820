package store

import (
	"context"
	"fmt"

	"github.com/Simplici0/bizness/internal/validation"
)

// Transaction is a ledger entry of a business.
type Transaction struct {
	ID          string  `json:"id"`
	BusinessID  string  `json:"business_id"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

const transactionColumns = `id, business_id, type, description, amount, date`

func scanTransaction(row interface{ Scan(...any) error }) (Transaction, error) {
	var t Transaction
	err := row.Scan(&t.ID, &t.BusinessID, &t.Type, &t.Description, &t.Amount, &t.Date)
	return t, err
}

// CreateTransaction validates in and records it for businessID.
func (s *Store) CreateTransaction(ctx context.Context, businessID string, in validation.TransactionInput) (Transaction, error) {
	in, err := validation.ValidateTransaction(in)
	if err != nil {
		return Transaction{}, rejected("transaction", err)
	}
	if err := s.requireBusiness(ctx, businessID); err != nil {
		return Transaction{}, err
	}

	t := Transaction{
		ID:          s.newID(),
		BusinessID:  businessID,
		Type:        in.Type,
		Description: in.Description,
		Amount:      in.Amount,
		Date:        in.Date,
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.BusinessID, t.Type, t.Description, t.Amount, t.Date); err != nil {
		return Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	return t, nil
}

// ListTransactions returns the ledger of businessID, newest first. Entries
// of the same day keep reverse insertion order.
func (s *Store) ListTransactions(ctx context.Context, businessID string) ([]Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE business_id = ?
		ORDER BY date DESC, rowid DESC
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return transactions, nil
}
