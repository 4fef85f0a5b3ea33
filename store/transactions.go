package store

import (
	"context"
	"fmt"

	"cryptocortex/models"
)

// ListTransactions returns the user's transactions, newest first.
// A limit of 0 means no limit.
func (s *Store) ListTransactions(ctx context.Context, userID int64, limit int) ([]models.Transaction, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stmt := `
		SELECT id, user_id, occurred_on, description, category, kind, amount
			FROM transactions
			WHERE user_id = $1
			ORDER BY occurred_on DESC, id DESC
	`
	args := []any{userID}
	if limit > 0 {
		stmt += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Date, &t.Description, &t.Category, &t.Type, &t.Amount); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return txs, nil
}

// AddTransaction inserts a transaction row and returns the assigned id.
func (s *Store) AddTransaction(ctx context.Context, t models.Transaction) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stmt := `
		INSERT INTO transactions (user_id, occurred_on, description, category, kind, amount)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;
	`

	var id int64
	err := s.pool.QueryRow(ctx, stmt, t.UserID, t.Date, t.Description, t.Category, t.Type, t.Amount).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting transaction: %w", err)
	}

	return id, nil
}

// SpendingByCategory sums the user's expenses per category.
func (s *Store) SpendingByCategory(ctx context.Context, userID int64) (map[string]float64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stmt := `
		SELECT category, SUM(amount)
			FROM transactions
			WHERE user_id = $1 AND kind = $2
			GROUP BY category;
	`

	rows, err := s.pool.Query(ctx, stmt, userID, models.TransactionExpense)
	if err != nil {
		return nil, fmt.Errorf("building spending report: %w", err)
	}
	defer rows.Close()

	report := make(map[string]float64)
	for rows.Next() {
		var (
			category string
			total    float64
		)
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("scanning spending report: %w", err)
		}
		report[category] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("building spending report: %w", err)
	}

	return report, nil
}
