package store

import (
	"context"
	"fmt"

	"cryptocortex/models"
)

// ListBudgets returns the user's budgets ordered by category.
func (s *Store) ListBudgets(ctx context.Context, userID int64) ([]models.Budget, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stmt := "SELECT id, user_id, category, limit_amount, spent FROM budgets WHERE user_id = $1 ORDER BY category;"

	rows, err := s.pool.Query(ctx, stmt, userID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Limit, &b.Spent); err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	return budgets, nil
}

// UpsertBudget creates the budget for a category or, if the user
// already has one, replaces its limit.
func (s *Store) UpsertBudget(ctx context.Context, userID int64, category string, limit float64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stmt := `
		INSERT INTO budgets (user_id, category, limit_amount)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, category)
			DO UPDATE SET limit_amount = EXCLUDED.limit_amount;
	`
	if _, err := s.pool.Exec(ctx, stmt, userID, category, limit); err != nil {
		return fmt.Errorf("upserting budget: %w", err)
	}

	return nil
}

// DeleteBudget removes the user's budget for a category. Deleting a
// category without a budget is not an error.
func (s *Store) DeleteBudget(ctx context.Context, userID int64, category string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stmt := "DELETE FROM budgets WHERE user_id = $1 AND category = $2;"
	if _, err := s.pool.Exec(ctx, stmt, userID, category); err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	return nil
}

// RecordSpending adds an expense amount to the matching budget, if
// the user keeps one for that category.
func (s *Store) RecordSpending(ctx context.Context, userID int64, category string, amount float64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stmt := "UPDATE budgets SET spent = spent + $3 WHERE user_id = $1 AND category = $2;"
	if _, err := s.pool.Exec(ctx, stmt, userID, category, amount); err != nil {
		return fmt.Errorf("recording spending: %w", err)
	}

	return nil
}
