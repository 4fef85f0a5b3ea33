package models

import "time"

const (
	TransactionIncome  = "Income"
	TransactionExpense = "Expense"
)

type Transaction struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Date        time.Time `db:"occurred_on"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Type        string    `db:"kind"`
	Amount      float64   `db:"amount"`
}
