package models

type Budget struct {
	ID       int64   `db:"id"`
	UserID   int64   `db:"user_id"`
	Category string  `db:"category"`
	Limit    float64 `db:"limit_amount"`
	Spent    float64 `db:"spent"`
}

// Exceeded reports whether spending has passed the budget limit.
func (b Budget) Exceeded() bool {
	return b.Spent > b.Limit
}
