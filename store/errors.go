package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound means the lookup matched no row.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicateEmail means an insert violated the unique email
	// constraint on users.
	ErrDuplicateEmail = errors.New("store: email already registered")
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
