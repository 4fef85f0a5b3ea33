package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"cryptocortex/models"
)

// FindByEmail returns the user with exactly this email, or ErrNotFound.
func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stmt := "SELECT id, username, email, password FROM users WHERE email = $1;"

	var u models.User
	err := s.pool.QueryRow(ctx, stmt, email).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user by email: %w", err)
	}

	return &u, nil
}

// CreateUser inserts a user row and returns the assigned id. The
// unique index on email makes the insert atomic: a concurrent
// duplicate fails with ErrDuplicateEmail and leaves no partial row.
func (s *Store) CreateUser(ctx context.Context, email, username, passwordHash string) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stmt := "INSERT INTO users (email, username, password) VALUES ($1, $2, $3) RETURNING id;"

	var id int64
	err := s.pool.QueryRow(ctx, stmt, email, username, passwordHash).Scan(&id)
	if isUniqueViolation(err) {
		return 0, ErrDuplicateEmail
	}
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}

	return id, nil
}
