// Package auth implements registration, login and logout on top of
// the credential store and the session manager.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"cryptocortex/logger"
	"cryptocortex/models"
	"cryptocortex/store"
)

// UserStore is the slice of the credential store the service needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, email, username, passwordHash string) (int64, error)
}

// SessionStore creates and destroys login sessions.
type SessionStore interface {
	Create(ctx context.Context, user models.UserSnapshot, userAgent, ipAddress string) (*models.Session, error)
	Destroy(ctx context.Context, token string) error
}

type RegisterForm struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	// min alone also rejects the empty password, so the reported rule
	// is always the length one, as on the reference registration form.
	Password string `validate:"min=6"`
}

type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Service holds no mutable state of its own; the store and the session
// backend provide whatever atomicity is needed.
type Service struct {
	users    UserStore
	sessions SessionStore
	validate *validator.Validate
}

func NewService(users UserStore, sessions SessionStore) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		validate: validator.New(),
	}
}

// Register validates the form, checks email uniqueness, hashes the
// password and persists the user. It does not log the user in; the
// caller still has to go through Login.
func (s *Service) Register(ctx context.Context, form RegisterForm) (int64, error) {
	if err := s.validate.Struct(form); err != nil {
		return 0, firstValidationError(err)
	}

	_, err := s.users.FindByEmail(ctx, form.Email)
	if err == nil {
		return 0, store.ErrDuplicateEmail
	}
	if !errors.Is(err, store.ErrNotFound) {
		return 0, fmt.Errorf("checking email availability: %w", err)
	}

	hash, err := HashPassword(form.Password)
	if err != nil {
		return 0, fmt.Errorf("hashing password: %w", err)
	}

	// The unique index closes the race between the check above and
	// this insert: a concurrent duplicate still fails cleanly.
	id, err := s.users.CreateUser(ctx, form.Email, form.Username, hash)
	if err != nil {
		return 0, err
	}

	logger.Log.Infow("user registered", "email", form.Email, "id", id)
	return id, nil
}

// Login verifies the credentials and creates a session holding the
// trimmed user snapshot. Unknown email and wrong password return the
// identical error so callers cannot enumerate accounts.
func (s *Service) Login(ctx context.Context, form LoginForm, userAgent, ipAddress string) (*models.Session, error) {
	if err := s.validate.Struct(form); err != nil {
		return nil, firstValidationError(err)
	}

	user, err := s.users.FindByEmail(ctx, form.Email)
	if errors.Is(err, store.ErrNotFound) {
		logger.Log.Infow("login failed: unknown email", "email", form.Email)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !CheckPassword(form.Password, user.PasswordHash) {
		logger.Log.Infow("login failed: password mismatch", "email", form.Email)
		return nil, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, user.Snapshot(), userAgent, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	logger.Log.Infow("login successful", "email", form.Email)
	return sess, nil
}

// Logout destroys the session. Best-effort: the user-facing outcome is
// "logged out" even when the session backend fails, so the caller
// redirects regardless of the returned error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, token); err != nil {
		logger.Log.Warnw("session destroy failed", "error", err)
		return err
	}
	return nil
}

// firstValidationError maps the first failing rule to a user-facing
// message, matching the reference behavior of reporting one rule at a
// time.
func firstValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: "invalid input"}
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())

	var message string
	switch {
	case field == "username":
		message = "Username is required"
	case field == "email":
		message = "Invalid email format"
	case field == "password" && fe.Tag() == "min":
		message = "Password must be at least 6 characters"
	case field == "password":
		message = "Password is required"
	default:
		message = "invalid input"
	}

	return &ValidationError{Field: field, Message: message}
}
