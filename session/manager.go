// Package session keeps server-side sessions in Redis, keyed by an
// opaque token carried in a cookie. Only the trimmed user snapshot is
// ever stored; the password hash cannot enter a session.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"cryptocortex/models"
)

// ErrNoSession means no live session exists for the token.
var ErrNoSession = errors.New("session: not found")

const opTimeout = 5 * time.Second

// Manager reads and writes sessions against a Redis client. Key
// layout: one hash per session under "session:<token>" with a TTL,
// plus a per-user index set under "user_sessions:<id>".
type Manager struct {
	client *redis.Client
	ttl    time.Duration
}

// OpenRedis connects a pooled Redis client and verifies it with a ping.
func OpenRedis(dsn string) (*redis.Client, error) {
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing Redis DSN: %w", err)
	}

	opt.PoolSize = 100
	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("pinging Redis: %w", err)
	}

	return client, nil
}

func NewManager(client *redis.Client, ttl time.Duration) *Manager {
	return &Manager{client: client, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

func userIndexKey(userID int64) string {
	return "user_sessions:" + strconv.FormatInt(userID, 10)
}

// Create stores a new session for the user snapshot and returns it
// with a freshly generated token.
func (m *Manager) Create(ctx context.Context, user models.UserSnapshot, userAgent, ipAddress string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	token, err := generateToken(32)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &models.Session{
		Token:     token,
		User:      user,
		CreatedAt: now.Format(time.RFC3339),
		ExpiresAt: now.Add(m.ttl).Format(time.RFC3339),
		UserAgent: userAgent,
		IPAddress: ipAddress,
	}

	fields := map[string]any{
		"user_id":    sess.User.ID,
		"username":   sess.User.Username,
		"email":      sess.User.Email,
		"created_at": sess.CreatedAt,
		"expires_at": sess.ExpiresAt,
		"user_agent": sess.UserAgent,
		"ip_address": sess.IPAddress,
	}

	key := sessionKey(token)
	if err := m.client.HSet(ctx, key, fields).Err(); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}
	if err := m.client.Expire(ctx, key, m.ttl).Err(); err != nil {
		return nil, fmt.Errorf("setting session expiry: %w", err)
	}
	if err := m.client.SAdd(ctx, userIndexKey(user.ID), key).Err(); err != nil {
		return nil, fmt.Errorf("indexing session: %w", err)
	}

	return sess, nil
}

// Get returns the live session for a token, or ErrNoSession when the
// token is unknown or past its expiry.
func (m *Manager) Get(ctx context.Context, token string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	data, err := m.client.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("fetching session: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoSession
	}

	expiresAt, err := time.Parse(time.RFC3339, data["expires_at"])
	if err != nil || !time.Now().Before(expiresAt) {
		return nil, ErrNoSession
	}

	userID, err := strconv.ParseInt(data["user_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt session payload: %w", err)
	}

	return &models.Session{
		Token: token,
		User: models.UserSnapshot{
			ID:       userID,
			Username: data["username"],
			Email:    data["email"],
		},
		CreatedAt: data["created_at"],
		ExpiresAt: data["expires_at"],
		UserAgent: data["user_agent"],
		IPAddress: data["ip_address"],
	}, nil
}

// Destroy removes a session. Destroying a token that no longer exists
// is not an error, so logout stays idempotent.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	key := sessionKey(token)

	userID, err := m.client.HGet(ctx, key, "user_id").Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetching session owner: %w", err)
	}

	if id, convErr := strconv.ParseInt(userID, 10, 64); convErr == nil {
		if err := m.client.SRem(ctx, userIndexKey(id), key).Err(); err != nil {
			return fmt.Errorf("unindexing session: %w", err)
		}
	}

	if err := m.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	return nil
}

// DestroyAll removes every session belonging to a user.
func (m *Manager) DestroyAll(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	index := userIndexKey(userID)
	sessionKeys, err := m.client.SMembers(ctx, index).Result()
	if err != nil {
		return fmt.Errorf("listing user sessions: %w", err)
	}

	if len(sessionKeys) > 0 {
		if err := m.client.Del(ctx, sessionKeys...).Err(); err != nil {
			return fmt.Errorf("deleting user sessions: %w", err)
		}
	}

	return m.client.Del(ctx, index).Err()
}

func generateToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
