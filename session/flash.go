package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Flash messages are one-shot: stored once in Redis under a random
// key, referenced by a short-lived cookie, and deleted on first read.

const (
	flashCookieName = "flash_id"
	flashTTL        = 5 * time.Minute
)

func flashKey(id string) string {
	return "flash:" + id
}

// PutFlash queues a message for the next rendered page.
func (m *Manager) PutFlash(ctx context.Context, w http.ResponseWriter, message string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	id := uuid.NewString()
	if err := m.client.Set(ctx, flashKey(id), message, flashTTL).Err(); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    id,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(flashTTL.Seconds()),
	})

	return nil
}

// PopFlash returns the queued message, if any, and consumes it.
func (m *Manager) PopFlash(ctx context.Context, w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	message, err := m.client.GetDel(ctx, flashKey(c.Value)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})

	return message
}
