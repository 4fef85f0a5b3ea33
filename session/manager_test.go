package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptocortex/models"
	"cryptocortex/session"
)

func newTestManager(t *testing.T) (*session.Manager, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return session.NewManager(client, 24*time.Hour), client
}

func snapshot(id int64, username, email string) models.UserSnapshot {
	return models.UserSnapshot{ID: id, Username: username, Email: email}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	created, err := m.Create(ctx, snapshot(1, "alice", "a@x.com"), "ua", "10.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, created.Token)

	got, err := m.Get(ctx, created.Token)
	require.NoError(t, err)
	assert.Equal(t, created.User, got.User)
	assert.Equal(t, "ua", got.UserAgent)
	assert.Equal(t, "10.0.0.1", got.IPAddress)
}

func TestGetUnknownToken(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Get(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestGetRejectsExpiredSession(t *testing.T) {
	m, client := newTestManager(t)
	ctx := context.Background()

	// A session whose expires_at has passed but whose key still
	// exists must be treated the same as an absent one.
	past := time.Now().Add(-time.Minute).Format(time.RFC3339)
	require.NoError(t, client.HSet(ctx, "session:stale", map[string]any{
		"user_id":    "1",
		"username":   "alice",
		"email":      "a@x.com",
		"created_at": past,
		"expires_at": past,
	}).Err())

	_, err := m.Get(ctx, "stale")
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestDestroyIsIdempotent(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	created, err := m.Create(ctx, snapshot(1, "alice", "a@x.com"), "", "")
	require.NoError(t, err)

	require.NoError(t, m.Destroy(ctx, created.Token))
	_, err = m.Get(ctx, created.Token)
	require.ErrorIs(t, err, session.ErrNoSession)

	// Destroying the same token again must not fail.
	assert.NoError(t, m.Destroy(ctx, created.Token))
}

func TestDestroyAllRemovesOnlyThatUsersSessions(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	first, err := m.Create(ctx, snapshot(1, "alice", "a@x.com"), "", "")
	require.NoError(t, err)
	second, err := m.Create(ctx, snapshot(1, "alice", "a@x.com"), "", "")
	require.NoError(t, err)
	other, err := m.Create(ctx, snapshot(2, "bob", "b@x.com"), "", "")
	require.NoError(t, err)

	require.NoError(t, m.DestroyAll(ctx, 1))

	_, err = m.Get(ctx, first.Token)
	assert.ErrorIs(t, err, session.ErrNoSession)
	_, err = m.Get(ctx, second.Token)
	assert.ErrorIs(t, err, session.ErrNoSession)

	got, err := m.Get(ctx, other.Token)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.User.Username)
}

func TestFlashIsPoppedExactlyOnce(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	w := httptest.NewRecorder()
	require.NoError(t, m.PutFlash(ctx, w, "Please log in to access this page"))

	// Carry the flash cookie into the next request, as a browser would.
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}

	first := m.PopFlash(ctx, httptest.NewRecorder(), req)
	assert.Equal(t, "Please log in to access this page", first)

	second := m.PopFlash(ctx, httptest.NewRecorder(), req)
	assert.Empty(t, second)
}
