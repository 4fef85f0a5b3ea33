package handlers

import (
	"context"
	"errors"
	"net/http"

	"cryptocortex/logger"
	"cryptocortex/models"
	"cryptocortex/session"
)

type contextKey string

const userContextKey contextKey = "current_user"

// CurrentUser returns the snapshot the guard attached to the request,
// or nil outside protected routes.
func CurrentUser(ctx context.Context) *models.UserSnapshot {
	user, _ := ctx.Value(userContextKey).(*models.UserSnapshot)
	return user
}

// RequireAuth allows the request through iff a live session is
// attached to it; otherwise it queues a flash message and redirects
// to the login page.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := session.TokenFromRequest(r)
		if token == "" {
			h.denyAndRedirect(w, r)
			return
		}

		sess, err := h.sessions.Get(r.Context(), token)
		if err != nil {
			if !isNoSession(err) {
				logger.Log.Warnw("session lookup failed", "error", err)
			}
			h.denyAndRedirect(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, &sess.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handlers) denyAndRedirect(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.PutFlash(r.Context(), w, "Please log in to access this page"); err != nil {
		logger.Log.Warnw("flash store failed", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func isNoSession(err error) bool {
	return errors.Is(err, session.ErrNoSession)
}

// loggedIn reports whether the request carries a live session, for
// pages that bounce already-authenticated visitors back home.
func (h *Handlers) loggedIn(r *http.Request) bool {
	if !session.CookieExists(r, session.CookieName) {
		return false
	}
	_, err := h.sessions.Get(r.Context(), session.TokenFromRequest(r))
	return err == nil
}
