package handlers

import (
	"errors"
	"net/http"

	"cryptocortex/auth"
	"cryptocortex/logger"
	"cryptocortex/models"
	"cryptocortex/session"
	"cryptocortex/store"
)

type authPageData struct {
	models.PageData
}

// LoginPage renders the login form, bouncing visitors that already
// hold a live session back home.
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.loggedIn(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := authPageData{}
	data.Flash = h.sessions.PopFlash(r.Context(), w, r)
	h.render(w, "login.html", data)
}

// Login handles the login form post. Auth failures re-render the form
// with a single error string and HTTP 200; only the redirect marks
// success.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	form := auth.LoginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	sess, err := h.auth.Login(r.Context(), form, session.GetUserAgent(r), session.GetIP(r))
	if err != nil {
		data := authPageData{}

		var verr *auth.ValidationError
		switch {
		case errors.As(err, &verr):
			data.Error = verr.Message
		case errors.Is(err, auth.ErrInvalidCredentials):
			data.Error = "Invalid email or password."
		default:
			logger.Log.Errorw("login failed", "error", err)
			data.Error = "An error occurred during login. Please try again."
		}

		h.render(w, "login.html", data)
		return
	}

	session.SetCookie(w, sess.Token, h.sessionTTL)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterPage renders the registration form.
func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if h.loggedIn(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := authPageData{}
	data.Flash = h.sessions.PopFlash(r.Context(), w, r)
	h.render(w, "register.html", data)
}

// Register handles the registration form post. Registration does not
// log the user in; on success it redirects to the login page.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	// Registering while authenticated is a no-op redirect.
	if h.loggedIn(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	form := auth.RegisterForm{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	if _, err := h.auth.Register(r.Context(), form); err != nil {
		data := authPageData{}

		var verr *auth.ValidationError
		switch {
		case errors.As(err, &verr):
			data.Error = verr.Message
		case errors.Is(err, store.ErrDuplicateEmail):
			data.Error = "Email already exists."
		default:
			logger.Log.Errorw("registration failed", "error", err)
			data.Error = "Error occurred during registration."
		}

		h.render(w, "register.html", data)
		return
	}

	if err := h.sessions.PutFlash(r.Context(), w, "Registration successful. Please login"); err != nil {
		logger.Log.Warnw("flash store failed", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout destroys the session best-effort and always redirects to the
// login page, even when the session backend is unreachable.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	token := session.TokenFromRequest(r)
	if err := h.auth.Logout(r.Context(), token); err != nil {
		logger.Log.Warnw("logout cleanup failed", "error", err)
	}

	session.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LogoutEverywhere destroys every session the user holds, on any
// device, then logs this client out too.
func (h *Handlers) LogoutEverywhere(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())
	if err := h.sessions.DestroyAll(r.Context(), user.ID); err != nil {
		logger.Log.Warnw("logout-all cleanup failed", "error", err, "user", user.ID)
	}

	if err := h.sessions.PutFlash(r.Context(), w, "Logged out on all devices"); err != nil {
		logger.Log.Warnw("flash store failed", "error", err)
	}
	session.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
