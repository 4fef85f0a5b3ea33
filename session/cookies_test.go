package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cryptocortex/session"
)

func TestCookieExists(t *testing.T) {
	tests := []struct {
		name       string
		setupReq   func() *http.Request
		cookieName string
		want       bool
	}{
		{
			name: "Cookie exists with value",
			setupReq: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.AddCookie(&http.Cookie{Name: "session_token", Value: "abc123"})
				return req
			},
			cookieName: "session_token",
			want:       true,
		},
		{
			name: "Cookie exists but empty value",
			setupReq: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.AddCookie(&http.Cookie{Name: "session_token", Value: ""})
				return req
			},
			cookieName: "session_token",
			want:       false,
		},
		{
			name: "Cookie doesn't exist",
			setupReq: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/", nil)
			},
			cookieName: "session_token",
			want:       false,
		},
		{
			name: "Different cookie exists",
			setupReq: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.AddCookie(&http.Cookie{Name: "other_cookie", Value: "xyz789"})
				return req
			},
			cookieName: "session_token",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := session.CookieExists(tt.setupReq(), tt.cookieName); got != tt.want {
				t.Errorf("CookieExists() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := session.TokenFromRequest(req); got != "" {
		t.Errorf("TokenFromRequest() = %q on a bare request, want empty", got)
	}

	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "tok-1"})
	if got := session.TokenFromRequest(req); got != "tok-1" {
		t.Errorf("TokenFromRequest() = %q, want %q", got, "tok-1")
	}
}

func TestSetCookieAttributes(t *testing.T) {
	rec := httptest.NewRecorder()
	session.SetCookie(rec, "tok-1", 24*time.Hour)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	c := cookies[0]
	if c.Name != session.CookieName || c.Value != "tok-1" {
		t.Errorf("cookie = %s=%s, want %s=tok-1", c.Name, c.Value, session.CookieName)
	}
	if !c.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Error("session cookie must be SameSite=Strict")
	}
	if c.MaxAge != int((24 * time.Hour).Seconds()) {
		t.Errorf("MaxAge = %d, want 24h in seconds", c.MaxAge)
	}
}

func TestClearCookieExpiresSession(t *testing.T) {
	rec := httptest.NewRecorder()
	session.ClearCookie(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Errorf("ClearCookie() left value=%q maxAge=%d", cookies[0].Value, cookies[0].MaxAge)
	}
}

func TestGetIP(t *testing.T) {
	tests := []struct {
		name      string
		forwarded string
		remote    string
		want      string
	}{
		{name: "Prefers X-Forwarded-For", forwarded: "10.0.0.1", remote: "192.168.0.1:1234", want: "10.0.0.1"},
		{name: "Falls back to RemoteAddr", forwarded: "", remote: "192.168.0.1:1234", want: "192.168.0.1:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := session.GetIP(req); got != tt.want {
				t.Errorf("GetIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
