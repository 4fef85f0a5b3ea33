package models

// Session associates an opaque client-held token with the snapshot of
// the user that logged in.
type Session struct {
	Token     string       `json:"session_token"`
	User      UserSnapshot `json:"user"`
	CreatedAt string       `json:"created_at"`
	ExpiresAt string       `json:"expires_at"`
	UserAgent string       `json:"user_agent"`
	IPAddress string       `json:"ip_address"`
}
