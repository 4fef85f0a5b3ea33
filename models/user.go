package models

type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
}

// UserSnapshot is the session-safe view of a user. The password hash
// never leaves the credential store with it.
type UserSnapshot struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
