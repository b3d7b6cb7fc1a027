package models

import "time"

// User is an account of the SQL record store.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type RefreshToken struct {
	UserID  string
	Token   string
	Expires time.Time
}

// LockboxCredential is the hashed passphrase guarding private entries.
type LockboxCredential struct {
	UserID string
	Hash   string
}

// Session is what a successful sign-in yields and what the local session
// database persists between runs.
type Session struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Valid reports whether s identifies a user and can be resumed.
func (s Session) Valid() bool {
	return s.UserID != "" && s.RefreshToken != ""
}
