package models

import "time"

// User represents a registered account in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the identity embedded in posts and comments.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Public strips a user down to the fields safe to nest in other payloads.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}
