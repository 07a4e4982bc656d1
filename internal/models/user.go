package models

import "time"

// User represents an account on the platform. Accounts with the Author flag
// set may create and manage posts; everyone else can only read and comment.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Author       bool      `json:"author"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DisplayName is the public byline used on posts and comments.
func (u User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
