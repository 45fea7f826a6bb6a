// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered member of the prompt library.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Avatar       *string   `json:"avatar,omitempty"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the projection of a user that is safe to embed in
// responses about other people's content (prompt authors, reviewers).
type PublicUser struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar *string   `json:"avatar,omitempty"`
}

// Public returns the user's public projection.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}
