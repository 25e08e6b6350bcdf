// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account that owns catalog rows.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize
	Name         string    `json:"name"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileResponse is the representation returned by the profile endpoints.
// Credentials are never included.
type ProfileResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ToProfile converts a User to its profile representation.
func (u *User) ToProfile() ProfileResponse {
	return ProfileResponse{
		Email: u.Email,
		Name:  u.Name,
	}
}

// AuthContext holds the authenticated identity for a request.
// This is injected into the request context by auth middleware.
type AuthContext struct {
	UserID  string
	Email   string
	IsStaff bool
	TokenID string
}
