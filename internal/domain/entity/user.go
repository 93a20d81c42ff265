// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single account.
// The password is never stored in plain text; only the bcrypt hash lives here.
type User struct {
	ID           uuid.UUID // The unique identifier for the user, generated by the database.
	Username     string    // The unique login name chosen at registration.
	Email        string    // The user's unique contact email.
	FirstName    string    // The user's given name.
	LastName     string    // The user's family name.
	PasswordHash string    // The bcrypt hash of the user's password.
	IsActive     bool      // Whether the account may authenticate. Deactivated accounts are rejected at the auth gate.
	IsVerified   bool      // Whether the account's email has been verified.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}
