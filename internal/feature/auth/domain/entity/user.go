// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// A row exists only after the e-mail verification code has been consumed;
// unverified signups live in PendingRegistration until then.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This must never store plaintext passwords.
	PasswordHash string `gorm:"size:255;not null"`

	// IsVerified reports whether the e-mail address has been confirmed.
	IsVerified bool `gorm:"not null;default:false"`

	// FirstName and LastName are profile fields, editable via /users/me.
	FirstName string `gorm:"size:255"`
	LastName  string `gorm:"size:255"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
