package entity

import "time"

// PendingRegistration holds a signup that has not yet been confirmed by
// e-mail code. At most one row exists per email; a repeated signup request
// overwrites the previous code and expiry.
type PendingRegistration struct {
	// Email is the address being registered. Primary key: one pending
	// registration per address.
	Email string `gorm:"primaryKey;size:255"`

	// Code is the 6-digit zero-padded verification code.
	Code string `gorm:"size:6;not null"`

	// PasswordHash is the bcrypt hash captured at signup time, promoted to
	// the User row once the code is confirmed.
	PasswordHash string `gorm:"size:255;not null"`

	// ExpiresAt is the absolute deadline for confirming the code.
	// Stale rows are removed lazily when a confirmation attempt hits them.
	ExpiresAt time.Time `gorm:"not null"`
}

// PasswordResetCode is one outstanding forgot-password code. Several rows may
// exist for the same email; each code is consumable exactly once and expired
// rows are never proactively swept.
type PasswordResetCode struct {
	// ID is the unique identifier for the reset code row.
	ID uint `gorm:"primaryKey"`

	// Email is the address the code was issued for.
	Email string `gorm:"index;size:255;not null"`

	// Code is the 6-digit zero-padded reset code.
	Code string `gorm:"index;size:6;not null"`

	// ExpiresAt is the absolute deadline for consuming the code.
	ExpiresAt time.Time `gorm:"not null"`
}
