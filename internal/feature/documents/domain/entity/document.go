// Package entity defines the domain entities for the documents feature.
package entity

import "time"

// Document represents one uploaded office document (PDF/DOCX/PPTX).
// The bytes live on disk under StoragePath; the row only carries metadata.
type Document struct {
	// ID is the unique identifier for the document.
	ID uint `gorm:"primaryKey"`

	// OwnerEmail scopes the document to the user who uploaded it.
	// Every read, update and delete filters on it.
	OwnerEmail string `gorm:"index;size:255;not null"`

	// Filename is the name the client supplied at upload time. It is kept
	// for display and download only, never used for storage.
	Filename string `gorm:"size:512;not null"`

	// StoragePath is the server-generated location of the stored bytes.
	StoragePath string `gorm:"size:512;not null"`

	// UploadDate is the timestamp of the upload.
	UploadDate time.Time
}
