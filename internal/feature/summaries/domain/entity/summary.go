// Package entity defines the domain entities for the summaries feature.
package entity

import "time"

// Mode selects how much detail the generated summary should carry.
type Mode string

const (
	ModeConcise  Mode = "concise"
	ModeStandard Mode = "standard"
	ModeDetailed Mode = "detailed"
)

// IsValid reports whether m is one of the three supported modes.
func (m Mode) IsValid() bool {
	switch m {
	case ModeConcise, ModeStandard, ModeDetailed:
		return true
	}
	return false
}

// Summary is one AI-generated summary of a document. It may be filed into a
// folder (FolderID) and annotated with a free-form note; both start empty.
type Summary struct {
	// ID is the unique identifier for the summary.
	ID uint `gorm:"primaryKey"`

	// DocID references the summarized document.
	DocID uint `gorm:"index;not null"`

	// OwnerEmail scopes the summary to its owner.
	OwnerEmail string `gorm:"index;size:255;not null"`

	// Filename is a denormalized copy of the document's filename, kept so
	// listings survive a later document delete without a join.
	Filename string `gorm:"size:512;not null"`

	// Mode is the verbosity the summary was generated with.
	Mode Mode `gorm:"size:16;not null"`

	// SummaryText is the generated summary.
	SummaryText string `gorm:"type:text;not null"`

	// FolderID is the folder the summary is filed into, nil when unfiled.
	FolderID *uint `gorm:"index"`

	// Note is the user's free-form annotation, nil until set.
	Note *string `gorm:"type:text"`

	// CreatedAt is the generation timestamp. Listings order by it, newest first.
	CreatedAt time.Time
}
