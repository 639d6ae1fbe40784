// Package usecase implements the business logic for the summaries feature.
package usecase

import "errors"

var (
	// ErrSummaryNotFound is returned when a summary is absent, not owned by
	// the caller, or (for remove-from-folder) not in the named folder.
	ErrSummaryNotFound = errors.New("summary not found")

	// ErrFolderNotFound is returned when a referenced folder does not exist
	// or is not owned by the caller.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrNoExtractableText is returned when the document yields no text to
	// summarize.
	ErrNoExtractableText = errors.New("no extractable text in document")

	// ErrInvalidMode is returned when the requested summary mode is not one
	// of concise, standard, detailed.
	ErrInvalidMode = errors.New("invalid summary mode")

	// ErrGenerationFailed wraps failures from the upstream summarization
	// service.
	ErrGenerationFailed = errors.New("summary generation failed")
)
