// Package usecase implements the business logic for the documents feature.
package usecase

import "errors"

var (
	// ErrDocumentNotFound is returned when a document is absent or not owned
	// by the caller. The two cases are deliberately indistinguishable.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrUnsupportedFileType is returned when the uploaded file's extension
	// is not on the allow-list (.pdf, .docx, .pptx).
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
