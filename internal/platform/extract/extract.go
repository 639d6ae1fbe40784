// Package extract turns stored office documents (PDF/DOCX/PPTX) into plain
// text. The format is selected by file extension; each format has one
// extraction function with a uniform contract: text out, or an error when
// the file is unsupported, corrupt, or carries no text.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoExtractableText is returned when a document yields no text, or
	// cannot be parsed at all. Whitespace-only output counts as no text.
	ErrNoExtractableText = errors.New("no extractable text")

	// ErrUnsupportedFormat is returned for extensions outside the closed
	// enumeration handled here.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// OCR recovers text from a PDF that has no machine-readable text layer
// (typically a scanned document). Optional: a nil OCR disables the fallback.
type OCR interface {
	RecoverText(ctx context.Context, pdfData []byte) (string, error)
}

// Extractor dispatches text extraction by file extension.
type Extractor struct {
	ocr OCR
}

// New creates an Extractor. Pass nil to run without the OCR fallback.
func New(ocr OCR) *Extractor {
	return &Extractor{ocr: ocr}
}

// Extract reads the document at path and returns its plain text.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	var (
		text string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = extractPDF(path)
		if err == nil && strings.TrimSpace(text) == "" && e.ocr != nil {
			text, err = e.recoverScanned(ctx, path)
		}
	case ".docx":
		text, err = extractDOCX(path)
	case ".pptx":
		text, err = extractPPTX(path)
	default:
		return "", ErrUnsupportedFormat
	}

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoExtractableText, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoExtractableText
	}
	return text, nil
}

// recoverScanned feeds the raw PDF bytes to the OCR fallback.
func (e *Extractor) recoverScanned(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return e.ocr.RecoverText(ctx, data)
}
