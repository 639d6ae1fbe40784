package di

import (
	"context"
	"log"
	"log/slog"

	"docsummary_backend/internal/feature/summaries/adapters/gemini"
	"docsummary_backend/internal/platform/extract"
	"docsummary_backend/internal/platform/extract/vision"
)

// NewSummarizer creates a fully configured Gemini summarization client.
// The LLM is the core of the summarization pipeline, so a failure here is fatal.
func NewSummarizer(ctx context.Context) *gemini.GeminiSummarizer {
	g, err := gemini.NewGeminiSummarizer(ctx)
	if err != nil {
		log.Fatalf("failed to create summarizer: %v", err)
	}
	return g
}

// NewTextExtractor creates the document text extractor.
// Vision OCR is optional: without it, scanned PDFs yield a 400 instead of
// falling back to OCR.
func NewTextExtractor(ctx context.Context) *extract.Extractor {
	ocr, err := vision.NewVisionOCR(ctx)
	if err != nil {
		slog.Warn("Vision OCR unavailable, scanned PDFs will not be summarizable", "error", err)
		return extract.New(nil)
	}
	return extract.New(ocr)
}
