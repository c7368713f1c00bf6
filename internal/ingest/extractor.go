package ingest

import (
	"context"
	"fmt"
)

// TextExtractor pulls raw text out of a document such as a screenshot.
// OCR engines and clipboard readers live behind this interface.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// TextExtractorFunc adapts a plain function to TextExtractor.
type TextExtractorFunc func(ctx context.Context, path string) (string, error)

func (f TextExtractorFunc) ExtractText(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}

// FromExtractor extracts text from path and parses it leniently.
func FromExtractor(ctx context.Context, ex TextExtractor, path string) (Result, error) {
	text, err := ex.ExtractText(ctx, path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to extract text from %s: %w", path, err)
	}
	return ParseText(text, Lenient()), nil
}
