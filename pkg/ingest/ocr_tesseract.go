//go:build cgo && !noocr

package ingest

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractOCR recognizes text with a local Tesseract installation.
type TesseractOCR struct {
	Language string
}

// NewTesseractOCR returns an engine for the given Tesseract language, "eng"
// when empty.
func NewTesseractOCR(language string) *TesseractOCR {
	if language == "" {
		language = "eng"
	}
	return &TesseractOCR{Language: language}
}

// Recognize runs OCR over an encoded image (PNG, JPEG). A fresh client is
// used per call since gosseract clients are not safe for concurrent use.
func (t *TesseractOCR) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.Language); err != nil {
		return "", fmt.Errorf("ocr language %q: %w", t.Language, err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("ocr image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return text, nil
}
