//go:build !cgo || noocr

package ingest

import "context"

// TesseractOCR stands in for the Tesseract engine in builds without cgo or
// with the noocr tag. Image input fails with ErrOCRUnavailable.
type TesseractOCR struct {
	Language string
}

// NewTesseractOCR mirrors the cgo constructor.
func NewTesseractOCR(language string) *TesseractOCR {
	if language == "" {
		language = "eng"
	}
	return &TesseractOCR{Language: language}
}

// Recognize always fails with ErrOCRUnavailable.
func (t *TesseractOCR) Recognize(ctx context.Context, _ []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "", ErrOCRUnavailable
}
