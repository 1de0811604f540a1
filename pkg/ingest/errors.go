package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedModality matches every *UnsupportedModalityError.
	ErrUnsupportedModality = errors.New("unsupported input format")

	// ErrUndecodableText is returned when plain-text input is not valid UTF-8.
	ErrUndecodableText = errors.New("input is not valid UTF-8 text")

	// ErrNoTextDetected is returned when OCR finds no text in an image.
	ErrNoTextDetected = errors.New("no text detected in image")

	// ErrUnreadableDocument is returned when a PDF cannot be opened at all.
	ErrUnreadableDocument = errors.New("unreadable document")

	// ErrOCRUnavailable is returned for image input when no OCR engine is configured.
	ErrOCRUnavailable = errors.New("no OCR engine configured")
)

// UnsupportedModalityError names the format that could not be handled.
type UnsupportedModalityError struct {
	Format string
}

func (e *UnsupportedModalityError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsupportedModality, e.Format)
}

func (e *UnsupportedModalityError) Is(target error) bool {
	return target == ErrUnsupportedModality
}
