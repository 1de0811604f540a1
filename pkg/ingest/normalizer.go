// Package ingest turns raw submissions (text, PDF, image) into plain text.
package ingest

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/xhad/copyscan/internal/models"
	"github.com/xhad/copyscan/internal/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normalizer converts any supported modality into a single plain-text string.
type Normalizer struct {
	ocr    types.OCR
	logger *slog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithOCR sets the engine used for image input.
func WithOCR(ocr types.OCR) Option {
	return func(n *Normalizer) {
		n.ocr = ocr
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger.With("component", "normalizer")
		}
	}
}

// NewNormalizer returns a Normalizer without OCR unless WithOCR is given.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		logger: slog.Default().With("component", "normalizer"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize returns the text of data. Language is left for the caller to fill.
func (n *Normalizer) Normalize(ctx context.Context, data []byte, modality models.Modality) (models.NormalizedInput, error) {
	var (
		text string
		err  error
	)

	switch modality {
	case models.ModalityPlainText:
		text, err = decodeText(data)
	case models.ModalityPDF:
		text, err = extractPDFText(data)
		if err == nil && text == "" {
			n.logger.Warn("pdf has no extractable text layer", "bytes", len(data))
		}
	case models.ModalityImage:
		text, err = n.recognize(ctx, data)
	default:
		err = &UnsupportedModalityError{Format: modality.String()}
	}
	if err != nil {
		return models.NormalizedInput{}, err
	}

	n.logger.Debug("normalized input", "modality", modality, "chars", utf8.RuneCountInString(text))
	return models.NormalizedInput{
		Text:     text,
		Modality: modality,
		Language: models.LanguageUnknown,
	}, nil
}

func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", ErrUndecodableText
	}
	return string(data), nil
}

func (n *Normalizer) recognize(ctx context.Context, image []byte) (string, error) {
	if n.ocr == nil {
		return "", ErrOCRUnavailable
	}
	text, err := n.ocr.Recognize(ctx, image)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoTextDetected
	}
	return text, nil
}
