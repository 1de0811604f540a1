package ingest

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/xhad/copyscan/internal/models"
)

var hintModalities = map[string]models.Modality{
	"text/plain":      models.ModalityPlainText,
	"application/pdf": models.ModalityPDF,
	"image/jpeg":      models.ModalityImage,
	"image/jpg":       models.ModalityImage,
	"image/png":       models.ModalityImage,
	".txt":            models.ModalityPlainText,
	".pdf":            models.ModalityPDF,
	".jpg":            models.ModalityImage,
	".jpeg":           models.ModalityImage,
	".png":            models.ModalityImage,
	"text":            models.ModalityPlainText,
	"pdf":             models.ModalityPDF,
	"image":           models.ModalityImage,
}

// ModalityFromHint maps a MIME type, file name or extension to a modality.
func ModalityFromHint(hint string) (models.Modality, error) {
	h := strings.ToLower(strings.TrimSpace(hint))
	if h == "" {
		return models.ModalityUnknown, &UnsupportedModalityError{Format: "(empty)"}
	}

	if mediaType, _, err := mime.ParseMediaType(h); err == nil {
		if m, ok := hintModalities[mediaType]; ok {
			return m, nil
		}
	}
	if m, ok := hintModalities[h]; ok {
		return m, nil
	}
	if m, ok := hintModalities[filepath.Ext(h)]; ok {
		return m, nil
	}

	return models.ModalityUnknown, &UnsupportedModalityError{Format: hint}
}
