package models

import "fmt"

// Modality identifies how a submission's raw bytes are to be turned into text.
type Modality int

const (
	ModalityUnknown Modality = iota
	ModalityPlainText
	ModalityPDF
	ModalityImage
)

func (m Modality) String() string {
	switch m {
	case ModalityPlainText:
		return "text"
	case ModalityPDF:
		return "pdf"
	case ModalityImage:
		return "image"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// LanguageUnknown is reported when no language could be detected.
const LanguageUnknown = "unknown"

// NormalizedInput is the plain-text form of one user submission.
type NormalizedInput struct {
	Text     string
	Modality Modality
	Language string
}

// Query is the bounded search string derived from a NormalizedInput.
type Query struct {
	Text      string
	Truncated bool
}

func (q Query) IsEmpty() bool {
	return q.Text == ""
}
