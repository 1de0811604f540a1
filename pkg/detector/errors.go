package detector

import (
	"errors"

	"github.com/xhad/copyscan/pkg/search"
)

var (
	// ErrNoContent is returned when the submission has no searchable text.
	ErrNoContent = errors.New("submission has no text to check")

	// ErrMissingCredentials is returned by New when no retriever is injected
	// and the config lacks a search API key or engine ID.
	ErrMissingCredentials = search.ErrMissingCredentials
)
