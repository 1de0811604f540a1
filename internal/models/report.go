package models

import (
	"fmt"
	"time"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Diagnostic is a non-fatal message produced while checking a submission.
type Diagnostic struct {
	Time    time.Time `json:"time"`
	Level   Level     `json:"level"`
	Stage   string    `json:"stage"`
	URL     string    `json:"url,omitempty"`
	Message string    `json:"message"`
}

// Report is everything one Check call produced.
type Report struct {
	ID          string          `json:"id"`
	Input       NormalizedInput `json:"-"`
	Language    string          `json:"language"`
	Query       Query           `json:"-"`
	Candidates  []Candidate     `json:"-"`
	Results     ResultSet       `json:"results"`
	Diagnostics []Diagnostic    `json:"diagnostics"`
	Threshold   float64         `json:"threshold"`
	Order       string          `json:"order"`
	Elapsed     time.Duration   `json:"elapsed"`
}

// Summary is the one-line outcome shown to the user.
func (r *Report) Summary() string {
	if len(r.Results) == 0 {
		return "no matches"
	}
	if len(r.Results) == 1 {
		return "found 1 potential match"
	}
	return fmt.Sprintf("found %d potential matches", len(r.Results))
}
