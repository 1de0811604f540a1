package config

import (
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the whole config. Missing search credentials are reported
// here so the session fails before any search is attempted.
func (c *Config) Validate() []ValidationError {
	errors := append([]ValidationError(nil), c.envErrors...)

	// Validate Search config
	if c.Search.APIKey == "" {
		errors = append(errors, ValidationError{
			Field:   "search.api_key",
			Message: "search API key is required",
		})
	}

	if c.Search.EngineID == "" {
		errors = append(errors, ValidationError{
			Field:   "search.engine_id",
			Message: "search engine ID is required",
		})
	}

	if u, err := url.Parse(c.Search.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "search.base_url",
			Message: "invalid search base URL",
		})
	}

	if c.Search.MaxResults < 1 || c.Search.MaxResults > 10 {
		errors = append(errors, ValidationError{
			Field:   "search.max_results",
			Message: "max_results must be between 1 and 10",
		})
	}

	if c.Search.MaxQueryChars < 1 {
		errors = append(errors, ValidationError{
			Field:   "search.max_query_chars",
			Message: "max_query_chars must be positive",
		})
	}

	if c.Search.RateLimit < 0 {
		errors = append(errors, ValidationError{
			Field:   "search.rate_limit",
			Message: "rate_limit must not be negative",
		})
	}

	// Validate Fetcher config
	if c.Fetcher.Timeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "fetcher.timeout",
			Message: "timeout must be positive",
		})
	}

	if c.Fetcher.Concurrency < 1 || c.Fetcher.Concurrency > 32 {
		errors = append(errors, ValidationError{
			Field:   "fetcher.concurrency",
			Message: "concurrency must be between 1 and 32",
		})
	}

	if c.Fetcher.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "fetcher.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	if c.Fetcher.MaxBodyBytes < 1 {
		errors = append(errors, ValidationError{
			Field:   "fetcher.max_body_bytes",
			Message: "max_body_bytes must be positive",
		})
	}

	switch c.Extractor.Mode {
	case "paragraphs", "readability":
	default:
		errors = append(errors, ValidationError{
			Field:   "extractor.mode",
			Message: fmt.Sprintf("unknown extractor mode: %s", c.Extractor.Mode),
		})
	}

	switch c.Scoring.Method {
	case "tfidf", "embedding":
	default:
		errors = append(errors, ValidationError{
			Field:   "scoring.method",
			Message: fmt.Sprintf("unknown scoring method: %s", c.Scoring.Method),
		})
	}

	if c.Scoring.SummaryWords < 1 {
		errors = append(errors, ValidationError{
			Field:   "scoring.summary_words",
			Message: "summary_words must be positive",
		})
	}

	// Validate Match config
	if c.Match.Threshold < 0 || c.Match.Threshold >= 1 {
		errors = append(errors, ValidationError{
			Field:   "match.threshold",
			Message: "threshold must be in [0, 1)",
		})
	}

	switch c.Match.Order {
	case "retrieval", "score":
	default:
		errors = append(errors, ValidationError{
			Field:   "match.order",
			Message: fmt.Sprintf("unknown result order: %s", c.Match.Order),
		})
	}

	if c.Scoring.Method == "embedding" {
		if _, err := url.Parse(c.LLM.BaseURL); err != nil || c.LLM.BaseURL == "" {
			errors = append(errors, ValidationError{
				Field:   "llm.base_url",
				Message: "invalid Ollama base URL",
			})
		}
	}

	return errors
}
