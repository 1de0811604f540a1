// Package search retrieves candidate URLs from the Google Custom Search JSON API.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/xhad/copyscan/internal/models"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/customsearch/v1"
	// MaxResults is the most results the API returns per call.
	MaxResults = 10
)

// ClientConfig holds the credentials and limits for the search client.
type ClientConfig struct {
	APIKey     string
	EngineID   string
	BaseURL    string
	MaxResults int
	Timeout    time.Duration
	// RateLimit is requests per second; 0 disables limiting.
	RateLimit  float64
	UserAgent  string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client issues one search per Retrieve call. It never retries.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

func NewClient(config ClientConfig) (*Client, error) {
	if config.APIKey == "" || config.EngineID == "" {
		return nil, ErrMissingCredentials
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.MaxResults <= 0 || config.MaxResults > MaxResults {
		config.MaxResults = MaxResults
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "copyscan/1.0"
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger.With("component", "search"),
	}, nil
}

// Retrieve returns candidates in API relevance order.
func (c *Client) Retrieve(ctx context.Context, query models.Query) ([]models.Candidate, error) {
	if query.IsEmpty() {
		return nil, &APIError{Kind: KindStatus, Message: "empty query"}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &APIError{Kind: KindTransport, Message: "rate limit wait", Err: err}
		}
	}

	params := url.Values{}
	params.Set("key", c.config.APIKey)
	params.Set("cx", c.config.EngineID)
	params.Set("q", query.Text)
	params.Set("num", strconv.Itoa(c.config.MaxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Message: "creating request", Err: err}
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Err: redactKey(err, c.config.APIKey)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, &APIError{Kind: KindDecode, StatusCode: resp.StatusCode, Err: err}
	}

	candidates := make([]models.Candidate, 0, len(sr.Items))
	for _, item := range sr.Items {
		if item.Link == "" {
			continue
		}
		candidates = append(candidates, models.Candidate{
			URL:     item.Link,
			Title:   item.Title,
			Snippet: item.Snippet,
			Rank:    len(candidates),
		})
	}

	c.logger.Debug("search complete",
		"results", len(candidates),
		"truncated_query", query.Truncated,
		"elapsed", time.Since(start))
	return candidates, nil
}

func statusError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var er errorResponse
	_ = json.Unmarshal(body, &er)
	message := er.Error.Message
	if message == "" {
		message = resp.Status
	}

	kind := KindStatus
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		kind = KindAuth
	case http.StatusForbidden:
		kind = KindAuth
		if er.isQuota() {
			kind = KindQuota
		}
	case http.StatusTooManyRequests:
		kind = KindQuota
	}

	return &APIError{Kind: kind, StatusCode: resp.StatusCode, Message: message}
}

// redactKey keeps the API key out of transport errors, which embed the URL.
func redactKey(err error, key string) error {
	msg := err.Error()
	if key == "" || !strings.Contains(msg, key) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(msg, key, "REDACTED"))
}

type searchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func (e errorResponse) isQuota() bool {
	for _, d := range e.Error.Errors {
		switch d.Reason {
		case "dailyLimitExceeded", "quotaExceeded", "rateLimitExceeded", "userRateLimitExceeded":
			return true
		}
	}
	return false
}
