package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/xhad/copyscan/internal/models"
)

var (
	ErrBadStatus      = errors.New("unexpected status code")
	ErrRobotsDisallow = errors.New("disallowed by robots.txt")
	ErrUnsupportedURL = errors.New("unsupported URL")
)

type FetcherConfig struct {
	Timeout       time.Duration
	RateLimit     float64 // requests per second
	Burst         int
	UserAgent     string
	MaxBodyBytes  int64
	RespectRobots bool
	Logger        *slog.Logger
}

// Fetcher downloads candidate pages. A failure on one URL is reported in the
// returned page and never affects other fetches.
type Fetcher struct {
	config  FetcherConfig
	client  *http.Client
	limiter *rate.Limiter
	robots  *robotsCache
	logger  *slog.Logger
}

func NewWithConfig(config FetcherConfig) *Fetcher {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 5
	}
	if config.Burst <= 0 {
		config.Burst = 1
	}
	if config.UserAgent == "" {
		config.UserAgent = "copyscan/1.0"
	}
	if config.MaxBodyBytes == 0 {
		config.MaxBodyBytes = 5 << 20
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := &http.Client{
		Timeout: config.Timeout,
	}

	f := &Fetcher{
		config:  config,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.Burst),
		logger:  logger.With("component", "fetcher"),
	}
	if config.RespectRobots {
		f.robots = newRobotsCache(client, config.UserAgent)
	}
	return f
}

func New() *Fetcher {
	return NewWithConfig(FetcherConfig{})
}

// Fetch performs a GET with the configured timeout. Only 2xx responses
// produce a usable page.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) models.FetchedPage {
	page := models.FetchedPage{URL: rawURL}

	body, status, err := f.fetch(ctx, rawURL)
	page.Status = status
	if err != nil {
		page.Err = err
		f.logger.Debug("fetch failed", "url", rawURL, "status", status, "error", err)
		return page
	}

	page.RawHTML = body
	page.OK = true
	return page
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (string, int, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", 0, fmt.Errorf("%w: scheme %q", ErrUnsupportedURL, parsedURL.Scheme)
	}

	if f.robots != nil && !f.robots.allowed(ctx, parsedURL) {
		return "", 0, ErrRobotsDisallow
	}

	// Apply rate limiting
	if err := f.limiter.Wait(ctx); err != nil {
		return "", 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return "", resp.StatusCode, fmt.Errorf("%w %d", ErrBadStatus, resp.StatusCode)
	}

	reader, err := charset.NewReader(io.LimitReader(resp.Body, f.config.MaxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("decoding body: %w", err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("reading body: %w", err)
	}

	return string(body), resp.StatusCode, nil
}
