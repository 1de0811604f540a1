// Package detector runs the content-similarity pipeline for one submission:
// normalize, detect language, build a query, retrieve candidates, then fetch,
// extract and score each candidate before filtering and ranking.
package detector

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/xhad/copyscan/internal/models"
	"github.com/xhad/copyscan/internal/types"
	"github.com/xhad/copyscan/pkg/config"
	"github.com/xhad/copyscan/pkg/extractor"
	"github.com/xhad/copyscan/pkg/fetcher"
	"github.com/xhad/copyscan/pkg/ingest"
	"github.com/xhad/copyscan/pkg/langdetect"
	"github.com/xhad/copyscan/pkg/llm"
	"github.com/xhad/copyscan/pkg/match"
	"github.com/xhad/copyscan/pkg/processor"
	"github.com/xhad/copyscan/pkg/query"
	"github.com/xhad/copyscan/pkg/search"
	"github.com/xhad/copyscan/pkg/similarity"
)

// Submission is one piece of content to check. Modality wins over Hint;
// Hint is a MIME type or file name used when Modality is unknown.
type Submission struct {
	Data     []byte
	Modality models.Modality
	Hint     string
}

// Detector holds immutable pipeline components. Check is safe for
// concurrent use; no state is shared between calls.
type Detector struct {
	normalizer types.Normalizer
	ocr        types.OCR
	retriever  types.Retriever
	fetcher    types.Fetcher
	extractor  types.Extractor
	scorer     types.Scorer
	processor  processor.Processor
	monitor    Monitor

	maxQueryChars int
	summaryWords  int
	concurrency   int
	threshold     float64
	order         match.Order

	logger *slog.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithRetriever replaces the search API client.
func WithRetriever(r types.Retriever) Option {
	return func(d *Detector) {
		d.retriever = r
	}
}

// WithFetcher replaces the HTTP page fetcher.
func WithFetcher(f types.Fetcher) Option {
	return func(d *Detector) {
		d.fetcher = f
	}
}

// WithOCR replaces the Tesseract engine used for image input.
func WithOCR(ocr types.OCR) Option {
	return func(d *Detector) {
		d.ocr = ocr
	}
}

// WithScorer replaces the configured scorer. By default TF-IDF is used
// with stemming chosen per submission language.
func WithScorer(s types.Scorer) Option {
	return func(d *Detector) {
		d.scorer = s
	}
}

// WithMonitor reports pipeline progress to m. A nil m is ignored.
func WithMonitor(m Monitor) Option {
	return func(d *Detector) {
		if m != nil {
			d.monitor = m
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
	}
}

// New builds a Detector from cfg. Components not injected through options
// are constructed from cfg; without an injected retriever the search
// credentials must be present.
func New(cfg *config.Config, opts ...Option) (*Detector, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	order, err := match.ParseOrder(cfg.Match.Order)
	if err != nil {
		return nil, err
	}
	if cfg.Match.Threshold < 0 || cfg.Match.Threshold >= 1 {
		return nil, fmt.Errorf("%w: %v", match.ErrInvalidThreshold, cfg.Match.Threshold)
	}

	d := &Detector{
		monitor:       &noopMonitor{},
		maxQueryChars: cfg.Search.MaxQueryChars,
		summaryWords:  cfg.Scoring.SummaryWords,
		concurrency:   cfg.Fetcher.Concurrency,
		threshold:     cfg.Match.Threshold,
		order:         order,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "detector")

	if d.maxQueryChars <= 0 {
		d.maxQueryChars = query.DefaultMaxChars
	}
	if d.summaryWords <= 0 {
		d.summaryWords = similarity.DefaultSummaryWords
	}
	if d.concurrency <= 0 {
		d.concurrency = 1
	}

	if d.retriever == nil {
		client, err := search.NewClient(search.ClientConfig{
			APIKey:     cfg.Search.APIKey,
			EngineID:   cfg.Search.EngineID,
			BaseURL:    cfg.Search.BaseURL,
			MaxResults: cfg.Search.MaxResults,
			Timeout:    cfg.Search.Timeout,
			RateLimit:  cfg.Search.RateLimit,
			UserAgent:  cfg.Fetcher.UserAgent,
			Logger:     d.logger,
		})
		if err != nil {
			return nil, err
		}
		d.retriever = client
	}

	if d.ocr == nil {
		d.ocr = ingest.NewTesseractOCR(cfg.OCR.Language)
	}
	d.normalizer = ingest.NewNormalizer(ingest.WithOCR(d.ocr), ingest.WithLogger(d.logger))

	if d.fetcher == nil {
		d.fetcher = fetcher.NewWithConfig(fetcher.FetcherConfig{
			Timeout:       cfg.Fetcher.Timeout,
			RateLimit:     cfg.Fetcher.RateLimit,
			Burst:         d.concurrency,
			UserAgent:     cfg.Fetcher.UserAgent,
			MaxBodyBytes:  cfg.Fetcher.MaxBodyBytes,
			RespectRobots: cfg.Fetcher.RespectRobots,
			Logger:        d.logger,
		})
	}
	d.extractor = extractor.New(extractor.Mode(cfg.Extractor.Mode), d.logger)

	d.processor = processor.NewWithConfig(processor.ProcessorConfig{
		RemoveStopwords: cfg.Processor.RemoveStopwords,
		CustomStopwords: cfg.Processor.CustomStopwords,
		Stem:            cfg.Processor.Stem,
	})

	if d.scorer == nil && cfg.Scoring.Method == "embedding" {
		embedder, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
			Model:   cfg.Scoring.EmbeddingModel,
			BaseURL: cfg.LLM.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize embedder: %w", err)
		}
		d.scorer = similarity.NewEmbeddingScorer(embedder)
	}

	return d, nil
}

// Observed returns a copy of d that reports to m. The receiver is unchanged.
func (d *Detector) Observed(m Monitor) *Detector {
	c := *d
	if m == nil {
		m = &noopMonitor{}
	}
	c.monitor = m
	return &c
}

// Check runs the full pipeline for one submission. Input and search API
// errors are returned as-is and no partial report is produced. Failures on
// individual candidates are recorded as diagnostics.
func (d *Detector) Check(ctx context.Context, sub Submission) (*models.Report, error) {
	start := time.Now()
	report := &models.Report{
		ID:        uuid.NewString(),
		Threshold: d.threshold,
		Order:     string(d.order),
	}
	logger := d.logger.With("report", report.ID)
	monitor := &syncMonitor{inner: d.monitor}
	diag := &diagnostics{monitor: monitor, logger: logger}

	modality := sub.Modality
	if modality == models.ModalityUnknown && sub.Hint != "" {
		m, err := ingest.ModalityFromHint(sub.Hint)
		if err != nil {
			return nil, err
		}
		modality = m
	}

	input, err := d.normalizer.Normalize(ctx, sub.Data, modality)
	if err != nil {
		return nil, err
	}
	input.Language = langdetect.Detect(input.Text)
	report.Input = input
	report.Language = input.Language
	monitor.Start(report.ID, input)
	diag.add(models.LevelInfo, "language", "", "detected language "+input.Language)

	q := query.Build(input.Text, d.maxQueryChars)
	if q.IsEmpty() {
		return nil, ErrNoContent
	}
	if q.Truncated {
		diag.add(models.LevelInfo, "query", "", fmt.Sprintf("query truncated to %d characters", d.maxQueryChars))
	}
	report.Query = q
	monitor.AfterQuery(q)

	candidates, err := d.retriever.Retrieve(ctx, q)
	if err != nil {
		return nil, err
	}
	report.Candidates = candidates
	monitor.AfterRetrieval(candidates)
	logger.Info("retrieved candidates", "count", len(candidates))

	scored, err := d.scoreCandidates(ctx, input, candidates, monitor, diag)
	if err != nil {
		return nil, err
	}

	report.Results = match.Rank(match.Filter(scored, d.threshold), d.order)
	report.Diagnostics = diag.list()
	report.Elapsed = time.Since(start)
	monitor.Finish(report)

	logger.Info("check complete",
		"candidates", len(candidates),
		"scored", len(scored),
		"matches", len(report.Results),
		"elapsed", report.Elapsed)
	return report, nil
}

// scoreCandidates fetches, extracts and scores every candidate on a bounded
// pool. Results come back in retrieval order; candidates that could not be
// fetched or scored are left out.
func (d *Detector) scoreCandidates(
	ctx context.Context,
	input models.NormalizedInput,
	candidates []models.Candidate,
	monitor Monitor,
	diag *diagnostics,
) (models.ResultSet, error) {
	if len(candidates) == 0 {
		return models.ResultSet{}, nil
	}

	pool, err := ants.NewPool(d.concurrency)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	scorer := d.scorerFor(input.Language)
	slots := make([]*models.SimilarityResult, len(candidates))

	var wg sync.WaitGroup
	for i, candidate := range candidates {
		i, candidate := i, candidate
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		task := func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			result, ok := d.scoreOne(ctx, scorer, input.Text, candidate, diag)
			if !ok {
				return
			}
			slots[i] = &result
			monitor.CandidateScored(result)
		}

		if err := pool.Submit(task); err != nil {
			wg.Done()
			diag.add(models.LevelError, "score", candidate.URL, err.Error())
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make(models.ResultSet, 0, len(candidates))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results, nil
}

func (d *Detector) scoreOne(
	ctx context.Context,
	scorer types.Scorer,
	userText string,
	candidate models.Candidate,
	diag *diagnostics,
) (models.SimilarityResult, bool) {
	page := d.fetcher.Fetch(ctx, candidate.URL)
	if !page.OK {
		msg := "fetch failed"
		if page.Err != nil {
			msg = page.Err.Error()
		}
		diag.add(models.LevelWarn, "fetch", candidate.URL, msg)
		return models.SimilarityResult{}, false
	}

	text := d.extractor.Extract(page)
	if strings.TrimSpace(text) == "" {
		diag.add(models.LevelInfo, "extract", candidate.URL, "no paragraph text found")
	}

	score, err := scorer.Score(ctx, userText, text)
	if err != nil {
		diag.add(models.LevelWarn, "score", candidate.URL, err.Error())
		return models.SimilarityResult{}, false
	}

	return models.SimilarityResult{
		URL:     candidate.URL,
		Rank:    candidate.Rank,
		Score:   score,
		Summary: similarity.Summarize(text, d.summaryWords),
	}, true
}

func (d *Detector) scorerFor(language string) types.Scorer {
	if d.scorer != nil {
		return d.scorer
	}
	return similarity.NewTFIDFScorer(d.processor.WithLanguage(langdetect.SnowballLanguage(language)))
}

// diagnostics collects per-check records and forwards them to the monitor.
type diagnostics struct {
	mu      sync.Mutex
	records []models.Diagnostic
	monitor Monitor
	logger  *slog.Logger
}

func (c *diagnostics) add(level models.Level, stage, url, message string) {
	d := models.Diagnostic{
		Time:    time.Now(),
		Level:   level,
		Stage:   stage,
		URL:     url,
		Message: message,
	}

	c.mu.Lock()
	c.records = append(c.records, d)
	c.mu.Unlock()

	c.monitor.Diagnostic(d)

	switch level {
	case models.LevelError:
		c.logger.Error(message, "stage", stage, "url", url)
	case models.LevelWarn:
		c.logger.Warn(message, "stage", stage, "url", url)
	default:
		c.logger.Debug(message, "stage", stage, "url", url)
	}
}

func (c *diagnostics) list() []models.Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Diagnostic, len(c.records))
	copy(out, c.records)
	return out
}
