package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xhad/copyscan/pkg/match"
)

type SearchConfig struct {
	APIKey        string        `yaml:"api_key"`
	EngineID      string        `yaml:"engine_id"`
	BaseURL       string        `yaml:"base_url"`
	MaxResults    int           `yaml:"max_results"`
	MaxQueryChars int           `yaml:"max_query_chars"`
	Timeout       time.Duration `yaml:"timeout"`
	RateLimit     float64       `yaml:"rate_limit"`
}

type FetcherConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	Concurrency   int           `yaml:"concurrency"`
	RateLimit     float64       `yaml:"rate_limit"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots"`
}

type ExtractorConfig struct {
	Mode string `yaml:"mode"`
}

type ProcessorConfig struct {
	RemoveStopwords bool     `yaml:"remove_stopwords"`
	CustomStopwords []string `yaml:"custom_stopwords"`
	Stem            bool     `yaml:"stem"`
}

type ScoringConfig struct {
	Method         string `yaml:"method"`
	SummaryWords   int    `yaml:"summary_words"`
	EmbeddingModel string `yaml:"embedding_model"`
}

type MatchConfig struct {
	Threshold float64 `yaml:"threshold"`
	Order     string  `yaml:"order"`
}

type OCRConfig struct {
	Language string `yaml:"language"`
}

type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	Search    SearchConfig    `yaml:"search"`
	Fetcher   FetcherConfig   `yaml:"fetcher"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Processor ProcessorConfig `yaml:"processor"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Match     MatchConfig     `yaml:"match"`
	OCR       OCRConfig       `yaml:"ocr"`
	LLM       LLMConfig       `yaml:"llm"`
	Server    ServerConfig    `yaml:"server"`

	// envErrors holds environment values that could not be parsed.
	envErrors []ValidationError
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/copyscan/config.yaml"),
			"/etc/copyscan/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := newConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	mergeWithEnv(config)
	applyDefaults(config)

	return config, nil
}

// Default returns a config with every default applied and no credentials.
func Default() *Config {
	config := newConfig()
	applyDefaults(config)
	return config
}

// newConfig seeds the values whose zero is meaningful, so the YAML decoder
// only replaces them when the file sets them.
func newConfig() *Config {
	return &Config{
		Match: MatchConfig{Threshold: match.DefaultThreshold},
	}
}

func getDefaultConfig() (*Config, error) {
	config := newConfig()
	mergeWithEnv(config)
	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Search.BaseURL == "" {
		config.Search.BaseURL = "https://www.googleapis.com/customsearch/v1"
	}
	if config.Search.MaxResults == 0 {
		config.Search.MaxResults = 10
	}
	if config.Search.MaxQueryChars == 0 {
		config.Search.MaxQueryChars = 2048
	}
	if config.Search.Timeout == 0 {
		config.Search.Timeout = 10 * time.Second
	}

	if config.Fetcher.Timeout == 0 {
		config.Fetcher.Timeout = 10 * time.Second
	}
	if config.Fetcher.UserAgent == "" {
		config.Fetcher.UserAgent = "copyscan/1.0"
	}
	if config.Fetcher.Concurrency == 0 {
		config.Fetcher.Concurrency = 4
	}
	if config.Fetcher.RateLimit == 0 {
		config.Fetcher.RateLimit = 5.0
	}
	if config.Fetcher.MaxBodyBytes == 0 {
		config.Fetcher.MaxBodyBytes = 5 << 20
	}

	if config.Extractor.Mode == "" {
		config.Extractor.Mode = "paragraphs"
	}

	if config.Scoring.Method == "" {
		config.Scoring.Method = "tfidf"
	}
	if config.Scoring.SummaryWords == 0 {
		config.Scoring.SummaryWords = 50
	}
	if config.Scoring.EmbeddingModel == "" {
		config.Scoring.EmbeddingModel = "nomic-embed-text:latest"
	}

	if config.Match.Order == "" {
		config.Match.Order = "retrieval"
	}

	if config.OCR.Language == "" {
		config.OCR.Language = "eng"
	}

	if config.LLM.BaseURL == "" {
		config.LLM.BaseURL = "http://localhost:11434"
	}

	if config.Server.Addr == "" {
		config.Server.Addr = ":8080"
	}
}

func mergeWithEnv(config *Config) {
	if apiKey := os.Getenv("GOOGLE_API_KEY"); apiKey != "" {
		config.Search.APIKey = apiKey
	}
	if engineID := os.Getenv("GOOGLE_SEARCH_ENGINE_ID"); engineID != "" {
		config.Search.EngineID = engineID
	}
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
	}
	if threshold := os.Getenv("COPYSCAN_THRESHOLD"); threshold != "" {
		v, err := match.ParseThreshold(threshold)
		if err != nil {
			config.envErrors = append(config.envErrors, ValidationError{
				Field:   "COPYSCAN_THRESHOLD",
				Message: err.Error(),
			})
		} else {
			config.Match.Threshold = v
		}
	}
}
