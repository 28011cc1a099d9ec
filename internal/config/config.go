package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrConfiguration is returned when the configuration cannot serve requests,
// e.g. a credential is missing. It is fatal at startup.
var ErrConfiguration = errors.New("configuration error")

type ServerConfig struct {
	Port                  string `toml:"port"`
	Mode                  string `toml:"mode"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

type LogFileConfig struct {
	Filename   string `toml:"filename"`
	MaxSize    int    `toml:"max_size"`
	MaxAge     int    `toml:"max_age"`
	MaxBackups int    `toml:"max_backups"`
	Compress   bool   `toml:"compress"`
}

type LogConfig struct {
	Level  string        `toml:"level"`
	Format string        `toml:"format"`
	File   LogFileConfig `toml:"file"`
}

type SearchConfig struct {
	Provider       string  `toml:"provider"`
	BaseURL        string  `toml:"base_url"`
	APIKey         string  `toml:"api_key"`
	ResultCount    int     `toml:"result_count"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RatePerSecond  float64 `toml:"rate_per_second"`
	Burst          int     `toml:"burst"`
}

type ScraperConfig struct {
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxBodyBytes   int64  `toml:"max_body_bytes"`
	MaxRedirects   int    `toml:"max_redirects"`
	UserAgent      string `toml:"user_agent"`
	Concurrency    int    `toml:"concurrency"`
}

// LLMConfig configures the model serving one role (relevance or comparison).
type LLMConfig struct {
	Provider       string  `toml:"provider"`
	Model          string  `toml:"model"`
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	Temperature    float32 `toml:"temperature"`
	MaxTokens      int     `toml:"max_tokens"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

type PipelineConfig struct {
	LinksPerProduct int    `toml:"links_per_product"`
	QuerySuffix     string `toml:"query_suffix"`
	Separator       string `toml:"separator"`
	MaxCorpusChars  int    `toml:"max_corpus_chars"`
}

type Prompts struct {
	Version    string `toml:"version"`
	Relevance  string `toml:"relevance"`
	Comparison string `toml:"comparison"`
}

type Config struct {
	Server     ServerConfig   `toml:"server"`
	Log        LogConfig      `toml:"log"`
	Search     SearchConfig   `toml:"search"`
	Scraper    ScraperConfig  `toml:"scraper"`
	Relevance  LLMConfig      `toml:"relevance"`
	Comparison LLMConfig      `toml:"comparison"`
	Pipeline   PipelineConfig `toml:"pipeline"`
	Prompts    Prompts        `toml:"prompts"`
}

// Default returns a configuration that only lacks credentials.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                  "8080",
			Mode:                  "release",
			RequestTimeoutSeconds: 180,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			File: LogFileConfig{
				MaxSize:    100,
				MaxAge:     30,
				MaxBackups: 5,
			},
		},
		Search: SearchConfig{
			Provider:       "brave",
			BaseURL:        "https://api.search.brave.com",
			ResultCount:    10,
			TimeoutSeconds: 15,
			RatePerSecond:  1,
			Burst:          2,
		},
		Scraper: ScraperConfig{
			TimeoutSeconds: 20,
			MaxBodyBytes:   5 << 20,
			MaxRedirects:   5,
			UserAgent:      "Mozilla/5.0 (compatible; versus/1.0; +https://github.com/agenthands/versus)",
			Concurrency:    8,
		},
		Relevance: LLMConfig{
			Provider:       "together",
			Model:          "meta-llama/Llama-3-70b-chat-hf",
			Temperature:    0.0,
			MaxTokens:      512,
			TimeoutSeconds: 60,
		},
		Comparison: LLMConfig{
			Provider:       "together",
			Model:          "mistralai/Mixtral-8x22B-Instruct-v0.1",
			Temperature:    0.02,
			MaxTokens:      4096,
			TimeoutSeconds: 120,
		},
		Pipeline: PipelineConfig{
			LinksPerProduct: 3,
			QuerySuffix:     " review",
			Separator:       "\n\n-----\n\n",
		},
		Prompts: DefaultPrompts(),
	}
}

// Load reads the TOML file at path on top of the defaults, applies environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML '%s': %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Server.Port, "PORT")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	setString(&c.Search.APIKey, "BRAVE_SEARCH_API_KEY")
	setString(&c.Search.APIKey, "SEARCH_API_KEY")
	setString(&c.Search.BaseURL, "SEARCH_BASE_URL")

	applyLLMEnv(&c.Relevance, "RELEVANCE_LLM")
	applyLLMEnv(&c.Comparison, "COMPARISON_LLM")

	if v := os.Getenv("LINKS_PER_PRODUCT"); v != "" {
		if k, err := strconv.Atoi(v); err == nil {
			c.Pipeline.LinksPerProduct = k
		}
	}
}

func applyLLMEnv(l *LLMConfig, prefix string) {
	setString(&l.Provider, prefix+"_PROVIDER")
	setString(&l.Model, prefix+"_MODEL")
	setString(&l.BaseURL, prefix+"_BASE_URL")

	if l.APIKey == "" {
		setString(&l.APIKey, "LLM_API_KEY")
		if strings.EqualFold(l.Provider, "together") {
			setString(&l.APIKey, "TOGETHER_API_KEY")
		}
	}
	setString(&l.APIKey, prefix+"_API_KEY")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate reports every problem that would make the service fail at request time.
func (c *Config) Validate() error {
	var problems []string

	switch c.Server.Mode {
	case "", "debug", "release", "test":
	default:
		problems = append(problems, fmt.Sprintf("unsupported server mode %q", c.Server.Mode))
	}
	if c.Search.Provider != "brave" {
		problems = append(problems, fmt.Sprintf("unsupported search provider %q", c.Search.Provider))
	}
	if c.Search.APIKey == "" {
		problems = append(problems, "search API key is required (set SEARCH_API_KEY)")
	}
	problems = append(problems, validateLLM("relevance", c.Relevance)...)
	problems = append(problems, validateLLM("comparison", c.Comparison)...)

	if c.Pipeline.LinksPerProduct < 1 {
		problems = append(problems, "pipeline.links_per_product must be at least 1")
	}
	if c.Scraper.Concurrency < 1 {
		problems = append(problems, "scraper.concurrency must be at least 1")
	}
	problems = append(problems, validateTemplate("relevance", c.Prompts.Relevance)...)
	problems = append(problems, validateTemplate("comparison", c.Prompts.Comparison)...)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(problems, "; "))
	}
	return nil
}

func validateLLM(role string, l LLMConfig) []string {
	var problems []string
	switch strings.ToLower(l.Provider) {
	case "openai", "together", "claude", "anthropic", "gemini":
		if l.APIKey == "" {
			problems = append(problems, fmt.Sprintf("%s LLM API key is required for provider %q", role, l.Provider))
		}
	case "ollama":
	default:
		problems = append(problems, fmt.Sprintf("unsupported %s LLM provider %q", role, l.Provider))
	}
	if l.Model == "" {
		problems = append(problems, fmt.Sprintf("%s LLM model is required", role))
	}
	return problems
}

// validateTemplate checks syntax only; field references are checked against the
// render data when the pipeline compiles its prompts.
func validateTemplate(name, text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{fmt.Sprintf("%s prompt template is empty", name)}
	}
	if _, err := template.New(name).Parse(text); err != nil {
		return []string{fmt.Sprintf("invalid %s prompt template: %v", name, err)}
	}
	return nil
}

// Seconds converts a configured number of seconds into a duration, using def when unset.
func Seconds(n int, def time.Duration) time.Duration {
	if n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}
