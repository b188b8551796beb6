package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModel   = "meta-llama/llama-3.3-70b-instruct:free"
	DefaultBaseURL = "https://openrouter.ai/api/v1"
)

type Config struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	OCR        OCRConfig        `yaml:"ocr"`

	// Upload limits
	MaxFileSize int64 `yaml:"max_upload_size"`
}

// OpenRouterConfig holds the provider settings handed to the LLM gateway.
type OpenRouterConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	BaseURL string        `yaml:"base_url"`
	Referer string        `yaml:"referer"`
	Title   string        `yaml:"title"`
	Timeout time.Duration `yaml:"timeout"`
}

type OCRConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Pdftoppm    string `yaml:"pdftoppm"`
	Tesseract   string `yaml:"tesseract"`
	Lang        string `yaml:"lang"`
	DPI         int    `yaml:"dpi"`
	MaxPages    int    `yaml:"max_pages"`
	// Timeout bounds the whole OCR pass of one document.
	Timeout time.Duration `yaml:"timeout"`
	Concurrency int    `yaml:"concurrency"`
}

func Default() *Config {
	return &Config{
		Port:     "8080",
		LogLevel: "info",
		OpenRouter: OpenRouterConfig{
			Model:   DefaultModel,
			BaseURL: DefaultBaseURL,
			Referer: "http://localhost:8000",
			Title:   "DocAnalyzer",
			Timeout: 60 * time.Second,
		},
		OCR: OCRConfig{
			Enabled:     true,
			Pdftoppm:    "pdftoppm",
			Tesseract:   "tesseract",
			Lang:        "eng",
			DPI:         300,
			Concurrency: 4,
			Timeout:     5 * time.Minute,
		},
		MaxFileSize: 10 * 1024 * 1024,
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	cfg, err := Resolve()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Resolve is Load without validation, for commands that never reach the
// model provider.
func Resolve() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.OpenRouter.APIKey = getEnv("OPENROUTER_API_KEY", c.OpenRouter.APIKey)
	c.OpenRouter.Model = getEnv("OPENROUTER_MODEL", c.OpenRouter.Model)
	c.OpenRouter.BaseURL = getEnv("OPENROUTER_BASE_URL", c.OpenRouter.BaseURL)
	c.OpenRouter.Referer = getEnv("OPENROUTER_REFERER", c.OpenRouter.Referer)
	c.OpenRouter.Title = getEnv("OPENROUTER_TITLE", c.OpenRouter.Title)

	c.OCR.Pdftoppm = getEnv("OCR_PDFTOPPM", c.OCR.Pdftoppm)
	c.OCR.Tesseract = getEnv("OCR_TESSERACT", c.OCR.Tesseract)
	c.OCR.Lang = getEnv("OCR_LANG", c.OCR.Lang)

	var errs []error
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("LLM_TIMEOUT: %w", err))
		}
		c.OpenRouter.Timeout = d
	}
	if v := os.Getenv("OCR_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("OCR_TIMEOUT: %w", err))
		}
		c.OCR.Timeout = d
	}
	if v := os.Getenv("MAX_UPLOAD_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("MAX_UPLOAD_SIZE: %w", err))
		}
		c.MaxFileSize = n
	}
	if v := os.Getenv("OCR_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("OCR_ENABLED: %w", err))
		}
		c.OCR.Enabled = b
	}
	errs = append(errs,
		envInt("OCR_DPI", &c.OCR.DPI),
		envInt("OCR_MAX_PAGES", &c.OCR.MaxPages),
		envInt("OCR_CONCURRENCY", &c.OCR.Concurrency),
	)

	return errors.Join(errs...)
}

func (c *Config) Validate() error {
	if c.OpenRouter.APIKey == "" {
		return fmt.Errorf("OPENROUTER_API_KEY is required")
	}
	if c.OpenRouter.Timeout <= 0 {
		return fmt.Errorf("LLM timeout must be positive, got %s", c.OpenRouter.Timeout)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.MaxFileSize)
	}
	return nil
}

// WriteTimeout is how long the HTTP server may spend on one response: the
// slower of an LLM call and an OCR pass, plus headroom for extraction and
// encoding.
func (c *Config) WriteTimeout() time.Duration {
	budget := c.OpenRouter.Timeout
	if c.OCR.Enabled && c.OCR.Timeout > budget {
		budget = c.OCR.Timeout
	}
	return budget + 30*time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
