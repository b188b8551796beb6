package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresAPIKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("CONFIG_FILE", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENROUTER_API_KEY")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("OPENROUTER_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultModel, cfg.OpenRouter.Model)
	assert.Equal(t, DefaultBaseURL, cfg.OpenRouter.BaseURL)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, 60*time.Second, cfg.OpenRouter.Timeout)
	assert.True(t, cfg.OCR.Enabled)
	assert.Equal(t, 300, cfg.OCR.DPI)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `
port: "9090"
log_level: debug
openrouter:
  api_key: from-file
  model: openai/gpt-4o-mini
  timeout: 15s
ocr:
  enabled: false
  dpi: 200
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("PORT", "7070")
	t.Setenv("OCR_DPI", "150")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "from-file", cfg.OpenRouter.APIKey)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.OpenRouter.Model)
	assert.Equal(t, 15*time.Second, cfg.OpenRouter.Timeout)
	assert.False(t, cfg.OCR.Enabled)
	assert.Equal(t, 150, cfg.OCR.DPI)
	// untouched by the file, so the default survives
	assert.Equal(t, "tesseract", cfg.OCR.Tesseract)
}

func TestLoad_BadEnvValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("LLM_TIMEOUT", "soon")
	t.Setenv("OCR_CONCURRENCY", "many")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_TIMEOUT")
	assert.Contains(t, err.Error(), "OCR_CONCURRENCY")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.OpenRouter.APIKey = "k"
	require.NoError(t, cfg.Validate())

	cfg.MaxFileSize = 0
	assert.Error(t, cfg.Validate())
}

func TestResolve_SkipsValidation(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("OCR_ENABLED", "false")

	cfg, err := Resolve()
	require.NoError(t, err)
	assert.Empty(t, cfg.OpenRouter.APIKey)
	assert.False(t, cfg.OCR.Enabled)
}

func TestWriteTimeout(t *testing.T) {
	tests := []struct {
		name       string
		llm        time.Duration
		ocr        time.Duration
		ocrEnabled bool
		want       time.Duration
	}{
		{"ocr slower", 60 * time.Second, 5 * time.Minute, true, 5*time.Minute + 30*time.Second},
		{"llm slower", 10 * time.Minute, 5 * time.Minute, true, 10*time.Minute + 30*time.Second},
		{"ocr disabled", 60 * time.Second, 5 * time.Minute, false, 90 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.OpenRouter.Timeout = tt.llm
			cfg.OCR.Timeout = tt.ocr
			cfg.OCR.Enabled = tt.ocrEnabled
			assert.Equal(t, tt.want, cfg.WriteTimeout())
		})
	}
}

func TestLoad_OCRTimeout(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("OPENROUTER_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.OCR.Timeout)

	t.Setenv("OCR_TIMEOUT", "90s")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.OCR.Timeout)
}
