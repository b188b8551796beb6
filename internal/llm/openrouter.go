package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/document-analyzer-api/internal/config"
	"github.com/BerylCAtieno/document-analyzer-api/internal/prompt"
	"github.com/BerylCAtieno/document-analyzer-api/internal/utils"
)

type OpenRouterRequest struct {
	Model    string           `json:"model"`
	Messages []prompt.Message `json:"messages"`
}

type OpenRouterResponse struct {
	Choices []Choice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error,omitempty"`
}

type Choice struct {
	Message *prompt.Message `json:"message"`
}

type openRouterGateway struct {
	cfg    config.OpenRouterConfig
	logger *utils.Logger
	client *http.Client
}

func NewOpenRouterGateway(cfg config.OpenRouterConfig, logger *utils.Logger) Gateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &openRouterGateway{
		cfg:    cfg,
		logger: logger,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Generate makes exactly one attempt. The call is not aborted when the caller
// goes away; it ends on completion or when the client timeout fires.
func (g *openRouterGateway) Generate(ctx context.Context, messages []prompt.Message, model string) (string, error) {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	jsonData, err := json.Marshal(OpenRouterRequest{Model: model, Messages: messages})
	if err != nil {
		return "", &GatewayError{Cause: "failed to marshal request", Err: err}
	}

	endpoint := strings.TrimRight(g.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", &GatewayError{Cause: "failed to create request", Err: err}
	}

	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if g.cfg.Referer != "" {
		req.Header.Set("HTTP-Referer", g.cfg.Referer)
	}
	if g.cfg.Title != "" {
		req.Header.Set("X-Title", g.cfg.Title)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &GatewayError{Cause: "failed to send request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GatewayError{Cause: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.Error("OpenRouter API error", "status", resp.StatusCode, "body", truncateBody(body))
		return "", &GatewayError{
			Cause:      fmt.Sprintf("OpenRouter API returned status %d%s", resp.StatusCode, providerMessage(body)),
			StatusCode: resp.StatusCode,
		}
	}

	var openRouterResp OpenRouterResponse
	if err := json.Unmarshal(body, &openRouterResp); err != nil {
		return "", &GatewayError{Cause: "failed to unmarshal response", Err: err}
	}

	if openRouterResp.Error != nil {
		return "", &GatewayError{Cause: fmt.Sprintf("OpenRouter API error: %s", openRouterResp.Error.Message)}
	}

	if len(openRouterResp.Choices) == 0 {
		return "", &GatewayError{Cause: "no choices in response"}
	}
	if openRouterResp.Choices[0].Message == nil {
		return "", &GatewayError{Cause: "first choice has no message"}
	}

	content := openRouterResp.Choices[0].Message.Content
	g.logger.Debug("OpenRouter completion received",
		"model", model,
		"content_length", len(content),
		"duration_ms", time.Since(start).Milliseconds())

	return content, nil
}

// providerMessage pulls error.message out of an error body, if there is one.
func providerMessage(body []byte) string {
	var parsed OpenRouterResponse
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error == nil || parsed.Error.Message == "" {
		return ""
	}
	return ": " + parsed.Error.Message
}

func truncateBody(body []byte) string {
	const max = 2048
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "...(truncated)"
}
