// Package google provides a generation adapter using the Google
// Generative Language API.
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
)

// Ensure Generator implements the interface.
var _ driven.Generator = (*Generator)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash-lite"
	DefaultTimeout = 120 * time.Second
)

const providerName = "google"

// Config holds configuration for the Google generator.
type Config struct {
	// APIKey is the Google AI API key (required).
	APIKey string

	// BaseURL is the API base URL (default points at the v1beta
	// Generative Language endpoint).
	BaseURL string

	// Model is the completion model to use (default: gemini-2.5-flash-lite).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// Generator produces completions using the generateContent API.
type Generator struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// generateRequest is the generateContent request format.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// generateResponse is the generateContent response format.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// New creates a new Google generator.
func New(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: google generation requires an API key", domain.ErrConfiguration)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Generator{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Generate produces a completion for the prompt.
func (g *Generator) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxTokens,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", domain.NewProviderError(providerName, "generate", domain.ProviderErrorNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewProviderError(providerName, "generate", domain.ProviderErrorNetwork, err)
	}

	if err := classifyStatus("generate", resp.StatusCode, body); err != nil {
		return "", err
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", domain.NewProviderError(providerName, "generate", domain.ProviderErrorMalformed, err)
	}

	if genResp.Error != nil {
		return "", domain.NewProviderError(providerName, "generate",
			domain.ProviderErrorMalformed, fmt.Errorf("%s", genResp.Error.Message))
	}

	if len(genResp.Candidates) == 0 {
		return "", domain.NewProviderError(providerName, "generate",
			domain.ProviderErrorMalformed, fmt.Errorf("no candidates returned"))
	}

	var b strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}

// ModelName returns the name of the completion model being used.
func (g *Generator) ModelName() string {
	return g.model
}

// Ping validates the service is reachable by fetching the model
// metadata. This validates the API key without running inference.
func (g *Generator) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/models/%s?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create ping request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.NewProviderError(providerName, "ping", domain.ProviderErrorNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return classifyStatus("ping", resp.StatusCode, body)
	}
	return nil
}

// Close releases resources.
func (g *Generator) Close() error {
	return nil
}

// classifyStatus maps an HTTP failure status onto the provider error
// taxonomy: 401/403 auth, 429 quota, 5xx network (retryable),
// anything else malformed.
func classifyStatus(op string, status int, body []byte) error {
	if status == http.StatusOK {
		return nil
	}

	cause := fmt.Errorf("status %d: %s", status, string(body))
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.NewProviderError(providerName, op, domain.ProviderErrorAuth, cause)
	case status == http.StatusTooManyRequests:
		return domain.NewProviderError(providerName, op, domain.ProviderErrorQuota, cause)
	case status >= 500:
		return domain.NewProviderError(providerName, op, domain.ProviderErrorNetwork, cause)
	default:
		return domain.NewProviderError(providerName, op, domain.ProviderErrorMalformed, cause)
	}
}
