// Package google provides an embedding adapter using the Google
// Generative Language API.
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
)

// Ensure Embedder implements the interface.
var _ driven.Embedder = (*Embedder)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "embedding-001"
	DefaultTimeout = 60 * time.Second
)

const providerName = "google"

// Dimensions for the known Google embedding models.
var modelDimensions = map[string]int{
	"embedding-001":      768,
	"text-embedding-004": 768,
}

// Config holds configuration for the Google embedder.
type Config struct {
	// APIKey is the Google AI API key (required).
	APIKey string

	// BaseURL is the API base URL (default points at the v1beta
	// Generative Language endpoint).
	BaseURL string

	// Model is the embedding model to use (default: embedding-001).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// Embedder generates embeddings using the Google Generative Language API.
type Embedder struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	model      string
	dimensions int
}

// batchEmbedRequest is the batchEmbedContents request format.
type batchEmbedRequest struct {
	Requests []embedContentRequest `json:"requests"`
}

type embedContentRequest struct {
	Model   string       `json:"model"`
	Content embedContent `json:"content"`
}

type embedContent struct {
	Parts []embedPart `json:"parts"`
}

type embedPart struct {
	Text string `json:"text"`
}

// batchEmbedResponse is the batchEmbedContents response format.
type batchEmbedResponse struct {
	Embeddings []struct {
		Values []float64 `json:"values"`
	} `json:"embeddings"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// New creates a new Google embedder.
func New(cfg Config) (*Embedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: google embedding requires an API key", domain.ErrConfiguration)
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

	dimensions, ok := modelDimensions[cfg.Model]
	if !ok {
		dimensions = 768
	}

	return &Embedder{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimensions: dimensions,
	}, nil
}

// Embed generates the vector for a single text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, domain.NewProviderError(providerName, "embed",
			domain.ProviderErrorMalformed, fmt.Errorf("no embedding returned"))
	}
	return embeddings[0], nil
}

// EmbedBatch generates one vector per input text, order-preserving.
// The API preserves request order in its response, so no reordering is
// needed. Any single-item failure fails the whole batch.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := batchEmbedRequest{
		Requests: make([]embedContentRequest, len(texts)),
	}
	for i, text := range texts {
		reqBody.Requests[i] = embedContentRequest{
			Model:   "models/" + e.model,
			Content: embedContent{Parts: []embedPart{{Text: text}}},
		}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:batchEmbedContents?key=%s", e.baseURL, e.model, e.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, domain.NewProviderError(providerName, "embed", domain.ProviderErrorNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewProviderError(providerName, "embed", domain.ProviderErrorNetwork, err)
	}

	if err := classifyStatus("embed", resp.StatusCode, body); err != nil {
		return nil, err
	}

	var embedResp batchEmbedResponse
	if err := json.Unmarshal(body, &embedResp); err != nil {
		return nil, domain.NewProviderError(providerName, "embed", domain.ProviderErrorMalformed, err)
	}

	if embedResp.Error != nil {
		return nil, domain.NewProviderError(providerName, "embed",
			domain.ProviderErrorMalformed, fmt.Errorf("%s", embedResp.Error.Message))
	}

	if len(embedResp.Embeddings) != len(texts) {
		return nil, domain.NewProviderError(providerName, "embed",
			domain.ProviderErrorMalformed,
			fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embedResp.Embeddings)))
	}

	embeddings := make([][]float32, len(texts))
	for i, data := range embedResp.Embeddings {
		embedding := make([]float32, len(data.Values))
		for j, v := range data.Values {
			embedding[j] = float32(v)
		}
		embeddings[i] = embedding
	}

	return embeddings, nil
}

// Dimensions returns the embedding vector size.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

// ModelName returns the name of the embedding model being used.
func (e *Embedder) ModelName() string {
	return e.model
}

// Ping validates the service is reachable by fetching the model
// metadata. This validates the API key without running inference.
func (e *Embedder) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/models/%s?key=%s", e.baseURL, e.model, e.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create ping request: %w", err)
	}

	resp, err := e.client.Do(req)
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
func (e *Embedder) Close() error {
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
