package generator

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// ModelClient is the interface to the text-completion provider.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ClientFactory builds a provider client for one credential. The
// credential arrives per request, so clients are constructed per
// generation rather than held by the service.
type ClientFactory func(ctx context.Context, apiKey string) (ModelClient, error)

// ClientConfig holds provider client configuration.
type ClientConfig struct {
	Model   string
	Timeout time.Duration
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Model:   "gemini-2.5-flash",
		Timeout: 120 * time.Second,
	}
}

// GeminiClient implements ModelClient on the Google GenAI SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini client for the given API key.
func NewGeminiClient(ctx context.Context, apiKey string, cfg ClientConfig) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultClientConfig().Model
	}

	clientCfg := &genai.ClientConfig{
		APIKey: apiKey,
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

// GeminiFactory returns a ClientFactory producing Gemini clients with
// the given configuration.
func GeminiFactory(cfg ClientConfig) ClientFactory {
	return func(ctx context.Context, apiKey string) (ModelClient, error) {
		return NewGeminiClient(ctx, apiKey, cfg)
	}
}

// Generate sends the prompt and returns the raw response text. One
// blocking call, no retry; the caller bounds it via ctx.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("no completion returned")
	}

	return text, nil
}

// Model returns the configured model identifier.
func (c *GeminiClient) Model() string {
	return c.model
}
