package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"pictura/internal/services"
)

const defaultHTTPTimeout = 120 * time.Second

// Config captures the runtime settings required to talk to the captioning service.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client wraps the Ollama generate API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a captioning client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	client := &Client{
		cfg: Config{
			BaseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			Model:   strings.TrimSpace(cfg.Model),
			Timeout: timeout,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = "http://localhost:11434"
	}
	return client
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.cfg.Model
}

type generateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images"`
	Stream bool     `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Describe submits a base64-encoded image and prompt to the generate
// endpoint and returns the raw response text. The call is synchronous and
// holds no locks; callers pace themselves through the shared limiter.
func (c *Client) Describe(ctx context.Context, imageBase64, prompt string) (string, error) {
	if strings.TrimSpace(c.cfg.Model) == "" {
		return "", services.Wrap(services.ErrConfiguration, "ollama", "describe", "model required", nil)
	}
	if imageBase64 == "" {
		return "", services.Wrap(services.ErrConfiguration, "ollama", "describe", "image data required", nil)
	}

	payload := generateRequest{
		Model:  c.cfg.Model,
		Prompt: prompt,
		Images: []string{imageBase64},
		Stream: false,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", services.Wrap(services.ErrUnavailable, "ollama", "describe", "encode body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/generate", bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrUnavailable, "ollama", "describe", "new request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrUnavailable, "ollama", "describe", "http error", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrUnavailable, "ollama", "describe", "read body", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", services.Wrap(services.ErrUnavailable, "ollama", "describe",
			"http "+resp.Status+": "+strings.TrimSpace(string(body)), nil)
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", services.Wrap(services.ErrUnavailable, "ollama", "describe", "decode response", err)
	}
	if decoded.Error != "" {
		return "", services.Wrap(services.ErrUnavailable, "ollama", "describe", "api error: "+decoded.Error, nil)
	}
	return strings.TrimSpace(decoded.Response), nil
}
