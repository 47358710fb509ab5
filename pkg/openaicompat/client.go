// Package openaicompat serves the model registry and generation engine from
// an OpenAI-compatible endpoint (LM Studio, llama.cpp server, Ollama's /v1).
package openaicompat

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/minhyannv/commizard-go/pkg/httpx"
	loggerpkg "github.com/minhyannv/commizard-go/pkg/logger"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultAPIKey = "commizard"

// Config holds the endpoint settings.
type Config struct {
	BaseURL     string
	APIKey      string
	ListTimeout time.Duration
	HTTPClient  *http.Client
	Logger      loggerpkg.Logger
}

// Client adapts openai.Client to the backend contracts used by the shell.
type Client struct {
	client      openai.Client
	listTimeout time.Duration
	logger      loggerpkg.Logger
}

// New builds a client. Retries are disabled so failures surface at once.
func New(cfg Config) *Client {
	if cfg.Logger == nil {
		cfg.Logger = loggerpkg.NopLogger{}
	}
	if cfg.APIKey == "" {
		cfg.APIKey = defaultAPIKey
	}
	if cfg.ListTimeout <= 0 {
		cfg.ListTimeout = time.Second
	}
	opts := []option.RequestOption{
		option.WithBaseURL(apiBase(cfg.BaseURL)),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	return &Client{
		client:      openai.NewClient(opts...),
		listTimeout: cfg.ListTimeout,
		logger:      cfg.Logger,
	}
}

// apiBase appends the /v1/ prefix unless the URL already carries it.
func apiBase(baseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !strings.HasSuffix(base, "/v1") {
		base += "/v1"
	}
	return base + "/"
}

// Ping reports whether the model listing endpoint answers.
func (c *Client) Ping(ctx context.Context) bool {
	_, res, err := c.ListModels(ctx)
	return err == nil && res.OK()
}

// ListModels returns the model IDs served by the endpoint.
func (c *Client) ListModels(ctx context.Context) ([]string, httpx.Result, error) {
	page, err := c.client.Models.List(ctx, option.WithRequestTimeout(c.listTimeout))
	if err != nil {
		return nil, c.failure("list models", err), nil
	}
	names := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		names = append(names, m.ID)
	}
	return names, httpx.WithJSON(http.StatusOK, map[string]any{"models": names}), nil
}

// Load checks that the endpoint serves model. OpenAI-compatible servers load
// weights on first use, so a successful lookup counts as loaded.
func (c *Client) Load(ctx context.Context, model string) (bool, httpx.Result) {
	m, err := c.client.Models.Get(ctx, model)
	if err != nil {
		return false, c.failure("get model", err)
	}
	return m.ID == model, httpx.WithJSON(http.StatusOK, map[string]any{"id": m.ID})
}

// Unload is a no-op; the protocol has no eviction call.
func (c *Client) Unload(context.Context, string) httpx.Result {
	return httpx.Result{Code: http.StatusNoContent}
}

// Generate runs a single-turn chat completion with prompt as the user
// message.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, httpx.Result, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", c.failure("chat completion", err), nil
	}
	res := httpx.WithJSON(http.StatusOK, map[string]any{"id": completion.ID})
	if len(completion.Choices) == 0 {
		return "", res, errors.New("empty completion choices")
	}
	return completion.Choices[0].Message.Content, res, nil
}

// failure converts an SDK error into the status or sentinel it stands for.
func (c *Client) failure(op string, err error) httpx.Result {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		loggerpkg.Debug(c.logger, op, map[string]any{"status": apiErr.StatusCode, "error": err.Error()})
		return httpx.WithJSON(apiErr.StatusCode, map[string]any{"error": apiErr.Message})
	}
	code := httpx.ClassifyError(err)
	loggerpkg.Debug(c.logger, op, map[string]any{"code": code, "error": err.Error()})
	return httpx.Failure(code)
}
