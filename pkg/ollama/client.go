// Package ollama speaks the Ollama HTTP API through the httpx wrapper.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/minhyannv/commizard-go/pkg/httpx"
	loggerpkg "github.com/minhyannv/commizard-go/pkg/logger"
)

const (
	tagsPath     = "/api/tags"
	generatePath = "/api/generate"

	doneReasonLoad = "load"
)

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

type generateRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt,omitempty"`
	Stream    *bool  `json:"stream,omitempty"`
	KeepAlive *int   `json:"keep_alive,omitempty"`
}

type generateResponse struct {
	Model      string  `json:"model"`
	Response   *string `json:"response"`
	Done       bool    `json:"done"`
	DoneReason string  `json:"done_reason"`
}

// Client talks to one Ollama server.
type Client struct {
	baseURL     string
	http        *httpx.Client
	listTimeout time.Duration
	logger      loggerpkg.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithListTimeout bounds model discovery and readiness probes.
func WithListTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.listTimeout = d
	}
}

// New builds a client for baseURL, e.g. http://localhost:11434.
func New(baseURL string, hc *httpx.Client, opts ...Option) *Client {
	if hc == nil {
		hc = httpx.New()
	}
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        hc,
		listTimeout: time.Second,
		logger:      loggerpkg.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Ping reports whether the server answers on its root endpoint.
func (c *Client) Ping(ctx context.Context) bool {
	res := c.http.Get(ctx, c.baseURL+"/", httpx.WithTimeout(c.listTimeout))
	return res.OK()
}

// ListModels returns the names of the locally installed models. The error is
// set only when a 2xx response could not be decoded.
func (c *Client) ListModels(ctx context.Context) ([]string, httpx.Result, error) {
	res := c.http.Get(ctx, c.baseURL+tagsPath, httpx.WithTimeout(c.listTimeout))
	if !res.OK() {
		return nil, res, nil
	}
	var tags tagsResponse
	if err := res.Decode(&tags); err != nil {
		return nil, res, fmt.Errorf("decode model list: %w", err)
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		if name := strings.TrimSpace(m.Name); name != "" {
			names = append(names, name)
		}
	}
	return names, res, nil
}

// Load asks the server to load model into memory. loaded is true only when
// the server confirms with done_reason "load".
func (c *Client) Load(ctx context.Context, model string) (bool, httpx.Result) {
	res := c.http.Post(ctx, c.baseURL+generatePath, generateRequest{Model: model})
	if !res.OK() {
		return false, res
	}
	var out generateResponse
	if err := res.Decode(&out); err != nil {
		loggerpkg.Warn(c.logger, "decode load response", map[string]any{"model": model, "error": err.Error()})
		return false, res
	}
	return out.DoneReason == doneReasonLoad, res
}

// Unload asks the server to evict model immediately.
func (c *Client) Unload(ctx context.Context, model string) httpx.Result {
	keepAlive := 0
	return c.http.Post(ctx, c.baseURL+generatePath, generateRequest{Model: model, KeepAlive: &keepAlive})
}

// Generate runs a non-streaming completion. The error is set only when a 2xx
// response does not carry a textual completion.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, httpx.Result, error) {
	stream := false
	res := c.http.Post(ctx, c.baseURL+generatePath, generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: &stream,
	})
	if !res.OK() {
		return "", res, nil
	}
	var out generateResponse
	if err := res.Decode(&out); err != nil {
		return "", res, fmt.Errorf("decode completion: %w", err)
	}
	if out.Response == nil {
		return "", res, errors.New("completion response has no text")
	}
	return *out.Response, res, nil
}
