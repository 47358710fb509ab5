// Package httpx issues requests to the inference server and folds every
// transport failure into a Result instead of an error.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	loggerpkg "github.com/minhyannv/commizard-go/pkg/logger"
)

var (
	// ErrMethodNotImplemented is returned for standard HTTP methods the
	// wrapper does not support.
	ErrMethodNotImplemented = errors.New("http method not implemented")
	// ErrInvalidMethod is returned for tokens that are not HTTP methods.
	ErrInvalidMethod = errors.New("invalid http method")
	// ErrTooManyRedirects stops a redirect chain longer than the limit.
	ErrTooManyRedirects = errors.New("too many redirects")
)

var unsupportedMethods = map[string]bool{
	http.MethodHead:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodConnect: true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
}

const defaultMaxRedirects = 10

// Client wraps an http.Client.
type Client struct {
	http   *http.Client
	logger loggerpkg.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMaxRedirects caps the redirect chain of every request.
func WithMaxRedirects(n int) Option {
	return func(c *Client) {
		c.http.CheckRedirect = checkRedirect(n)
	}
}

// New builds a Client. Requests carry no timeout unless one is passed per
// request.
func New(opts ...Option) *Client {
	c := &Client{
		http:   &http.Client{CheckRedirect: checkRedirect(defaultMaxRedirects)},
		logger: loggerpkg.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// HTTPClient exposes the configured client so other SDKs share its
// transport and redirect policy.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// RequestOption configures a single request.
type RequestOption func(*requestConfig)

type requestConfig struct {
	timeout time.Duration
}

// WithTimeout bounds the request, including reading the body.
func WithTimeout(d time.Duration) RequestOption {
	return func(rc *requestConfig) {
		rc.timeout = d
	}
}

// Do performs method on url. The error is non-nil only when method is not
// GET or POST; every other failure is reported through Result.Code.
func (c *Client) Do(ctx context.Context, method, url string, body any, opts ...RequestOption) (Result, error) {
	switch m := strings.ToUpper(strings.TrimSpace(method)); {
	case m == http.MethodGet || m == http.MethodPost:
		return c.do(ctx, m, url, body, opts...), nil
	case unsupportedMethods[m]:
		return Result{}, fmt.Errorf("%w: %s", ErrMethodNotImplemented, m)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, url string, opts ...RequestOption) Result {
	return c.do(ctx, http.MethodGet, url, nil, opts...)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, url string, body any, opts ...RequestOption) Result {
	return c.do(ctx, http.MethodPost, url, body, opts...)
}

func (c *Client) do(ctx context.Context, method, url string, body any, opts ...RequestOption) Result {
	rc := requestConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&rc)
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if rc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rc.timeout)
		defer cancel()
	}

	start := time.Now()
	res := c.roundTrip(ctx, method, url, body)
	loggerpkg.Debug(c.logger, "http request", map[string]any{
		"method":      method,
		"url":         url,
		"code":        res.Code,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return res
}

func (c *Client) roundTrip(ctx context.Context, method, url string, body any) Result {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			loggerpkg.Error(c.logger, "encode request body", map[string]any{"error": err.Error()})
			return Failure(CodeRequest)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		loggerpkg.Debug(c.logger, "build request", map[string]any{"error": err.Error()})
		return Failure(CodeRequest)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		loggerpkg.Debug(c.logger, "transport error", map[string]any{"error": err.Error()})
		return Failure(ClassifyError(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		loggerpkg.Debug(c.logger, "read response body", map[string]any{"error": err.Error()})
		return Failure(ClassifyError(err))
	}
	return decodeBody(resp.StatusCode, data)
}

// ClassifyError maps a transport error to its sentinel code.
func ClassifyError(err error) int {
	if errors.Is(err, ErrTooManyRedirects) {
		return CodeTooManyRedirects
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CodeTimeout
	}
	if isConnectionError(err) {
		return CodeConnection
	}
	if isProtocolError(err) {
		return CodeHTTP
	}
	return CodeRequest
}

func isConnectionError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

func isProtocolError(err error) bool {
	var protoErr *http.ProtocolError
	if errors.As(err, &protoErr) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	return strings.Contains(err.Error(), "malformed HTTP")
}

func checkRedirect(limit int) func(*http.Request, []*http.Request) error {
	if limit <= 0 {
		limit = defaultMaxRedirects
	}
	return func(_ *http.Request, via []*http.Request) error {
		if len(via) >= limit {
			return ErrTooManyRedirects
		}
		return nil
	}
}
