package httpx

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoRejectsUnsupportedMethods(t *testing.T) {
	c := New()
	tests := []struct {
		method string
		want   error
	}{
		{method: http.MethodPut, want: ErrMethodNotImplemented},
		{method: http.MethodDelete, want: ErrMethodNotImplemented},
		{method: "patch", want: ErrMethodNotImplemented},
		{method: http.MethodHead, want: ErrMethodNotImplemented},
		{method: "FETCH", want: ErrInvalidMethod},
		{method: "", want: ErrInvalidMethod},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			_, err := c.Do(context.Background(), tt.method, "http://127.0.0.1:1", nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Do(%q) error = %v, want %v", tt.method, err, tt.want)
			}
		})
	}
}

func TestDoDecodesJSONAndFallsBackToText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"models":[{"name":"llama3"}]}`)
		case "/text":
			_, _ = io.WriteString(w, "Ollama is running")
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"model not found"}`)
		}
	}))
	defer srv.Close()

	c := New()
	res, err := c.Do(context.Background(), http.MethodGet, srv.URL+"/json", nil)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if res.Code != http.StatusOK || !res.OK() || res.IsError() {
		t.Fatalf("unexpected result: %+v", res)
	}
	body, ok := res.Payload.(map[string]any)
	if !ok {
		t.Fatalf("expected JSON object payload, got %T", res.Payload)
	}
	if _, ok := body["models"]; !ok {
		t.Fatalf("payload missing models: %#v", body)
	}
	var typed struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := res.Decode(&typed); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(typed.Models) != 1 || typed.Models[0].Name != "llama3" {
		t.Fatalf("unexpected decoded models: %+v", typed.Models)
	}

	res = c.Get(context.Background(), srv.URL+"/text")
	if text, ok := res.Payload.(string); !ok || text != "Ollama is running" {
		t.Fatalf("expected text payload, got %#v", res.Payload)
	}

	res = c.Get(context.Background(), srv.URL+"/missing")
	if res.Code != http.StatusNotFound || res.OK() || res.IsError() {
		t.Fatalf("expected real 404 status, got %+v", res)
	}
	if res.ErrMessage() != "" {
		t.Fatalf("real statuses carry no transport message, got %q", res.ErrMessage())
	}
}

func TestPostSendsJSONBody(t *testing.T) {
	var gotType string
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		_, _ = io.WriteString(w, `{"response":"ok"}`)
	}))
	defer srv.Close()

	res := New().Post(context.Background(), srv.URL, map[string]any{"model": "llama3", "stream": false})
	if !res.OK() {
		t.Fatalf("unexpected result: %+v", res)
	}
	if gotType != "application/json" {
		t.Fatalf("expected JSON content type, got %q", gotType)
	}
	if gotBody != `{"model":"llama3","stream":false}` {
		t.Fatalf("unexpected body %q", gotBody)
	}
}

func TestTransportFailuresMapToSentinels(t *testing.T) {
	tests := []struct {
		name string
		url  func(t *testing.T) string
		opts []RequestOption
		want int
	}{
		{name: "connection refused", url: closedPortURL, want: CodeConnection},
		{name: "malformed response", url: garbageServerURL, want: CodeHTTP},
		{name: "redirect loop", url: redirectLoopURL, want: CodeTooManyRedirects},
		{name: "timeout", url: slowServerURL, opts: []RequestOption{WithTimeout(20 * time.Millisecond)}, want: CodeTimeout},
		{name: "unsupported scheme", url: func(*testing.T) string { return "ftp://example.invalid/file" }, want: CodeRequest},
	}

	c := New(WithMaxRedirects(3))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.Do(context.Background(), http.MethodGet, tt.url(t), nil, tt.opts...)
			if err != nil {
				t.Fatalf("transport failures must not surface as errors: %v", err)
			}
			if res.Code != tt.want {
				t.Fatalf("expected code %d, got %d", tt.want, res.Code)
			}
			if res.Payload != nil {
				t.Fatalf("sentinel results carry no payload, got %#v", res.Payload)
			}
			if !res.IsError() || res.ErrMessage() == "" {
				t.Fatalf("expected error discriminant and message, got %+v", res)
			}
		})
	}
}

func TestErrMessages(t *testing.T) {
	tests := map[int]string{
		CodeConnection:       "can't connect to the server",
		CodeHTTP:             "HTTP error occurred",
		CodeTooManyRedirects: "too many redirects",
		CodeTimeout:          "the request timed out",
		CodeRequest:          "the request failed",
		200:                  "",
	}
	for code, want := range tests {
		if got := (Result{Code: code}).ErrMessage(); got != want {
			t.Fatalf("ErrMessage(%d) = %q, want %q", code, got, want)
		}
	}
}

func closedPortURL(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()
	return "http://" + addr
}

func garbageServerURL(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				r := bufio.NewReader(conn)
				for {
					line, err := r.ReadString('\n')
					if err != nil || line == "\r\n" {
						break
					}
				}
				_, _ = io.WriteString(conn, "garbage\r\n\r\n")
			}(conn)
		}
	}()
	return "http://" + ln.Addr().String()
}

func redirectLoopURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.Path, http.StatusFound)
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/loop"
}

func slowServerURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}
