package openaicompat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/minhyannv/commizard-go/pkg/httpx"
)

func newServer(t *testing.T) (*Client, *[]map[string]any) {
	t.Helper()
	var chats []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/models":
			_, _ = io.WriteString(w, `{"object":"list","data":[{"id":"qwen3-4b","object":"model","created":0,"owned_by":"local"}]}`)
		case r.Method == http.MethodGet && r.URL.Path == "/v1/models/qwen3-4b":
			_, _ = io.WriteString(w, `{"id":"qwen3-4b","object":"model","created":0,"owned_by":"local"}`)
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/models/"):
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":{"message":"model not found","type":"invalid_request_error"}}`)
		case r.Method == http.MethodPost && r.URL.Path == "/v1/chat/completions":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			chats = append(chats, body)
			_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":0,"model":"qwen3-4b","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"fix: handle nil"}}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, HTTPClient: httpx.New().HTTPClient()}), &chats
}

func TestAPIBase(t *testing.T) {
	tests := map[string]string{
		"http://localhost:1234":     "http://localhost:1234/v1/",
		"http://localhost:1234/":    "http://localhost:1234/v1/",
		"http://localhost:11434/v1": "http://localhost:11434/v1/",
	}
	for in, want := range tests {
		if got := apiBase(in); got != want {
			t.Fatalf("apiBase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestListAndLoad(t *testing.T) {
	c, _ := newServer(t)

	names, res, err := c.ListModels(context.Background())
	if err != nil || !res.OK() {
		t.Fatalf("ListModels: %v %+v", err, res)
	}
	if len(names) != 1 || names[0] != "qwen3-4b" {
		t.Fatalf("unexpected names: %v", names)
	}

	loaded, res := c.Load(context.Background(), "qwen3-4b")
	if !loaded || !res.OK() {
		t.Fatalf("expected load to succeed: %+v", res)
	}

	loaded, res = c.Load(context.Background(), "missing")
	if loaded || res.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing model, got %v %+v", loaded, res)
	}
}

func TestGenerateSendsPromptAsUserMessage(t *testing.T) {
	c, chats := newServer(t)

	text, res, err := c.Generate(context.Background(), "qwen3-4b", "prompt+diff")
	if err != nil || !res.OK() {
		t.Fatalf("Generate: %v %+v", err, res)
	}
	if text != "fix: handle nil" {
		t.Fatalf("unexpected text %q", text)
	}
	if len(*chats) != 1 {
		t.Fatalf("expected one chat request, got %d", len(*chats))
	}
	msgs, _ := (*chats)[0]["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("expected a single message, got %#v", (*chats)[0]["messages"])
	}
	msg, _ := msgs[0].(map[string]any)
	if msg["role"] != "user" || msg["content"] != "prompt+diff" {
		t.Fatalf("unexpected message %#v", msg)
	}
}

func TestUnreachableServerMapsToSentinel(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:1"})
	_, res, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Code != httpx.CodeConnection {
		t.Fatalf("expected connection sentinel, got %+v", res)
	}
}
