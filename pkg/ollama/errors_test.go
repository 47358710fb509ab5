package ollama

import (
	"fmt"
	"strings"
	"testing"
)

func TestClassifyKnownCodes(t *testing.T) {
	keywords := []string{"check", "verify", "try", "ensure", "install"}
	for _, code := range []int{400, 403, 404, 500, 503} {
		t.Run(fmt.Sprint(code), func(t *testing.T) {
			msg := Classify(code)
			if !strings.Contains(msg, fmt.Sprintf("Error %d", code)) {
				t.Fatalf("missing status prefix: %q", msg)
			}
			lower := strings.ToLower(msg)
			found := false
			for _, kw := range keywords {
				if strings.Contains(lower, kw) {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("no actionable suggestion in %q", msg)
			}
			if bullets := strings.Count(msg, "•"); bullets < 3 || bullets > 5 {
				t.Fatalf("expected 3-5 suggestions, got %d", bullets)
			}
		})
	}
}

func TestClassifyFallback(t *testing.T) {
	for _, code := range []int{0, 200, 302, 401, 418, 502, 599, -1} {
		msg := Classify(code)
		if !strings.Contains(msg, fmt.Sprintf("Error %d", code)) {
			t.Fatalf("missing status prefix for %d: %q", code, msg)
		}
		if !strings.Contains(msg, "Request failed") {
			t.Fatalf("expected generic failure text for %d: %q", code, msg)
		}
	}
}

func TestClassifyModelNotFound(t *testing.T) {
	msg := Classify(404)
	if !strings.Contains(msg, "Model Not Found") || !strings.Contains(msg, "ollama pull") {
		t.Fatalf("unexpected 404 text: %q", msg)
	}
}
