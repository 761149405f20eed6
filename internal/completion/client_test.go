package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func completionServer(t *testing.T, content string, inspect func(chatCompletionRequest)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test" {
			t.Fatalf("missing bearer auth, got %q", r.Header.Get("Authorization"))
		}
		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if inspect != nil {
			inspect(req)
		}
		payload := map[string]any{
			"choices": []any{
				map[string]any{
					"message": map[string]any{"content": content},
				},
			},
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestConverseSendsFullTranscript(t *testing.T) {
	var got chatCompletionRequest
	server := completionServer(t, "Try Inception.", func(req chatCompletionRequest) { got = req })

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	history := []Turn{
		{Role: RoleHuman, Text: "recommend a heist movie"},
		{Role: RoleAssistant, Text: "How about Heat?"},
	}
	reply, err := client.Converse(context.Background(), history, "something more sci-fi")
	if err != nil {
		t.Fatalf("Converse returned error: %v", err)
	}
	if reply != "Try Inception." {
		t.Fatalf("unexpected reply: %q", reply)
	}

	// system + 2 history turns + new user message
	if len(got.Messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(got.Messages))
	}
	if got.Messages[0].Role != "system" {
		t.Fatalf("expected system prompt first, got %q", got.Messages[0].Role)
	}
	if got.Messages[1].Role != "user" || got.Messages[2].Role != "assistant" {
		t.Fatalf("history roles wrong: %q %q", got.Messages[1].Role, got.Messages[2].Role)
	}
	if got.Messages[3].Content != "something more sci-fi" {
		t.Fatalf("unexpected final message: %q", got.Messages[3].Content)
	}
	if got.ResponseFormat != nil {
		t.Fatal("converse must not force JSON response format")
	}
}

func TestConverseEmptyReply(t *testing.T) {
	server := completionServer(t, "   ", nil)
	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})

	_, err := client.Converse(context.Background(), nil, "hello")
	if !errors.Is(err, ErrEmptyReply) {
		t.Fatalf("expected ErrEmptyReply, got %v", err)
	}
}

func TestConverseHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down"}}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	if _, err := client.Converse(context.Background(), nil, "hi"); err == nil {
		t.Fatal("expected error for HTTP failure")
	}
}

func TestExtractTitlesReturnsRawPayload(t *testing.T) {
	raw := `{"movies":["Inception"],"tv_shows":[]}`
	var got chatCompletionRequest
	server := completionServer(t, raw, func(req chatCompletionRequest) { got = req })

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	payload, err := client.ExtractTitles(context.Background(), "You should watch Inception.")
	if err != nil {
		t.Fatalf("ExtractTitles returned error: %v", err)
	}
	if payload != raw {
		t.Fatalf("expected raw payload verbatim, got %q", payload)
	}
	if got.ResponseFormat["type"] != "json_object" {
		t.Fatalf("expected json response format, got %v", got.ResponseFormat)
	}
	if len(got.Messages) != 1 {
		t.Fatalf("expected single instruction message, got %d", len(got.Messages))
	}
	if !strings.Contains(got.Messages[0].Content, "You should watch Inception.") {
		t.Fatal("expected assistant reply embedded in instruction")
	}
}

func TestExtractTitlesRequiresText(t *testing.T) {
	client := NewClient(Config{APIKey: "test", BaseURL: "http://example.invalid", Model: "demo"})
	if _, err := client.ExtractTitles(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty assistant text")
	}
}

func TestConverseRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://example.invalid", Model: "demo"})
	if _, err := client.Converse(context.Background(), nil, "hi"); err == nil {
		t.Fatal("expected error when api key missing")
	}
}
