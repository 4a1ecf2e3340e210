package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/textmath/textmath/internal/schema"
)

func newTestServer(t *testing.T, status int, reply string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer gsk_test" {
			t.Errorf("unexpected auth header %q", got)
		}
		raw, _ := io.ReadAll(r.Body)
		if seen != nil {
			_ = json.Unmarshal(raw, seen)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChat_ContentAndStop(t *testing.T) {
	var body map[string]any
	srv := newTestServer(t, http.StatusOK,
		`{"choices":[{"message":{"content":"Thought: I know this"},"finish_reason":"stop"}],"usage":{"total_tokens":7}}`,
		&body)

	p := NewOpenAIProvider("gsk_test", srv.URL, "groq/gemma2-9b-it", "groq", nil)
	opts := schema.NewChatOptions("", 256, 0).WithStop("\nObservation:")
	resp, err := p.Chat(context.Background(), schema.NewMessages(schema.NewUserMessage("hi")), nil, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "Thought: I know this" {
		t.Errorf("unexpected content %q", resp.Content)
	}
	if resp.Usage["total_tokens"] != 7 {
		t.Errorf("unexpected usage %v", resp.Usage)
	}
	if body["model"] != "gemma2-9b-it" {
		t.Errorf("expected provider prefix stripped, got %v", body["model"])
	}
	stop, _ := body["stop"].([]any)
	if len(stop) != 1 || stop[0] != "\nObservation:" {
		t.Errorf("stop not forwarded: %v", body["stop"])
	}
	if _, ok := body["tools"]; ok {
		t.Error("tools must be omitted when none are given")
	}
}

func TestChat_ToolCalls(t *testing.T) {
	var body map[string]any
	srv := newTestServer(t, http.StatusOK,
		`{"choices":[{"message":{"content":null,"tool_calls":[{"id":"c1","function":{"name":"Calculator","arguments":"{\"query\":\"2+2\"}"}}]},"finish_reason":"tool_calls"}]}`,
		&body)

	p := NewOpenAIProvider("gsk_test", srv.URL, "gemma2-9b-it", "groq", nil)
	tools := []map[string]any{{"type": "function", "function": map[string]any{"name": "Calculator"}}}
	resp, err := p.Chat(context.Background(), schema.NewMessages(schema.NewUserMessage("2+2?")), tools, schema.ChatOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.HasToolCalls() || resp.ToolCalls[0].Name != "Calculator" {
		t.Fatalf("expected a Calculator call, got %+v", resp)
	}
	if resp.ToolCalls[0].Arguments["query"] != "2+2" {
		t.Errorf("unexpected arguments %v", resp.ToolCalls[0].Arguments)
	}
	if body["tool_choice"] != "auto" {
		t.Errorf("expected tool_choice=auto, got %v", body["tool_choice"])
	}
}

func TestChat_HTTPError(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized, `{"error":"invalid api key"}`, nil)

	p := NewOpenAIProvider("gsk_test", srv.URL, "gemma2-9b-it", "groq", nil)
	_, err := p.Chat(context.Background(), schema.NewMessages(schema.NewUserMessage("hi")), nil, schema.ChatOptions{})
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("unexpected status %d", httpErr.StatusCode)
	}
}

func TestNewOpenAIProvider_DefaultBase(t *testing.T) {
	p := NewOpenAIProvider("gsk_test", "", "gemma2-9b-it", "groq", nil)
	if p.APIBase() != "https://api.groq.com/openai/v1" {
		t.Errorf("unexpected base %q", p.APIBase())
	}
	or := NewOpenAIProvider("sk-or-abc", "", "google/gemma-2-9b-it", "", nil)
	if or.APIBase() != "https://openrouter.ai/api/v1" {
		t.Errorf("expected openrouter gateway base, got %q", or.APIBase())
	}
	if got := or.resolveModel("openrouter/google/gemma-2-9b-it"); got != "google/gemma-2-9b-it" {
		t.Errorf("gateway must keep vendor prefix, got %q", got)
	}
}

func TestRepairJSON(t *testing.T) {
	cases := map[string]string{
		`{"query":"x"}`:     "x",
		`{"query":"x"`:      "x",
		`{"query":"x"}}}`:   "x",
		`{"query":"x"} foo`: "x",
	}
	for in, want := range cases {
		got, err := repairJSON(in)
		if err != nil {
			t.Errorf("repairJSON(%q) error: %v", in, err)
			continue
		}
		if got["query"] != want {
			t.Errorf("repairJSON(%q) = %v", in, got)
		}
	}
}
