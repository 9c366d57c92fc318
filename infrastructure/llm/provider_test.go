package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/merchantlab/consult-go/infrastructure/llm"
)

func TestGeminiProviderComplete(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if _, ok := req["systemInstruction"]; !ok {
			t.Error("system message not mapped to systemInstruction")
		}

		resp := map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"role":  "model",
						"parts": []map[string]string{{"text": "profile_query"}},
					},
					"finishReason": "STOP",
				},
			},
			"usageMetadata": map[string]int{
				"promptTokenCount":     12,
				"candidatesTokenCount": 3,
				"totalTokenCount":      15,
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider := llm.NewGeminiProvider(llm.GeminiConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gemini-2.0-flash",
	})

	resp, err := provider.Complete(context.Background(), llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: "classify intents"},
			{Role: "user", Content: "show my profile"},
		},
	})
	if err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}
	if resp.Message.Role != "assistant" {
		t.Errorf("role = %q, want assistant", resp.Message.Role)
	}
	if resp.Message.Content != "profile_query" {
		t.Errorf("content = %q, want profile_query", resp.Message.Content)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("total tokens = %d, want 15", resp.Usage.TotalTokens)
	}
	if !strings.Contains(gotPath, "gemini-2.0-flash") {
		t.Errorf("model missing from URL path %q", gotPath)
	}
}

func TestOpenAIProviderComplete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		resp := map[string]any{
			"id":    "chatcmpl-1",
			"model": "gpt-4o-mini",
			"choices": []map[string]any{
				{
					"index": 0,
					"message": map[string]string{
						"role":    "assistant",
						"content": "hello merchant",
					},
					"finish_reason": "stop",
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider := llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
	})

	resp, err := provider.Complete(context.Background(), llm.CompletionRequest{
		Messages: []llm.Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}
	if resp.Message.Content != "hello merchant" {
		t.Errorf("content = %q", resp.Message.Content)
	}
}

func TestScriptedProviderReplaysInOrder(t *testing.T) {
	t.Parallel()

	provider := llm.NewScriptedProvider("one", "two")

	for _, want := range []string{"one", "two"} {
		resp, err := provider.Complete(context.Background(), llm.CompletionRequest{})
		if err != nil {
			t.Fatalf("Complete() unexpected error: %v", err)
		}
		if resp.Message.Content != want {
			t.Errorf("content = %q, want %q", resp.Message.Content, want)
		}
	}

	if _, err := provider.Complete(context.Background(), llm.CompletionRequest{}); err == nil {
		t.Error("exhausted script must fail")
	}
	if got := len(provider.Requests()); got != 3 {
		t.Errorf("recorded %d requests, want 3", got)
	}
}
