package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/Nydaym/mineru-extractor/internal/config"
)

func testConfig(url string) config.LLMConfig {
	return config.LLMConfig{
		Model:       "test-model",
		BaseURL:     url,
		APIKey:      "test-key",
		Timeout:     5,
		MaxTokens:   256,
		Temperature: 0.0,
	}
}

func TestGetModel(t *testing.T) {
	c := NewClient(testConfig("http://127.0.0.1:1"), zap.NewNop())
	if c.GetModel() != "test-model" {
		t.Errorf("expected configured model, got %q", c.GetModel())
	}
}

func TestCompleteJSON(t *testing.T) {
	var got ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("authorization: got %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"{\"items\":[]}"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zap.NewNop())
	content, err := c.CompleteJSON(context.Background(), "system text", "user text")
	if err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if content != `{"items":[]}` {
		t.Errorf("content: got %q", content)
	}

	if got.Model != "test-model" {
		t.Errorf("model: got %q", got.Model)
	}
	if got.ResponseFormat == nil || got.ResponseFormat.Type != "json_object" {
		t.Error("expected response_format json_object")
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Errorf("messages: got %+v", got.Messages)
	}
}

func TestCompleteJSONNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zap.NewNop())
	if _, err := c.CompleteJSON(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error when the model returns no choices")
	}
}

func TestChatCompletionNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zap.NewNop())
	_, err := c.ChatCompletion(context.Background(), ChatRequest{Model: "test-model"})
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
