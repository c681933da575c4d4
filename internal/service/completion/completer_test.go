package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/telliex/ai-swift/internal/config"
	"github.com/telliex/ai-swift/internal/model/chat"
)

func newTestCompleter(baseURL string) *Completer {
	return New(config.GroqConfig{
		APIKey:    "test-key",
		BaseURL:   baseURL,
		ChatModel: "llama3-8b-8192",
	})
}

type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestCompletePreservesMessageOrder(t *testing.T) {
	var captured capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"the reply"}}]}`)
	}))
	defer srv.Close()

	history := []chat.Turn{
		{Role: chat.RoleUser, Content: "first question"},
		{Role: chat.RoleAssistant, Content: "first answer"},
	}

	reply, err := newTestCompleter(srv.URL).Complete(context.Background(), "system text", history, "second question")
	if err != nil {
		t.Fatalf("Complete err: %v", err)
	}
	if reply != "the reply" {
		t.Fatalf("reply = %q", reply)
	}

	if captured.Model != "llama3-8b-8192" {
		t.Errorf("model = %q", captured.Model)
	}

	wantRoles := []string{"system", "user", "assistant", "user"}
	wantContent := []string{"system text", "first question", "first answer", "second question"}
	if len(captured.Messages) != len(wantRoles) {
		t.Fatalf("message count = %d, want %d", len(captured.Messages), len(wantRoles))
	}
	for i, msg := range captured.Messages {
		if msg.Role != wantRoles[i] || msg.Content != wantContent[i] {
			t.Errorf("message %d = (%s, %q), want (%s, %q)", i, msg.Role, msg.Content, wantRoles[i], wantContent[i])
		}
	}
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	if _, err := newTestCompleter(srv.URL).Complete(context.Background(), "system", nil, "hi"); err == nil {
		t.Fatal("expected error when no choices returned")
	}
}

func TestIsRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limit reached","type":"tokens"}}`)
	}))
	defer srv.Close()

	_, err := newTestCompleter(srv.URL).Complete(context.Background(), "system", nil, "hi")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsRateLimited(err) {
		t.Fatalf("IsRateLimited(%v) = false, want true", err)
	}
}

func TestIsRateLimitedOtherFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestCompleter(srv.URL).Complete(context.Background(), "system", nil, "hi")
	if err == nil {
		t.Fatal("expected error")
	}
	if IsRateLimited(err) {
		t.Fatalf("IsRateLimited(%v) = true, want false", err)
	}
}
