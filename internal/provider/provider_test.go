package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartcat-ai/kicat/internal/config"
)

func TestRegistry(t *testing.T) {
	for _, name := range []string{"anthropic", "openai", "gemini", "custom"} {
		if !Exists(name) {
			t.Errorf("provider %q not registered", name)
		}
	}

	_, err := New(config.ProviderConfig{Name: "watson"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !IsKind(err, ErrUnsupportedProvider) {
		t.Errorf("error kind = %v, want ErrUnsupportedProvider", err)
	}
}

func TestAnthropicSend(t *testing.T) {
	var gotAuth, gotVersion string
	var gotReq anthropicRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("X-API-Key")
		gotVersion = r.Header.Get("anthropic-version")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": "Here is your circuit."},
			},
		})
	}))
	defer srv.Close()

	c := newAnthropic(config.ProviderConfig{
		APIKey:    "sk-ant-test",
		Model:     "claude-3-5-sonnet-20241022",
		BaseURL:   srv.URL,
		MaxTokens: 1024,
	})

	reply, err := c.Send(context.Background(), "You are a PCB assistant.", "make an led controller")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if reply != "Here is your circuit." {
		t.Errorf("reply = %q", reply)
	}
	if gotAuth != "sk-ant-test" {
		t.Errorf("X-API-Key = %q", gotAuth)
	}
	if gotVersion == "" {
		t.Error("anthropic-version header missing")
	}
	if gotReq.System != "You are a PCB assistant." {
		t.Errorf("system prompt = %q", gotReq.System)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestAnthropicAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "authentication_error", "message": "invalid x-api-key"},
		})
	}))
	defer srv.Close()

	c := newAnthropic(config.ProviderConfig{APIKey: "bad", BaseURL: srv.URL})
	_, err := c.Send(context.Background(), "", "hi")
	if !IsKind(err, ErrAuth) {
		t.Fatalf("error = %v, want ErrAuth", err)
	}

	var pe *Error
	if !asProviderError(err, &pe) || pe.Message != "invalid x-api-key" {
		t.Errorf("provider message not surfaced: %v", err)
	}
}

func TestAnthropicMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := newAnthropic(config.ProviderConfig{BaseURL: srv.URL})
	_, err := c.Send(context.Background(), "", "hi")
	if !IsKind(err, ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestAnthropicNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := newAnthropic(config.ProviderConfig{BaseURL: srv.URL})
	_, err := c.Send(context.Background(), "", "hi")
	if !IsKind(err, ErrNetwork) {
		t.Errorf("error = %v, want ErrNetwork", err)
	}
}

func TestOpenAISend(t *testing.T) {
	var gotAuth string
	var gotReq openaiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Done."}},
			},
		})
	}))
	defer srv.Close()

	c := newOpenAI(config.ProviderConfig{APIKey: "sk-test", Model: "gpt-4", BaseURL: srv.URL})

	reply, err := c.Send(context.Background(), "system prompt", "user message")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if reply != "Done." {
		t.Errorf("reply = %q", reply)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestOpenAIEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := newOpenAI(config.ProviderConfig{BaseURL: srv.URL})
	_, err := c.Send(context.Background(), "", "hi")
	if !IsKind(err, ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestErrorString(t *testing.T) {
	e := &Error{Kind: ErrAuth, Provider: "anthropic", Message: "invalid key"}
	want := "anthropic: auth error: invalid key"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
}

func asProviderError(err error, target **Error) bool {
	pe, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = pe
	return true
}
