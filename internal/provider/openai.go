package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/smartcat-ai/kicat/internal/config"
)

const openaiBaseURL = "https://api.openai.com"

func init() {
	Register("openai", func(cfg config.ProviderConfig) (Client, error) {
		return newOpenAI(cfg), nil
	})
	// Custom providers speak the OpenAI-compatible chat API against a
	// user-supplied base URL.
	Register("custom", func(cfg config.ProviderConfig) (Client, error) {
		c := newOpenAI(cfg)
		c.name = "custom"
		return c, nil
	})
}

type openaiClient struct {
	name        string
	apiKey      string
	model       string
	baseURL     string
	maxTokens   int
	temperature float64
	client      *http.Client
}

func newOpenAI(cfg config.ProviderConfig) *openaiClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openaiBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &openaiClient{
		name:        "openai",
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     baseURL,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: timeout},
	}
}

func (c *openaiClient) Name() string { return c.name }

type openaiRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
	Messages    []openaiMessage `json:"messages"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openaiClient) Send(ctx context.Context, system, user string) (string, error) {
	messages := []openaiMessage{}
	if system != "" {
		messages = append(messages, openaiMessage{Role: "system", Content: system})
	}
	messages = append(messages, openaiMessage{Role: "user", Content: user})

	payload := openaiRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages:    messages,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &Error{Kind: ErrMalformedResponse, Provider: c.Name(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: ErrNetwork, Provider: c.Name(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &Error{Kind: ErrNetwork, Provider: c.Name(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", &Error{Kind: ErrAuth, Provider: c.Name(), Message: apiMessage(respBody)}
	}
	if resp.StatusCode >= 400 {
		return "", &Error{
			Kind:     ErrNetwork,
			Provider: c.Name(),
			Message:  fmt.Sprintf("API returned %d: %s", resp.StatusCode, apiMessage(respBody)),
		}
	}

	var result openaiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &Error{Kind: ErrMalformedResponse, Provider: c.Name(), Err: err}
	}
	if len(result.Choices) == 0 {
		return "", &Error{Kind: ErrMalformedResponse, Provider: c.Name(), Message: "no choices in response"}
	}
	return result.Choices[0].Message.Content, nil
}

func (c *openaiClient) Ping(ctx context.Context) error {
	_, err := c.Send(ctx, "", "ping")
	return err
}
