package provider

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/smartcat-ai/kicat/internal/config"
)

func init() {
	Register("gemini", func(cfg config.ProviderConfig) (Client, error) {
		return newGemini(cfg)
	})
}

type geminiClient struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature float64
}

func newGemini(cfg config.ProviderConfig) (*geminiClient, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, &Error{Kind: ErrAuth, Provider: "gemini", Err: err}
	}
	return &geminiClient{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (c *geminiClient) Name() string { return "gemini" }

func (c *geminiClient) Send(ctx context.Context, system, user string) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(c.temperature)),
		MaxOutputTokens: int32(c.maxTokens),
	}
	if system != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(user, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, genCfg)
	if err != nil {
		return "", classifyGeminiError(err)
	}

	text := result.Text()
	if text == "" {
		return "", &Error{Kind: ErrMalformedResponse, Provider: c.Name(), Message: "no text in response"}
	}
	return text, nil
}

func (c *geminiClient) Ping(ctx context.Context) error {
	_, err := c.Send(ctx, "", "ping")
	return err
}

// classifyGeminiError maps SDK errors onto the provider taxonomy. The
// SDK does not expose typed auth errors, so we sniff the message.
func classifyGeminiError(err error) error {
	msg := strings.ToLower(err.Error())
	kind := ErrNetwork
	if strings.Contains(msg, "api key") || strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "permission") || strings.Contains(msg, "401") ||
		strings.Contains(msg, "403") {
		kind = ErrAuth
	}
	return &Error{Kind: kind, Provider: "gemini", Err: err}
}
