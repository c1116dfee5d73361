// Package genai provides the embedding and completion collaborators.
// This file contains the Gemini implementations (fallback provider).
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiEmbedder generates embeddings via the Gemini API.
// It implements the Embedder interface.
type geminiEmbedder struct {
	client *genai.Client
	model  string
}

// newGeminiEmbedder creates a new Gemini embedder.
// Returns nil if apiKey is empty (provider disabled).
func newGeminiEmbedder(ctx context.Context, apiKey, model string) (*geminiEmbedder, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: provider disabled when no API key
	}
	if model == "" {
		model = DefaultGeminiEmbeddingModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiEmbedder{client: client, model: model}, nil
}

// Embed generates an embedding vector for the given text.
func (e *geminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e == nil || e.client == nil {
		return nil, errors.New("gemini embedder not configured")
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text cannot be embedded")
	}

	config := &genai.EmbedContentConfig{
		OutputDimensionality: genai.Ptr[int32](EmbeddingDimensions),
	}
	resp, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), config)
	if err != nil {
		return nil, wrapGeminiError(err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, WrapError(errors.New("empty embedding returned"), ProviderGemini, 0)
	}

	return resp.Embeddings[0].Values, nil
}

// Provider returns the provider type for this embedder.
func (e *geminiEmbedder) Provider() Provider {
	return ProviderGemini
}

// Close releases resources. The genai client needs no cleanup.
func (e *geminiEmbedder) Close() error {
	return nil
}

// geminiCompleter produces completions via the Gemini API.
// It implements the Completer interface.
type geminiCompleter struct {
	client *genai.Client
	model  string
}

// newGeminiCompleter creates a new Gemini completer.
// Returns nil if apiKey is empty (provider disabled).
func newGeminiCompleter(ctx context.Context, apiKey, model string) (*geminiCompleter, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: provider disabled when no API key
	}
	if model == "" {
		model = DefaultGeminiChatModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiCompleter{client: client, model: model}, nil
}

// Complete returns the model's reply text for the message list.
// System messages become the system instruction; the remaining messages
// are folded into the content turn list.
func (c *geminiCompleter) Complete(ctx context.Context, messages []Message, params CompletionParams) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("gemini completer not configured")
	}

	config := &genai.GenerateContentConfig{}
	if params.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(params.Temperature))
	}
	if params.MaxTokens > 0 {
		config.MaxOutputTokens = int32(params.MaxTokens)
	}

	var contents []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			config.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: m.Content}},
			}
		case RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: m.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: m.Content}},
			})
		}
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		slog.WarnContext(ctx, "gemini completion failed",
			"model", c.model,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err)
		return "", wrapGeminiError(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", WrapError(errors.New("empty completion returned"), ProviderGemini, 0)
	}
	return text, nil
}

// Provider returns the provider type for this completer.
func (c *geminiCompleter) Provider() Provider {
	return ProviderGemini
}

// Close releases resources. The genai client needs no cleanup.
func (c *geminiCompleter) Close() error {
	return nil
}

// wrapGeminiError surfaces the API status so ClassifyError can tell API
// errors apart from transport failures.
func wrapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return WrapError(err, ProviderGemini, apiErr.Code)
	}
	return WrapError(err, ProviderGemini, 0)
}
