// Package genai provides the embedding and completion collaborators.
// This file contains the OpenAI implementations.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openaiEmbedder generates embeddings via the OpenAI embeddings API.
// It implements the Embedder interface.
type openaiEmbedder struct {
	client openai.Client
	model  string
}

// newOpenAIEmbedder creates a new OpenAI embedder.
// Returns nil if apiKey is empty (provider disabled).
func newOpenAIEmbedder(apiKey, model string) *openaiEmbedder {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = DefaultOpenAIEmbeddingModel
	}
	return &openaiEmbedder{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Embed generates an embedding vector for the given text.
func (e *openaiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e == nil {
		return nil, errors.New("openai embedder not configured")
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text cannot be embedded")
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model:      openai.EmbeddingModel(e.model),
		Input:      openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Dimensions: openai.Int(EmbeddingDimensions),
	})
	if err != nil {
		return nil, wrapOpenAIError(err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, WrapError(errors.New("empty embedding returned"), ProviderOpenAI, 0)
	}

	vec := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}

// Provider returns the provider type for this embedder.
func (e *openaiEmbedder) Provider() Provider {
	return ProviderOpenAI
}

// Close releases resources. The openai-go client needs no cleanup.
func (e *openaiEmbedder) Close() error {
	return nil
}

// openaiCompleter produces completions via the OpenAI chat API.
// It implements the Completer interface.
type openaiCompleter struct {
	client openai.Client
	model  string
}

// newOpenAICompleter creates a new OpenAI completer.
// Returns nil if apiKey is empty (provider disabled).
func newOpenAICompleter(apiKey, model string) *openaiCompleter {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = DefaultOpenAIChatModel
	}
	return &openaiCompleter{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Complete returns the model's reply text for the message list.
func (c *openaiCompleter) Complete(ctx context.Context, messages []Message, params CompletionParams) (string, error) {
	if c == nil {
		return "", errors.New("openai completer not configured")
	}

	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			converted = append(converted, openai.SystemMessage(m.Content))
		case RoleAssistant:
			converted = append(converted, openai.AssistantMessage(m.Content))
		default:
			converted = append(converted, openai.UserMessage(m.Content))
		}
	}

	req := openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: converted,
	}
	if params.Temperature > 0 {
		req.Temperature = openai.Float(params.Temperature)
	}
	if params.MaxTokens > 0 {
		req.MaxTokens = openai.Int(int64(params.MaxTokens))
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "openai completion failed",
			"model", c.model,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err)
		return "", wrapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", WrapError(errors.New("no completion choices returned"), ProviderOpenAI, 0)
	}

	if resp.Usage.TotalTokens > 0 {
		slog.DebugContext(ctx, "openai completion",
			"model", c.model,
			"input_tokens", resp.Usage.PromptTokens,
			"output_tokens", resp.Usage.CompletionTokens,
			"duration_ms", time.Since(start).Milliseconds())
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Provider returns the provider type for this completer.
func (c *openaiCompleter) Provider() Provider {
	return ProviderOpenAI
}

// Close releases resources. The openai-go client needs no cleanup.
func (c *openaiCompleter) Close() error {
	return nil
}

// wrapOpenAIError surfaces the HTTP status so ClassifyError can tell API
// errors apart from transport failures.
func wrapOpenAIError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return WrapError(err, ProviderOpenAI, apierr.StatusCode)
	}
	return WrapError(err, ProviderOpenAI, 0)
}
