package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"timeless-server/internal/config"
)

// openAIClient запрашивает все n вариантов одним вызовом Chat Completions.
type openAIClient struct {
	client      *openaigo.Client
	model       string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

func newOpenAIClient(cfg config.AIConfig, logger *zap.Logger) *openAIClient {
	openaiConfig := openaigo.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		openaiConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	openaiConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	logger = logger.Named("OpenAIClient")
	logger.Info("OpenAI client created",
		zap.String("baseURL", openaiConfig.BaseURL),
		zap.String("model", cfg.Model),
		zap.Duration("timeout", cfg.Timeout),
	)

	return &openAIClient{
		client:      openaigo.NewClientWithConfig(openaiConfig),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      logger,
	}
}

func (c *openAIClient) GenerateCompletions(ctx context.Context, input, systemPrompt string, n int) ([]string, error) {
	if err := validateRequest(input, n); err != nil {
		return nil, err
	}

	log := c.logger.With(zap.Int("n", n), zap.Int("systemPromptBytes", len(systemPrompt)), zap.Int("inputBytes", len(input)))
	log.Debug("Sending chat completion request")

	started := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model: c.model,
		Messages: []openaigo.ChatCompletionMessage{
			{Role: openaigo.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openaigo.ChatMessageRoleUser, Content: input},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		N:           n,
	})
	if err != nil {
		observeRequest(c.model, statusError, started)
		log.Error("Chat completion request failed", zap.Duration("duration", time.Since(started)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if len(resp.Choices) < n {
		observeRequest(c.model, statusShortResponse, started)
		log.Error("Provider returned fewer choices than requested", zap.Int("choices", len(resp.Choices)))
		return nil, fmt.Errorf("%w: expected %d choices, got %d", ErrGenerationFailed, n, len(resp.Choices))
	}

	completions := make([]string, 0, n)
	for _, choice := range resp.Choices[:n] {
		completions = append(completions, strings.TrimSpace(choice.Message.Content))
	}

	observeRequest(c.model, statusSuccess, started)
	observeUsage(c.model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	log.Info("Chat completion received",
		zap.Duration("duration", time.Since(started)),
		zap.Int("promptTokens", resp.Usage.PromptTokens),
		zap.Int("completionTokens", resp.Usage.CompletionTokens),
	)
	return completions, nil
}
