package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"

	"timeless-server/internal/config"
)

// ollamaClient использует нативный API Ollama. У него нет параметра n,
// поэтому варианты запрашиваются последовательно.
type ollamaClient struct {
	client      *api.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
	logger      *zap.Logger
}

func newOllamaClient(cfg config.AIConfig, logger *zap.Logger) (*ollamaClient, error) {
	// api.NewClient ожидает URL без суффикса /v1
	baseURL := strings.TrimSuffix(strings.TrimSuffix(cfg.BaseURL, "/"), "/v1")
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Ollama base URL '%s': %w", baseURL, err)
	}

	logger = logger.Named("OllamaClient")
	logger.Info("Ollama client created",
		zap.String("baseURL", baseURL),
		zap.String("model", cfg.Model),
		zap.Duration("timeout", cfg.Timeout),
	)

	return &ollamaClient{
		client:      api.NewClient(parsedURL, &http.Client{Timeout: cfg.Timeout}),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      logger,
	}, nil
}

func (c *ollamaClient) GenerateCompletions(ctx context.Context, input, systemPrompt string, n int) ([]string, error) {
	if err := validateRequest(input, n); err != nil {
		return nil, err
	}

	completions := make([]string, 0, n)
	for i := 0; i < n; i++ {
		text, err := c.chat(ctx, input, systemPrompt)
		if err != nil {
			c.logger.Error("Ollama chat failed", zap.Int("candidate", i+1), zap.Int("n", n), zap.Error(err))
			return nil, fmt.Errorf("%w: candidate %d of %d: %v", ErrGenerationFailed, i+1, n, err)
		}
		completions = append(completions, text)
	}
	return completions, nil
}

func (c *ollamaClient) chat(ctx context.Context, input, systemPrompt string) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: input},
		},
		Stream: &stream,
		Options: map[string]interface{}{
			"temperature": c.temperature,
			"num_predict": c.maxTokens,
		},
	}

	requestCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		requestCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	started := time.Now()
	var resp api.ChatResponse
	err := c.client.Chat(requestCtx, req, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	if err != nil {
		observeRequest(c.model, statusError, started)
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("timeout after %v: %w", c.timeout, err)
		}
		return "", err
	}

	text := strings.TrimSpace(resp.Message.Content)
	if text == "" {
		observeRequest(c.model, statusShortResponse, started)
		return "", errors.New("empty response")
	}

	observeRequest(c.model, statusSuccess, started)
	observeUsage(c.model, resp.PromptEvalCount, resp.EvalCount)
	c.logger.Debug("Ollama chat completed",
		zap.Duration("duration", time.Since(started)),
		zap.Int("promptTokens", resp.PromptEvalCount),
		zap.Int("completionTokens", resp.EvalCount),
	)
	return text, nil
}
