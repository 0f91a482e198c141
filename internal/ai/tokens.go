package ai

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

const fallbackEncoding = "cl100k_base"

// TokenCounter оценивает размер текста в токенах модели.
// Если словарь tiktoken недоступен, используется грубая оценка (руны / 4).
type TokenCounter struct {
	model  string
	logger *zap.Logger

	once     sync.Once
	encoding *tiktoken.Tiktoken
}

// NewTokenCounter создает счетчик для модели. Словарь загружается лениво при первом вызове.
func NewTokenCounter(model string, logger *zap.Logger) *TokenCounter {
	return &TokenCounter{
		model:  model,
		logger: logger.Named("TokenCounter"),
	}
}

// Count возвращает число токенов в text.
func (t *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	t.once.Do(t.loadEncoding)
	if t.encoding == nil {
		return estimateTokens(text)
	}
	return len(t.encoding.Encode(text, nil, nil))
}

// Warmup загружает словарь заранее, чтобы первый запрос не ждал загрузки.
func (t *TokenCounter) Warmup() {
	t.once.Do(t.loadEncoding)
}

func (t *TokenCounter) loadEncoding() {
	encoding, err := tiktoken.EncodingForModel(t.model)
	if err != nil {
		t.logger.Debug("No tiktoken encoding for model, using fallback", zap.String("model", t.model), zap.Error(err))
		encoding, err = tiktoken.GetEncoding(fallbackEncoding)
	}
	if err != nil {
		t.logger.Warn("Failed to load tiktoken encoding, token counts are estimated", zap.Error(err))
		return
	}
	t.encoding = encoding
}

func estimateTokens(text string) int {
	runes := utf8.RuneCountInString(text)
	tokens := runes / 4
	if runes%4 != 0 {
		tokens++
	}
	return tokens
}
