package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"timeless-server/internal/config"
)

func newTestOllamaClient(t *testing.T, handler http.HandlerFunc) *ollamaClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := newOllamaClient(config.AIConfig{
		ClientType:  config.AIClientOllama,
		BaseURL:     server.URL + "/v1/",
		Model:       "llama3",
		MaxTokens:   256,
		Temperature: 0.5,
		Timeout:     5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	return client
}

func TestOllamaClient_GenerateCompletionsSequentially(t *testing.T) {
	var calls int32
	client := newTestOllamaClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req api.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.EqualValues(t, 256, req.Options["num_predict"])

		n := atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"model":"llama3","message":{"role":"assistant","content":" answer %d "},"done":true,"prompt_eval_count":10,"eval_count":3}`+"\n", n)
	})

	completions, err := client.GenerateCompletions(context.Background(), "hello", "Translate.", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"answer 1", "answer 2", "answer 3"}, completions)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestOllamaClient_FailureDiscardsPartialResults(t *testing.T) {
	var calls int32
	client := newTestOllamaClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":"model crashed"}`)
			return
		}
		fmt.Fprint(w, `{"model":"llama3","message":{"role":"assistant","content":"ok"},"done":true}`+"\n")
	})

	completions, err := client.GenerateCompletions(context.Background(), "hello", "Translate.", 3)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Nil(t, completions)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls), "generation stops at the first failure")
}

func TestOllamaClient_EmptyResponse(t *testing.T) {
	client := newTestOllamaClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"model":"llama3","message":{"role":"assistant","content":"   "},"done":true}`+"\n")
	})

	_, err := client.GenerateCompletions(context.Background(), "hello", "Translate.", 1)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}
