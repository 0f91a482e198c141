package ai

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess       = "success"
	statusError         = "error"
	statusShortResponse = "error_short_response"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of requests to the completion provider.",
		},
		[]string{"model", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "Histogram of completion request durations.",
			Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 20, 40, 80, 120},
		},
		[]string{"model"},
	)
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_prompt_tokens",
			Help:    "Histogram of prompt token counts reported by the provider.",
			Buckets: prometheus.ExponentialBuckets(128, 2, 10), // 128 ... 65536
		},
		[]string{"model"},
	)
	aiCompletionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_completion_tokens",
			Help:    "Histogram of completion token counts reported by the provider.",
			Buckets: prometheus.LinearBuckets(100, 100, 20),
		},
		[]string{"model"},
	)
)

func observeRequest(model, status string, started time.Time) {
	aiRequestsTotal.With(prometheus.Labels{"model": model, "status": status}).Inc()
	if status == statusSuccess {
		aiRequestDuration.With(prometheus.Labels{"model": model}).Observe(time.Since(started).Seconds())
	}
}

func observeUsage(model string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		aiPromptTokens.With(prometheus.Labels{"model": model}).Observe(float64(promptTokens))
	}
	if completionTokens > 0 {
		aiCompletionTokens.With(prometheus.Labels{"model": model}).Observe(float64(completionTokens))
	}
}
