package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	promptSizeBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "assembled_prompt_size_bytes",
		Help:    "Size of the assembled system prompt sent to the provider.",
		Buckets: prometheus.ExponentialBuckets(512, 2, 12),
	})
	proposalsGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proposed_examples_generated_total",
		Help: "Number of proposed example generations by source and outcome.",
	}, []string{"source", "status"})
	examplesPromotedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "examples_promoted_total",
		Help: "Number of proposed examples promoted into accepted examples.",
	})
	processInputTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "process_input_requests_total",
		Help: "Number of processed user inputs by outcome.",
	}, []string{"status"})
)
