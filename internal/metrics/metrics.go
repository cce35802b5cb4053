package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

var (
	ProviderAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provider_attempts_total",
		Help: "Generation provider attempts by provider, kind and outcome",
	}, []string{"provider", "kind", "outcome"})

	StaticFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "generation_static_fallbacks_total",
		Help: "Times generation fell back to static content",
	}, []string{"kind"})

	HybridBatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trend_hybrid_batches_total",
		Help: "Hybrid trend batches by outcome",
	}, []string{"outcome"})

	FacebookPublishes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facebook_publishes_total",
		Help: "Facebook publish attempts by outcome",
	}, []string{"outcome"})
)
