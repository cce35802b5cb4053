package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ravichandra178/mynitrends/internal/metrics"
	"github.com/ravichandra178/mynitrends/internal/normalize"
	"golang.org/x/sync/errgroup"
)

var errNotConfigured = errors.New("not configured")

type hybridPart struct {
	name  string
	count int
	fetch func(ctx context.Context) ([]normalize.TrendItem, error)
}

// hybridTrends runs every hybrid part concurrently and waits for all of them.
// The batch is only accepted when each part returned at least its count.
func (o *Orchestrator) hybridTrends(ctx context.Context) ([]normalize.TrendItem, bool) {
	parts := o.hybridParts()
	if len(parts) == 0 {
		return nil, false
	}
	results := make([][]normalize.TrendItem, len(parts))

	var g errgroup.Group
	for i, part := range parts {
		g.Go(func() error {
			items, err := part.fetch(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", part.name, err)
			}
			if len(items) < part.count {
				return fmt.Errorf("%s: got %d trends, need %d", part.name, len(items), part.count)
			}
			results[i] = items[:part.count]
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Warn("hybrid trend batch discarded", "error", err)
		metrics.HybridBatches.WithLabelValues(metrics.OutcomeFailure).Inc()
		return nil, false
	}

	var items []normalize.TrendItem
	for _, r := range results {
		items = append(items, r...)
	}
	metrics.HybridBatches.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return items, true
}

func (o *Orchestrator) hybridParts() []hybridPart {
	var parts []hybridPart

	for _, src := range o.hybrid.Sources {
		p := src.Provider
		count := src.Count
		parts = append(parts, hybridPart{
			name:  p.Name(),
			count: count,
			fetch: func(ctx context.Context) ([]normalize.TrendItem, error) {
				if !p.Configured() {
					metrics.ProviderAttempts.WithLabelValues(p.Name(), "trends", metrics.OutcomeSkipped).Inc()
					return nil, errNotConfigured
				}
				items, err := attempt(ctx, p, trendsPrompt(count), normalize.Trends)
				if err != nil {
					metrics.ProviderAttempts.WithLabelValues(p.Name(), "trends", metrics.OutcomeFailure).Inc()
					return nil, err
				}
				metrics.ProviderAttempts.WithLabelValues(p.Name(), "trends", metrics.OutcomeSuccess).Inc()
				return tagSource(items, p.Name()), nil
			},
		})
	}

	if o.hybrid.FeedCount > 0 {
		parts = append(parts, hybridPart{
			name:  "feed",
			count: o.hybrid.FeedCount,
			fetch: func(ctx context.Context) ([]normalize.TrendItem, error) {
				if o.feed == nil || !o.feed.Configured() {
					return nil, errNotConfigured
				}
				return o.feedTrends(ctx, o.hybrid.FeedCount)
			},
		})
	}

	return parts
}
