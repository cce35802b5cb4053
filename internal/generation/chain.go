// Package generation tries text providers in order and degrades to static
// content when none of them produce usable output.
package generation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ravichandra178/mynitrends/internal/metrics"
	"github.com/ravichandra178/mynitrends/internal/provider"
)

var ErrExhausted = errors.New("all providers failed or are unconfigured")

// runChain gives each configured provider exactly one attempt, in order, and
// returns the first result that parse accepts along with the provider name.
// Unconfigured providers are skipped without a network call.
func runChain[T any](
	ctx context.Context,
	kind string,
	providers []provider.TextProvider,
	prompt provider.Prompt,
	parse func(*provider.Response) (T, error),
) (T, string, error) {
	var zero T

	for _, p := range providers {
		if !p.Configured() {
			slog.Debug("provider not configured, skipping", "provider", p.Name(), "kind", kind)
			metrics.ProviderAttempts.WithLabelValues(p.Name(), kind, metrics.OutcomeSkipped).Inc()
			continue
		}

		result, err := attempt(ctx, p, prompt, parse)
		if err != nil {
			slog.Warn("provider failed", "provider", p.Name(), "kind", kind, "error", err)
			metrics.ProviderAttempts.WithLabelValues(p.Name(), kind, metrics.OutcomeFailure).Inc()
			continue
		}

		slog.Info("provider succeeded", "provider", p.Name(), "kind", kind)
		metrics.ProviderAttempts.WithLabelValues(p.Name(), kind, metrics.OutcomeSuccess).Inc()
		return result, p.Name(), nil
	}

	return zero, "", ErrExhausted
}

func attempt[T any](ctx context.Context, p provider.TextProvider, prompt provider.Prompt, parse func(*provider.Response) (T, error)) (T, error) {
	var zero T
	resp, err := p.Generate(ctx, prompt)
	if err != nil {
		return zero, err
	}
	return parse(resp)
}
