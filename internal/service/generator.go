package service

import (
	"context"

	"github.com/ravichandra178/mynitrends/internal/generation"
)

// Generator produces content. *generation.Orchestrator implements it.
type Generator interface {
	Post(ctx context.Context, topic string) generation.PostDraft
	Trends(ctx context.Context) generation.TrendResult
	Reply(ctx context.Context, comment, tone string) generation.Reply
}
