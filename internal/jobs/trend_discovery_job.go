package job

import (
	"context"
	"log/slog"

	"github.com/ravichandra178/mynitrends/internal/service"
)

type TrendDiscoveryJob struct {
	ts service.TrendService
}

func NewTrendDiscoveryJob(ts service.TrendService) *TrendDiscoveryJob {
	return &TrendDiscoveryJob{ts: ts}
}

func (j *TrendDiscoveryJob) DiscoverTrends() {
	result, err := j.ts.Generate(context.Background())
	if err != nil {
		slog.Error("trend discovery failed", "error", err)
		return
	}
	slog.Info("trend discovery finished", "source", result.Source, "new_trends", result.Count)
}
