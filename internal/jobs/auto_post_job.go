package job

import (
	"context"
	"log/slog"

	"github.com/ravichandra178/mynitrends/internal/service"
	"github.com/ravichandra178/mynitrends/internal/transfer"
)

type AutoPostJob struct {
	ps service.PublishService
}

func NewAutoPostJob(ps service.PublishService) *AutoPostJob {
	return &AutoPostJob{ps: ps}
}

func (j *AutoPostJob) PublishDuePosts() {
	report, err := j.ps.AutoPost(context.Background())
	if err != nil {
		slog.Error("auto-post run failed", "error", err)
		return
	}

	published := 0
	for _, r := range report.Results {
		if r.Status == transfer.AutoPostPublished {
			published++
		}
	}
	slog.Info("auto-post run finished", "attempted", len(report.Results), "published", published, "message", report.Message)
}
