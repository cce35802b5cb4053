package job

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ravichandra178/mynitrends/internal/models"
	"github.com/ravichandra178/mynitrends/internal/repository"
	"github.com/ravichandra178/mynitrends/internal/service"
)

const (
	engagementBatchSize   = 50
	engagementConcurrency = 5
)

type EngagementRefreshJob struct {
	pr repository.PostRepository
	ps service.PublishService
}

func NewEngagementRefreshJob(pr repository.PostRepository, ps service.PublishService) *EngagementRefreshJob {
	return &EngagementRefreshJob{
		pr: pr,
		ps: ps,
	}
}

// RefreshEngagement updates like and comment counts of the most recently
// published posts.
func (j *EngagementRefreshJob) RefreshEngagement() {
	ctx := context.Background()

	posts, err := j.pr.ListPublished(ctx, engagementBatchSize)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, engagementConcurrency)

	for _, post := range posts {
		if post.FacebookPostID == nil {
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(post *models.Post) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if _, err := j.ps.RefreshEngagement(ctx, post.ID, *post.FacebookPostID); err != nil {
				slog.Info("Unable to refresh engagement", "post_id", post.ID, "error", err)
			}
		}(post)
	}

	wg.Wait()
	slog.Info("engagement refreshed", "posts", len(posts))
}
