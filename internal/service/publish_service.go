package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ravichandra178/mynitrends/internal/metrics"
	"github.com/ravichandra178/mynitrends/internal/models"
	"github.com/ravichandra178/mynitrends/internal/repository"
	"github.com/ravichandra178/mynitrends/internal/transfer"
	"github.com/ravichandra178/mynitrends/pkg/utils"
)

type PublishService interface {
	Publish(ctx context.Context, postID string) (string, error)
	PublishScheduled(ctx context.Context, postID string, scheduledAt time.Time) error
	RefreshEngagement(ctx context.Context, postID, facebookPostID string) (*transfer.Engagement, error)
	TestConnection(ctx context.Context, pageID, token string) (*transfer.GraphPage, error)
	AutoPost(ctx context.Context) (*transfer.AutoPostReport, error)
}

type publishService struct {
	pr  repository.PostRepository
	ph  repository.PostingHistoryRepository
	ss  SettingsService
	fb  FacebookService
	now func() time.Time
}

func NewPublishService(
	pr repository.PostRepository,
	ph repository.PostingHistoryRepository,
	ss SettingsService,
	fb FacebookService) PublishService {
	return &publishService{
		pr:  pr,
		ph:  ph,
		ss:  ss,
		fb:  fb,
		now: time.Now,
	}
}

// Publish sends a stored post to the configured Facebook page and returns the
// Facebook post id. Every attempt that reaches Facebook is recorded in the
// posting history.
func (s *publishService) Publish(ctx context.Context, postID string) (string, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return "", err
	}
	if post == nil {
		return "", ErrPostNotFound
	}
	if post.Posted {
		return "", ErrAlreadyPosted
	}

	pageID, token, err := s.ss.Credentials(ctx)
	if err != nil {
		return "", err
	}

	facebookPostID, err := s.send(ctx, post, pageID, token)
	if err != nil {
		slog.Error("failed to publish post", "post_id", postID, "error", err)
		metrics.FacebookPublishes.WithLabelValues(metrics.OutcomeFailure).Inc()
		s.record(ctx, &models.PostingHistory{PostID: postID, ErrorMessage: err.Error()})
		return "", err
	}

	marked, err := s.pr.MarkPosted(ctx, postID, facebookPostID)
	if err != nil {
		return "", err
	}
	if !marked {
		slog.Warn("post was marked published by another worker", "post_id", postID, "facebook_post_id", facebookPostID)
	}

	metrics.FacebookPublishes.WithLabelValues(metrics.OutcomeSuccess).Inc()
	s.record(ctx, &models.PostingHistory{PostID: postID, FacebookPostID: &facebookPostID})
	slog.Info("post published", "post_id", postID, "facebook_post_id", facebookPostID)

	return facebookPostID, nil
}

func (s *publishService) send(ctx context.Context, post *models.Post, pageID, token string) (string, error) {
	if post.ImageURL == nil || *post.ImageURL == "" {
		return s.fb.PublishText(ctx, pageID, token, post.Content)
	}

	image, contentType, err := s.loadImage(ctx, *post.ImageURL)
	if err != nil {
		slog.Warn("post image unavailable, publishing text only", "post_id", post.ID, "error", err)
		return s.fb.PublishText(ctx, pageID, token, post.Content)
	}
	return s.fb.PublishPhoto(ctx, pageID, token, post.Content, image, contentType)
}

func (s *publishService) loadImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	if utils.IsDataURL(imageURL) {
		return utils.DecodeDataURL(imageURL)
	}
	return s.fb.DownloadImage(ctx, imageURL)
}

func (s *publishService) record(ctx context.Context, ph *models.PostingHistory) {
	if _, err := s.ph.Create(ctx, ph); err != nil {
		slog.Error("failed to save posting history", "post_id", ph.PostID, "error", err)
	}
}

// PublishScheduled publishes a post whose schedule fired. It does nothing when
// the post is gone, already published, or was rescheduled after the task was
// queued.
func (s *publishService) PublishScheduled(ctx context.Context, postID string, scheduledAt time.Time) error {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil || post.Posted {
		slog.Info("scheduled publish skipped", "post_id", postID)
		return nil
	}
	if post.ScheduledTime == nil || !post.ScheduledTime.Equal(scheduledAt) {
		slog.Info("scheduled publish skipped, post was rescheduled", "post_id", postID)
		return nil
	}

	if _, err := s.Publish(ctx, postID); err != nil {
		if errors.Is(err, ErrAlreadyPosted) {
			return nil
		}
		return err
	}
	return nil
}

// RefreshEngagement pulls like and comment counts for a published post. When
// facebookPostID is empty the stored one is used.
func (s *publishService) RefreshEngagement(ctx context.Context, postID, facebookPostID string) (*transfer.Engagement, error) {
	if facebookPostID == "" {
		post, err := s.pr.GetByID(ctx, postID)
		if err != nil {
			return nil, err
		}
		if post == nil {
			return nil, ErrPostNotFound
		}
		if post.FacebookPostID == nil || *post.FacebookPostID == "" {
			return nil, ErrNotPublished
		}
		facebookPostID = *post.FacebookPostID
	}

	_, token, err := s.ss.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	engagement, err := s.fb.Engagement(ctx, facebookPostID, token)
	if err != nil {
		return nil, err
	}

	if err := s.pr.UpdateEngagement(ctx, postID, engagement.Likes, engagement.Comments); err != nil {
		return nil, err
	}
	return engagement, nil
}

func (s *publishService) TestConnection(ctx context.Context, pageID, token string) (*transfer.GraphPage, error) {
	return s.fb.Page(ctx, pageID, token)
}

// AutoPost publishes due posts until the daily limit is reached.
func (s *publishService) AutoPost(ctx context.Context) (*transfer.AutoPostReport, error) {
	report := &transfer.AutoPostReport{Results: []transfer.AutoPostResult{}}

	settings, err := s.ss.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil || !settings.AutoPostEnabled {
		report.Message = "Auto-posting is disabled"
		return report, nil
	}

	if _, _, err := s.ss.Credentials(ctx); err != nil {
		if errors.Is(err, ErrFacebookNotConfigured) {
			report.Message = "Facebook credentials are not configured"
			return report, nil
		}
		return nil, err
	}

	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	publishedToday, err := s.ph.CountPublishedSince(ctx, midnight)
	if err != nil {
		return nil, err
	}

	remaining := settings.MaxPostsPerDay - publishedToday
	if remaining <= 0 {
		report.Message = fmt.Sprintf("Daily limit of %d posts reached", settings.MaxPostsPerDay)
		return report, nil
	}

	due, err := s.pr.ListDue(ctx, now, remaining)
	if err != nil {
		return nil, err
	}
	if len(due) == 0 {
		report.Message = "No posts due"
		return report, nil
	}

	for _, post := range due {
		facebookPostID, err := s.Publish(ctx, post.ID)
		if err != nil {
			report.Results = append(report.Results, transfer.AutoPostResult{
				PostID: post.ID,
				Status: transfer.AutoPostFailed,
				Error:  err.Error(),
			})
			continue
		}

		if _, err := s.RefreshEngagement(ctx, post.ID, facebookPostID); err != nil {
			slog.Warn("failed to fetch engagement after publish", "post_id", post.ID, "error", err)
		}

		report.Results = append(report.Results, transfer.AutoPostResult{
			PostID:         post.ID,
			Status:         transfer.AutoPostPublished,
			FacebookPostID: facebookPostID,
		})
	}

	return report, nil
}
