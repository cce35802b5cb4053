package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/ravichandra178/mynitrends/internal/models"
	"github.com/ravichandra178/mynitrends/internal/repository"
)

type PostService interface {
	Generate(ctx context.Context, trendID, topic string) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Update(ctx context.Context, id string, update models.PostUpdate) (*models.Post, error)
	Remove(ctx context.Context, id string) error
	History(ctx context.Context, id string) ([]*models.PostingHistory, error)
}

type postService struct {
	db  *sql.DB
	pr  repository.PostRepository
	tr  repository.TrendRepository
	ph  repository.PostingHistoryRepository
	gen Generator
}

func NewPostService(
	db *sql.DB,
	pr repository.PostRepository,
	tr repository.TrendRepository,
	ph repository.PostingHistoryRepository,
	gen Generator) PostService {
	return &postService{
		db:  db,
		pr:  pr,
		tr:  tr,
		ph:  ph,
		gen: gen,
	}
}

// Generate drafts a post for topic and stores it. When trendID is set the
// trend is marked used in the same transaction, and its topic is used if
// topic is empty.
func (s *postService) Generate(ctx context.Context, trendID, topic string) (post *models.Post, err error) {
	topic = strings.TrimSpace(topic)

	var trendRef *string
	if trendID != "" {
		if _, err := uuid.Parse(trendID); err != nil {
			return nil, fmt.Errorf("%w: trendId is not a valid id", ErrInvalidInput)
		}
		trendRef = &trendID

		if topic == "" {
			trend, err := s.tr.GetByID(ctx, trendID)
			if err != nil {
				return nil, err
			}
			if trend == nil {
				return nil, ErrTrendNotFound
			}
			topic = trend.Topic
		}
	}
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}

	draft := s.gen.Post(ctx, topic)
	slog.Info("post drafted", "topic", topic, "source", draft.Source, "with_image", draft.ImageURL != nil)

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	post, err = s.pr.Create(ctx, tx, &models.Post{
		ID:       uuid.NewString(),
		TrendID:  trendRef,
		Content:  draft.Content,
		ImageURL: draft.ImageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	if trendRef != nil {
		if err = s.tr.MarkUsed(ctx, tx, trendID); err != nil {
			return nil, fmt.Errorf("error marking trend used: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return post, nil
}

func (s *postService) List(ctx context.Context) ([]*models.Post, error) {
	return s.pr.List(ctx)
}

func (s *postService) Update(ctx context.Context, id string, update models.PostUpdate) (*models.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrPostNotFound
	}
	if update.Content != nil && strings.TrimSpace(*update.Content) == "" {
		return nil, fmt.Errorf("%w: content cannot be empty", ErrInvalidInput)
	}

	post, err := s.pr.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *postService) Remove(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrPostNotFound
	}

	post, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	return s.pr.Remove(ctx, id)
}

func (s *postService) History(ctx context.Context, id string) ([]*models.PostingHistory, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrPostNotFound
	}

	post, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return s.ph.GetByPostID(ctx, id)
}
