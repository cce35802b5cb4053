package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/ravichandra178/mynitrends/internal/models"
	"github.com/ravichandra178/mynitrends/internal/repository"
	"github.com/ravichandra178/mynitrends/internal/transfer"
)

type TrendService interface {
	List(ctx context.Context) ([]*models.Trend, error)
	Create(ctx context.Context, topic, source string) (*models.Trend, error)
	Generate(ctx context.Context) (*transfer.GeneratedTrends, error)
}

type trendService struct {
	tr  repository.TrendRepository
	gen Generator
}

func NewTrendService(tr repository.TrendRepository, gen Generator) TrendService {
	return &trendService{
		tr:  tr,
		gen: gen,
	}
}

func (s *trendService) List(ctx context.Context) ([]*models.Trend, error) {
	return s.tr.List(ctx)
}

func (s *trendService) Create(ctx context.Context, topic, source string) (*models.Trend, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}
	if source == "" {
		source = models.TrendSourceManual
	}

	return s.tr.Create(ctx, nil, &models.Trend{
		ID:     uuid.NewString(),
		Topic:  topic,
		Source: source,
	})
}

// Generate discovers trends and stores the ones not seen before. Topics are
// compared case-insensitively against stored trends and within the batch.
func (s *trendService) Generate(ctx context.Context) (*transfer.GeneratedTrends, error) {
	result := s.gen.Trends(ctx)

	topics := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		topics = append(topics, strings.TrimSpace(item.Topic))
	}

	seen, err := s.tr.ExistingTopics(ctx, topics)
	if err != nil {
		return nil, err
	}

	created := []*models.Trend{}
	for _, item := range result.Items {
		topic := strings.TrimSpace(item.Topic)
		key := strings.ToLower(topic)
		if topic == "" || seen[key] {
			continue
		}
		seen[key] = true

		source := item.Source
		if source == "" {
			source = result.Source
		}

		trend, err := s.tr.Create(ctx, nil, &models.Trend{
			ID:     uuid.NewString(),
			Topic:  topic,
			Source: source,
		})
		if err != nil {
			return nil, err
		}
		created = append(created, trend)
	}

	slog.Info("trends generated", "source", result.Source, "received", len(result.Items), "stored", len(created))

	return &transfer.GeneratedTrends{
		Trends: created,
		Source: result.Source,
		Count:  len(created),
	}, nil
}
