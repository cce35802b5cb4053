package generation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ravichandra178/mynitrends/internal/metrics"
	"github.com/ravichandra178/mynitrends/internal/models"
	"github.com/ravichandra178/mynitrends/internal/normalize"
	"github.com/ravichandra178/mynitrends/internal/provider"
	"github.com/ravichandra178/mynitrends/pkg/utils"
)

// TopicFeed is a non-AI source of trending topics.
type TopicFeed interface {
	Name() string
	Configured() bool
	Topics(ctx context.Context, limit int) ([]string, error)
}

// ImageStore persists generated images and returns a public URL for them.
type ImageStore interface {
	StoreImage(ctx context.Context, data []byte, contentType string) (string, error)
}

type HybridSource struct {
	Provider provider.TextProvider
	Count    int
}

// HybridConfig asks several AI providers and the feed for a fixed number of
// trends each, in parallel.
type HybridConfig struct {
	Sources   []HybridSource
	FeedCount int
}

type Options struct {
	PostProviders  []provider.TextProvider
	TrendProviders []provider.TextProvider
	ReplyProviders []provider.TextProvider
	Feed           TopicFeed
	FeedLimit      int
	Hybrid         *HybridConfig
	Image          provider.ImageProvider
	ImageStore     ImageStore
}

type Orchestrator struct {
	postProviders  []provider.TextProvider
	trendProviders []provider.TextProvider
	replyProviders []provider.TextProvider
	feed           TopicFeed
	feedLimit      int
	hybrid         *HybridConfig
	image          provider.ImageProvider
	imageStore     ImageStore
}

func New(opts Options) *Orchestrator {
	feedLimit := opts.FeedLimit
	if feedLimit <= 0 {
		feedLimit = DefaultTrendCount
	}
	return &Orchestrator{
		postProviders:  opts.PostProviders,
		trendProviders: opts.TrendProviders,
		replyProviders: opts.ReplyProviders,
		feed:           opts.Feed,
		feedLimit:      feedLimit,
		hybrid:         opts.Hybrid,
		image:          opts.Image,
		imageStore:     opts.ImageStore,
	}
}

type PostDraft struct {
	Content  string
	ImageURL *string
	Source   string
}

type TrendResult struct {
	Items  []normalize.TrendItem
	Source string
}

type Reply struct {
	Text   string
	Source string
}

// Post drafts post text for topic and, when an image provider is available,
// an image. It never fails: text falls back to a template and a failed image
// leaves ImageURL nil.
func (o *Orchestrator) Post(ctx context.Context, topic string) PostDraft {
	content, source, err := runChain(ctx, "post", o.postProviders, postPrompt(topic), normalize.Text)
	if err != nil {
		slog.Warn("post generation exhausted, using static fallback", "topic", topic)
		metrics.StaticFallbacks.WithLabelValues("post").Inc()
		content = FallbackPost(topic)
		source = models.TrendSourceFallback
	}

	return PostDraft{
		Content:  unquote(content),
		ImageURL: o.Image(ctx, topic),
		Source:   source,
	}
}

// Image returns a URL for a generated image, or nil when image generation is
// unavailable or fails.
func (o *Orchestrator) Image(ctx context.Context, topic string) *string {
	if o.image == nil || !o.image.Configured() {
		return nil
	}

	resp, err := o.image.GenerateImage(ctx, imagePrompt(topic))
	if err != nil {
		slog.Warn("image generation failed, continuing without image", "provider", o.image.Name(), "error", err)
		metrics.ProviderAttempts.WithLabelValues(o.image.Name(), "image", metrics.OutcomeFailure).Inc()
		return nil
	}
	metrics.ProviderAttempts.WithLabelValues(o.image.Name(), "image", metrics.OutcomeSuccess).Inc()

	if o.imageStore != nil {
		url, err := o.imageStore.StoreImage(ctx, resp.Body, resp.ContentType)
		if err == nil {
			return &url
		}
		slog.Warn("image upload failed, inlining as data URL", "error", err)
	}

	url := utils.EncodeDataURL(resp.ContentType, resp.Body)
	return &url
}

// Trends discovers trending topics: the hybrid batch when enabled and
// complete, otherwise the first AI provider that answers, then the feed, then
// the static list.
func (o *Orchestrator) Trends(ctx context.Context) TrendResult {
	if o.hybrid != nil {
		if items, ok := o.hybridTrends(ctx); ok {
			return TrendResult{Items: items, Source: models.TrendSourceHybrid}
		}
	}

	items, source, err := runChain(ctx, "trends", o.trendProviders, trendsPrompt(DefaultTrendCount), normalize.Trends)
	if err == nil {
		if len(items) > DefaultTrendCount {
			items = items[:DefaultTrendCount]
		}
		return TrendResult{Items: tagSource(items, source), Source: source}
	}

	if o.feed != nil && o.feed.Configured() {
		items, err := o.feedTrends(ctx, o.feedLimit)
		if err == nil {
			metrics.ProviderAttempts.WithLabelValues(o.feed.Name(), "trends", metrics.OutcomeSuccess).Inc()
			return TrendResult{Items: items, Source: o.feed.Name()}
		}
		slog.Warn("trend feed failed", "feed", o.feed.Name(), "error", err)
		metrics.ProviderAttempts.WithLabelValues(o.feed.Name(), "trends", metrics.OutcomeFailure).Inc()
	}

	slog.Warn("trend generation exhausted, using static fallback")
	metrics.StaticFallbacks.WithLabelValues("trends").Inc()
	return TrendResult{Items: FallbackTrends(), Source: models.TrendSourceFallback}
}

// Reply drafts a reply to a page comment.
func (o *Orchestrator) Reply(ctx context.Context, comment, tone string) Reply {
	text, source, err := runChain(ctx, "reply", o.replyProviders, replyPrompt(comment, tone), normalize.Text)
	if err != nil {
		metrics.StaticFallbacks.WithLabelValues("reply").Inc()
		return Reply{Text: fallbackReply, Source: models.TrendSourceFallback}
	}
	return Reply{Text: unquote(text), Source: source}
}

func (o *Orchestrator) feedTrends(ctx context.Context, limit int) ([]normalize.TrendItem, error) {
	topics, err := o.feed.Topics(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]normalize.TrendItem, 0, len(topics))
	for _, topic := range topics {
		items = append(items, normalize.TrendItem{
			Topic:    topic,
			Source:   o.feed.Name(),
			Category: "trending",
			Score:    75,
		})
	}
	return items, nil
}

func tagSource(items []normalize.TrendItem, source string) []normalize.TrendItem {
	for i := range items {
		items[i].Source = source
	}
	return items
}

// unquote drops one pair of wrapping double quotes some models add.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
