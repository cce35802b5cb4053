package generation

import (
	config "github.com/ravichandra178/mynitrends/configs"
	"github.com/ravichandra178/mynitrends/internal/models"
	"github.com/ravichandra178/mynitrends/internal/provider"
)

const (
	hybridAICount   = 2
	hybridFeedCount = 1
)

// NewFromConfig wires the provider chains described by cfg. images may be nil,
// in which case generated images are inlined as data URLs.
func NewFromConfig(cfg *config.Config, images ImageStore) *Orchestrator {
	text := cfg.Timeouts.Text

	groqPost := provider.NewChatProvider(models.TrendSourceGroq, cfg.Groq.BaseURL, cfg.Groq.APIKey, cfg.Groq.Model, text)
	groqTrends := provider.NewChatProvider(models.TrendSourceGroq, cfg.Groq.BaseURL, cfg.Groq.APIKey, cfg.Groq.TrendsModel, text)
	hfPost := provider.NewChatProvider(models.TrendSourceHF, cfg.HuggingFace.RouterURL, cfg.HuggingFace.APIKey, cfg.HuggingFace.TextModel, text)
	hfTrends := provider.NewChatProvider(models.TrendSourceHF, cfg.HuggingFace.RouterURL, cfg.HuggingFace.APIKey, cfg.HuggingFace.JSONModel, text)
	openAI := provider.NewChatProvider(models.TrendSourceOpenAI, cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model, text)
	hfInference := provider.NewInferenceTextProvider("HF-INFERENCE", cfg.HuggingFace.InferenceURL, cfg.HuggingFace.APIKey, cfg.HuggingFace.InferenceTextModel, text)

	feed := provider.NewFeedSource(models.TrendSourceRSS, cfg.Trends.RSSURL, cfg.Trends.RSSGeo, cfg.Timeouts.Feed)
	image := provider.NewInferenceImageProvider("HF-IMAGE", cfg.HuggingFace.InferenceURL, cfg.HuggingFace.APIKey, cfg.HuggingFace.ImageModel, cfg.HuggingFace.ImageEnabled, cfg.Timeouts.Image)

	opts := Options{
		PostProviders:  append(ordered(cfg.Trends.PostUseHF, groqPost, hfPost), openAI, hfInference),
		TrendProviders: append(ordered(cfg.Trends.UseHF, groqTrends, hfTrends), openAI),
		ReplyProviders: []provider.TextProvider{groqTrends, hfPost, openAI},
		Feed:           feed,
		FeedLimit:      cfg.Trends.RSSLimit,
		Image:          image,
		ImageStore:     images,
	}

	if cfg.Trends.Hybrid {
		opts.Hybrid = &HybridConfig{
			Sources: []HybridSource{
				{Provider: groqTrends, Count: hybridAICount},
				{Provider: hfTrends, Count: hybridAICount},
			},
			FeedCount: hybridFeedCount,
		}
	}

	return New(opts)
}

// ordered returns [a, b], or [b, a] when preferB is set.
func ordered(preferB bool, a, b provider.TextProvider) []provider.TextProvider {
	if preferB {
		return []provider.TextProvider{b, a}
	}
	return []provider.TextProvider{a, b}
}
