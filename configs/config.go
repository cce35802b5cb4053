package config

import (
	"os"
	"time"

	"github.com/spf13/cast"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

func (r R2) Enabled() bool {
	return r.AccountID != "" && r.AccessKey != "" && r.SecretKey != "" && r.BucketName != "" && r.PublicURL != ""
}

type Groq struct {
	APIKey      string
	BaseURL     string
	Model       string
	TrendsModel string
}

type HuggingFace struct {
	APIKey             string
	RouterURL          string
	InferenceURL       string
	TextModel          string
	JSONModel          string
	InferenceTextModel string
	ImageModel         string
	ImageEnabled       bool
}

type OpenAI struct {
	APIKey  string
	BaseURL string
	Model   string
}

type Facebook struct {
	GraphURL        string
	PageID          string
	PageAccessToken string
}

type Trends struct {
	UseHF     bool
	Hybrid    bool
	RSSURL    string
	RSSGeo    string
	RSSLimit  int
	Schedule  string
	PostUseHF bool
}

type Timeouts struct {
	Text  time.Duration
	Image time.Duration
	Feed  time.Duration
}

type Jobs struct {
	AutoPostSchedule   string
	EngagementSchedule string
}

type Config struct {
	Env         string
	Port        string
	PostgresURI string
	RedisURI    string
	SecretKey   string
	Groq        Groq
	HuggingFace HuggingFace
	OpenAI      OpenAI
	Facebook    Facebook
	Trends      Trends
	Timeouts    Timeouts
	Jobs        Jobs
	R2          R2
}

func LoadConfig() *Config {
	return &Config{
		Env:         getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "3000"),
		PostgresURI: getEnv("POSTGRES_URI", getEnv("DATABASE_URL", "")),
		RedisURI:    getEnv("REDIS_URI", ""),
		SecretKey:   getEnv("SECRET_KEY", ""),
		Groq: Groq{
			APIKey:      getEnv("GROQ_API_KEY", ""),
			BaseURL:     getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:       getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
			TrendsModel: getEnv("GROQ_TRENDS_MODEL", "qwen/qwen3-32b"),
		},
		HuggingFace: HuggingFace{
			APIKey:             getEnv("HF_API_KEY", getEnv("HF_TOKEN", "")),
			RouterURL:          getEnv("HF_ROUTER_URL", "https://router.huggingface.co/v1"),
			InferenceURL:       getEnv("HF_INFERENCE_URL", "https://api-inference.huggingface.co/models"),
			TextModel:          getEnv("HF_TEXT_MODEL", "Qwen/Qwen2.5-7B-Instruct"),
			JSONModel:          getEnv("HF_JSON_MODEL", "mistralai/Mistral-7B-Instruct-v0.2"),
			InferenceTextModel: getEnv("HF_INFERENCE_TEXT_MODEL", ""),
			ImageModel:         getEnv("HF_MODEL", "runwayml/stable-diffusion-v1-5"),
			ImageEnabled:       cast.ToBool(getEnv("HF_IMAGE_ENABLED", "true")),
		},
		OpenAI: OpenAI{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Facebook: Facebook{
			GraphURL:        getEnv("FACEBOOK_GRAPH_URL", "https://graph.facebook.com/v21.0"),
			PageID:          getEnv("FACEBOOK_PAGE_ID", ""),
			PageAccessToken: getEnv("FACEBOOK_PAGE_ACCESS_TOKEN", ""),
		},
		Trends: Trends{
			UseHF:     cast.ToBool(getEnv("TRENDS_USE_HF", "false")),
			Hybrid:    cast.ToBool(getEnv("TRENDS_HYBRID", "false")),
			RSSURL:    getEnv("TRENDS_RSS_URL", "https://trends.google.com/trending/rss"),
			RSSGeo:    getEnv("TRENDS_RSS_GEO", "IN"),
			RSSLimit:  cast.ToInt(getEnv("TRENDS_RSS_LIMIT", "5")),
			Schedule:  getEnv("TRENDS_SCHEDULE", "@every 6h"),
			PostUseHF: cast.ToBool(getEnv("POST_USE_HF", "false")),
		},
		Timeouts: Timeouts{
			Text:  cast.ToDuration(getEnv("TEXT_TIMEOUT", "10s")),
			Image: cast.ToDuration(getEnv("IMAGE_TIMEOUT", "60s")),
			Feed:  cast.ToDuration(getEnv("FEED_TIMEOUT", "5s")),
		},
		Jobs: Jobs{
			AutoPostSchedule:   getEnv("AUTO_POST_SCHEDULE", "@every 5m"),
			EngagementSchedule: getEnv("ENGAGEMENT_SCHEDULE", "@every 30m"),
		},
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
