package models

import "time"

type Trend struct {
	ID        string    `db:"id" json:"id"`
	Topic     string    `db:"topic" json:"topic"`
	Source    string    `db:"source" json:"source"`
	Used      bool      `db:"used" json:"used"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const (
	TrendSourceGroq     = "GROQ"
	TrendSourceHF       = "HF"
	TrendSourceOpenAI   = "OPENAI"
	TrendSourceRSS      = "RSS"
	TrendSourceManual   = "manual"
	TrendSourceFallback = "fallback"
	TrendSourceHybrid   = "hybrid"
)
