package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("GROQ_MODEL", "")
	t.Setenv("TRENDS_USE_HF", "")
	t.Setenv("TEXT_TIMEOUT", "")

	cfg := LoadConfig()

	assert.Equal(t, "llama-3.1-8b-instant", cfg.Groq.Model)
	assert.Equal(t, "qwen/qwen3-32b", cfg.Groq.TrendsModel)
	assert.Equal(t, "runwayml/stable-diffusion-v1-5", cfg.HuggingFace.ImageModel)
	assert.Equal(t, "https://graph.facebook.com/v21.0", cfg.Facebook.GraphURL)
	assert.False(t, cfg.Trends.UseHF)
	assert.Equal(t, 10*time.Second, cfg.Timeouts.Text)
	assert.Equal(t, 60*time.Second, cfg.Timeouts.Image)
	assert.Equal(t, 5*time.Second, cfg.Timeouts.Feed)
	assert.Equal(t, 5, cfg.Trends.RSSLimit)
	assert.False(t, cfg.R2.Enabled())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TRENDS_USE_HF", "true")
	t.Setenv("TRENDS_HYBRID", "1")
	t.Setenv("TEXT_TIMEOUT", "3s")
	t.Setenv("HF_JSON_MODEL", "custom/model")

	cfg := LoadConfig()

	assert.True(t, cfg.Trends.UseHF)
	assert.True(t, cfg.Trends.Hybrid)
	assert.Equal(t, 3*time.Second, cfg.Timeouts.Text)
	assert.Equal(t, "custom/model", cfg.HuggingFace.JSONModel)
}
