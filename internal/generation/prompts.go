package generation

import (
	"fmt"
	"strings"

	"github.com/ravichandra178/mynitrends/internal/provider"
)

const DefaultTrendCount = 5

func postPrompt(topic string) provider.Prompt {
	return provider.Prompt{
		User:        fmt.Sprintf(`Write ONLY a professional Facebook post about "%s". Keep it 150-200 characters. No hashtags. No explanations. Just the post text.`, topic),
		MaxTokens:   100,
		Temperature: 0.7,
	}
}

func trendsPrompt(count int) provider.Prompt {
	return provider.Prompt{
		System: fmt.Sprintf(
			`You are a social media trend analyst. Respond with ONLY a JSON array of %d objects, each with the keys "trend", "source", "category" and "engagement_score" (an integer from 0 to 100). No prose, no markdown.`,
			count,
		),
		User:        fmt.Sprintf("List %d topics that are trending on social media right now and would make good Facebook posts for a business page.", count),
		MaxTokens:   500,
		Temperature: 0.3,
	}
}

func replyPrompt(comment, tone string) provider.Prompt {
	if strings.TrimSpace(tone) == "" {
		tone = "friendly"
	}
	return provider.Prompt{
		System:      fmt.Sprintf("You manage a business Facebook Page. Write a short, %s reply to the comment below. One or two sentences. No hashtags. Reply text only.", tone),
		User:        comment,
		MaxTokens:   150,
		Temperature: 0.8,
	}
}

func imagePrompt(topic string) string {
	return fmt.Sprintf("A vibrant, professional social media illustration about %s, clean composition, high quality", topic)
}
