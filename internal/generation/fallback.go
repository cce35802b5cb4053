package generation

import (
	"fmt"

	"github.com/ravichandra178/mynitrends/internal/models"
	"github.com/ravichandra178/mynitrends/internal/normalize"
)

var fallbackTopics = []string{
	"AI in Healthcare",
	"Remote Work Tips",
	"Sustainable Fashion",
	"Digital Nomad Life",
	"Mental Health Awareness",
}

const fallbackReply = "Thanks for your comment! We appreciate you engaging with us."

// FallbackPost is the post text used when every provider fails.
func FallbackPost(topic string) string {
	return fmt.Sprintf("Check out our latest insights on %s! 🚀 Stay tuned for more updates.", topic)
}

func FallbackTrends() []normalize.TrendItem {
	items := make([]normalize.TrendItem, 0, len(fallbackTopics))
	for _, topic := range fallbackTopics {
		items = append(items, normalize.TrendItem{Topic: topic, Source: models.TrendSourceFallback})
	}
	return items
}
