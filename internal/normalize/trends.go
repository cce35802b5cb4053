package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ravichandra178/mynitrends/internal/provider"
)

type TrendItem struct {
	Topic    string `json:"trend"`
	Source   string `json:"source,omitempty"`
	Category string `json:"category,omitempty"`
	Score    int    `json:"engagement_score,omitempty"`
}

type rawTrendItem struct {
	Trend    string          `json:"trend"`
	Topic    string          `json:"topic"`
	Name     string          `json:"name"`
	Source   string          `json:"source"`
	Category string          `json:"category"`
	Score    json.RawMessage `json:"engagement_score"`
}

// Trends extracts a list of trend items from a text provider response.
func Trends(resp *provider.Response) ([]TrendItem, error) {
	text, err := Text(resp)
	if err != nil {
		return nil, err
	}
	return ParseTrendList(text)
}

// ParseTrendList parses a JSON array of trends that may be wrapped in prose or
// a fenced code block. Elements may be plain strings or objects keyed by
// trend, topic or name.
func ParseTrendList(text string) ([]TrendItem, error) {
	array, err := ExtractJSONArray(text)
	if err != nil {
		return nil, err
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(array), &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoJSONArray, err)
	}

	items := make([]TrendItem, 0, len(elements))
	for _, el := range elements {
		item, ok := parseTrendElement(el)
		if ok {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, ErrEmptyContent
	}
	return items, nil
}

func parseTrendElement(el json.RawMessage) (TrendItem, bool) {
	var topic string
	if err := json.Unmarshal(el, &topic); err == nil {
		topic = strings.TrimSpace(topic)
		return TrendItem{Topic: topic}, topic != ""
	}

	var raw rawTrendItem
	if err := json.Unmarshal(el, &raw); err != nil {
		return TrendItem{}, false
	}

	item := TrendItem{
		Topic:    strings.TrimSpace(firstNonEmpty(raw.Trend, raw.Topic, raw.Name)),
		Source:   raw.Source,
		Category: raw.Category,
		Score:    parseScore(raw.Score),
	}
	return item, item.Topic != ""
}

func parseScore(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var n int
		fmt.Sscanf(s, "%d", &n)
		return n
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// ExtractJSONArray returns the substring from the first '[' to the last ']'.
func ExtractJSONArray(text string) (string, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return "", ErrNoJSONArray
	}
	return text[start : end+1], nil
}
