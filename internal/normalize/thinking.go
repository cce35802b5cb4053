package normalize

import "strings"

const (
	thinkOpen  = "<think>"
	thinkClose = "</think>"
)

// StripThinking removes <think>...</think> segments. An unterminated opening
// tag drops everything after it; a stray closing tag drops everything before it.
func StripThinking(s string) string {
	if i := strings.LastIndex(s, thinkClose); i >= 0 && !strings.Contains(s[:i], thinkOpen) {
		s = s[i+len(thinkClose):]
	}

	var b strings.Builder
	for {
		start := strings.Index(s, thinkOpen)
		if start < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:start])
		rest := s[start+len(thinkOpen):]
		end := strings.Index(rest, thinkClose)
		if end < 0 {
			break
		}
		s = rest[end+len(thinkClose):]
	}
	return b.String()
}
