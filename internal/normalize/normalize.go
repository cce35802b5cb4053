// Package normalize turns raw provider payloads into post text or trend items.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ravichandra178/mynitrends/internal/provider"
	"github.com/sashabaranov/go-openai"
)

var (
	ErrEmptyContent = errors.New("provider returned empty content")
	ErrNoJSONArray  = errors.New("no JSON array in provider output")
	ErrUnknownShape = errors.New("unknown provider response shape")
)

// Text extracts the generated text from a provider response, with thinking
// segments removed and surrounding whitespace trimmed.
func Text(resp *provider.Response) (string, error) {
	if resp == nil {
		return "", ErrEmptyContent
	}

	var raw string
	var err error
	switch resp.Shape {
	case provider.ShapeChatCompletion:
		raw, err = chatContent(resp.Body)
	case provider.ShapeTextGeneration:
		raw, err = generatedText(resp.Body)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownShape, resp.Shape)
	}
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(StripThinking(raw))
	if text == "" {
		return "", ErrEmptyContent
	}
	return text, nil
}

func chatContent(body []byte) (string, error) {
	var completion openai.ChatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("decode chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", ErrEmptyContent
	}
	return completion.Choices[0].Message.Content, nil
}

type textGeneration struct {
	GeneratedText json.RawMessage `json:"generated_text"`
}

// generatedText accepts {"generated_text": ...} or [{"generated_text": ...}],
// where the value is a string or an array of strings.
func generatedText(body []byte) (string, error) {
	trimmed := strings.TrimSpace(string(body))

	var out textGeneration
	if strings.HasPrefix(trimmed, "[") {
		var list []textGeneration
		if err := json.Unmarshal(body, &list); err != nil {
			return "", fmt.Errorf("decode text generation: %w", err)
		}
		if len(list) == 0 {
			return "", ErrEmptyContent
		}
		out = list[0]
	} else if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode text generation: %w", err)
	}

	if len(out.GeneratedText) == 0 {
		return "", ErrEmptyContent
	}

	var scalar string
	if err := json.Unmarshal(out.GeneratedText, &scalar); err == nil {
		return scalar, nil
	}
	var list []string
	if err := json.Unmarshal(out.GeneratedText, &list); err != nil {
		return "", fmt.Errorf("decode generated_text: %w", err)
	}
	if len(list) == 0 {
		return "", ErrEmptyContent
	}
	return list[0], nil
}
