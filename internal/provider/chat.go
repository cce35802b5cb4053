package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sashabaranov/go-openai"
)

// ChatProvider talks to any OpenAI-compatible chat completions endpoint
// (Groq, the Hugging Face router, OpenAI itself).
type ChatProvider struct {
	name    string
	baseURL string
	apiKey  string
	model   string
	timeout time.Duration
	client  *resty.Client
}

func NewChatProvider(name, baseURL, apiKey, model string, timeout time.Duration) *ChatProvider {
	return &ChatProvider{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		client:  resty.New(),
	}
}

func (p *ChatProvider) Name() string { return p.name }

func (p *ChatProvider) Model() string { return p.model }

func (p *ChatProvider) Configured() bool {
	return p.apiKey != "" && p.model != ""
}

func (p *ChatProvider) Generate(ctx context.Context, prompt Prompt) (*Response, error) {
	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	var messages []openai.ChatCompletionMessage
	if prompt.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: prompt.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt.User})

	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   prompt.MaxTokens,
		Temperature: prompt.Temperature,
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(p.baseURL + "/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", p.name, err)
	}
	if !resp.IsSuccess() {
		return nil, &HTTPError{Provider: p.name, Status: resp.StatusCode(), Body: resp.String()}
	}

	return &Response{
		Provider:    p.name,
		Shape:       ShapeChatCompletion,
		Body:        resp.Body(),
		ContentType: resp.Header().Get("Content-Type"),
	}, nil
}
