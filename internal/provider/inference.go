package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/h2non/filetype"
)

var ErrNotImage = errors.New("response is not an image")

// InferenceTextProvider calls a Hugging Face inference text-generation model,
// which answers with generated_text instead of chat choices.
type InferenceTextProvider struct {
	name    string
	baseURL string
	apiKey  string
	model   string
	timeout time.Duration
	client  *resty.Client
}

func NewInferenceTextProvider(name, baseURL, apiKey, model string, timeout time.Duration) *InferenceTextProvider {
	return &InferenceTextProvider{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		client:  resty.New(),
	}
}

func (p *InferenceTextProvider) Name() string { return p.name }

func (p *InferenceTextProvider) Configured() bool {
	return p.apiKey != "" && p.model != ""
}

func (p *InferenceTextProvider) Generate(ctx context.Context, prompt Prompt) (*Response, error) {
	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	inputs := prompt.User
	if prompt.System != "" {
		inputs = prompt.System + "\n\n" + prompt.User
	}

	parameters := map[string]any{"return_full_text": false}
	if prompt.MaxTokens > 0 {
		parameters["max_new_tokens"] = prompt.MaxTokens
	}
	if prompt.Temperature > 0 {
		parameters["temperature"] = prompt.Temperature
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		SetBody(map[string]any{
			"inputs":     inputs,
			"parameters": parameters,
		}).
		Post(p.baseURL + "/" + p.model)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", p.name, err)
	}
	if !resp.IsSuccess() {
		return nil, &HTTPError{Provider: p.name, Status: resp.StatusCode(), Body: resp.String()}
	}

	return &Response{
		Provider:    p.name,
		Shape:       ShapeTextGeneration,
		Body:        resp.Body(),
		ContentType: resp.Header().Get("Content-Type"),
	}, nil
}

// InferenceImageProvider calls a Hugging Face text-to-image model and returns
// the raw image bytes.
type InferenceImageProvider struct {
	name    string
	baseURL string
	apiKey  string
	model   string
	enabled bool
	timeout time.Duration
	client  *resty.Client
}

func NewInferenceImageProvider(name, baseURL, apiKey, model string, enabled bool, timeout time.Duration) *InferenceImageProvider {
	return &InferenceImageProvider{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		enabled: enabled,
		timeout: timeout,
		client:  resty.New(),
	}
}

func (p *InferenceImageProvider) Name() string { return p.name }

func (p *InferenceImageProvider) Configured() bool {
	return p.enabled && p.apiKey != "" && p.model != ""
}

func (p *InferenceImageProvider) GenerateImage(ctx context.Context, prompt string) (*Response, error) {
	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		SetHeader("Accept", "image/png").
		SetBody(map[string]any{
			"inputs":  prompt,
			"options": map[string]any{"use_cache": false},
		}).
		Post(p.baseURL + "/" + p.model)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", p.name, err)
	}
	if !resp.IsSuccess() {
		return nil, &HTTPError{Provider: p.name, Status: resp.StatusCode(), Body: resp.String()}
	}

	contentType := resp.Header().Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%s: content type %q: %w", p.name, contentType, ErrNotImage)
	}

	body := resp.Body()
	kind, err := filetype.Match(body)
	if err != nil || kind == filetype.Unknown || !filetype.IsImage(body) {
		return nil, fmt.Errorf("%s: unrecognised image bytes: %w", p.name, ErrNotImage)
	}

	return &Response{
		Provider:    p.name,
		Shape:       ShapeImage,
		Body:        body,
		ContentType: kind.MIME.Value,
	}, nil
}
