// Package provider holds clients for the external generation endpoints: chat
// completion APIs, Hugging Face inference models and the trends feed.
package provider

import (
	"context"
	"fmt"
	"time"
)

// Shape tags the payload layout of a provider response.
type Shape int

const (
	ShapeChatCompletion Shape = iota + 1
	ShapeTextGeneration
	ShapeImage
)

func (s Shape) String() string {
	switch s {
	case ShapeChatCompletion:
		return "chat_completion"
	case ShapeTextGeneration:
		return "text_generation"
	case ShapeImage:
		return "image"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Response is the raw output of one successful provider call.
type Response struct {
	Provider    string
	Shape       Shape
	Body        []byte
	ContentType string
}

type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// TextProvider generates text for a prompt. Configured reports whether the
// provider has the credentials it needs; unconfigured providers are never
// called.
type TextProvider interface {
	Name() string
	Configured() bool
	Generate(ctx context.Context, prompt Prompt) (*Response, error)
}

type ImageProvider interface {
	Name() string
	Configured() bool
	GenerateImage(ctx context.Context, prompt string) (*Response, error)
}

// HTTPError is returned when an endpoint answers with a non-2xx status.
type HTTPError struct {
	Provider string
	Status   int
	Body     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.Status, truncate(e.Body, 300))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
