package generation

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/ravichandra178/mynitrends/internal/provider"
)

type fakeText struct {
	name       string
	configured bool
	content    string
	err        error
	calls      atomic.Int32
}

func (f *fakeText) Name() string     { return f.name }
func (f *fakeText) Configured() bool { return f.configured }

func (f *fakeText) Generate(ctx context.Context, prompt provider.Prompt) (*provider.Response, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	body := fmt.Sprintf(`{"choices":[{"message":{"role":"assistant","content":%q}}]}`, f.content)
	return &provider.Response{Provider: f.name, Shape: provider.ShapeChatCompletion, Body: []byte(body)}, nil
}

func trendsJSON(topics ...string) string {
	quoted := make([]string, len(topics))
	for i, t := range topics {
		quoted[i] = fmt.Sprintf(`{"trend":%q}`, t)
	}
	return "[" + strings.Join(quoted, ",") + "]"
}

type fakeFeed struct {
	topics []string
	err    error
	calls  atomic.Int32
}

func (f *fakeFeed) Name() string     { return "RSS" }
func (f *fakeFeed) Configured() bool { return true }

func (f *fakeFeed) Topics(ctx context.Context, limit int) ([]string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.topics) {
		return f.topics[:limit], nil
	}
	return f.topics, nil
}

type fakeImage struct {
	configured bool
	err        error
	calls      atomic.Int32
}

func (f *fakeImage) Name() string     { return "HF-IMAGE" }
func (f *fakeImage) Configured() bool { return f.configured }

func (f *fakeImage) GenerateImage(ctx context.Context, prompt string) (*provider.Response, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &provider.Response{Shape: provider.ShapeImage, Body: []byte{0x89, 0x50, 0x4E, 0x47}, ContentType: "image/png"}, nil
}

type fakeStore struct {
	url string
	err error
}

func (f *fakeStore) StoreImage(ctx context.Context, data []byte, contentType string) (string, error) {
	return f.url, f.err
}
