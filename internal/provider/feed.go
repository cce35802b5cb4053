package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

var ErrEmptyFeed = errors.New("feed has no items")

// FeedSource reads trending topics from an RSS feed such as Google Trends.
type FeedSource struct {
	name    string
	url     string
	geo     string
	timeout time.Duration
	client  *resty.Client
	parser  *gofeed.Parser
}

func NewFeedSource(name, url, geo string, timeout time.Duration) *FeedSource {
	return &FeedSource{
		name:    name,
		url:     url,
		geo:     geo,
		timeout: timeout,
		client:  resty.New(),
		parser:  gofeed.NewParser(),
	}
}

func (f *FeedSource) Name() string { return f.name }

func (f *FeedSource) Configured() bool { return f.url != "" }

// Topics returns up to limit item titles in feed order.
func (f *FeedSource) Topics(ctx context.Context, limit int) ([]string, error) {
	ctx, cancel := withTimeout(ctx, f.timeout)
	defer cancel()

	req := f.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; mynitrends/1.0)")
	if f.geo != "" {
		req.SetQueryParam("geo", f.geo)
	}

	resp, err := req.Get(f.url)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", f.name, err)
	}
	if !resp.IsSuccess() {
		return nil, &HTTPError{Provider: f.name, Status: resp.StatusCode(), Body: resp.String()}
	}

	feed, err := f.parser.Parse(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("%s: parse feed: %w", f.name, err)
	}

	var topics []string
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		topics = append(topics, title)
		if limit > 0 && len(topics) == limit {
			break
		}
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("%s: %w", f.name, ErrEmptyFeed)
	}
	return topics, nil
}
