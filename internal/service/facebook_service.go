package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/h2non/filetype"
	config "github.com/ravichandra178/mynitrends/configs"
	"github.com/ravichandra178/mynitrends/internal/transfer"
)

// GraphError is an error reported by the Facebook Graph API.
type GraphError struct {
	Status  int
	Code    int
	Message string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("facebook graph error (status %d, code %d): %s", e.Status, e.Code, e.Message)
}

type FacebookService interface {
	PublishText(ctx context.Context, pageID, token, message string) (string, error)
	PublishPhoto(ctx context.Context, pageID, token, caption string, image []byte, contentType string) (string, error)
	DownloadImage(ctx context.Context, url string) ([]byte, string, error)
	Engagement(ctx context.Context, facebookPostID, token string) (*transfer.Engagement, error)
	Page(ctx context.Context, pageID, token string) (*transfer.GraphPage, error)
}

type facebookService struct {
	graphURL string
	client   *resty.Client
}

const graphTimeout = 30 * time.Second

func NewFacebookService(cfg config.Config) FacebookService {
	return &facebookService{
		graphURL: strings.TrimRight(cfg.Facebook.GraphURL, "/"),
		client:   resty.New().SetTimeout(graphTimeout),
	}
}

func (fb *facebookService) PublishText(ctx context.Context, pageID, token, message string) (string, error) {
	resp, err := fb.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"message":      message,
			"access_token": token,
		}).
		Post(fmt.Sprintf("%s/%s/feed", fb.graphURL, pageID))
	if err != nil {
		return "", fmt.Errorf("failed to publish to page feed: %w", err)
	}

	return publishedID(resp)
}

func (fb *facebookService) PublishPhoto(ctx context.Context, pageID, token, caption string, image []byte, contentType string) (string, error) {
	fileName := "image"
	if kind, err := filetype.Match(image); err == nil && kind != filetype.Unknown {
		fileName += "." + kind.Extension
		contentType = kind.MIME.Value
	}

	resp, err := fb.client.R().
		SetContext(ctx).
		SetMultipartField("source", fileName, contentType, bytes.NewReader(image)).
		SetMultipartFormData(map[string]string{
			"caption":      caption,
			"access_token": token,
		}).
		Post(fmt.Sprintf("%s/%s/photos", fb.graphURL, pageID))
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return publishedID(resp)
}

// DownloadImage fetches an externally hosted image so it can be uploaded as a
// photo.
func (fb *facebookService) DownloadImage(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := fb.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, "", fmt.Errorf("failed to download image: status %d", resp.StatusCode())
	}

	data := resp.Body()
	kind, err := filetype.Match(data)
	if err != nil || !filetype.IsImage(data) {
		return nil, "", fmt.Errorf("downloaded file from %s is not an image", url)
	}
	return data, kind.MIME.Value, nil
}

func (fb *facebookService) Engagement(ctx context.Context, facebookPostID, token string) (*transfer.Engagement, error) {
	resp, err := fb.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"fields":       "likes.summary(true),comments.summary(true)",
			"access_token": token,
		}).
		Get(fmt.Sprintf("%s/%s", fb.graphURL, facebookPostID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch engagement: %w", err)
	}
	if err := graphError(resp); err != nil {
		return nil, err
	}

	var result transfer.GraphEngagement
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode engagement response: %w", err)
	}

	return &transfer.Engagement{
		Likes:    result.Likes.Summary.TotalCount,
		Comments: result.Comments.Summary.TotalCount,
	}, nil
}

func (fb *facebookService) Page(ctx context.Context, pageID, token string) (*transfer.GraphPage, error) {
	resp, err := fb.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"fields":       "name,id",
			"access_token": token,
		}).
		Get(fmt.Sprintf("%s/%s", fb.graphURL, pageID))
	if err != nil {
		return nil, fmt.Errorf("failed to reach facebook: %w", err)
	}
	if err := graphError(resp); err != nil {
		return nil, err
	}

	var page transfer.GraphPage
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, fmt.Errorf("failed to decode page response: %w", err)
	}
	return &page, nil
}

func publishedID(resp *resty.Response) (string, error) {
	if err := graphError(resp); err != nil {
		return "", err
	}

	var result transfer.GraphPublishResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to decode publish response: %w", err)
	}

	// Photo uploads return the feed story as post_id and the photo object as id.
	if result.PostID != "" {
		return result.PostID, nil
	}
	if result.ID != "" {
		return result.ID, nil
	}
	return "", fmt.Errorf("facebook returned no post id: %s", resp.String())
}

func graphError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	var errResp transfer.GraphErrorResponse
	if err := json.Unmarshal(resp.Body(), &errResp); err == nil && errResp.Error.Message != "" {
		return &GraphError{Status: resp.StatusCode(), Code: errResp.Error.Code, Message: errResp.Error.Message}
	}
	return &GraphError{Status: resp.StatusCode(), Message: resp.String()}
}
