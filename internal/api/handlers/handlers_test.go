package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ravichandra178/mynitrends/internal/models"
	"github.com/ravichandra178/mynitrends/internal/service"
	"github.com/ravichandra178/mynitrends/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

type fakePostService struct {
	update     models.PostUpdate
	updatedID  string
	updateErr  error
	removeErr  error
	generated  []string
	generateFn func(trendID, topic string) (*models.Post, error)
}

func (f *fakePostService) Generate(ctx context.Context, trendID, topic string) (*models.Post, error) {
	f.generated = append(f.generated, trendID, topic)
	if f.generateFn != nil {
		return f.generateFn(trendID, topic)
	}
	return &models.Post{ID: postID, Content: "drafted about " + topic}, nil
}

func (f *fakePostService) List(ctx context.Context) ([]*models.Post, error) {
	return []*models.Post{}, nil
}

func (f *fakePostService) Update(ctx context.Context, id string, update models.PostUpdate) (*models.Post, error) {
	f.updatedID, f.update = id, update
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	post := &models.Post{ID: id}
	if update.Content != nil {
		post.Content = *update.Content
	}
	return post, nil
}

func (f *fakePostService) Remove(ctx context.Context, id string) error {
	return f.removeErr
}

func (f *fakePostService) History(ctx context.Context, id string) ([]*models.PostingHistory, error) {
	return []*models.PostingHistory{}, nil
}

type fakeTrendService struct {
	topic, source string
}

func (f *fakeTrendService) List(ctx context.Context) ([]*models.Trend, error) {
	return []*models.Trend{{ID: "t1", Topic: "Remote Work Tips", Source: "manual"}}, nil
}

func (f *fakeTrendService) Create(ctx context.Context, topic, source string) (*models.Trend, error) {
	f.topic, f.source = topic, source
	return &models.Trend{ID: "t2", Topic: topic, Source: "manual"}, nil
}

func (f *fakeTrendService) Generate(ctx context.Context) (*transfer.GeneratedTrends, error) {
	return &transfer.GeneratedTrends{Trends: []*models.Trend{}, Source: "fallback"}, nil
}

type fakeSettingsService struct {
	settings *models.Settings
}

func (f *fakeSettingsService) Get(ctx context.Context) (*models.Settings, error) {
	return f.settings, nil
}

func (f *fakeSettingsService) Update(ctx context.Context, update models.SettingsUpdate) (*models.Settings, error) {
	s := &models.Settings{ID: 1, MaxPostsPerDay: 3}
	if update.AutoPostEnabled != nil {
		s.AutoPostEnabled = *update.AutoPostEnabled
	}
	return s, nil
}

func (f *fakeSettingsService) Credentials(ctx context.Context) (string, string, error) {
	return "", "", service.ErrFacebookNotConfigured
}

type fakePublishService struct {
	publishErr error
	report     *transfer.AutoPostReport
}

func (f *fakePublishService) Publish(ctx context.Context, postID string) (string, error) {
	if f.publishErr != nil {
		return "", f.publishErr
	}
	return "page_1", nil
}

func (f *fakePublishService) PublishScheduled(ctx context.Context, postID string, scheduledAt time.Time) error {
	return nil
}

func (f *fakePublishService) RefreshEngagement(ctx context.Context, postID, facebookPostID string) (*transfer.Engagement, error) {
	return &transfer.Engagement{Likes: 4, Comments: 2}, nil
}

func (f *fakePublishService) TestConnection(ctx context.Context, pageID, token string) (*transfer.GraphPage, error) {
	return &transfer.GraphPage{ID: pageID, Name: "My Page"}, nil
}

func (f *fakePublishService) AutoPost(ctx context.Context) (*transfer.AutoPostReport, error) {
	return f.report, nil
}

type testApp struct {
	app      *fiber.App
	posts    *fakePostService
	trends   *fakeTrendService
	settings *fakeSettingsService
	publish  *fakePublishService
}

func newTestApp() *testApp {
	ta := &testApp{
		app:      fiber.New(),
		posts:    &fakePostService{},
		trends:   &fakeTrendService{},
		settings: &fakeSettingsService{},
		publish:  &fakePublishService{report: &transfer.AutoPostReport{Results: []transfer.AutoPostResult{}}},
	}

	health := NewHealthHandler(nil)
	trend := NewTrendHandler(ta.trends)
	post := NewPostHandler(ta.posts, nil)
	settings := NewSettingsHandler(ta.settings)
	facebook := NewFacebookHandler(ta.publish)

	ta.app.Get("/health", health.Health)
	ta.app.Get("/api/trends", trend.ListTrends)
	ta.app.Post("/api/trends", trend.CreateTrend)
	ta.app.Post("/api/generate-trends", trend.GenerateTrends)
	ta.app.Patch("/api/posts/:id", post.UpdatePost)
	ta.app.Delete("/api/posts/:id", post.RemovePost)
	ta.app.Post("/api/generate-post", post.GeneratePost)
	ta.app.Get("/api/settings", settings.GetSettings)
	ta.app.Patch("/api/settings", settings.UpdateSettings)
	ta.app.Post("/api/post-to-facebook", facebook.PostToFacebook)
	ta.app.Post("/api/fetch-engagement", facebook.FetchEngagement)
	ta.app.Post("/api/test-connection", facebook.TestConnection)
	ta.app.Post("/api/auto-post", facebook.AutoPost)
	return ta
}

func (ta *testApp) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestHealth(t *testing.T) {
	status, body := newTestApp().do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestUpdatePost_ContentOnly(t *testing.T) {
	ta := newTestApp()

	status, body := ta.do(t, http.MethodPatch, "/api/posts/"+postID, `{"content":"new text"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "new text", body["content"])
	assert.Equal(t, postID, ta.posts.updatedID)
	require.NotNil(t, ta.posts.update.Content)
	assert.Equal(t, "new text", *ta.posts.update.Content)
	assert.False(t, ta.posts.update.ScheduledTimeSet)
}

func TestUpdatePost_ClearSchedule(t *testing.T) {
	ta := newTestApp()

	status, _ := ta.do(t, http.MethodPatch, "/api/posts/"+postID, `{"scheduled_time":null}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, ta.posts.update.Content)
	assert.True(t, ta.posts.update.ScheduledTimeSet)
	assert.Nil(t, ta.posts.update.ScheduledTime)
}

func TestUpdatePost_NotFound(t *testing.T) {
	ta := newTestApp()
	ta.posts.updateErr = service.ErrPostNotFound

	status, body := ta.do(t, http.MethodPatch, "/api/posts/"+postID, `{"content":"x"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "post not found", body["error"])
}

func TestUpdatePost_EmptyContent(t *testing.T) {
	status, body := newTestApp().do(t, http.MethodPatch, "/api/posts/"+postID, `{"content":"  "}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["error"])
}

func TestRemovePost(t *testing.T) {
	status, body := newTestApp().do(t, http.MethodDelete, "/api/posts/"+postID, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
}

func TestRemovePost_DatastoreError(t *testing.T) {
	ta := newTestApp()
	ta.posts.removeErr = errors.New("connection refused")

	status, body := ta.do(t, http.MethodDelete, "/api/posts/"+postID, "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "connection refused", body["error"])
}

func TestCreateTrend_MissingTopic(t *testing.T) {
	status, body := newTestApp().do(t, http.MethodPost, "/api/trends", `{"source":"manual"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "topic is required")
}

func TestCreateTrend(t *testing.T) {
	ta := newTestApp()

	status, body := ta.do(t, http.MethodPost, "/api/trends", `{"topic":"Sustainable Fashion"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Sustainable Fashion", body["topic"])
	assert.Equal(t, "Sustainable Fashion", ta.trends.topic)
}

func TestGenerateTrends(t *testing.T) {
	status, body := newTestApp().do(t, http.MethodPost, "/api/generate-trends", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "fallback", body["source"])
	assert.EqualValues(t, 0, body["count"])
	assert.Equal(t, []any{}, body["trends"])
}

func TestGeneratePost(t *testing.T) {
	ta := newTestApp()

	status, body := ta.do(t, http.MethodPost, "/api/generate-post", `{"topic":"AI in Healthcare"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "drafted about AI in Healthcare", body["content"])
	assert.Nil(t, body["image_url"])
	assert.Equal(t, []string{"", "AI in Healthcare"}, ta.posts.generated)
}

func TestGeneratePost_MissingTopic(t *testing.T) {
	ta := newTestApp()

	status, _ := ta.do(t, http.MethodPost, "/api/generate-post", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Empty(t, ta.posts.generated)
}

func TestGetSettings_NoRowIsEmptyObject(t *testing.T) {
	status, body := newTestApp().do(t, http.MethodGet, "/api/settings", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body)
}

func TestUpdateSettings(t *testing.T) {
	status, body := newTestApp().do(t, http.MethodPatch, "/api/settings", `{"auto_post_enabled":true}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["auto_post_enabled"])
}

func TestPostToFacebook(t *testing.T) {
	status, body := newTestApp().do(t, http.MethodPost, "/api/post-to-facebook", `{"postId":"`+postID+`"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "page_1", body["facebookPostId"])
}

func TestPostToFacebook_AlreadyPosted(t *testing.T) {
	ta := newTestApp()
	ta.publish.publishErr = service.ErrAlreadyPosted

	status, body := ta.do(t, http.MethodPost, "/api/post-to-facebook", `{"postId":"`+postID+`"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, service.ErrAlreadyPosted.Error(), body["error"])
}

func TestPostToFacebook_MissingPostID(t *testing.T) {
	status, _ := newTestApp().do(t, http.MethodPost, "/api/post-to-facebook", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestFetchEngagement(t *testing.T) {
	status, body := newTestApp().do(t, http.MethodPost, "/api/fetch-engagement", `{"postId":"`+postID+`"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 4, body["likes"])
	assert.EqualValues(t, 2, body["comments"])
}

func TestTestConnection(t *testing.T) {
	ta := newTestApp()

	status, body := ta.do(t, http.MethodPost, "/api/test-connection", `{"pageId":"42","accessToken":"tok"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "My Page", body["pageName"])

	status, _ = ta.do(t, http.MethodPost, "/api/test-connection", `{"pageId":"42"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAutoPost(t *testing.T) {
	ta := newTestApp()
	ta.publish.report = &transfer.AutoPostReport{
		Results: []transfer.AutoPostResult{{PostID: postID, Status: transfer.AutoPostPublished, FacebookPostID: "page_1"}},
	}

	status, body := ta.do(t, http.MethodPost, "/api/auto-post", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	results := body["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, "published", results[0].(map[string]any)["status"])
	assert.NotContains(t, body, "message")
}
