package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ravichandra178/mynitrends/internal/generation"
	"github.com/ravichandra178/mynitrends/internal/models"
	"github.com/ravichandra178/mynitrends/internal/normalize"
	"github.com/ravichandra178/mynitrends/internal/transfer"
)

var errBoom = errors.New("boom")

type fakePostRepo struct {
	mu          sync.Mutex
	posts       map[string]*models.Post
	createErr   error
	created     []*models.Post
	createdInTx bool
	removed     []string
}

func newFakePostRepo(posts ...*models.Post) *fakePostRepo {
	r := &fakePostRepo{posts: map[string]*models.Post{}}
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return r
}

func (r *fakePostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := *post
	stored.CreatedAt = time.Now()
	r.posts[post.ID] = &stored
	r.created = append(r.created, &stored)
	r.createdInTx = tx != nil
	return &stored, nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) List(ctx context.Context) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts := []*models.Post{}
	for _, p := range r.posts {
		posts = append(posts, p)
	}
	return posts, nil
}

func (r *fakePostRepo) Update(ctx context.Context, id string, update models.PostUpdate) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	if update.Content != nil {
		p.Content = *update.Content
	}
	if update.ScheduledTimeSet {
		p.ScheduledTime = update.ScheduledTime
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) MarkPosted(ctx context.Context, id, facebookPostID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok || p.Posted {
		return false, nil
	}
	p.Posted = true
	p.FacebookPostID = &facebookPostID
	return true, nil
}

func (r *fakePostRepo) UpdateEngagement(ctx context.Context, id string, likes, comments int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[id]; ok {
		p.EngagementLikes = likes
		p.EngagementComments = comments
	}
	return nil
}

func (r *fakePostRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []*models.Post
	for _, p := range r.posts {
		if !p.Posted && p.ScheduledTime != nil && !p.ScheduledTime.After(now) {
			due = append(due, p)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ScheduledTime.Before(*due[j].ScheduledTime) })
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (r *fakePostRepo) ListPublished(ctx context.Context, limit int) ([]*models.Post, error) {
	return nil, nil
}

func (r *fakePostRepo) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	r.removed = append(r.removed, id)
	return nil
}

type fakeTrendRepo struct {
	trends   map[string]*models.Trend
	created  []*models.Trend
	usedIDs  []string
	usedInTx bool
}

func newFakeTrendRepo(trends ...*models.Trend) *fakeTrendRepo {
	r := &fakeTrendRepo{trends: map[string]*models.Trend{}}
	for _, t := range trends {
		r.trends[t.ID] = t
	}
	return r
}

func (r *fakeTrendRepo) Create(ctx context.Context, tx *sql.Tx, trend *models.Trend) (*models.Trend, error) {
	stored := *trend
	stored.CreatedAt = time.Now()
	r.trends[trend.ID] = &stored
	r.created = append(r.created, &stored)
	return &stored, nil
}

func (r *fakeTrendRepo) GetByID(ctx context.Context, id string) (*models.Trend, error) {
	return r.trends[id], nil
}

func (r *fakeTrendRepo) List(ctx context.Context) ([]*models.Trend, error) {
	trends := []*models.Trend{}
	for _, t := range r.trends {
		trends = append(trends, t)
	}
	return trends, nil
}

func (r *fakeTrendRepo) MarkUsed(ctx context.Context, tx *sql.Tx, id string) error {
	r.usedIDs = append(r.usedIDs, id)
	r.usedInTx = tx != nil
	if t, ok := r.trends[id]; ok {
		t.Used = true
	}
	return nil
}

func (r *fakeTrendRepo) ExistingTopics(ctx context.Context, topics []string) (map[string]bool, error) {
	existing := map[string]bool{}
	for _, t := range r.trends {
		for _, topic := range topics {
			if strings.EqualFold(t.Topic, topic) {
				existing[strings.ToLower(topic)] = true
			}
		}
	}
	return existing, nil
}

type fakeHistoryRepo struct {
	mu        sync.Mutex
	rows      []*models.PostingHistory
	published int
	since     time.Time
}

func (r *fakeHistoryRepo) Create(ctx context.Context, ph *models.PostingHistory) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, ph)
	return int64(len(r.rows)), nil
}

func (r *fakeHistoryRepo) GetByPostID(ctx context.Context, postID string) ([]*models.PostingHistory, error) {
	var out []*models.PostingHistory
	for _, row := range r.rows {
		if row.PostID == postID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) CountPublishedSince(ctx context.Context, since time.Time) (int, error) {
	r.since = since
	return r.published, nil
}

type fakeSettingsRepo struct {
	settings *models.Settings
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*models.Settings, bool, error) {
	if r.settings == nil {
		return nil, false, nil
	}
	cp := *r.settings
	return &cp, true, nil
}

func (r *fakeSettingsRepo) Upsert(ctx context.Context, update models.SettingsUpdate) (*models.Settings, error) {
	if r.settings == nil {
		r.settings = &models.Settings{ID: 1, MaxPostsPerDay: models.DefaultMaxPostsPerDay}
	}
	if update.FacebookPageID != nil {
		r.settings.FacebookPageID = *update.FacebookPageID
	}
	if update.FacebookPageAccessToken != nil {
		r.settings.FacebookPageAccessToken = *update.FacebookPageAccessToken
	}
	if update.AutoPostEnabled != nil {
		r.settings.AutoPostEnabled = *update.AutoPostEnabled
	}
	if update.MaxPostsPerDay != nil {
		r.settings.MaxPostsPerDay = *update.MaxPostsPerDay
	}
	cp := *r.settings
	return &cp, nil
}

type fakeFacebook struct {
	mu          sync.Mutex
	calls       int
	textCalls   int
	photoCalls  int
	lastPage    string
	lastToken   string
	lastImage   []byte
	lastType    string
	publishID   string
	publishErr  error
	engagement  *transfer.Engagement
	downloadErr error
}

func (f *fakeFacebook) PublishText(ctx context.Context, pageID, token, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.textCalls++
	f.lastPage, f.lastToken = pageID, token
	return f.publishID, f.publishErr
}

func (f *fakeFacebook) PublishPhoto(ctx context.Context, pageID, token, caption string, image []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.photoCalls++
	f.lastPage, f.lastToken = pageID, token
	f.lastImage, f.lastType = image, contentType
	return f.publishID, f.publishErr
}

func (f *fakeFacebook) DownloadImage(ctx context.Context, url string) ([]byte, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.downloadErr != nil {
		return nil, "", f.downloadErr
	}
	return []byte("jpeg"), "image/jpeg", nil
}

func (f *fakeFacebook) Engagement(ctx context.Context, facebookPostID, token string) (*transfer.Engagement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.engagement == nil {
		return &transfer.Engagement{}, nil
	}
	return f.engagement, nil
}

func (f *fakeFacebook) Page(ctx context.Context, pageID, token string) (*transfer.GraphPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return &transfer.GraphPage{ID: pageID, Name: "Test Page"}, nil
}

type fakeGenerator struct {
	draft  generation.PostDraft
	trends generation.TrendResult
	reply  generation.Reply
	topics []string
}

func (g *fakeGenerator) Post(ctx context.Context, topic string) generation.PostDraft {
	g.topics = append(g.topics, topic)
	return g.draft
}

func (g *fakeGenerator) Trends(ctx context.Context) generation.TrendResult {
	return g.trends
}

func (g *fakeGenerator) Reply(ctx context.Context, comment, tone string) generation.Reply {
	return g.reply
}

func trendItems(source string, topics ...string) []normalize.TrendItem {
	items := make([]normalize.TrendItem, len(topics))
	for i, t := range topics {
		items[i] = normalize.TrendItem{Topic: t, Source: source}
	}
	return items
}

func ptr[T any](v T) *T { return &v }
