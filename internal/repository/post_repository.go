package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ravichandra178/mynitrends/internal/models"
)

type PostRepository interface {
	Create(ctx context.Context, tx *sql.Tx, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Update(ctx context.Context, id string, update models.PostUpdate) (*models.Post, error)
	MarkPosted(ctx context.Context, id, facebookPostID string) (bool, error)
	UpdateEngagement(ctx context.Context, id string, likes, comments int) error
	ListDue(ctx context.Context, now time.Time, limit int) ([]*models.Post, error)
	ListPublished(ctx context.Context, limit int) ([]*models.Post, error)
	Remove(ctx context.Context, id string) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, trend_id, content, image_url, scheduled_time, posted, facebook_post_id, engagement_likes, engagement_comments, created_at`

func scanPost(row scanner) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID,
		&post.TrendID,
		&post.Content,
		&post.ImageURL,
		&post.ScheduledTime,
		&post.Posted,
		&post.FacebookPostID,
		&post.EngagementLikes,
		&post.EngagementComments,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (*models.Post, error) {
	query := `
		INSERT INTO posts (id, trend_id, content, image_url, scheduled_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + postColumns

	created, err := scanPost(queryRow(ctx, r.db, tx, query, post.ID, post.TrendID, post.Content, post.ImageURL, post.ScheduledTime))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return created, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// ListDue returns unpublished posts whose scheduled time has passed, oldest first.
func (r *postRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE posted = FALSE AND scheduled_time IS NOT NULL AND scheduled_time <= $1
		ORDER BY scheduled_time ASC
		LIMIT $2`
	return r.list(ctx, query, now, limit)
}

func (r *postRepository) ListPublished(ctx context.Context, limit int) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE posted = TRUE AND facebook_post_id IS NOT NULL
		ORDER BY created_at DESC
		LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *postRepository) list(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Update writes only the fields present in update and returns the stored row,
// or nil when no post has the given id.
func (r *postRepository) Update(ctx context.Context, id string, update models.PostUpdate) (*models.Post, error) {
	var sets []string
	var args []any

	if update.Content != nil {
		args = append(args, *update.Content)
		sets = append(sets, fmt.Sprintf("content = $%d", len(args)))
	}
	if update.ScheduledTimeSet {
		args = append(args, update.ScheduledTime)
		sets = append(sets, fmt.Sprintf("scheduled_time = $%d", len(args)))
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = $%d RETURNING `+postColumns, strings.Join(sets, ", "), len(args))

	post, err := scanPost(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

// MarkPosted records a successful publish. It reports false when the post was
// already marked posted (or is gone) so concurrent publishers can tell who won.
func (r *postRepository) MarkPosted(ctx context.Context, id, facebookPostID string) (bool, error) {
	query := `
		UPDATE posts
		SET posted = TRUE,
			facebook_post_id = $1
		WHERE id = $2 AND posted = FALSE
	`
	result, err := r.db.ExecContext(ctx, query, facebookPostID, id)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected == 1, nil
}

func (r *postRepository) UpdateEngagement(ctx context.Context, id string, likes, comments int) error {
	query := `
		UPDATE posts
		SET engagement_likes = $1,
			engagement_comments = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, likes, comments, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id string) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
