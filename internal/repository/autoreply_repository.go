package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/ravichandra178/mynitrends/internal/models"
)

type AutoReplyRepository interface {
	Create(ctx context.Context, reply *models.AutoReply) (*models.AutoReply, error)
}

type autoReplyRepository struct {
	db *sql.DB
}

func NewAutoReplyRepository(db *sql.DB) AutoReplyRepository {
	return &autoReplyRepository{db: db}
}

func (r *autoReplyRepository) Create(ctx context.Context, reply *models.AutoReply) (*models.AutoReply, error) {
	query := `
		INSERT INTO autoreplies (id, comment, reply, source)
		VALUES ($1, $2, $3, $4)
		RETURNING id, comment, reply, source, created_at
	`

	var created models.AutoReply
	err := r.db.QueryRowContext(ctx, query, reply.ID, reply.Comment, reply.Reply, reply.Source).
		Scan(&created.ID, &created.Comment, &created.Reply, &created.Source, &created.CreatedAt)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return &created, nil
}
