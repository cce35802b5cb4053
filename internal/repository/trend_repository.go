package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/lib/pq"
	"github.com/ravichandra178/mynitrends/internal/models"
)

type TrendRepository interface {
	Create(ctx context.Context, tx *sql.Tx, trend *models.Trend) (*models.Trend, error)
	GetByID(ctx context.Context, id string) (*models.Trend, error)
	List(ctx context.Context) ([]*models.Trend, error)
	MarkUsed(ctx context.Context, tx *sql.Tx, id string) error
	ExistingTopics(ctx context.Context, topics []string) (map[string]bool, error)
}

type trendRepository struct {
	db *sql.DB
}

func NewTrendRepository(db *sql.DB) TrendRepository {
	return &trendRepository{db: db}
}

const trendColumns = `id, topic, source, used, created_at`

func scanTrend(row scanner) (*models.Trend, error) {
	var trend models.Trend
	if err := row.Scan(&trend.ID, &trend.Topic, &trend.Source, &trend.Used, &trend.CreatedAt); err != nil {
		return nil, err
	}
	return &trend, nil
}

func (r *trendRepository) Create(ctx context.Context, tx *sql.Tx, trend *models.Trend) (*models.Trend, error) {
	query := `
		INSERT INTO trends (id, topic, source)
		VALUES ($1, $2, $3)
		RETURNING ` + trendColumns

	created, err := scanTrend(queryRow(ctx, r.db, tx, query, trend.ID, trend.Topic, trend.Source))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return created, nil
}

func (r *trendRepository) GetByID(ctx context.Context, id string) (*models.Trend, error) {
	query := `SELECT ` + trendColumns + ` FROM trends WHERE id = $1`

	trend, err := scanTrend(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return trend, nil
}

func (r *trendRepository) List(ctx context.Context) ([]*models.Trend, error) {
	query := `SELECT ` + trendColumns + ` FROM trends ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	trends := []*models.Trend{}
	for rows.Next() {
		trend, err := scanTrend(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		trends = append(trends, trend)
	}
	return trends, rows.Err()
}

// MarkUsed flips the used flag. Calling it on an already used trend is a no-op.
func (r *trendRepository) MarkUsed(ctx context.Context, tx *sql.Tx, id string) error {
	query := `UPDATE trends SET used = TRUE WHERE id = $1`

	if _, err := exec(ctx, r.db, tx, query, id); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// ExistingTopics reports which of the given topics are already stored,
// keyed by their lower-cased form.
func (r *trendRepository) ExistingTopics(ctx context.Context, topics []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(topics) == 0 {
		return existing, nil
	}

	lowered := make([]string, 0, len(topics))
	for _, topic := range topics {
		lowered = append(lowered, strings.ToLower(topic))
	}

	query := `SELECT DISTINCT lower(topic) FROM trends WHERE lower(topic) = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(lowered))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var topic string
		if err := rows.Scan(&topic); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		existing[topic] = true
	}
	return existing, rows.Err()
}
