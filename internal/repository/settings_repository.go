package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/ravichandra178/mynitrends/internal/models"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, bool, error)
	Upsert(ctx context.Context, update models.SettingsUpdate) (*models.Settings, error)
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

const settingsColumns = `id, facebook_page_id, facebook_page_access_token, auto_post_enabled, max_posts_per_day, created_at, updated_at`

func scanSettings(row scanner) (*models.Settings, error) {
	var s models.Settings
	err := row.Scan(&s.ID, &s.FacebookPageID, &s.FacebookPageAccessToken, &s.AutoPostEnabled, &s.MaxPostsPerDay, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get returns the settings row and whether it exists.
func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, bool, error) {
	query := `SELECT ` + settingsColumns + ` FROM settings WHERE id = 1`

	settings, err := scanSettings(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return settings, true, nil
}

// Upsert creates the settings row on first write and otherwise updates only
// the non-nil fields of update.
func (r *settingsRepository) Upsert(ctx context.Context, update models.SettingsUpdate) (*models.Settings, error) {
	query := `
		INSERT INTO settings (id, facebook_page_id, facebook_page_access_token, auto_post_enabled, max_posts_per_day)
		VALUES (1, COALESCE($1, ''), COALESCE($2, ''), COALESCE($3, FALSE), COALESCE($4, 3))
		ON CONFLICT (id) DO UPDATE SET
			facebook_page_id = COALESCE($1, settings.facebook_page_id),
			facebook_page_access_token = COALESCE($2, settings.facebook_page_access_token),
			auto_post_enabled = COALESCE($3, settings.auto_post_enabled),
			max_posts_per_day = COALESCE($4, settings.max_posts_per_day),
			updated_at = NOW()
		RETURNING ` + settingsColumns

	row := r.db.QueryRowContext(ctx, query,
		update.FacebookPageID,
		update.FacebookPageAccessToken,
		update.AutoPostEnabled,
		update.MaxPostsPerDay,
	)

	settings, err := scanSettings(row)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return settings, nil
}
