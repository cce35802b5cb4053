package models

import "time"

type Settings struct {
	ID                      int64     `db:"id" json:"id"`
	FacebookPageID          string    `db:"facebook_page_id" json:"facebook_page_id"`
	FacebookPageAccessToken string    `db:"facebook_page_access_token" json:"facebook_page_access_token"`
	AutoPostEnabled         bool      `db:"auto_post_enabled" json:"auto_post_enabled"`
	MaxPostsPerDay          int       `db:"max_posts_per_day" json:"max_posts_per_day"`
	CreatedAt               time.Time `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time `db:"updated_at" json:"updated_at"`
}

// SettingsUpdate is a partial settings write; nil fields keep their stored value.
type SettingsUpdate struct {
	FacebookPageID          *string
	FacebookPageAccessToken *string
	AutoPostEnabled         *bool
	MaxPostsPerDay          *int
}

const DefaultMaxPostsPerDay = 3
