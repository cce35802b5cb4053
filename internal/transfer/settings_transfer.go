package transfer

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/ravichandra178/mynitrends/internal/models"
)

type SettingsUpdate struct {
	FacebookPageID          *string `json:"facebook_page_id"`
	FacebookPageAccessToken *string `json:"facebook_page_access_token"`
	AutoPostEnabled         *bool   `json:"auto_post_enabled"`
	MaxPostsPerDay          *int    `json:"max_posts_per_day"`
}

func (s SettingsUpdate) Validate() error {
	return v.ValidateStruct(&s,
		v.Field(&s.MaxPostsPerDay, v.Min(0), v.Max(100)),
	)
}

func (s SettingsUpdate) ToModel() models.SettingsUpdate {
	return models.SettingsUpdate{
		FacebookPageID:          s.FacebookPageID,
		FacebookPageAccessToken: s.FacebookPageAccessToken,
		AutoPostEnabled:         s.AutoPostEnabled,
		MaxPostsPerDay:          s.MaxPostsPerDay,
	}
}
