package models

import "time"

type Post struct {
	ID                 string     `db:"id" json:"id"`
	TrendID            *string    `db:"trend_id" json:"trend_id"`
	Content            string     `db:"content" json:"content"`
	ImageURL           *string    `db:"image_url" json:"image_url"`
	ScheduledTime      *time.Time `db:"scheduled_time" json:"scheduled_time"`
	Posted             bool       `db:"posted" json:"posted"`
	FacebookPostID     *string    `db:"facebook_post_id" json:"facebook_post_id"`
	EngagementLikes    int        `db:"engagement_likes" json:"engagement_likes"`
	EngagementComments int        `db:"engagement_comments" json:"engagement_comments"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
}

// PostUpdate carries the fields of a partial post update. A nil Content leaves
// the content untouched; ScheduledTimeSet distinguishes "clear the schedule"
// from "leave it alone".
type PostUpdate struct {
	Content          *string
	ScheduledTime    *time.Time
	ScheduledTimeSet bool
}

func (u PostUpdate) Empty() bool {
	return u.Content == nil && !u.ScheduledTimeSet
}
