package transfer

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	AutoPostPublished = "published"
	AutoPostFailed    = "failed"
)

type AutoPostResult struct {
	PostID         string `json:"postId"`
	Status         string `json:"status"`
	FacebookPostID string `json:"facebookPostId,omitempty"`
	Error          string `json:"error,omitempty"`
}

type AutoPostReport struct {
	Results []AutoPostResult `json:"results"`
	Message string           `json:"message,omitempty"`
}

type AutoReplyRequest struct {
	Comment string `json:"comment"`
	Tone    string `json:"tone"`
}

func (a AutoReplyRequest) Validate() error {
	return v.ValidateStruct(&a,
		v.Field(&a.Comment, v.Required.Error("comment is required"), v.Length(1, 2000)),
		v.Field(&a.Tone, v.Length(0, 50)),
	)
}
