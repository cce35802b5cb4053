package transfer

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type PostToFacebook struct {
	PostID string `json:"postId"`
}

func (p PostToFacebook) Validate() error {
	return v.ValidateStruct(&p,
		v.Field(&p.PostID, v.Required.Error("postId is required"), is.UUID),
	)
}

type FetchEngagement struct {
	PostID         string `json:"postId"`
	FacebookPostID string `json:"facebookPostId"`
}

func (f FetchEngagement) Validate() error {
	return v.ValidateStruct(&f,
		v.Field(&f.PostID, v.Required.Error("postId is required"), is.UUID),
	)
}

type TestConnection struct {
	PageID      string `json:"pageId"`
	AccessToken string `json:"accessToken"`
}

func (t TestConnection) Validate() error {
	return v.ValidateStruct(&t,
		v.Field(&t.PageID, v.Required.Error("pageId is required")),
		v.Field(&t.AccessToken, v.Required.Error("accessToken is required")),
	)
}

type Engagement struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

// Graph API wire types.

type GraphPublishResponse struct {
	ID     string `json:"id"`
	PostID string `json:"post_id"`
}

type GraphPage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type graphSummary struct {
	Summary struct {
		TotalCount int `json:"total_count"`
	} `json:"summary"`
}

type GraphEngagement struct {
	ID       string       `json:"id"`
	Likes    graphSummary `json:"likes"`
	Comments graphSummary `json:"comments"`
}

type GraphErrorResponse struct {
	Error struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		FbtraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}
