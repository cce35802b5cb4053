package service

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrPostNotFound          = errors.New("post not found")
	ErrTrendNotFound         = errors.New("trend not found")
	ErrAlreadyPosted         = errors.New("post has already been published")
	ErrNotPublished          = errors.New("post has not been published yet")
	ErrFacebookNotConfigured = errors.New("facebook page credentials are not configured")
)
