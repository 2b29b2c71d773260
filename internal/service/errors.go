package service

import "errors"

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrPostNotFound      = errors.New("post not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrFileNotFound      = errors.New("file not found")
	ErrSessionInvalid    = errors.New("session invalid")
	ErrBadSearchType     = errors.New("unknown search type")
)
