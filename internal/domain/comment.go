package domain

import "time"

type CommentId = int64

// Comment moderation states.
const (
	CommentPending  = "pending"
	CommentApproved = "approved"
	CommentRejected = "rejected"
)

type Comment struct {
	Id            CommentId
	PostId        PostId
	Content       string
	AuthorName    string
	AuthorEmail   string
	AuthorWebsite string
	Status        string
	IpAddress     string
	ParentId      *CommentId
	CreatedAt     time.Time
}

// CommentDraftData is the public comment submission after sanitization.
type CommentDraftData struct {
	Content       string
	AuthorName    string
	AuthorEmail   string
	AuthorWebsite string
	ParentId      *CommentId
	IpAddress     string
}
