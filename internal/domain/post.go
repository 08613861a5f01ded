package domain

import "time"

type PostId = int64

// Post lifecycle states.
const (
	PostDraft     = "draft"
	PostPublished = "published"
	PostArchived  = "archived"
)

func ValidPostStatus(s string) bool {
	return s == PostDraft || s == PostPublished || s == PostArchived
}

type Post struct {
	Id              PostId
	Title           string
	Slug            string
	Content         string
	Excerpt         string
	AuthorId        UserId
	AuthorName      string
	MetaDescription string
	FeaturedImage   string
	Status          string
	PublishedAt     *time.Time
	Category        string
	Tags            string
	ViewCount       int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PostDraftData is the create/update payload after sanitization.
type PostDraftData struct {
	Title           string
	Content         string
	Excerpt         string
	MetaDescription string
	FeaturedImage   string
	Status          string
	Category        string
	Tags            string
}

// PostFilter narrows List queries. Zero values mean "no filter".
type PostFilter struct {
	Status   string
	Category string
	AuthorId UserId
	Limit    int
	Offset   int
}
