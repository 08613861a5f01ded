package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/isodigm/blogcms/internal/domain"
	"github.com/isodigm/blogcms/internal/errors"
	"github.com/isodigm/blogcms/internal/sanitize"
)

const excerptMaxLen = 160

type PostService interface {
	CreatePost(authorId domain.UserId, draft domain.PostDraftData) (domain.Post, error)
	UpdatePost(id domain.PostId, draft domain.PostDraftData) (domain.Post, error)
	DeletePost(id domain.PostId) error
	Post(id domain.PostId) (domain.Post, error)
	PublishedPostBySlug(slug string) (domain.Post, error)
	Posts(filter domain.PostFilter, includeUnpublished bool) ([]domain.Post, error)
}

type PostStorage interface {
	SavePost(post domain.Post) (domain.PostId, error)
	Post(id domain.PostId) (domain.Post, error)
	PostBySlug(slug string) (domain.Post, error)
	UpdatePost(post domain.Post) error
	DeletePost(id domain.PostId) error
	Posts(filter domain.PostFilter) ([]domain.Post, error)
	SlugTaken(slug string, excludeId domain.PostId) (bool, error)
	IncrementViewCount(id domain.PostId) error
}

type Posts struct {
	storage PostStorage
	now     func() time.Time
}

func NewPosts(storage PostStorage) *Posts {
	return &Posts{storage: storage, now: time.Now}
}

// CreatePost stores a new post. The slug is derived from the title and made
// unique; an empty excerpt is derived from the content.
func (p *Posts) CreatePost(authorId domain.UserId, draft domain.PostDraftData) (domain.Post, error) {
	post, err := p.fromDraft(draft)
	if err != nil {
		return domain.Post{}, err
	}
	post.AuthorId = authorId

	// Slug comes from the raw title: sanitization entity-escapes characters
	// like '&', which would leak into the slug.
	post.Slug, err = p.uniqueSlug(slugify(draft.Title), 0)
	if err != nil {
		return domain.Post{}, err
	}
	if post.Status == domain.PostPublished {
		now := p.now().UTC()
		post.PublishedAt = &now
	}

	id, err := p.storage.SavePost(post)
	if err != nil {
		return domain.Post{}, err
	}
	return p.storage.Post(id)
}

// UpdatePost overwrites an existing post's content fields. The slug is
// regenerated only when the title changed, so published URLs stay stable
// across content edits. The first transition to published stamps PublishedAt;
// later edits keep the original date.
func (p *Posts) UpdatePost(id domain.PostId, draft domain.PostDraftData) (domain.Post, error) {
	existing, err := p.storage.Post(id)
	if err != nil {
		return domain.Post{}, err
	}

	post, err := p.fromDraft(draft)
	if err != nil {
		return domain.Post{}, err
	}
	post.Id = existing.Id
	post.AuthorId = existing.AuthorId
	post.Slug = existing.Slug
	post.PublishedAt = existing.PublishedAt

	if post.Title != existing.Title {
		post.Slug, err = p.uniqueSlug(slugify(draft.Title), id)
		if err != nil {
			return domain.Post{}, err
		}
	}
	if post.Status == domain.PostPublished && post.PublishedAt == nil {
		now := p.now().UTC()
		post.PublishedAt = &now
	}

	if err := p.storage.UpdatePost(post); err != nil {
		return domain.Post{}, err
	}
	return p.storage.Post(id)
}

func (p *Posts) DeletePost(id domain.PostId) error {
	return p.storage.DeletePost(id)
}

func (p *Posts) Post(id domain.PostId) (domain.Post, error) {
	return p.storage.Post(id)
}

// PublishedPostBySlug serves the public post page: drafts and archived posts
// read as missing, and each hit bumps the view counter.
func (p *Posts) PublishedPostBySlug(slug string) (domain.Post, error) {
	post, err := p.storage.PostBySlug(slug)
	if err != nil {
		return domain.Post{}, err
	}
	if post.Status != domain.PostPublished {
		return domain.Post{}, errors.NotFound("Post not found")
	}
	if err := p.storage.IncrementViewCount(post.Id); err != nil {
		return domain.Post{}, err
	}
	post.ViewCount++
	return post, nil
}

// Posts lists posts. Without includeUnpublished the filter is forced to
// published, whatever the caller asked for.
func (p *Posts) Posts(filter domain.PostFilter, includeUnpublished bool) ([]domain.Post, error) {
	if !includeUnpublished {
		filter.Status = domain.PostPublished
	}
	return p.storage.Posts(filter)
}

func (p *Posts) fromDraft(draft domain.PostDraftData) (domain.Post, error) {
	title := strings.TrimSpace(sanitize.Strict(draft.Title))
	if title == "" {
		return domain.Post{}, errors.BadRequest("Title is required")
	}
	if draft.Content == "" {
		return domain.Post{}, errors.BadRequest("Content is required")
	}
	status := draft.Status
	if status == "" {
		status = domain.PostDraft
	}
	if !domain.ValidPostStatus(status) {
		return domain.Post{}, errors.BadRequest(fmt.Sprintf("Invalid status %q", status))
	}

	excerpt := strings.TrimSpace(sanitize.Strict(draft.Excerpt))
	if excerpt == "" {
		excerpt = sanitize.Excerpt(draft.Content, excerptMaxLen)
	}

	return domain.Post{
		Title:           title,
		Content:         draft.Content, // raw markdown, rendered and sanitized on output
		Excerpt:         excerpt,
		MetaDescription: sanitize.Strict(draft.MetaDescription),
		FeaturedImage:   sanitize.Strict(draft.FeaturedImage),
		Status:          status,
		Category:        sanitize.Strict(draft.Category),
		Tags:            sanitize.Strict(draft.Tags),
	}, nil
}

// uniqueSlug appends -2, -3, ... until the slug is free.
func (p *Posts) uniqueSlug(base string, excludeId domain.PostId) (string, error) {
	slug := base
	for i := 2; ; i++ {
		taken, err := p.storage.SlugTaken(slug, excludeId)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "post"
	}
	return slug
}
