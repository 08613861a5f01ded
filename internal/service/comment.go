package service

import (
	"strings"

	"github.com/isodigm/blogcms/internal/domain"
	"github.com/isodigm/blogcms/internal/errors"
	"github.com/isodigm/blogcms/internal/logger"
	"github.com/isodigm/blogcms/internal/sanitize"
)

type CommentService interface {
	CreateComment(postId domain.PostId, draft domain.CommentDraftData, viewer *domain.User) (domain.Comment, error)
	CommentsForPost(postId domain.PostId, includeAll bool) ([]domain.Comment, error)
	PendingComments() ([]domain.Comment, error)
	ApproveComment(id domain.CommentId) error
	RejectComment(id domain.CommentId) error
	DeleteComment(id domain.CommentId) error
}

type CommentStorage interface {
	SaveComment(comment domain.Comment) (domain.CommentId, error)
	Comment(id domain.CommentId) (domain.Comment, error)
	UpdateCommentStatus(id domain.CommentId, status string) error
	DeleteComment(id domain.CommentId) error
	CommentsByPost(postId domain.PostId, status string) ([]domain.Comment, error)
	PendingComments() ([]domain.Comment, error)
	Post(id domain.PostId) (domain.Post, error)
	UserByEmail(email string) (domain.User, error)
}

type Comments struct {
	storage CommentStorage
	email   Email
}

func NewComments(storage CommentStorage, email Email) *Comments {
	return &Comments{storage: storage, email: email}
}

// CreateComment submits a comment on a published post. Comments from a
// logged-in viewer or from an email address belonging to a verified account
// are approved immediately; everything else waits for moderation.
func (c *Comments) CreateComment(postId domain.PostId, draft domain.CommentDraftData, viewer *domain.User) (domain.Comment, error) {
	content := sanitize.UGC(draft.Content)
	if content == "" {
		return domain.Comment{}, errors.BadRequest("Comment content is required")
	}
	authorName := sanitize.Strict(draft.AuthorName)
	authorEmail := sanitize.Strict(draft.AuthorEmail)
	if viewer != nil {
		authorName = viewer.DisplayName()
		authorEmail = viewer.Email
	}
	if authorName == "" {
		return domain.Comment{}, errors.BadRequest("Author name is required")
	}
	if err := c.email.IsCorrect(authorEmail); err != nil {
		return domain.Comment{}, err
	}

	post, err := c.storage.Post(postId)
	if err != nil {
		return domain.Comment{}, err
	}
	if post.Status != domain.PostPublished {
		return domain.Comment{}, errors.NotFound("Post not found")
	}

	if draft.ParentId != nil {
		parent, err := c.storage.Comment(*draft.ParentId)
		if err != nil {
			if errors.IsNotFound(err) {
				return domain.Comment{}, errors.BadRequest("Parent comment not found")
			}
			return domain.Comment{}, err
		}
		if parent.PostId != postId {
			return domain.Comment{}, errors.BadRequest("Parent comment belongs to a different post")
		}
	}

	website := sanitize.Strict(draft.AuthorWebsite)
	if website != "" && !strings.HasPrefix(website, "http://") && !strings.HasPrefix(website, "https://") {
		website = "http://" + website
	}

	comment := domain.Comment{
		PostId:        postId,
		Content:       content,
		AuthorName:    authorName,
		AuthorEmail:   authorEmail,
		AuthorWebsite: website,
		Status:        c.moderationStatus(authorEmail, viewer),
		IpAddress:     draft.IpAddress,
		ParentId:      draft.ParentId,
	}

	id, err := c.storage.SaveComment(comment)
	if err != nil {
		return domain.Comment{}, err
	}
	return c.storage.Comment(id)
}

// CommentsForPost lists a post's comments. Public callers only see approved
// ones.
func (c *Comments) CommentsForPost(postId domain.PostId, includeAll bool) ([]domain.Comment, error) {
	status := domain.CommentApproved
	if includeAll {
		status = ""
	}
	return c.storage.CommentsByPost(postId, status)
}

func (c *Comments) PendingComments() ([]domain.Comment, error) {
	return c.storage.PendingComments()
}

func (c *Comments) ApproveComment(id domain.CommentId) error {
	return c.storage.UpdateCommentStatus(id, domain.CommentApproved)
}

func (c *Comments) RejectComment(id domain.CommentId) error {
	return c.storage.UpdateCommentStatus(id, domain.CommentRejected)
}

func (c *Comments) DeleteComment(id domain.CommentId) error {
	return c.storage.DeleteComment(id)
}

func (c *Comments) moderationStatus(authorEmail string, viewer *domain.User) string {
	if viewer != nil && viewer.EmailVerified {
		return domain.CommentApproved
	}
	user, err := c.storage.UserByEmail(authorEmail)
	if err != nil {
		if !errors.IsNotFound(err) {
			logger.Log.Error("failed to look up commenter email", "error", err)
		}
		return domain.CommentPending
	}
	if user.EmailVerified {
		return domain.CommentApproved
	}
	return domain.CommentPending
}
