package api

import (
	"time"

	"github.com/isodigm/blogcms/internal/domain"
)

// Request DTOs

type PostRequest struct {
	Title           string `json:"title" validate:"required"`
	Content         string `json:"content" validate:"required"`
	Excerpt         string `json:"excerpt,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	FeaturedImage   string `json:"featured_image,omitempty"`
	Status          string `json:"status,omitempty"`
	Category        string `json:"category,omitempty"`
	Tags            string `json:"tags,omitempty"`
}

type CreateCommentRequest struct {
	Content       string            `json:"content" validate:"required"`
	AuthorName    string            `json:"author_name,omitempty"`
	AuthorEmail   string            `json:"author_email,omitempty"`
	AuthorWebsite string            `json:"author_website,omitempty"`
	ParentId      *domain.CommentId `json:"parent_id,omitempty"`
}

type CategoryRequest struct {
	Name            string `json:"name" validate:"required"`
	Description     string `json:"description,omitempty"`
	Color           string `json:"color,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
}

// Response DTOs

type PostResponse struct {
	Id              domain.PostId `json:"id"`
	Title           string        `json:"title"`
	Slug            string        `json:"slug"`
	Content         string        `json:"content,omitempty"`
	Excerpt         string        `json:"excerpt"`
	AuthorId        domain.UserId `json:"author_id"`
	AuthorName      string        `json:"author_name"`
	MetaDescription string        `json:"meta_description,omitempty"`
	FeaturedImage   string        `json:"featured_image,omitempty"`
	Status          string        `json:"status"`
	PublishedAt     *time.Time    `json:"published_at,omitempty"`
	Category        string        `json:"category,omitempty"`
	Tags            string        `json:"tags,omitempty"`
	ViewCount       int64         `json:"view_count"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	// Approved comments, attached only on the public slug read.
	Comments []CommentResponse `json:"comments,omitempty"`
}

type PostsResponse struct {
	Posts []PostResponse `json:"posts"`
	Count int            `json:"count"`
}

type CommentResponse struct {
	Id            domain.CommentId  `json:"id"`
	PostId        domain.PostId     `json:"post_id"`
	Content       string            `json:"content"`
	AuthorName    string            `json:"author_name"`
	AuthorWebsite string            `json:"author_website,omitempty"`
	Status        string            `json:"status"`
	ParentId      *domain.CommentId `json:"parent_id,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

type CommentsResponse struct {
	Comments []CommentResponse `json:"comments"`
	Count    int               `json:"count"`
}

type CategoryResponse struct {
	Id              domain.CategoryId `json:"id"`
	Name            string            `json:"name"`
	Slug            string            `json:"slug"`
	Description     string            `json:"description,omitempty"`
	Color           string            `json:"color"`
	MetaDescription string            `json:"meta_description,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Count      int                `json:"count"`
}

// NewPostResponse converts a post. withContent=false omits the body for list
// views.
func NewPostResponse(post domain.Post, withContent bool) PostResponse {
	resp := PostResponse{
		Id:              post.Id,
		Title:           post.Title,
		Slug:            post.Slug,
		Excerpt:         post.Excerpt,
		AuthorId:        post.AuthorId,
		AuthorName:      post.AuthorName,
		MetaDescription: post.MetaDescription,
		FeaturedImage:   post.FeaturedImage,
		Status:          post.Status,
		PublishedAt:     post.PublishedAt,
		Category:        post.Category,
		Tags:            post.Tags,
		ViewCount:       post.ViewCount,
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
	}
	if withContent {
		resp.Content = post.Content
	}
	return resp
}

// NewCommentResponse hides the author email and IP: both are moderation
// data, not public content.
func NewCommentResponse(comment domain.Comment) CommentResponse {
	return CommentResponse{
		Id:            comment.Id,
		PostId:        comment.PostId,
		Content:       comment.Content,
		AuthorName:    comment.AuthorName,
		AuthorWebsite: comment.AuthorWebsite,
		Status:        comment.Status,
		ParentId:      comment.ParentId,
		CreatedAt:     comment.CreatedAt,
	}
}

func NewCategoryResponse(category domain.Category) CategoryResponse {
	return CategoryResponse{
		Id:              category.Id,
		Name:            category.Name,
		Slug:            category.Slug,
		Description:     category.Description,
		Color:           category.Color,
		MetaDescription: category.MetaDescription,
		CreatedAt:       category.CreatedAt,
	}
}
