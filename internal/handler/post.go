package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/isodigm/blogcms/internal/api"
	"github.com/isodigm/blogcms/internal/domain"
	"github.com/isodigm/blogcms/internal/errors"
	"github.com/isodigm/blogcms/internal/middleware"
	"github.com/isodigm/blogcms/internal/utils"
)

// ListPosts serves the public post index; drafts never appear here.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	filter, err := postFilter(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	posts, err := h.posts.Posts(filter, false)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, postsResponse(posts, false))
}

// ListAllPosts is the admin index and includes drafts and archived posts.
func (h *Handler) ListAllPosts(w http.ResponseWriter, r *http.Request) {
	filter, err := postFilter(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	posts, err := h.posts.Posts(filter, true)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, postsResponse(posts, false))
}

// GetPostBySlug is the public post read. It counts the view and bundles the
// approved comments so the client renders the page from one request.
func (h *Handler) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.PublishedPostBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	comments, err := h.comments.CommentsForPost(post.Id, false)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	resp := api.NewPostResponse(post, true)
	resp.Comments = make([]api.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		resp.Comments = append(resp.Comments, api.NewCommentResponse(comment))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetPost is the admin read: any status, by id, no view counting.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "post id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	post, err := h.posts.Post(id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NewPostResponse(post, true))
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		utils.WriteError(w, errors.Unauthorized("Please sign in"))
		return
	}

	var body api.PostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	post, err := h.posts.CreatePost(user.Id, postDraft(body))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.NewPostResponse(post, true))
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "post id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var body api.PostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	post, err := h.posts.UpdatePost(id, postDraft(body))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NewPostResponse(post, true))
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "post id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.posts.DeletePost(id); err != nil {
		utils.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func postDraft(body api.PostRequest) domain.PostDraftData {
	return domain.PostDraftData{
		Title:           body.Title,
		Content:         body.Content,
		Excerpt:         body.Excerpt,
		MetaDescription: body.MetaDescription,
		FeaturedImage:   body.FeaturedImage,
		Status:          body.Status,
		Category:        body.Category,
		Tags:            body.Tags,
	}
}

func postFilter(r *http.Request) (domain.PostFilter, error) {
	query := r.URL.Query()
	filter := domain.PostFilter{
		Status:   query.Get("status"),
		Category: query.Get("category"),
	}
	if limit := query.Get("limit"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed < 0 {
			return domain.PostFilter{}, errors.BadRequest("Invalid limit")
		}
		filter.Limit = parsed
	}
	if offset := query.Get("offset"); offset != "" {
		parsed, err := strconv.Atoi(offset)
		if err != nil || parsed < 0 {
			return domain.PostFilter{}, errors.BadRequest("Invalid offset")
		}
		filter.Offset = parsed
	}
	if author := query.Get("author"); author != "" {
		parsed, err := parseIntParam(author, "author")
		if err != nil {
			return domain.PostFilter{}, err
		}
		filter.AuthorId = parsed
	}
	return filter, nil
}

func postsResponse(posts []domain.Post, withContent bool) api.PostsResponse {
	resp := api.PostsResponse{Posts: make([]api.PostResponse, 0, len(posts))}
	for _, post := range posts {
		resp.Posts = append(resp.Posts, api.NewPostResponse(post, withContent))
	}
	resp.Count = len(resp.Posts)
	return resp
}
