package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isodigm/blogcms/internal/api"
	"github.com/isodigm/blogcms/internal/domain"
	"github.com/isodigm/blogcms/internal/logger"
	"github.com/isodigm/blogcms/internal/middleware"
	"github.com/isodigm/blogcms/internal/utils"
)

// CreateComment accepts both anonymous and signed-in submissions; the route
// carries OptionalAuth.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	postId, err := parseIntParam(chi.URLParam(r, "id"), "post id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var body api.CreateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	ip, err := utils.GetIP(r)
	if err != nil {
		logger.Log.Warn("could not determine client ip", "error", err)
	}

	draft := domain.CommentDraftData{
		Content:       body.Content,
		AuthorName:    body.AuthorName,
		AuthorEmail:   body.AuthorEmail,
		AuthorWebsite: body.AuthorWebsite,
		ParentId:      body.ParentId,
		IpAddress:     ip,
	}

	comment, err := h.comments.CreateComment(postId, draft, middleware.GetUserFromContext(r))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.NewCommentResponse(comment))
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	postId, err := parseIntParam(chi.URLParam(r, "id"), "post id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	comments, err := h.comments.CommentsForPost(postId, false)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, commentsResponse(comments))
}

func (h *Handler) ListAllComments(w http.ResponseWriter, r *http.Request) {
	postId, err := parseIntParam(chi.URLParam(r, "id"), "post id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	comments, err := h.comments.CommentsForPost(postId, true)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, commentsResponse(comments))
}

func (h *Handler) ListPendingComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.PendingComments()
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, commentsResponse(comments))
}

func (h *Handler) ApproveComment(w http.ResponseWriter, r *http.Request) {
	h.moderateComment(w, r, h.comments.ApproveComment)
}

func (h *Handler) RejectComment(w http.ResponseWriter, r *http.Request) {
	h.moderateComment(w, r, h.comments.RejectComment)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "comment id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.comments.DeleteComment(id); err != nil {
		utils.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) moderateComment(w http.ResponseWriter, r *http.Request, action func(domain.CommentId) error) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "comment id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := action(id); err != nil {
		utils.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "ok"})
}

func commentsResponse(comments []domain.Comment) api.CommentsResponse {
	resp := api.CommentsResponse{Comments: make([]api.CommentResponse, 0, len(comments))}
	for _, comment := range comments {
		resp.Comments = append(resp.Comments, api.NewCommentResponse(comment))
	}
	resp.Count = len(resp.Comments)
	return resp
}
