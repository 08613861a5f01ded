package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/isodigm/blogcms/internal/errors"
	"github.com/isodigm/blogcms/internal/logger"
	"github.com/isodigm/blogcms/internal/service"
)

type Handler struct {
	auth       service.AuthService
	posts      service.PostService
	comments   service.CommentService
	categories service.CategoryService
	settings   service.SettingsService
}

func New(
	auth service.AuthService,
	posts service.PostService,
	comments service.CommentService,
	categories service.CategoryService,
	settings service.SettingsService,
) *Handler {
	return &Handler{auth, posts, comments, categories, settings}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

func parseIntParam(value, name string) (int64, error) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.BadRequest("Invalid " + name)
	}
	return parsed, nil
}
