package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isodigm/blogcms/internal/api"
	"github.com/isodigm/blogcms/internal/domain"
	"github.com/isodigm/blogcms/internal/utils"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.Categories()
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	resp := api.CategoriesResponse{Categories: make([]api.CategoryResponse, 0, len(categories))}
	for _, category := range categories {
		resp.Categories = append(resp.Categories, api.NewCategoryResponse(category))
	}
	resp.Count = len(resp.Categories)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body api.CategoryRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	category, err := h.categories.CreateCategory(categoryDraft(body))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.NewCategoryResponse(category))
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "category id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var body api.CategoryRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	category, err := h.categories.UpdateCategory(id, categoryDraft(body))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NewCategoryResponse(category))
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "category id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.categories.DeleteCategory(id); err != nil {
		utils.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func categoryDraft(body api.CategoryRequest) domain.CategoryDraftData {
	return domain.CategoryDraftData{
		Name:            body.Name,
		Description:     body.Description,
		Color:           body.Color,
		MetaDescription: body.MetaDescription,
	}
}
