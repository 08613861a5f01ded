package handler

import (
	"net/http"

	"github.com/isodigm/blogcms/internal/utils"
)

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	values, err := h.settings.Settings()
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

// UpdateSettings takes a flat JSON object of key/value pairs and returns the
// resulting settings map.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := utils.Decode(r.Body, &values); err != nil {
		utils.WriteError(w, err)
		return
	}

	updated, err := h.settings.UpdateSettings(values)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
