package category

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/taxstack/gst-api/internal/common"
)

// Handler exposes the category endpoints.
type Handler struct {
	Service *Service
	Logger  zerolog.Logger
}

// List handles GET /api/v1/categories. A store failure degrades to an empty
// list so that the calculator UI keeps working while the backend recovers.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "category service not configured", nil)
		return
	}
	categories, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Warn().Err(err).Msg("list categories degraded to empty")
		categories = []Category{}
	}
	if categories == nil {
		categories = []Category{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": categories})
}

// Create handles POST /api/v1/categories.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "category service not configured", nil)
		return
	}
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	created, err := h.Service.Create(r.Context(), input)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": created})
}
