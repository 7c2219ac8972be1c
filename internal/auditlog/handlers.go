package auditlog

import (
	"net/http"

	"github.com/taxstack/gst-api/internal/common"
)

// Handler exposes read-only access to the calculation log for audit review.
type Handler struct {
	Store        Store
	DefaultLimit int
	MaxLimit     int
}

// List handles GET /api/v1/calculations with pagination, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "audit store not configured", nil)
		return
	}
	defaultLimit := h.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	maxLimit := h.MaxLimit
	if maxLimit <= 0 {
		maxLimit = 100
	}
	page, perPage := common.ParsePagination(r, defaultLimit)
	if perPage > maxLimit {
		perPage = maxLimit
	}
	offset := (page - 1) * perPage

	entries, err := h.Store.ListCalculations(r.Context(), perPage, offset)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "list calculations", nil)
		return
	}
	total, err := h.Store.CountCalculations(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "count calculations", nil)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data":       entries,
		"pagination": common.Pagination{Page: page, PerPage: perPage, TotalItems: int(total)},
	})
}
