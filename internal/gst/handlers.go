package gst

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/taxstack/gst-api/internal/common"
)

// Handler exposes the calculation endpoint.
type Handler struct {
	Service  *Service
	Validate *validator.Validate
}

// NewHandler constructs a Handler with its own validator instance.
func NewHandler(service *Service) *Handler {
	return &Handler{
		Service:  service,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type calculateRequest struct {
	Amount      *float64 `json:"amount" validate:"required,gte=0"`
	Description string   `json:"description"`
	Rate        *float64 `json:"rate" validate:"omitempty,gte=0,lte=100"`
	Mode        string   `json:"mode"`
}

// Calculate handles POST /api/v1/calculate. Validation failures are rejected
// before any computation or audit write happens.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "calculation service not configured", nil)
		return
	}
	var payload calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid calculation payload", validationDetails(err))
		return
	}
	mode, err := ParseMode(payload.Mode)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), map[string]any{"field": "mode"})
		return
	}

	result, err := h.Service.Calculate(r.Context(), Request{
		Amount:      *payload.Amount,
		Description: payload.Description,
		Rate:        payload.Rate,
		Mode:        mode,
	})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": result})
}

func validationDetails(err error) any {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return details
}
