package handler

import (
	"net/http"

	"library-backend/internal/domains/loan/policy"
	"library-backend/internal/domains/settings/model"
	"library-backend/internal/domains/settings/service"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service service.Service
}

func NewHandler(service service.Service) *Handler {
	return &Handler{service: service}
}

// GetSettings - GET /v1/settings
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context())
	if model.HandleSettingsError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "Get settings successfully", toResponse(settings))
}

// UpdateSettings - PUT /v1/settings (partial update)
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req model.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	settings, err := h.service.Update(c.Request.Context(), req)
	if model.HandleSettingsError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "Settings saved successfully", toResponse(settings))
}

func toResponse(s model.LibrarySettings) model.SettingsResponse {
	return model.SettingsResponse{
		LibrarySettings:     s,
		FinePerDayFormatted: policy.FormatCurrency(s.FinePerDay, s.Currency),
	}
}
