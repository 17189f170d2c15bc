package model

import (
	"errors"
	"net/http"

	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HandleSettingsError map service error sang HTTP response; trả về true nếu đã ghi response
func HandleSettingsError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrInvalidSettings) {
		response.Error(c, http.StatusBadRequest, "Invalid settings", err.Error())
		return true
	}

	log.Error().Err(err).Msg("[Handler] settings error")
	response.Error(c, http.StatusInternalServerError, "Failed to process settings", "Internal server error")
	return true
}
