package model

import (
	"errors"
	"fmt"
	"net/http"

	"library-backend/internal/shared"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	ErrBookNotFound        = fmt.Errorf("book %w", shared.ErrNotFound)
	ErrInvalidAvailability = fmt.Errorf("availability must be one of all, available, unavailable: %w", shared.ErrValidation)
)

var bookErrorMap = map[error]struct {
	Status  int
	Title   string
	Message string
}{
	ErrBookNotFound: {
		Status:  http.StatusNotFound,
		Title:   "Book not found",
		Message: "The specified book does not exist",
	},
	ErrInvalidAvailability: {
		Status:  http.StatusBadRequest,
		Title:   "Invalid availability filter",
		Message: "availability must be one of all, available, unavailable",
	},
}

func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for target, cfg := range bookErrorMap {
		if errors.Is(err, target) {
			response.Error(c, cfg.Status, cfg.Title, cfg.Message)
			return true
		}
	}

	log.Error().Err(err).Msg("[Handler] catalog error")
	response.Error(c, http.StatusInternalServerError, "Failed to query catalog", "Internal server error")
	return true
}
