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
	// NotFound
	ErrLoanNotFound = fmt.Errorf("loan record %w", shared.ErrNotFound)

	// InvalidState
	ErrLoanAlreadyReturned = fmt.Errorf("loan record already returned: %w", shared.ErrInvalidState)
	ErrLoanAlreadyLost     = fmt.Errorf("loan record already marked lost: %w", shared.ErrInvalidState)
	ErrBookUnavailable     = fmt.Errorf("book has no available copies: %w", shared.ErrInvalidState)
	ErrLoanAlreadyExists   = fmt.Errorf("loan record id already exists: %w", shared.ErrInvalidState)

	// Validation
	ErrInvalidStatus      = fmt.Errorf("status must be one of borrowed, returned, overdue, lost: %w", shared.ErrValidation)
	ErrInvalidBorrowInput = fmt.Errorf("borrow request: %w", shared.ErrValidation)
)

var loanErrorMap = map[error]struct {
	Status int
	Title  string
}{
	ErrLoanNotFound:        {Status: http.StatusNotFound, Title: "Loan not found"},
	ErrLoanAlreadyReturned: {Status: http.StatusConflict, Title: "Loan already returned"},
	ErrLoanAlreadyLost:     {Status: http.StatusConflict, Title: "Loan already marked lost"},
	ErrBookUnavailable:     {Status: http.StatusConflict, Title: "Book unavailable"},
	ErrLoanAlreadyExists:   {Status: http.StatusConflict, Title: "Loan already exists"},
	ErrInvalidStatus:       {Status: http.StatusBadRequest, Title: "Invalid status filter"},
	ErrInvalidBorrowInput:  {Status: http.StatusBadRequest, Title: "Invalid borrow request"},
}

// HandleLoanError map error sang HTTP response. Sentinel cụ thể trước,
// sau đó fallback theo error kind.
func HandleLoanError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for target, cfg := range loanErrorMap {
		if errors.Is(err, target) {
			response.Error(c, cfg.Status, cfg.Title, err.Error())
			return true
		}
	}

	switch {
	case errors.Is(err, shared.ErrNotFound):
		response.Error(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, shared.ErrInvalidState):
		response.Error(c, http.StatusConflict, "Invalid state", err.Error())
	case errors.Is(err, shared.ErrValidation):
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
	default:
		log.Error().Err(err).Msg("[Handler] loan error")
		response.Error(c, http.StatusInternalServerError, "Failed to process loan", "Internal server error")
	}
	return true
}
