package model

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"library-backend/internal/shared"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"
)

var ErrInvalidCredentials = fmt.Errorf("please enter both student id and password: %w", shared.ErrValidation)

// LoginRequest - POST /v1/auth/login
type LoginRequest struct {
	StudentID string `json:"studentId"`
	Password  string `json:"password"`
}

// Validate: cả hai field phải khác rỗng sau khi trim
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.StudentID, validation.By(notBlank)),
		validation.Field(&r.Password, validation.By(notBlank)),
	)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_required", "cannot be blank")
	}
	return nil
}

type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	StudentID   string    `json:"studentId"`
}

func HandleAuthError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if shared.IsValidation(err) {
		response.Error(c, http.StatusBadRequest, "Missing information", err.Error())
		return true
	}

	log.Error().Err(err).Msg("[Handler] auth error")
	response.Error(c, http.StatusInternalServerError, "Login failed", "Internal server error")
	return true
}
