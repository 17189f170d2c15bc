package handler

import (
	"fmt"
	"net/http"

	"library-backend/internal/domains/auth/model"
	"library-backend/internal/domains/auth/service"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Login - POST /v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if model.HandleAuthError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, fmt.Sprintf("Logged in as %s", res.StudentID), res)
}
