package handler

import (
	"net/http"

	"library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/catalog/service"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListBooks - GET /v1/books?search=&availability=all|available|unavailable
func (h *Handler) ListBooks(c *gin.Context) {
	availability, err := model.ParseAvailability(c.Query("availability"))
	if model.HandleBookError(c, err) {
		return
	}

	books, err := h.service.ListBooks(c.Request.Context(), model.ListBooksRequest{
		Search:       c.Query("search"),
		Availability: availability,
	})
	if model.HandleBookError(c, err) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Get books successfully", books, &response.Meta{Total: len(books)})
}

// GetBook - GET /v1/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	book, err := h.service.GetBook(c.Request.Context(), c.Param("id"))
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "Get book successfully", book)
}

// Stats - GET /v1/books/stats
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "Get catalog stats successfully", stats)
}
