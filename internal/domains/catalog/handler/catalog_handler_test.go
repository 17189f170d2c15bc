package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"library-backend/internal/domains/catalog/repository"
	"library-backend/internal/domains/catalog/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(service.NewService(repository.NewMemoryRepository(repository.SeedBooks()), nil))

	r := gin.New()
	r.GET("/books", h.ListBooks)
	r.GET("/books/stats", h.Stats)
	r.GET("/books/:id", h.GetBook)
	return r
}

func TestCatalogRoutes(t *testing.T) {
	r := setupRouter()

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{"/books", http.StatusOK, `"total":8`},
		{"/books?availability=unavailable", http.StatusOK, `"total":2`},
		{"/books?search=CS-B&availability=available", http.StatusOK, `"total":1`},
		{"/books?availability=maybe", http.StatusBadRequest, `"success":false`},
		{"/books/2", http.StatusOK, `Clean Code`},
		{"/books/999", http.StatusNotFound, `"success":false`},
		{"/books/stats", http.StatusOK, `"totalTitles":8`},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.body)
		})
	}
}
