package repository

import (
	"context"

	"library-backend/internal/domains/catalog/model"
)

// Repository - data access cho catalog. Kết quả luôn theo thứ tự catalog.
type Repository interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	SearchBooks(ctx context.Context, term string, availability model.Availability) ([]model.Book, error)
	GetBookByID(ctx context.Context, id string) (*model.Book, error)
}
