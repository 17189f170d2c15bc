package service

import (
	"context"

	"library-backend/internal/domains/catalog/model"
)

type ServiceInterface interface {
	ListBooks(ctx context.Context, req model.ListBooksRequest) ([]model.Book, error)
	GetBook(ctx context.Context, id string) (*model.Book, error)
	Stats(ctx context.Context) (*model.CatalogStats, error)
}
