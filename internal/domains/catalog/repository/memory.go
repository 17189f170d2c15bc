package repository

import (
	"context"

	"library-backend/internal/domains/catalog/model"
)

// memoryRepository giữ catalog tĩnh trong bộ nhớ; read-only sau khi khởi tạo
type memoryRepository struct {
	books []model.Book
	byID  map[string]int
}

// NewMemoryRepository copies books, so later changes to the caller's slice
// do not leak into the catalog.
func NewMemoryRepository(books []model.Book) Repository {
	r := &memoryRepository{
		books: make([]model.Book, len(books)),
		byID:  make(map[string]int, len(books)),
	}
	copy(r.books, books)
	for i, b := range r.books {
		r.byID[b.ID] = i
	}
	return r
}

func (r *memoryRepository) ListBooks(ctx context.Context) ([]model.Book, error) {
	out := make([]model.Book, len(r.books))
	copy(out, r.books)
	return out, nil
}

func (r *memoryRepository) SearchBooks(ctx context.Context, term string, availability model.Availability) ([]model.Book, error) {
	return model.Search(r.books, term, availability), nil
}

func (r *memoryRepository) GetBookByID(ctx context.Context, id string) (*model.Book, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	b := r.books[idx]
	return &b, nil
}
