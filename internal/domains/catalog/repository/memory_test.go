package repository

import (
	"context"
	"testing"

	"library-backend/internal/domains/catalog/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedBooks_RespectCopyInvariant(t *testing.T) {
	books := SeedBooks()

	require.NotEmpty(t, books)
	seen := map[string]bool{}
	for _, b := range books {
		assert.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
		assert.GreaterOrEqual(t, b.AvailableCopies, 0, b.ID)
		assert.LessOrEqual(t, b.AvailableCopies, b.TotalCopies, b.ID)
		assert.True(t, b.Department.IsValid(), b.ID)
		assert.False(t, b.ReplacementCost.IsNegative(), b.ID)
	}
}

func TestMemoryRepository_GetBookByID(t *testing.T) {
	repo := NewMemoryRepository(SeedBooks())
	ctx := context.Background()

	book, err := repo.GetBookByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Clean Code", book.Title)
	assert.Equal(t, "45.00", book.ReplacementCost.StringFixed(2))

	_, err = repo.GetBookByID(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestMemoryRepository_IsolatedFromCaller(t *testing.T) {
	books := SeedBooks()
	repo := NewMemoryRepository(books)

	books[0].Title = "mutated"
	listed, err := repo.ListBooks(context.Background())
	require.NoError(t, err)
	listed[1].Title = "mutated too"

	again, err := repo.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Introduction to Algorithms", again[0].Title)
	assert.Equal(t, "Clean Code", again[1].Title)
}

func TestMemoryRepository_SearchBooks(t *testing.T) {
	repo := NewMemoryRepository(SeedBooks())

	got, err := repo.SearchBooks(context.Background(), "", model.AvailabilityUnavailable)

	require.NoError(t, err)
	for _, b := range got {
		assert.Zero(t, b.AvailableCopies)
	}
	assert.NotEmpty(t, got)
}
