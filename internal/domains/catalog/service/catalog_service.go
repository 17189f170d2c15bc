package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/catalog/repository"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

const (
	statsCacheKey = "catalog:stats"
	statsCacheTTL = 10 * time.Minute
)

type CatalogService struct {
	repo  repository.Repository
	cache cache.Cache // optional
}

func NewService(repo repository.Repository, c cache.Cache) ServiceInterface {
	return &CatalogService{repo: repo, cache: c}
}

// ListBooks - search + availability filter, giữ nguyên thứ tự catalog
func (s *CatalogService) ListBooks(ctx context.Context, req model.ListBooksRequest) ([]model.Book, error) {
	availability := req.Availability
	if availability == "" {
		availability = model.AvailabilityAll
	}
	if !availability.IsValid() {
		return nil, model.ErrInvalidAvailability
	}

	books, err := s.repo.SearchBooks(ctx, strings.TrimSpace(req.Search), availability)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (s *CatalogService) GetBook(ctx context.Context, id string) (*model.Book, error) {
	return s.repo.GetBookByID(ctx, id)
}

// Stats - catalog tĩnh nên kết quả được cache (TTL 10 phút)
func (s *CatalogService) Stats(ctx context.Context) (*model.CatalogStats, error) {
	if s.cache != nil {
		var cached model.CatalogStats
		found, err := s.cache.Get(ctx, statsCacheKey, &cached)
		if err != nil {
			logger.Error("[Catalog] stats cache read failed", err)
		} else if found {
			return &cached, nil
		}
	}

	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog stats: %w", err)
	}
	stats := model.ComputeStats(books)

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
			logger.Error("[Catalog] stats cache write failed", err)
		}
	}
	return &stats, nil
}
