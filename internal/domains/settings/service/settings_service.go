package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"library-backend/internal/domains/settings/model"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

// CacheKey là key lưu settings dùng chung giữa api và worker
// (RedisCache thêm prefix "library:")
const CacheKey = "settings"

type settingsService struct {
	mu      sync.RWMutex
	current model.LibrarySettings
	cache   cache.Cache // optional
}

// NewService tạo settings source với giá trị khởi tạo đã validate.
// cache có thể nil: khi đó settings chỉ sống trong process.
func NewService(initial model.LibrarySettings, c cache.Cache) (Service, error) {
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidSettings, err)
	}
	return &settingsService{current: initial, cache: c}, nil
}

func (s *settingsService) Get(ctx context.Context) (model.LibrarySettings, error) {
	if s.cache != nil {
		var stored model.LibrarySettings
		found, err := s.cache.Get(ctx, CacheKey, &stored)
		if err != nil {
			// Redis lỗi không critical - dùng giá trị trong process
			logger.Error("[Settings] cache read failed, using in-process settings", err)
		} else if found && stored.Validate() == nil {
			s.setCurrent(stored)
			return stored, nil
		}
	}

	return s.snapshot(), nil
}

// Update merge request vào settings hiện tại. Nếu cache là cache.Updater
// (Redis WATCH), read-merge-write là atomic giữa api và worker: partial
// update không ghi đè field mà process khác vừa đổi.
func (s *settingsService) Update(ctx context.Context, req model.UpdateSettingsRequest) (model.LibrarySettings, error) {
	if u, ok := s.cache.(cache.Updater); ok {
		next, err := s.updateShared(ctx, u, req)
		if err == nil || errors.Is(err, model.ErrInvalidSettings) {
			return next, err
		}
		// Redis lỗi không critical - update trong process
		logger.Error("[Settings] shared update failed, updating in-process settings", err)
		return s.updateLocal(ctx, req, false)
	}
	return s.updateLocal(ctx, req, s.cache != nil)
}

func (s *settingsService) updateShared(ctx context.Context, u cache.Updater, req model.UpdateSettingsRequest) (model.LibrarySettings, error) {
	var stored, next model.LibrarySettings

	// fn có thể chạy lại khi conflict: luôn merge từ giá trị vừa đọc
	err := u.Update(ctx, CacheKey, &stored, 0, func(found bool) (interface{}, error) {
		base := s.snapshot()
		if found && stored.Validate() == nil {
			base = stored
		}

		merged, err := merge(base, req)
		if err != nil {
			return nil, err
		}
		next = merged
		return merged, nil
	})
	if err != nil {
		return model.LibrarySettings{}, err
	}

	s.commit(next)
	return next, nil
}

// updateLocal: Get → Apply → Set, không atomic giữa các process
func (s *settingsService) updateLocal(ctx context.Context, req model.UpdateSettingsRequest, writeCache bool) (model.LibrarySettings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return model.LibrarySettings{}, err
	}

	next, err := merge(current, req)
	if err != nil {
		return model.LibrarySettings{}, err
	}

	s.commit(next)
	if writeCache {
		if err := s.cache.Set(ctx, CacheKey, next, 0); err != nil {
			logger.Error("[Settings] cache write failed", err)
		}
	}
	return next, nil
}

func merge(current model.LibrarySettings, req model.UpdateSettingsRequest) (model.LibrarySettings, error) {
	next := req.Apply(current)
	if err := next.Validate(); err != nil {
		return model.LibrarySettings{}, fmt.Errorf("%w: %v", model.ErrInvalidSettings, err)
	}
	return next, nil
}

func (s *settingsService) commit(next model.LibrarySettings) {
	s.setCurrent(next)

	logger.Info("Library settings updated", map[string]interface{}{
		"fine_per_day":       next.FinePerDay.String(),
		"currency":           next.Currency,
		"borrow_period_days": next.BorrowPeriodDays,
	})
}

func (s *settingsService) setCurrent(v model.LibrarySettings) {
	s.mu.Lock()
	s.current = v
	s.mu.Unlock()
}

func (s *settingsService) snapshot() model.LibrarySettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
