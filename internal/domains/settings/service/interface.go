package service

import (
	"context"

	"library-backend/internal/domains/settings/model"
)

// Service is the settings source: supplies LibrarySettings as a value and
// owns the only write path for them.
type Service interface {
	Get(ctx context.Context) (model.LibrarySettings, error)
	Update(ctx context.Context, req model.UpdateSettingsRequest) (model.LibrarySettings, error)
}
