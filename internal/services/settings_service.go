package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"vyapar-backend/internal/cache"
	"vyapar-backend/internal/models"
	"vyapar-backend/internal/repositories"
	"vyapar-backend/internal/storage"
	"vyapar-backend/internal/timeutil"
)

// SettingsService manages per-account settings and the business logo
type SettingsService struct {
	settings *repositories.AppSettingRepository
	store    *storage.R2Client
}

func NewSettingsService(settings *repositories.AppSettingRepository, store *storage.R2Client) *SettingsService {
	return &SettingsService{settings: settings, store: store}
}

func (s *SettingsService) List(ctx context.Context, ownerID int) ([]*models.AppSetting, error) {
	return s.settings.List(ctx, ownerID)
}

func (s *SettingsService) Get(ctx context.Context, ownerID int, key string) (*models.AppSetting, error) {
	return s.settings.Get(ctx, ownerID, key)
}

func (s *SettingsService) Update(ctx context.Context, ownerID, userID int, key, value string) (*models.AppSetting, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrValidation
	}
	setting, err := s.settings.Upsert(ctx, ownerID, key, value, userID)
	if err != nil {
		return nil, err
	}
	cache.InvalidateSettingCaches(ctx)
	return setting, nil
}

var allowedLogoTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// UploadLogo stores the business logo in object storage and saves its
// public URL as the logo_url setting. Size is capped at 2 MB.
func (s *SettingsService) UploadLogo(ctx context.Context, ownerID, userID int, data []byte, contentType string) (*models.AppSetting, error) {
	if s.store == nil {
		return nil, fmt.Errorf("object storage not configured")
	}
	if len(data) == 0 || len(data) > storage.MaxLogoSize {
		return nil, ErrValidation
	}
	ext, ok := allowedLogoTypes[contentType]
	if !ok {
		return nil, ErrValidation
	}

	key := path.Join("logos", fmt.Sprintf("%d-%d%s", ownerID, timeutil.Now().Unix(), ext))
	url, err := s.store.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}

	return s.Update(ctx, ownerID, userID, models.SettingLogoURL, url)
}
