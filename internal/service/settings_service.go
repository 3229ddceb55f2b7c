package service

import (
	"context"

	"apebrain-backend/internal/model"
	"apebrain-backend/internal/repository"
)

type SettingsRepo interface {
	Find(ctx context.Context, key string) (*model.SettingsDoc, error)
	Upsert(ctx context.Context, key string, values map[string]interface{}) error
}

// Settings keys and their hardcoded fallbacks, returned whenever no document
// has been written yet.
const (
	SettingsKeyLanding      = "landing_settings"
	SettingsKeyBlogFeatures = "blog_features"
)

func defaultSettings(key string) map[string]interface{} {
	switch key {
	case SettingsKeyLanding:
		return map[string]interface{}{
			"hero_title":    "ApeBrain.cloud",
			"hero_subtitle": "Nature, consciousness and holistic wellness",
			"show_shop":     true,
			"show_blog":     true,
		}
	case SettingsKeyBlogFeatures:
		return map[string]interface{}{
			"ai_generation_enabled": true,
			"image_fetch_enabled":   true,
			"audio_enabled":         false,
		}
	default:
		return map[string]interface{}{}
	}
}

type SettingsService struct {
	repo SettingsRepo
}

func NewSettingsService(r SettingsRepo) *SettingsService {
	return &SettingsService{repo: r}
}

func (s *SettingsService) Get(ctx context.Context, key string) (map[string]interface{}, error) {
	doc, err := s.repo.Find(ctx, key)
	if err == repository.ErrNotFound {
		return defaultSettings(key), nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Values, nil
}

func (s *SettingsService) Set(ctx context.Context, key string, values map[string]interface{}) error {
	return s.repo.Upsert(ctx, key, values)
}
