package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/repository"
)

const (
	settingsResource = "settings"
	settingsCacheKey = "settings:all"
)

// SettingService manages site settings. The full map is served from cache
// and invalidated on every update.
type SettingService interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Update(ctx context.Context, actor *model.User, key, value, requestIP string) (*model.Setting, error)
}

type settingService struct {
	repo     repository.SettingRepository
	activity ActivityService
	gate     *auth.Gate
	cache    Cache
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewSettingService creates a new setting service.
func NewSettingService(
	repo repository.SettingRepository,
	activity ActivityService,
	gate *auth.Gate,
	cache Cache,
	cacheTTL time.Duration,
	log zerolog.Logger,
) SettingService {
	return &settingService{
		repo:     repo,
		activity: activity,
		gate:     gate,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func (s *settingService) GetAll(ctx context.Context) (map[string]string, error) {
	if data, _ := s.cache.Get(ctx, settingsCacheKey); data != nil {
		var cached map[string]string
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}

	result := make(map[string]string, len(settings))
	for _, setting := range settings {
		result[setting.Key] = setting.Value
	}

	if payload, err := json.Marshal(result); err == nil {
		_ = s.cache.Set(ctx, settingsCacheKey, payload, s.cacheTTL)
	}

	return result, nil
}

func (s *settingService) Update(ctx context.Context, actor *model.User, key, value, requestIP string) (*model.Setting, error) {
	if err := s.gate.RequirePermission(actor, settingsResource, model.ActionUpdate); err != nil {
		return nil, err
	}

	setting, err := s.repo.Upsert(ctx, key, value)
	if err != nil {
		return nil, fmt.Errorf("upsert setting: %w", err)
	}

	s.activity.Log(ctx, actor.ID, model.ActivitySettingsUpdate, "updated a site setting", map[string]interface{}{
		"key": key,
		"ip":  requestIP,
	})
	if err := s.cache.Delete(ctx, settingsCacheKey); err != nil {
		s.log.Warn().Err(err).Msg("settings cache invalidation failed")
	}

	return setting, nil
}
