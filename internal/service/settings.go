package service

import (
	"context"
	"encoding/json"
	"time"

	"example.com/packpal/internal/cache"
	"example.com/packpal/internal/models"
	"example.com/packpal/internal/repository"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	settingsCacheKey = "packpal:settings:global"
	settingsCacheTTL = 5 * time.Minute
)

// SettingsInput carries the four sustainability figures for an
// admin overwrite.
type SettingsInput struct {
	WasteReduction       int `json:"wasteReduction"`
	CostSavings          int `json:"costSavings"`
	OptimizedPackages    int `json:"optimizedPackages"`
	RecyclablePercentage int `json:"recyclablePercentage"`
}

// SettingsService owns the singleton global settings row.
type SettingsService interface {
	Get(ctx context.Context) (*models.GlobalSettings, error)
	Update(ctx context.Context, input SettingsInput, actor *models.User) (*models.GlobalSettings, error)
	// RecomputeStats rewrites OptimizedPackages and CostSavings from
	// the package ledger. Run periodically by the worker.
	RecomputeStats(ctx context.Context) error
}

type settingsService struct {
	settings repository.SettingsRepository
	packages repository.PackageRepository
	cache    cache.RedisClient
	log      *logrus.Logger
}

// NewSettingsService creates a new settings service instance. The cache
// may be nil, in which case every read hits the database.
func NewSettingsService(settings repository.SettingsRepository, packages repository.PackageRepository, c cache.RedisClient, log *logrus.Logger) SettingsService {
	return &settingsService{
		settings: settings,
		packages: packages,
		cache:    c,
		log:      log,
	}
}

func (s *settingsService) Get(ctx context.Context) (*models.GlobalSettings, error) {
	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	settings, err := s.settings.FindSettings(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		// First read seeds the defaults; single row forever after
		settings = &models.GlobalSettings{
			WasteReduction:       models.DefaultWasteReduction,
			CostSavings:          models.DefaultCostSavings,
			OptimizedPackages:    models.DefaultOptimizedPackages,
			RecyclablePercentage: models.DefaultRecyclablePercentage,
			LastUpdated:          time.Now(),
		}
		if err := s.settings.CreateSettings(ctx, settings); err != nil {
			return nil, err
		}
		s.log.Info("Global settings initialized with defaults")
	}

	s.writeCache(ctx, settings)

	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, input SettingsInput, actor *models.User) (*models.GlobalSettings, error) {
	if !actor.Role.AdminCapable() {
		return nil, ErrForbidden
	}
	if input.RecyclablePercentage < 0 || input.RecyclablePercentage > 100 {
		return nil, errors.Wrap(ErrValidation, "recyclable percentage must be between 0 and 100")
	}
	if input.WasteReduction < 0 || input.CostSavings < 0 || input.OptimizedPackages < 0 {
		return nil, errors.Wrap(ErrValidation, "settings values must not be negative")
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	settings.WasteReduction = input.WasteReduction
	settings.CostSavings = input.CostSavings
	settings.OptimizedPackages = input.OptimizedPackages
	settings.RecyclablePercentage = input.RecyclablePercentage
	settings.LastUpdated = time.Now()
	settings.UpdatedByID = &actor.ID

	if err := s.settings.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	s.log.WithFields(logrus.Fields{"user_id": actor.ID}).Info("Global settings updated")

	return settings, nil
}

func (s *settingsService) RecomputeStats(ctx context.Context) error {
	settings, err := s.Get(ctx)
	if err != nil {
		return err
	}

	count, err := s.packages.CountPackages(ctx)
	if err != nil {
		return err
	}
	saved, err := s.packages.SumCostSaved(ctx)
	if err != nil {
		return err
	}

	optimized := models.DefaultOptimizedPackages + int(count)
	savings := models.DefaultCostSavings + int(saved)
	if settings.OptimizedPackages == optimized && settings.CostSavings == savings {
		return nil
	}

	settings.OptimizedPackages = optimized
	settings.CostSavings = savings
	settings.LastUpdated = time.Now()

	if err := s.settings.SaveSettings(ctx, settings); err != nil {
		return err
	}

	s.invalidate(ctx)

	s.log.WithFields(logrus.Fields{
		"optimized_packages": optimized,
		"cost_savings":       savings,
	}).Info("Global stats reconciled")

	return nil
}

func (s *settingsService) readCache(ctx context.Context) *models.GlobalSettings {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, settingsCacheKey)
	if err != nil {
		return nil
	}
	var settings models.GlobalSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil
	}
	return &settings
}

func (s *settingsService) writeCache(ctx context.Context, settings *models.GlobalSettings) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, settingsCacheKey, string(raw), settingsCacheTTL); err != nil {
		s.log.WithError(err).Warn("Failed to cache global settings")
	}
}

func (s *settingsService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, settingsCacheKey); err != nil {
		s.log.WithError(err).Warn("Failed to invalidate settings cache")
	}
}
