package service

import (
	"context"
	"testing"

	"example.com/packpal/internal/models"
	"example.com/packpal/internal/repository"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestSettingsService(settings *MockSettingsRepository, packages *MockPackageRepository) SettingsService {
	return NewSettingsService(settings, packages, nil, newTestLogger())
}

func TestGetSettingsSeedsDefaultsOnce(t *testing.T) {
	settings := new(MockSettingsRepository)
	settings.On("FindSettings", mock.Anything).Return(nil, repository.ErrNotFound).Once()
	settings.On("CreateSettings", mock.Anything, mock.AnythingOfType("*models.GlobalSettings")).Return(nil).Once()

	svc := newTestSettingsService(settings, new(MockPackageRepository))

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.DefaultWasteReduction, got.WasteReduction)
	require.Equal(t, models.DefaultCostSavings, got.CostSavings)
	require.Equal(t, models.DefaultOptimizedPackages, got.OptimizedPackages)
	require.Equal(t, models.DefaultRecyclablePercentage, got.RecyclablePercentage)

	// Second read finds the persisted row; no second insert
	settings.On("FindSettings", mock.Anything).Return(got, nil)
	again, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, got, again)

	settings.AssertExpectations(t)
}

func TestUpdateSettingsRequiresAdmin(t *testing.T) {
	svc := newTestSettingsService(new(MockSettingsRepository), new(MockPackageRepository))

	_, err := svc.Update(context.Background(), SettingsInput{}, testUser(1, models.RoleMember))
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateSettingsValidatesPercentage(t *testing.T) {
	svc := newTestSettingsService(new(MockSettingsRepository), new(MockPackageRepository))

	_, err := svc.Update(context.Background(), SettingsInput{RecyclablePercentage: 120}, testUser(1, models.RoleAdmin))
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateSettingsOverwritesAllFields(t *testing.T) {
	existing := &models.GlobalSettings{
		WasteReduction:       models.DefaultWasteReduction,
		CostSavings:          models.DefaultCostSavings,
		OptimizedPackages:    models.DefaultOptimizedPackages,
		RecyclablePercentage: models.DefaultRecyclablePercentage,
	}

	settings := new(MockSettingsRepository)
	settings.On("FindSettings", mock.Anything).Return(existing, nil)
	settings.On("SaveSettings", mock.Anything, existing).Return(nil)

	svc := newTestSettingsService(settings, new(MockPackageRepository))
	admin := testUser(9, models.RoleOwner)

	got, err := svc.Update(context.Background(), SettingsInput{
		WasteReduction:       50,
		CostSavings:          20000,
		OptimizedPackages:    9000,
		RecyclablePercentage: 85,
	}, admin)
	require.NoError(t, err)
	require.Equal(t, 50, got.WasteReduction)
	require.Equal(t, 20000, got.CostSavings)
	require.Equal(t, 9000, got.OptimizedPackages)
	require.Equal(t, 85, got.RecyclablePercentage)
	require.NotNil(t, got.UpdatedByID)
	require.Equal(t, admin.ID, *got.UpdatedByID)
}

func TestRecomputeStatsFromLedger(t *testing.T) {
	existing := &models.GlobalSettings{
		WasteReduction:       models.DefaultWasteReduction,
		CostSavings:          models.DefaultCostSavings,
		OptimizedPackages:    models.DefaultOptimizedPackages,
		RecyclablePercentage: models.DefaultRecyclablePercentage,
	}

	settings := new(MockSettingsRepository)
	settings.On("FindSettings", mock.Anything).Return(existing, nil)
	settings.On("SaveSettings", mock.Anything, existing).Return(nil)

	packages := new(MockPackageRepository)
	packages.On("CountPackages", mock.Anything).Return(int64(3), nil)
	packages.On("SumCostSaved", mock.Anything).Return(int64(48), nil)

	svc := newTestSettingsService(settings, packages)

	require.NoError(t, svc.RecomputeStats(context.Background()))
	require.Equal(t, models.DefaultOptimizedPackages+3, existing.OptimizedPackages)
	require.Equal(t, models.DefaultCostSavings+48, existing.CostSavings)
}

func TestRecomputeStatsNoDriftNoWrite(t *testing.T) {
	existing := &models.GlobalSettings{
		OptimizedPackages: models.DefaultOptimizedPackages + 2,
		CostSavings:       models.DefaultCostSavings + 16,
	}

	settings := new(MockSettingsRepository)
	settings.On("FindSettings", mock.Anything).Return(existing, nil)

	packages := new(MockPackageRepository)
	packages.On("CountPackages", mock.Anything).Return(int64(2), nil)
	packages.On("SumCostSaved", mock.Anything).Return(int64(16), nil)

	svc := newTestSettingsService(settings, packages)

	require.NoError(t, svc.RecomputeStats(context.Background()))
	settings.AssertNotCalled(t, "SaveSettings", mock.Anything, mock.Anything)
}
