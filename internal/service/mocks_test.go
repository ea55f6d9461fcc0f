package service

import (
	"context"

	"example.com/packpal/internal/models"

	"github.com/stretchr/testify/mock"
)

// Mock repositories for testing

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockChecklistRepository struct {
	mock.Mock
}

func (m *MockChecklistRepository) CreateChecklist(ctx context.Context, checklist *models.Checklist) error {
	args := m.Called(ctx, checklist)
	return args.Error(0)
}

func (m *MockChecklistRepository) FindChecklistByID(ctx context.Context, id uint) (*models.Checklist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Checklist), args.Error(1)
}

func (m *MockChecklistRepository) ListChecklistsForUser(ctx context.Context, userID uint) ([]*models.Checklist, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Checklist), args.Error(1)
}

func (m *MockChecklistRepository) DeleteChecklist(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChecklistRepository) AddItem(ctx context.Context, item *models.ChecklistItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockChecklistRepository) UpdateItem(ctx context.Context, item *models.ChecklistItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockChecklistRepository) FindItem(ctx context.Context, checklistID, itemID uint) (*models.ChecklistItem, error) {
	args := m.Called(ctx, checklistID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChecklistItem), args.Error(1)
}

func (m *MockChecklistRepository) DeleteItem(ctx context.Context, checklistID, itemID uint) error {
	args := m.Called(ctx, checklistID, itemID)
	return args.Error(0)
}

func (m *MockChecklistRepository) AddTeamMember(ctx context.Context, checklist *models.Checklist, user *models.User) error {
	args := m.Called(ctx, checklist, user)
	return args.Error(0)
}

type MockAnnouncementRepository struct {
	mock.Mock
}

func (m *MockAnnouncementRepository) CreateAnnouncement(ctx context.Context, a *models.Announcement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) FindAnnouncementByID(ctx context.Context, id uint) (*models.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) ListAnnouncements(ctx context.Context) ([]*models.Announcement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) DeleteAnnouncement(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) MarkRead(ctx context.Context, announcementID, userID uint) error {
	args := m.Called(ctx, announcementID, userID)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) ListReaders(ctx context.Context, announcementID uint) ([]*models.User, error) {
	args := m.Called(ctx, announcementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockAnnouncementRepository) ListReadAnnouncements(ctx context.Context, userID uint) ([]*models.Announcement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) ReactOnce(ctx context.Context, announcementID, userID uint, t models.ReactionType) (*models.ReactionCounters, error) {
	args := m.Called(ctx, announcementID, userID, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReactionCounters), args.Error(1)
}

type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) CreatePackage(ctx context.Context, pkg *models.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *MockPackageRepository) UpdatePackage(ctx context.Context, pkg *models.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *MockPackageRepository) FindPackageByID(ctx context.Context, id uint) (*models.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Package), args.Error(1)
}

func (m *MockPackageRepository) DeletePackage(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPackageRepository) ListPackagesForUser(ctx context.Context, userID uint) ([]*models.Package, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Package), args.Error(1)
}

func (m *MockPackageRepository) ListPackages(ctx context.Context) ([]*models.Package, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Package), args.Error(1)
}

func (m *MockPackageRepository) CountPackages(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPackageRepository) SumCostSaved(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindSettings(ctx context.Context) (*models.GlobalSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GlobalSettings), args.Error(1)
}

func (m *MockSettingsRepository) CreateSettings(ctx context.Context, s *models.GlobalSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSettingsRepository) SaveSettings(ctx context.Context, s *models.GlobalSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
