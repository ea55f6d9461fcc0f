package repository

import (
	"context"
	"errors"
	"strings"

	"example.com/packpal/internal/database"
	"example.com/packpal/internal/models"

	"gorm.io/gorm"
)

// UserRepository provides data access for user accounts
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// ChecklistRepository provides data access for checklists and their items
type ChecklistRepository interface {
	CreateChecklist(ctx context.Context, checklist *models.Checklist) error
	FindChecklistByID(ctx context.Context, id uint) (*models.Checklist, error)
	ListChecklistsForUser(ctx context.Context, userID uint) ([]*models.Checklist, error)
	DeleteChecklist(ctx context.Context, id uint) error
	AddItem(ctx context.Context, item *models.ChecklistItem) error
	UpdateItem(ctx context.Context, item *models.ChecklistItem) error
	FindItem(ctx context.Context, checklistID, itemID uint) (*models.ChecklistItem, error)
	DeleteItem(ctx context.Context, checklistID, itemID uint) error
	AddTeamMember(ctx context.Context, checklist *models.Checklist, user *models.User) error
}

// AnnouncementRepository provides data access for announcements,
// read-tracking and reactions
type AnnouncementRepository interface {
	CreateAnnouncement(ctx context.Context, a *models.Announcement) error
	FindAnnouncementByID(ctx context.Context, id uint) (*models.Announcement, error)
	ListAnnouncements(ctx context.Context) ([]*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id uint) error
	MarkRead(ctx context.Context, announcementID, userID uint) error
	ListReaders(ctx context.Context, announcementID uint) ([]*models.User, error)
	ListReadAnnouncements(ctx context.Context, userID uint) ([]*models.Announcement, error)
	// ReactOnce increments the counter for the given reaction type unless
	// the (user, type) pair already reacted; it returns the counters after
	// the call either way.
	ReactOnce(ctx context.Context, announcementID, userID uint, t models.ReactionType) (*models.ReactionCounters, error)
}

// PackageRepository provides data access for the package ledger
type PackageRepository interface {
	CreatePackage(ctx context.Context, pkg *models.Package) error
	UpdatePackage(ctx context.Context, pkg *models.Package) error
	FindPackageByID(ctx context.Context, id uint) (*models.Package, error)
	DeletePackage(ctx context.Context, id uint) error
	ListPackagesForUser(ctx context.Context, userID uint) ([]*models.Package, error)
	ListPackages(ctx context.Context) ([]*models.Package, error)
	CountPackages(ctx context.Context) (int64, error)
	SumCostSaved(ctx context.Context) (int64, error)
}

// SettingsRepository provides data access for the global settings singleton
type SettingsRepository interface {
	FindSettings(ctx context.Context) (*models.GlobalSettings, error)
	CreateSettings(ctx context.Context, s *models.GlobalSettings) error
	SaveSettings(ctx context.Context, s *models.GlobalSettings) error
}

type repo struct {
	db database.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db database.DB) UserRepository {
	return &repo{db: db}
}

// NewChecklistRepository creates a new checklist repository instance
func NewChecklistRepository(db database.DB) ChecklistRepository {
	return &repo{db: db}
}

// NewAnnouncementRepository creates a new announcement repository instance
func NewAnnouncementRepository(db database.DB) AnnouncementRepository {
	return &repo{db: db}
}

// NewPackageRepository creates a new package repository instance
func NewPackageRepository(db database.DB) PackageRepository {
	return &repo{db: db}
}

// NewSettingsRepository creates a new settings repository instance
func NewSettingsRepository(db database.DB) SettingsRepository {
	return &repo{db: db}
}

func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key") {
		return ErrDuplicateKey
	}
	return err
}

// User operations implementation

func (r *repo) CreateUser(ctx context.Context, user *models.User) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return translateErr(gormDB.WithContext(ctx).Create(user).Error)
}

func (r *repo) UpdateUser(ctx context.Context, user *models.User) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return translateErr(gormDB.WithContext(ctx).Save(user).Error)
}

func (r *repo) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := gormDB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateErr(err)
	}

	return &user, nil
}

func (r *repo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := gormDB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateErr(err)
	}

	return &user, nil
}

func (r *repo) ListUsers(ctx context.Context) ([]*models.User, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var users []*models.User
	if err := gormDB.WithContext(ctx).Order("registration_date DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// Checklist operations implementation

func (r *repo) CreateChecklist(ctx context.Context, checklist *models.Checklist) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return translateErr(gormDB.WithContext(ctx).Create(checklist).Error)
}

func (r *repo) FindChecklistByID(ctx context.Context, id uint) (*models.Checklist, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var checklist models.Checklist
	if err := gormDB.WithContext(ctx).
		Preload("Items").
		Preload("Team").
		Preload("CreatedBy").
		First(&checklist, id).Error; err != nil {
		return nil, translateErr(err)
	}

	return &checklist, nil
}

func (r *repo) ListChecklistsForUser(ctx context.Context, userID uint) ([]*models.Checklist, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var checklists []*models.Checklist
	if err := gormDB.WithContext(ctx).
		Preload("Items").
		Preload("Team").
		Where("created_by_id = ? OR id IN (?)",
			userID,
			gormDB.Table("checklist_team").Select("checklist_id").Where("user_id = ?", userID),
		).
		Order("created_at DESC").
		Find(&checklists).Error; err != nil {
		return nil, err
	}

	return checklists, nil
}

func (r *repo) DeleteChecklist(ctx context.Context, id uint) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	// Items go with the checklist
	return gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("checklist_id = ?", id).Delete(&models.ChecklistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Checklist{}, id).Error
	})
}

func (r *repo) AddItem(ctx context.Context, item *models.ChecklistItem) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return translateErr(gormDB.WithContext(ctx).Create(item).Error)
}

func (r *repo) UpdateItem(ctx context.Context, item *models.ChecklistItem) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return translateErr(gormDB.WithContext(ctx).Save(item).Error)
}

func (r *repo) FindItem(ctx context.Context, checklistID, itemID uint) (*models.ChecklistItem, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var item models.ChecklistItem
	if err := gormDB.WithContext(ctx).
		Where("checklist_id = ?", checklistID).
		First(&item, itemID).Error; err != nil {
		return nil, translateErr(err)
	}

	return &item, nil
}

func (r *repo) DeleteItem(ctx context.Context, checklistID, itemID uint) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	res := gormDB.WithContext(ctx).
		Where("checklist_id = ?", checklistID).
		Delete(&models.ChecklistItem{}, itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) AddTeamMember(ctx context.Context, checklist *models.Checklist, user *models.User) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	// Association append is a no-op for an existing member
	return gormDB.WithContext(ctx).Model(checklist).Association("Team").Append(user)
}

// Announcement operations implementation

func (r *repo) CreateAnnouncement(ctx context.Context, a *models.Announcement) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return translateErr(gormDB.WithContext(ctx).Create(a).Error)
}

func (r *repo) FindAnnouncementByID(ctx context.Context, id uint) (*models.Announcement, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var a models.Announcement
	if err := gormDB.WithContext(ctx).Preload("CreatedBy").First(&a, id).Error; err != nil {
		return nil, translateErr(err)
	}

	return &a, nil
}

func (r *repo) ListAnnouncements(ctx context.Context) ([]*models.Announcement, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var announcements []*models.Announcement
	if err := gormDB.WithContext(ctx).
		Preload("CreatedBy").
		Order("created_at DESC").
		Find(&announcements).Error; err != nil {
		return nil, err
	}

	return announcements, nil
}

func (r *repo) DeleteAnnouncement(ctx context.Context, id uint) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("announcement_id = ?", id).Delete(&models.AnnouncementRead{}).Error; err != nil {
			return err
		}
		if err := tx.Where("announcement_id = ?", id).Delete(&models.AnnouncementReaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Announcement{}, id).Error
	})
}

func (r *repo) MarkRead(ctx context.Context, announcementID, userID uint) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	var count int64
	if err := gormDB.WithContext(ctx).
		Model(&models.AnnouncementRead{}).
		Where("announcement_id = ? AND user_id = ?", announcementID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return gormDB.WithContext(ctx).Create(&models.AnnouncementRead{
		AnnouncementID: announcementID,
		UserID:         userID,
	}).Error
}

func (r *repo) ListReaders(ctx context.Context, announcementID uint) ([]*models.User, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var users []*models.User
	if err := gormDB.WithContext(ctx).
		Where("id IN (?)",
			gormDB.Model(&models.AnnouncementRead{}).Select("user_id").Where("announcement_id = ?", announcementID),
		).
		Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *repo) ListReadAnnouncements(ctx context.Context, userID uint) ([]*models.Announcement, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var announcements []*models.Announcement
	if err := gormDB.WithContext(ctx).
		Where("id IN (?)",
			gormDB.Model(&models.AnnouncementRead{}).Select("announcement_id").Where("user_id = ?", userID),
		).
		Order("created_at DESC").
		Find(&announcements).Error; err != nil {
		return nil, err
	}

	return announcements, nil
}

func (r *repo) ReactOnce(ctx context.Context, announcementID, userID uint, t models.ReactionType) (*models.ReactionCounters, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var a models.Announcement
	txErr := gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&a, announcementID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.AnnouncementReaction{}).
			Where("announcement_id = ? AND user_id = ? AND type = ?", announcementID, userID, t).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		switch t {
		case models.ReactionThumbsUp:
			a.Reactions.ThumbsUp++
		case models.ReactionHeart:
			a.Reactions.Heart++
		case models.ReactionCelebration:
			a.Reactions.Celebration++
		}

		if err := tx.Save(&a).Error; err != nil {
			return err
		}

		return tx.Create(&models.AnnouncementReaction{
			AnnouncementID: announcementID,
			UserID:         userID,
			Type:           t,
		}).Error
	})
	if txErr != nil {
		return nil, translateErr(txErr)
	}

	return &a.Reactions, nil
}

// Package operations implementation

func (r *repo) CreatePackage(ctx context.Context, pkg *models.Package) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return translateErr(gormDB.WithContext(ctx).Create(pkg).Error)
}

func (r *repo) UpdatePackage(ctx context.Context, pkg *models.Package) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return translateErr(gormDB.WithContext(ctx).Save(pkg).Error)
}

func (r *repo) FindPackageByID(ctx context.Context, id uint) (*models.Package, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var pkg models.Package
	if err := gormDB.WithContext(ctx).Preload("User").First(&pkg, id).Error; err != nil {
		return nil, translateErr(err)
	}

	return &pkg, nil
}

func (r *repo) DeletePackage(ctx context.Context, id uint) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Delete(&models.Package{}, id).Error
}

func (r *repo) ListPackagesForUser(ctx context.Context, userID uint) ([]*models.Package, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var packages []*models.Package
	if err := gormDB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&packages).Error; err != nil {
		return nil, err
	}

	return packages, nil
}

func (r *repo) ListPackages(ctx context.Context) ([]*models.Package, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var packages []*models.Package
	if err := gormDB.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&packages).Error; err != nil {
		return nil, err
	}

	return packages, nil
}

func (r *repo) CountPackages(ctx context.Context) (int64, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := gormDB.WithContext(ctx).Model(&models.Package{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repo) SumCostSaved(ctx context.Context) (int64, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return 0, err
	}

	var total int64
	if err := gormDB.WithContext(ctx).
		Model(&models.Package{}).
		Select("COALESCE(SUM(cost_saved), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}

	return total, nil
}

// Settings operations implementation

func (r *repo) FindSettings(ctx context.Context) (*models.GlobalSettings, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var s models.GlobalSettings
	if err := gormDB.WithContext(ctx).Preload("UpdatedBy").First(&s).Error; err != nil {
		return nil, translateErr(err)
	}

	return &s, nil
}

func (r *repo) CreateSettings(ctx context.Context, s *models.GlobalSettings) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return translateErr(gormDB.WithContext(ctx).Create(s).Error)
}

func (r *repo) SaveSettings(ctx context.Context, s *models.GlobalSettings) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return translateErr(gormDB.WithContext(ctx).Save(s).Error)
}
