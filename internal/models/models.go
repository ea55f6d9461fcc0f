package models

import (
	"time"

	"gorm.io/gorm"
)

// Model is the base model with common fields for all database entities
type Model struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// User model represents a registered account
type User struct {
	Model
	Name             string     `json:"name" gorm:"Column:name"`
	Email            string     `json:"email" gorm:"uniqueIndex;Column:email"`
	PasswordHash     string     `json:"-" gorm:"Column:password_hash"`
	Role             Role       `json:"role" gorm:"Column:role;default:'Member'"`
	Username         string     `json:"username" gorm:"Column:username"`
	Position         string     `json:"position" gorm:"Column:position"`
	Company          string     `json:"company" gorm:"Column:company"`
	Phone            string     `json:"phone" gorm:"Column:phone"`
	Settings         string     `json:"-" gorm:"Column:settings;type:text"`
	RegistrationDate time.Time  `json:"registration_date" gorm:"Column:registration_date"`
	LastLogin        *time.Time `json:"last_login" gorm:"Column:last_login"`
}

// Checklist model represents a shared packing checklist
type Checklist struct {
	Model
	Name        string          `json:"name" gorm:"Column:name"`
	CreatedBy   *User           `json:"created_by" gorm:"foreignKey:CreatedByID"`
	CreatedByID uint            `json:"created_by_id" gorm:"Column:created_by_id"`
	Items       []ChecklistItem `json:"items" gorm:"foreignKey:ChecklistID;constraint:OnDelete:CASCADE"`
	Team        []*User         `json:"team" gorm:"many2many:checklist_team"`
}

// IsMember reports whether the user created the checklist or belongs
// to its team.
func (c *Checklist) IsMember(userID uint) bool {
	if c.CreatedByID == userID {
		return true
	}
	for _, m := range c.Team {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// ItemStatus is an enum for checklist item states
type ItemStatus string

const (
	// ItemStatusToPack represents an item that still needs packing
	ItemStatusToPack ItemStatus = "To Pack"
	// ItemStatusPacked represents an item that has been packed
	ItemStatusPacked ItemStatus = "Packed"
	// ItemStatusDelivered represents an item that has been delivered
	ItemStatusDelivered ItemStatus = "Delivered"
)

// ValidItemStatus reports whether s is one of the enumerated item states.
func ValidItemStatus(s ItemStatus) bool {
	switch s {
	case ItemStatusToPack, ItemStatusPacked, ItemStatusDelivered:
		return true
	}
	return false
}

// ChecklistItem model represents a single packable entry in a checklist.
// Status transitions are unrestricted: any state is reachable from any state.
type ChecklistItem struct {
	Model
	ChecklistID uint       `json:"checklist_id" gorm:"Column:checklist_id;index"`
	Text        string     `json:"text" gorm:"Column:text"`
	Category    string     `json:"category" gorm:"Column:category;default:'General'"`
	Status      ItemStatus `json:"status" gorm:"Column:status;default:'To Pack'"`
	CreatedBy   *User      `json:"created_by" gorm:"foreignKey:CreatedByID"`
	CreatedByID uint       `json:"created_by_id" gorm:"Column:created_by_id"`
}

// ChecklistSummary is a derived view over a checklist's items. It is
// recomputed on every read and never stored.
type ChecklistSummary struct {
	ItemsTotal     int            `json:"items_total"`
	ItemsPacked    int            `json:"items_packed"`
	ItemsDelivered int            `json:"items_delivered"`
	Progress       int            `json:"progress"`
	Categories     map[string]int `json:"categories"`
}

// ReactionType is an enum for announcement reactions
type ReactionType string

const (
	ReactionThumbsUp    ReactionType = "thumbsUp"
	ReactionHeart       ReactionType = "heart"
	ReactionCelebration ReactionType = "celebration"
)

// ValidReactionType reports whether t is one of the enumerated reactions.
func ValidReactionType(t ReactionType) bool {
	switch t {
	case ReactionThumbsUp, ReactionHeart, ReactionCelebration:
		return true
	}
	return false
}

// ReactionCounters holds the per-type reaction totals for an announcement.
// Counters are monotonically non-decreasing.
type ReactionCounters struct {
	ThumbsUp    uint `json:"thumbsUp" gorm:"Column:thumbs_up"`
	Heart       uint `json:"heart" gorm:"Column:heart"`
	Celebration uint `json:"celebration" gorm:"Column:celebration"`
}

// Announcement model represents a broadcast message with read-tracking
// and reaction counters
type Announcement struct {
	Model
	Title       string                 `json:"title" gorm:"Column:title"`
	Message     string                 `json:"message" gorm:"Column:message;type:text"`
	CreatedBy   *User                  `json:"created_by" gorm:"foreignKey:CreatedByID"`
	CreatedByID uint                   `json:"created_by_id" gorm:"Column:created_by_id"`
	Reactions   ReactionCounters       `json:"reactions" gorm:"embedded"`
	Reads       []AnnouncementRead     `json:"-" gorm:"foreignKey:AnnouncementID;constraint:OnDelete:CASCADE"`
	UserReacts  []AnnouncementReaction `json:"-" gorm:"foreignKey:AnnouncementID;constraint:OnDelete:CASCADE"`
}

// AnnouncementRead records that a user has read an announcement
type AnnouncementRead struct {
	Model
	AnnouncementID uint `json:"announcement_id" gorm:"Column:announcement_id;index:idx_ann_read,unique"`
	UserID         uint `json:"user_id" gorm:"Column:user_id;index:idx_ann_read,unique"`
}

// AnnouncementReaction records a single (user, reaction type) pair.
// The unique index keeps reaction counting idempotent per user and type.
type AnnouncementReaction struct {
	Model
	AnnouncementID uint         `json:"announcement_id" gorm:"Column:announcement_id;index:idx_ann_react,unique"`
	UserID         uint         `json:"user_id" gorm:"Column:user_id;index:idx_ann_react,unique"`
	Type           ReactionType `json:"type" gorm:"Column:type;index:idx_ann_react,unique"`
}

// PackageType is an enum for packaging categories
type PackageType string

const (
	PackageStandard    PackageType = "Standard"
	PackageEcoFriendly PackageType = "Eco-friendly"
	PackageCompact     PackageType = "Compact"
	PackageBulk        PackageType = "Bulk"
	PackageCustom      PackageType = "Custom"
)

// ValidPackageType reports whether t is one of the enumerated package types.
func ValidPackageType(t PackageType) bool {
	switch t {
	case PackageStandard, PackageEcoFriendly, PackageCompact, PackageBulk, PackageCustom:
		return true
	}
	return false
}

// PackageStatus is an enum for shipment states
type PackageStatus string

const (
	PackagePending    PackageStatus = "pending"
	PackageProcessing PackageStatus = "processing"
	PackageShipped    PackageStatus = "shipped"
	PackageDelivered  PackageStatus = "delivered"
)

// ValidPackageStatus reports whether s is one of the enumerated shipment states.
func ValidPackageStatus(s PackageStatus) bool {
	switch s {
	case PackagePending, PackageProcessing, PackageShipped, PackageDelivered:
		return true
	}
	return false
}

// Package model represents a shipment/packaging record with its
// sustainability metrics
type Package struct {
	Model
	User         *User         `json:"user" gorm:"foreignKey:UserID"`
	UserID       uint          `json:"user_id" gorm:"Column:user_id;index"`
	PackageRef   string        `json:"package_ref" gorm:"uniqueIndex;Column:package_ref"`
	PackageType  PackageType   `json:"package_type" gorm:"Column:package_type"`
	Status       PackageStatus `json:"status" gorm:"Column:status;default:'pending'"`
	Customer     string        `json:"customer" gorm:"Column:customer"`
	ShippingDate *time.Time    `json:"shipping_date" gorm:"Column:shipping_date"`
	WasteReduced int           `json:"waste_reduced" gorm:"Column:waste_reduced"`
	CostSaved    int           `json:"cost_saved" gorm:"Column:cost_saved"`
}

// GlobalSettings is the singleton record of platform-wide displayed
// statistics. It is created lazily with defaults on first read.
type GlobalSettings struct {
	Model
	WasteReduction       int       `json:"waste_reduction" gorm:"Column:waste_reduction"`
	CostSavings          int       `json:"cost_savings" gorm:"Column:cost_savings"`
	OptimizedPackages    int       `json:"optimized_packages" gorm:"Column:optimized_packages"`
	RecyclablePercentage int       `json:"recyclable_percentage" gorm:"Column:recyclable_percentage"`
	LastUpdated          time.Time `json:"last_updated" gorm:"Column:last_updated"`
	UpdatedBy            *User     `json:"updated_by" gorm:"foreignKey:UpdatedByID"`
	UpdatedByID          *uint     `json:"updated_by_id" gorm:"Column:updated_by_id"`
}

// Defaults displayed before any admin has edited the settings.
const (
	DefaultWasteReduction       = 42
	DefaultCostSavings          = 12450
	DefaultOptimizedPackages    = 8672
	DefaultRecyclablePercentage = 78
)
