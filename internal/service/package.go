package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"example.com/packpal/internal/models"
	"example.com/packpal/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// PackageInput carries the fields for creating or updating a package
// ledger entry. Zero values are ignored on update.
type PackageInput struct {
	PackageType  models.PackageType   `json:"packageType"`
	Status       models.PackageStatus `json:"status"`
	Customer     string               `json:"customer"`
	ShippingDate *time.Time           `json:"shippingDate"`
}

// PackageService owns the shipment ledger and its sustainability figures.
type PackageService interface {
	Create(ctx context.Context, input PackageInput, actor *models.User) (*models.Package, error)
	Get(ctx context.Context, id uint, actor *models.User) (*models.Package, error)
	Update(ctx context.Context, id uint, input PackageInput, actor *models.User) (*models.Package, error)
	Delete(ctx context.Context, id uint, actor *models.User) error
	ListForUser(ctx context.Context, userID uint, actor *models.User) ([]*models.Package, error)
	ListAll(ctx context.Context, actor *models.User) ([]*models.Package, error)
}

type packageService struct {
	packages repository.PackageRepository
	settings repository.SettingsRepository
	log      *logrus.Logger
}

// NewPackageService creates a new package service instance
func NewPackageService(packages repository.PackageRepository, settings repository.SettingsRepository, log *logrus.Logger) PackageService {
	return &packageService{
		packages: packages,
		settings: settings,
		log:      log,
	}
}

func (s *packageService) Create(ctx context.Context, input PackageInput, actor *models.User) (*models.Package, error) {
	if !models.Resolve(actor.Role).CanEditPackages {
		return nil, ErrForbidden
	}

	if input.PackageType == "" {
		input.PackageType = models.PackageStandard
	}
	if !models.ValidPackageType(input.PackageType) {
		return nil, errors.Wrapf(ErrValidation, "unknown package type %q", input.PackageType)
	}
	if input.Status == "" {
		input.Status = models.PackagePending
	}
	if !models.ValidPackageStatus(input.Status) {
		return nil, errors.Wrapf(ErrValidation, "unknown package status %q", input.Status)
	}
	input.Customer = strings.TrimSpace(input.Customer)
	if input.Customer == "" {
		return nil, errors.Wrap(ErrValidation, "customer is required")
	}

	waste, cost := Estimate(input.PackageType)

	pkg := &models.Package{
		UserID:       actor.ID,
		PackageRef:   newPackageRef(),
		PackageType:  input.PackageType,
		Status:       input.Status,
		Customer:     input.Customer,
		ShippingDate: input.ShippingDate,
		WasteReduced: waste,
		CostSaved:    cost,
	}

	if err := s.packages.CreatePackage(ctx, pkg); err != nil {
		return nil, err
	}

	// Best-effort counter bump; the reconciliation worker corrects drift
	if err := s.bumpStats(ctx, 1, cost); err != nil {
		s.log.WithError(err).Warn("Failed to bump global stats")
	}

	s.log.WithFields(logrus.Fields{"package_ref": pkg.PackageRef, "user_id": actor.ID}).Info("Package created")

	return pkg, nil
}

func (s *packageService) Get(ctx context.Context, id uint, actor *models.User) (*models.Package, error) {
	pkg, err := s.findPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg.UserID != actor.ID && !actor.Role.AdminCapable() {
		return nil, ErrForbidden
	}
	return pkg, nil
}

func (s *packageService) Update(ctx context.Context, id uint, input PackageInput, actor *models.User) (*models.Package, error) {
	pkg, err := s.findPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg.UserID != actor.ID && !actor.Role.AdminCapable() {
		return nil, ErrForbidden
	}
	if !models.Resolve(actor.Role).CanEditPackages {
		return nil, ErrForbidden
	}

	if input.PackageType != "" {
		if !models.ValidPackageType(input.PackageType) {
			return nil, errors.Wrapf(ErrValidation, "unknown package type %q", input.PackageType)
		}
		pkg.PackageType = input.PackageType
		pkg.WasteReduced, pkg.CostSaved = Estimate(input.PackageType)
	}
	if input.Status != "" {
		if !models.ValidPackageStatus(input.Status) {
			return nil, errors.Wrapf(ErrValidation, "unknown package status %q", input.Status)
		}
		pkg.Status = input.Status
	}
	if c := strings.TrimSpace(input.Customer); c != "" {
		pkg.Customer = c
	}
	if input.ShippingDate != nil {
		pkg.ShippingDate = input.ShippingDate
	}

	// Last writer wins; no version check
	if err := s.packages.UpdatePackage(ctx, pkg); err != nil {
		return nil, err
	}

	return pkg, nil
}

func (s *packageService) Delete(ctx context.Context, id uint, actor *models.User) error {
	pkg, err := s.findPackage(ctx, id)
	if err != nil {
		return err
	}
	if pkg.UserID != actor.ID && !actor.Role.AdminCapable() {
		return ErrForbidden
	}

	if err := s.packages.DeletePackage(ctx, id); err != nil {
		return err
	}

	if err := s.bumpStats(ctx, -1, -pkg.CostSaved); err != nil {
		s.log.WithError(err).Warn("Failed to adjust global stats")
	}

	return nil
}

func (s *packageService) ListForUser(ctx context.Context, userID uint, actor *models.User) ([]*models.Package, error) {
	if userID != actor.ID && !actor.Role.AdminCapable() {
		return nil, ErrForbidden
	}
	return s.packages.ListPackagesForUser(ctx, userID)
}

func (s *packageService) ListAll(ctx context.Context, actor *models.User) ([]*models.Package, error) {
	if !actor.Role.AdminCapable() {
		return nil, ErrForbidden
	}
	return s.packages.ListPackages(ctx)
}

func (s *packageService) findPackage(ctx context.Context, id uint) (*models.Package, error) {
	pkg, err := s.packages.FindPackageByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return pkg, nil
}

// bumpStats adjusts the global counters by the given deltas. A missing
// settings row is not an error; the lazy Get will seed it later.
func (s *packageService) bumpStats(ctx context.Context, packages, costSaved int) error {
	settings, err := s.settings.FindSettings(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	settings.OptimizedPackages += packages
	settings.CostSavings += costSaved
	settings.LastUpdated = time.Now()
	return s.settings.SaveSettings(ctx, settings)
}

// newPackageRef builds a human-readable ledger reference like
// PKG-20260831-1A2B3C.
func newPackageRef() string {
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("PKG-%s-%s", time.Now().Format("20060102"), suffix)
}
