package service

import (
	"context"
	"strings"

	"example.com/packpal/internal/models"
	"example.com/packpal/internal/repository"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// AnnouncementService owns the broadcast board: admin-authored posts,
// per-user read receipts and idempotent reactions.
type AnnouncementService interface {
	List(ctx context.Context) ([]*models.Announcement, error)
	Get(ctx context.Context, id uint) (*models.Announcement, error)
	Create(ctx context.Context, title, message string, actor *models.User) (*models.Announcement, error)
	Delete(ctx context.Context, id uint, actor *models.User) error
	MarkRead(ctx context.Context, id uint, actor *models.User) error
	React(ctx context.Context, id uint, reaction models.ReactionType, actor *models.User) (*models.ReactionCounters, error)
	ListReadBy(ctx context.Context, id uint, actor *models.User) ([]*models.User, error)
	ReadHistory(ctx context.Context, userID uint, actor *models.User) ([]*models.Announcement, error)
}

type announcementService struct {
	announcements repository.AnnouncementRepository
	log           *logrus.Logger
}

// NewAnnouncementService creates a new announcement service instance
func NewAnnouncementService(announcements repository.AnnouncementRepository, log *logrus.Logger) AnnouncementService {
	return &announcementService{
		announcements: announcements,
		log:           log,
	}
}

func (s *announcementService) List(ctx context.Context) ([]*models.Announcement, error) {
	return s.announcements.ListAnnouncements(ctx)
}

func (s *announcementService) Get(ctx context.Context, id uint) (*models.Announcement, error) {
	announcement, err := s.announcements.FindAnnouncementByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return announcement, nil
}

func (s *announcementService) Create(ctx context.Context, title, message string, actor *models.User) (*models.Announcement, error) {
	if !actor.Role.AdminCapable() {
		return nil, ErrForbidden
	}

	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" || message == "" {
		return nil, errors.Wrap(ErrValidation, "title and message are required")
	}

	announcement := &models.Announcement{
		Title:       title,
		Message:     message,
		CreatedByID: actor.ID,
	}

	if err := s.announcements.CreateAnnouncement(ctx, announcement); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"announcement_id": announcement.ID, "user_id": actor.ID}).Info("Announcement created")

	return announcement, nil
}

func (s *announcementService) Delete(ctx context.Context, id uint, actor *models.User) error {
	if !actor.Role.AdminCapable() {
		return ErrForbidden
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	return s.announcements.DeleteAnnouncement(ctx, id)
}

func (s *announcementService) MarkRead(ctx context.Context, id uint, actor *models.User) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	// Re-reading is a no-op
	return s.announcements.MarkRead(ctx, id, actor.ID)
}

func (s *announcementService) React(ctx context.Context, id uint, reaction models.ReactionType, actor *models.User) (*models.ReactionCounters, error) {
	if !models.ValidReactionType(reaction) {
		return nil, ErrInvalidReactionType
	}

	counters, err := s.announcements.ReactOnce(ctx, id, actor.ID, reaction)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return counters, nil
}

func (s *announcementService) ListReadBy(ctx context.Context, id uint, actor *models.User) ([]*models.User, error) {
	if !actor.Role.AdminCapable() {
		return nil, ErrForbidden
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	return s.announcements.ListReaders(ctx, id)
}

func (s *announcementService) ReadHistory(ctx context.Context, userID uint, actor *models.User) ([]*models.Announcement, error) {
	if userID != actor.ID && !actor.Role.AdminCapable() {
		return nil, ErrForbidden
	}
	return s.announcements.ListReadAnnouncements(ctx, userID)
}
