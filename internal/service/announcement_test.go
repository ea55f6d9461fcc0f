package service

import (
	"context"
	"testing"

	"example.com/packpal/internal/models"
	"example.com/packpal/internal/repository"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAnnouncementService(announcements *MockAnnouncementRepository) AnnouncementService {
	return NewAnnouncementService(announcements, newTestLogger())
}

func TestCreateAnnouncementRequiresAdmin(t *testing.T) {
	svc := newTestAnnouncementService(new(MockAnnouncementRepository))

	_, err := svc.Create(context.Background(), "Maintenance", "Back soon", testUser(1, models.RoleMember))
	require.ErrorIs(t, err, ErrForbidden)
}

func TestCreateAnnouncement(t *testing.T) {
	announcements := new(MockAnnouncementRepository)
	announcements.On("CreateAnnouncement", mock.Anything, mock.AnythingOfType("*models.Announcement")).Return(nil)

	svc := newTestAnnouncementService(announcements)

	a, err := svc.Create(context.Background(), "Maintenance", "Back soon", testUser(1, models.RoleOwner))
	require.NoError(t, err)
	require.Equal(t, "Maintenance", a.Title)
	require.Equal(t, uint(1), a.CreatedByID)

	announcements.AssertExpectations(t)
}

func TestReactRejectsUnknownType(t *testing.T) {
	svc := newTestAnnouncementService(new(MockAnnouncementRepository))

	_, err := svc.React(context.Background(), 1, models.ReactionType("shrug"), testUser(1, models.RoleMember))
	require.ErrorIs(t, err, ErrInvalidReactionType)
}

func TestReactIsIdempotentPerUserAndType(t *testing.T) {
	counters := &models.ReactionCounters{ThumbsUp: 1}

	announcements := new(MockAnnouncementRepository)
	announcements.On("ReactOnce", mock.Anything, uint(1), uint(5), models.ReactionThumbsUp).Return(counters, nil)

	svc := newTestAnnouncementService(announcements)
	user := testUser(5, models.RoleMember)

	first, err := svc.React(context.Background(), 1, models.ReactionThumbsUp, user)
	require.NoError(t, err)
	second, err := svc.React(context.Background(), 1, models.ReactionThumbsUp, user)
	require.NoError(t, err)

	// Reacting twice leaves the counter where the first call put it
	require.Equal(t, first, second)
	require.Equal(t, uint(1), second.ThumbsUp)
}

func TestReactDistinctUsersBothCount(t *testing.T) {
	announcements := new(MockAnnouncementRepository)
	announcements.On("ReactOnce", mock.Anything, uint(1), uint(5), models.ReactionHeart).
		Return(&models.ReactionCounters{Heart: 1}, nil)
	announcements.On("ReactOnce", mock.Anything, uint(1), uint(6), models.ReactionHeart).
		Return(&models.ReactionCounters{Heart: 2}, nil)

	svc := newTestAnnouncementService(announcements)

	_, err := svc.React(context.Background(), 1, models.ReactionHeart, testUser(5, models.RoleMember))
	require.NoError(t, err)
	counters, err := svc.React(context.Background(), 1, models.ReactionHeart, testUser(6, models.RoleViewer))
	require.NoError(t, err)
	require.Equal(t, uint(2), counters.Heart)
}

func TestMarkReadUnknownAnnouncement(t *testing.T) {
	announcements := new(MockAnnouncementRepository)
	announcements.On("FindAnnouncementByID", mock.Anything, uint(99)).Return(nil, repository.ErrNotFound)

	svc := newTestAnnouncementService(announcements)

	err := svc.MarkRead(context.Background(), 99, testUser(1, models.RoleMember))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAnnouncementRequiresAdmin(t *testing.T) {
	svc := newTestAnnouncementService(new(MockAnnouncementRepository))

	err := svc.Delete(context.Background(), 1, testUser(1, models.RoleViewer))
	require.ErrorIs(t, err, ErrForbidden)
}

func TestListReadByRequiresAdmin(t *testing.T) {
	svc := newTestAnnouncementService(new(MockAnnouncementRepository))

	_, err := svc.ListReadBy(context.Background(), 1, testUser(1, models.RoleMember))
	require.ErrorIs(t, err, ErrForbidden)
}

func TestReadHistorySelfOrAdmin(t *testing.T) {
	announcements := new(MockAnnouncementRepository)
	announcements.On("ListReadAnnouncements", mock.Anything, uint(5)).Return([]*models.Announcement{}, nil)

	svc := newTestAnnouncementService(announcements)

	_, err := svc.ReadHistory(context.Background(), 5, testUser(5, models.RoleViewer))
	require.NoError(t, err)

	_, err = svc.ReadHistory(context.Background(), 5, testUser(6, models.RoleMember))
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ReadHistory(context.Background(), 5, testUser(6, models.RoleAdmin))
	require.NoError(t, err)
}
