package service

import (
	"context"
	"testing"

	"example.com/packpal/internal/models"
	"example.com/packpal/internal/repository"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestChecklistService(checklists *MockChecklistRepository, users *MockUserRepository) ChecklistService {
	return NewChecklistService(checklists, users, newTestLogger())
}

func testUser(id uint, role models.Role) *models.User {
	return &models.User{Model: models.Model{ID: id}, Role: role}
}

func TestCreateChecklistAddsCreatorToTeam(t *testing.T) {
	creator := testUser(1, models.RoleMember)

	checklists := new(MockChecklistRepository)
	checklists.On("CreateChecklist", mock.Anything, mock.AnythingOfType("*models.Checklist")).Return(nil)

	svc := newTestChecklistService(checklists, new(MockUserRepository))

	checklist, err := svc.Create(context.Background(), "Office Move", creator)
	require.NoError(t, err)
	require.Equal(t, "Office Move", checklist.Name)
	require.Equal(t, creator.ID, checklist.CreatedByID)
	require.True(t, checklist.IsMember(creator.ID))

	checklists.AssertExpectations(t)
}

func TestCreateChecklistRequiresName(t *testing.T) {
	svc := newTestChecklistService(new(MockChecklistRepository), new(MockUserRepository))

	_, err := svc.Create(context.Background(), "   ", testUser(1, models.RoleMember))
	require.ErrorIs(t, err, ErrValidation)
}

func TestAddItemFlagsDuplicate(t *testing.T) {
	creator := testUser(1, models.RoleMember)
	checklist := &models.Checklist{
		Model:       models.Model{ID: 10},
		Name:        "Office Move",
		CreatedByID: creator.ID,
		Items: []models.ChecklistItem{
			{Text: "Boxes", Category: "Packing"},
		},
		Team: []*models.User{creator},
	}

	checklists := new(MockChecklistRepository)
	checklists.On("FindChecklistByID", mock.Anything, uint(10)).Return(checklist, nil)
	checklists.On("AddItem", mock.Anything, mock.AnythingOfType("*models.ChecklistItem")).Return(nil)

	svc := newTestChecklistService(checklists, new(MockUserRepository))

	result, err := svc.AddItem(context.Background(), 10, ItemInput{Text: "boxes"}, creator)
	require.NoError(t, err)
	require.True(t, result.Duplicate)
	require.Equal(t, "General", result.Item.Category)
	require.Equal(t, models.ItemStatusToPack, result.Item.Status)
}

func TestAddItemRejectsViewer(t *testing.T) {
	creator := testUser(1, models.RoleMember)
	viewer := testUser(2, models.RoleViewer)
	checklist := &models.Checklist{
		Model:       models.Model{ID: 10},
		CreatedByID: creator.ID,
		Team:        []*models.User{creator, viewer},
	}

	checklists := new(MockChecklistRepository)
	checklists.On("FindChecklistByID", mock.Anything, uint(10)).Return(checklist, nil)

	svc := newTestChecklistService(checklists, new(MockUserRepository))

	_, err := svc.AddItem(context.Background(), 10, ItemInput{Text: "Tape"}, viewer)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAddItemRejectsNonMember(t *testing.T) {
	checklist := &models.Checklist{
		Model:       models.Model{ID: 10},
		CreatedByID: 1,
		Team:        []*models.User{testUser(1, models.RoleMember)},
	}

	checklists := new(MockChecklistRepository)
	checklists.On("FindChecklistByID", mock.Anything, uint(10)).Return(checklist, nil)

	svc := newTestChecklistService(checklists, new(MockUserRepository))

	_, err := svc.AddItem(context.Background(), 10, ItemInput{Text: "Tape"}, testUser(9, models.RoleMember))
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAddItemRejectsUnknownStatus(t *testing.T) {
	creator := testUser(1, models.RoleMember)
	checklist := &models.Checklist{
		Model:       models.Model{ID: 10},
		CreatedByID: creator.ID,
		Team:        []*models.User{creator},
	}

	checklists := new(MockChecklistRepository)
	checklists.On("FindChecklistByID", mock.Anything, uint(10)).Return(checklist, nil)

	svc := newTestChecklistService(checklists, new(MockUserRepository))

	_, err := svc.AddItem(context.Background(), 10, ItemInput{Text: "Tape", Status: "Lost"}, creator)
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateItemStatusAllowsAnyTransition(t *testing.T) {
	creator := testUser(1, models.RoleMember)
	checklist := &models.Checklist{
		Model:       models.Model{ID: 10},
		CreatedByID: creator.ID,
		Team:        []*models.User{creator},
	}
	item := &models.ChecklistItem{Model: models.Model{ID: 4}, ChecklistID: 10, Status: models.ItemStatusDelivered}

	checklists := new(MockChecklistRepository)
	checklists.On("FindChecklistByID", mock.Anything, uint(10)).Return(checklist, nil)
	checklists.On("FindItem", mock.Anything, uint(10), uint(4)).Return(item, nil)
	checklists.On("UpdateItem", mock.Anything, item).Return(nil)

	svc := newTestChecklistService(checklists, new(MockUserRepository))

	// Delivered back to To Pack is legal
	updated, err := svc.UpdateItemStatus(context.Background(), 10, 4, models.ItemStatusToPack, creator)
	require.NoError(t, err)
	require.Equal(t, models.ItemStatusToPack, updated.Status)
}

func TestRemoveItemRequiresDeleteCapability(t *testing.T) {
	creator := testUser(1, models.RoleMember)
	checklist := &models.Checklist{
		Model:       models.Model{ID: 10},
		CreatedByID: creator.ID,
		Team:        []*models.User{creator},
	}

	checklists := new(MockChecklistRepository)
	checklists.On("FindChecklistByID", mock.Anything, uint(10)).Return(checklist, nil)

	svc := newTestChecklistService(checklists, new(MockUserRepository))

	// Members can edit but not delete
	err := svc.RemoveItem(context.Background(), 10, 4, creator)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestRemoveItemAsAdmin(t *testing.T) {
	admin := testUser(1, models.RoleAdmin)
	checklist := &models.Checklist{
		Model:       models.Model{ID: 10},
		CreatedByID: admin.ID,
		Team:        []*models.User{admin},
	}

	checklists := new(MockChecklistRepository)
	checklists.On("FindChecklistByID", mock.Anything, uint(10)).Return(checklist, nil)
	checklists.On("DeleteItem", mock.Anything, uint(10), uint(4)).Return(nil)

	svc := newTestChecklistService(checklists, new(MockUserRepository))

	require.NoError(t, svc.RemoveItem(context.Background(), 10, 4, admin))
}

func TestDeleteChecklistOnlyCreatorOrAdmin(t *testing.T) {
	creator := testUser(1, models.RoleMember)
	other := testUser(2, models.RoleMember)
	checklist := &models.Checklist{
		Model:       models.Model{ID: 10},
		CreatedByID: creator.ID,
		Team:        []*models.User{creator, other},
	}

	checklists := new(MockChecklistRepository)
	checklists.On("FindChecklistByID", mock.Anything, uint(10)).Return(checklist, nil)
	checklists.On("DeleteChecklist", mock.Anything, uint(10)).Return(nil)

	svc := newTestChecklistService(checklists, new(MockUserRepository))

	require.ErrorIs(t, svc.Delete(context.Background(), 10, other), ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), 10, creator))
}

func TestAddCollaboratorUnknownEmail(t *testing.T) {
	creator := testUser(1, models.RoleMember)
	checklist := &models.Checklist{
		Model:       models.Model{ID: 10},
		CreatedByID: creator.ID,
		Team:        []*models.User{creator},
	}

	checklists := new(MockChecklistRepository)
	checklists.On("FindChecklistByID", mock.Anything, uint(10)).Return(checklist, nil)

	users := new(MockUserRepository)
	users.On("FindUserByEmail", mock.Anything, "ghost@packpal.io").Return(nil, repository.ErrNotFound)

	svc := newTestChecklistService(checklists, users)

	_, err := svc.AddCollaborator(context.Background(), 10, "Ghost@Packpal.io", creator)
	require.ErrorIs(t, err, ErrUnknownEmail)
}

func TestGetChecklistNotFound(t *testing.T) {
	checklists := new(MockChecklistRepository)
	checklists.On("FindChecklistByID", mock.Anything, uint(99)).Return(nil, repository.ErrNotFound)

	svc := newTestChecklistService(checklists, new(MockUserRepository))

	_, err := svc.Get(context.Background(), 99, testUser(1, models.RoleMember))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSummaryRecomputedPerRead(t *testing.T) {
	creator := testUser(1, models.RoleMember)
	checklist := &models.Checklist{
		Model:       models.Model{ID: 10},
		CreatedByID: creator.ID,
		Team:        []*models.User{creator},
		Items: []models.ChecklistItem{
			{Text: "Boxes", Category: "Packing", Status: models.ItemStatusPacked},
			{Text: "Tape", Category: "Packing", Status: models.ItemStatusToPack},
			{Text: "Labels", Category: "Office", Status: models.ItemStatusDelivered},
			{Text: "Bubble wrap", Category: "Packing", Status: models.ItemStatusToPack},
		},
	}

	checklists := new(MockChecklistRepository)
	checklists.On("FindChecklistByID", mock.Anything, uint(10)).Return(checklist, nil)

	svc := newTestChecklistService(checklists, new(MockUserRepository))

	view, err := svc.Get(context.Background(), 10, creator)
	require.NoError(t, err)
	require.Equal(t, 4, view.Summary.ItemsTotal)
	require.Equal(t, 1, view.Summary.ItemsPacked)
	require.Equal(t, 1, view.Summary.ItemsDelivered)
	require.Equal(t, 50, view.Summary.Progress)
	require.Equal(t, map[string]int{"Packing": 3, "Office": 1}, view.Summary.Categories)
}
