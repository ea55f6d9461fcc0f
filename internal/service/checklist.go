package service

import (
	"context"
	"strings"
	"time"

	"example.com/packpal/internal/models"
	"example.com/packpal/internal/repository"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ItemInput carries the fields for a new checklist item. Category and
// status fall back to their defaults when empty.
type ItemInput struct {
	Text     string            `json:"text"`
	Category string            `json:"category"`
	Status   models.ItemStatus `json:"status"`
}

// AddItemResult pairs a created item with the duplicate advisory.
// A duplicate is allow-but-warn: the item is inserted either way.
type AddItemResult struct {
	Item      *models.ChecklistItem `json:"item"`
	Duplicate bool                  `json:"duplicate"`
}

// ChecklistView is a checklist together with its derived summary.
type ChecklistView struct {
	*models.Checklist
	Summary models.ChecklistSummary `json:"summary"`
}

// ChecklistService owns checklists, their items and team membership.
type ChecklistService interface {
	Create(ctx context.Context, name string, actor *models.User) (*models.Checklist, error)
	Get(ctx context.Context, checklistID uint, actor *models.User) (*ChecklistView, error)
	ListFor(ctx context.Context, actor *models.User) ([]*ChecklistView, error)
	Delete(ctx context.Context, checklistID uint, actor *models.User) error
	AddItem(ctx context.Context, checklistID uint, input ItemInput, actor *models.User) (*AddItemResult, error)
	UpdateItemStatus(ctx context.Context, checklistID, itemID uint, status models.ItemStatus, actor *models.User) (*models.ChecklistItem, error)
	RemoveItem(ctx context.Context, checklistID, itemID uint, actor *models.User) error
	AddCollaborator(ctx context.Context, checklistID uint, email string, actor *models.User) (*models.User, error)
}

type checklistService struct {
	checklists repository.ChecklistRepository
	users      repository.UserRepository
	log        *logrus.Logger
}

// NewChecklistService creates a new checklist service instance
func NewChecklistService(checklists repository.ChecklistRepository, users repository.UserRepository, log *logrus.Logger) ChecklistService {
	return &checklistService{
		checklists: checklists,
		users:      users,
		log:        log,
	}
}

func (s *checklistService) Create(ctx context.Context, name string, actor *models.User) (*models.Checklist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Wrap(ErrValidation, "checklist name is required")
	}

	checklist := &models.Checklist{
		Name:        name,
		CreatedByID: actor.ID,
		Items:       []models.ChecklistItem{},
		Team:        []*models.User{actor},
	}

	if err := s.checklists.CreateChecklist(ctx, checklist); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"checklist_id": checklist.ID, "user_id": actor.ID}).Info("Checklist created")

	return checklist, nil
}

func (s *checklistService) Get(ctx context.Context, checklistID uint, actor *models.User) (*ChecklistView, error) {
	checklist, err := s.findChecklist(ctx, checklistID)
	if err != nil {
		return nil, err
	}

	if !checklist.IsMember(actor.ID) && !actor.Role.AdminCapable() {
		return nil, ErrForbidden
	}

	return &ChecklistView{Checklist: checklist, Summary: summarize(checklist.Items)}, nil
}

func (s *checklistService) ListFor(ctx context.Context, actor *models.User) ([]*ChecklistView, error) {
	checklists, err := s.checklists.ListChecklistsForUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	views := make([]*ChecklistView, 0, len(checklists))
	for _, c := range checklists {
		views = append(views, &ChecklistView{Checklist: c, Summary: summarize(c.Items)})
	}
	return views, nil
}

func (s *checklistService) Delete(ctx context.Context, checklistID uint, actor *models.User) error {
	checklist, err := s.findChecklist(ctx, checklistID)
	if err != nil {
		return err
	}

	// Only the creator or an admin-capable principal may delete
	if checklist.CreatedByID != actor.ID && !actor.Role.AdminCapable() {
		return ErrForbidden
	}

	return s.checklists.DeleteChecklist(ctx, checklistID)
}

func (s *checklistService) AddItem(ctx context.Context, checklistID uint, input ItemInput, actor *models.User) (*AddItemResult, error) {
	input.Text = strings.TrimSpace(input.Text)
	if input.Text == "" {
		return nil, errors.Wrap(ErrValidation, "item text is required")
	}
	if input.Category == "" {
		input.Category = "General"
	}
	if input.Status == "" {
		input.Status = models.ItemStatusToPack
	}
	if !models.ValidItemStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	checklist, err := s.findChecklist(ctx, checklistID)
	if err != nil {
		return nil, err
	}

	if err := s.requireEdit(checklist, actor); err != nil {
		return nil, err
	}

	duplicate := Duplicate(checklist.Items, input.Text)

	item := &models.ChecklistItem{
		ChecklistID: checklistID,
		Text:        input.Text,
		Category:    input.Category,
		Status:      input.Status,
		CreatedByID: actor.ID,
	}

	if err := s.checklists.AddItem(ctx, item); err != nil {
		return nil, err
	}

	if duplicate {
		s.log.WithFields(logrus.Fields{
			"checklist_id": checklistID,
			"item":         input.Text,
		}).Info("Duplicate item added")
	}

	return &AddItemResult{Item: item, Duplicate: duplicate}, nil
}

func (s *checklistService) UpdateItemStatus(ctx context.Context, checklistID, itemID uint, status models.ItemStatus, actor *models.User) (*models.ChecklistItem, error) {
	if !models.ValidItemStatus(status) {
		return nil, ErrInvalidStatus
	}

	checklist, err := s.findChecklist(ctx, checklistID)
	if err != nil {
		return nil, err
	}

	if err := s.requireEdit(checklist, actor); err != nil {
		return nil, err
	}

	item, err := s.checklists.FindItem(ctx, checklistID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// No transition graph: any state is reachable from any state
	item.Status = status
	item.UpdatedAt = time.Now()

	if err := s.checklists.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *checklistService) RemoveItem(ctx context.Context, checklistID, itemID uint, actor *models.User) error {
	checklist, err := s.findChecklist(ctx, checklistID)
	if err != nil {
		return err
	}

	if !models.Resolve(actor.Role).CanDeleteItems {
		return ErrForbidden
	}
	if !checklist.IsMember(actor.ID) && !actor.Role.AdminCapable() {
		return ErrForbidden
	}

	if err := s.checklists.DeleteItem(ctx, checklistID, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

func (s *checklistService) AddCollaborator(ctx context.Context, checklistID uint, email string, actor *models.User) (*models.User, error) {
	checklist, err := s.findChecklist(ctx, checklistID)
	if err != nil {
		return nil, err
	}

	if !models.Resolve(actor.Role).CanInviteMembers && checklist.CreatedByID != actor.ID {
		return nil, ErrForbidden
	}

	user, err := s.users.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, err
	}

	// Adding an existing member again is a no-op, not an error
	if err := s.checklists.AddTeamMember(ctx, checklist, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *checklistService) findChecklist(ctx context.Context, id uint) (*models.Checklist, error) {
	checklist, err := s.checklists.FindChecklistByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return checklist, nil
}

// requireEdit checks that the actor may mutate items on the checklist:
// a creator or team member whose current role carries edit capability.
func (s *checklistService) requireEdit(checklist *models.Checklist, actor *models.User) error {
	if !checklist.IsMember(actor.ID) && !actor.Role.AdminCapable() {
		return ErrForbidden
	}
	if !models.Resolve(actor.Role).CanEditPackages {
		return ErrForbidden
	}
	return nil
}

// summarize computes the derived view over a checklist's items. It is
// recomputed on every read; nothing is cached.
func summarize(items []models.ChecklistItem) models.ChecklistSummary {
	summary := models.ChecklistSummary{Categories: map[string]int{}}
	for _, item := range items {
		summary.ItemsTotal++
		summary.Categories[item.Category]++
		switch item.Status {
		case models.ItemStatusPacked:
			summary.ItemsPacked++
		case models.ItemStatusDelivered:
			summary.ItemsDelivered++
		}
	}
	if summary.ItemsTotal > 0 {
		done := summary.ItemsPacked + summary.ItemsDelivered
		summary.Progress = done * 100 / summary.ItemsTotal
	}
	return summary
}
