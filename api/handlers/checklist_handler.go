package handlers

import (
	"net/http"

	"example.com/packpal/api/middleware"
	"example.com/packpal/internal/models"
	"example.com/packpal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ChecklistHandler handles packing checklist requests
type ChecklistHandler struct {
	checklists service.ChecklistService
	log        *logrus.Logger
}

// NewChecklistHandler creates a new checklist handler
func NewChecklistHandler(checklists service.ChecklistService, log *logrus.Logger) *ChecklistHandler {
	return &ChecklistHandler{
		checklists: checklists,
		log:        log,
	}
}

// CreateChecklistRequest is the payload for creating a checklist
type CreateChecklistRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create handles POST /api/checklists
func (h *ChecklistHandler) Create(c *gin.Context) {
	actor, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	checklist, err := h.checklists.Create(c.Request.Context(), req.Name, actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, checklist)
}

// List handles GET /api/checklists
func (h *ChecklistHandler) List(c *gin.Context) {
	actor, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	views, err := h.checklists.ListFor(c.Request.Context(), actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// Get handles GET /api/checklists/:id
func (h *ChecklistHandler) Get(c *gin.Context) {
	actor, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	view, err := h.checklists.Get(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /api/checklists/:id
func (h *ChecklistHandler) Delete(c *gin.Context) {
	actor, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.checklists.Delete(c.Request.Context(), id, actor); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Checklist deleted"})
}

// AddItem handles POST /api/checklists/:id/items
func (h *ChecklistHandler) AddItem(c *gin.Context) {
	actor, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	var req service.ItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.checklists.AddItem(c.Request.Context(), id, req, actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// UpdateItemStatusRequest is the payload for moving an item between states
type UpdateItemStatusRequest struct {
	Status models.ItemStatus `json:"status" binding:"required"`
}

// UpdateItemStatus handles PATCH /api/checklists/:id/items/:itemId/status
func (h *ChecklistHandler) UpdateItemStatus(c *gin.Context) {
	actor, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	var req UpdateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	item, err := h.checklists.UpdateItemStatus(c.Request.Context(), id, itemID, req.Status, actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// RemoveItem handles DELETE /api/checklists/:id/items/:itemId
func (h *ChecklistHandler) RemoveItem(c *gin.Context) {
	actor, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.checklists.RemoveItem(c.Request.Context(), id, itemID, actor); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

// AddCollaboratorRequest is the payload for inviting a team member
type AddCollaboratorRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AddCollaborator handles POST /api/checklists/:id/team
func (h *ChecklistHandler) AddCollaborator(c *gin.Context) {
	actor, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	var req AddCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := h.checklists.AddCollaborator(c.Request.Context(), id, req.Email, actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
