package handlers

import (
	"net/http"

	"example.com/packpal/api/middleware"
	"example.com/packpal/internal/models"
	"example.com/packpal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AnnouncementHandler handles announcement board requests
type AnnouncementHandler struct {
	announcements service.AnnouncementService
	log           *logrus.Logger
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(announcements service.AnnouncementService, log *logrus.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcements: announcements,
		log:           log,
	}
}

// List handles GET /api/announcements
func (h *AnnouncementHandler) List(c *gin.Context) {
	announcements, err := h.announcements.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, announcements)
}

// Get handles GET /api/announcements/:id
func (h *AnnouncementHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	announcement, err := h.announcements.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, announcement)
}

// CreateAnnouncementRequest is the payload for posting an announcement
type CreateAnnouncementRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Create handles POST /api/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	actor, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	announcement, err := h.announcements.Create(c.Request.Context(), req.Title, req.Message, actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, announcement)
}

// Delete handles DELETE /api/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
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

	if err := h.announcements.Delete(c.Request.Context(), id, actor); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}

// MarkRead handles POST /api/announcements/:id/read
func (h *AnnouncementHandler) MarkRead(c *gin.Context) {
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

	if err := h.announcements.MarkRead(c.Request.Context(), id, actor); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}

// ReactRequest is the payload for reacting to an announcement
type ReactRequest struct {
	Reaction models.ReactionType `json:"reaction" binding:"required"`
}

// React handles POST /api/announcements/:id/react
func (h *AnnouncementHandler) React(c *gin.Context) {
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

	var req ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	counters, err := h.announcements.React(c.Request.Context(), id, req.Reaction, actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, counters)
}

// ListReadBy handles GET /api/announcements/:id/read
func (h *AnnouncementHandler) ListReadBy(c *gin.Context) {
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

	users, err := h.announcements.ListReadBy(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// ReadHistory handles GET /api/users/:id/announcements/read
func (h *AnnouncementHandler) ReadHistory(c *gin.Context) {
	actor, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	userID, err := parseUintParam(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	announcements, err := h.announcements.ReadHistory(c.Request.Context(), userID, actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, announcements)
}
