package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"example.com/packpal/api/middleware"
	"example.com/packpal/internal/models"
	"example.com/packpal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHandler handles profile and account administration requests
type UserHandler struct {
	auth service.AuthService
	log  *logrus.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(auth service.AuthService, log *logrus.Logger) *UserHandler {
	return &UserHandler{
		auth: auth,
		log:  log,
	}
}

// GetProfile handles GET /api/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req service.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	updated, err := h.auth.UpdateProfile(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ChangePasswordRequest is the payload for rotating a password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// ChangePassword handles PUT /api/users/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// UpdateSettings handles PUT /api/users/settings/:section
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var values json.RawMessage
	if err := c.ShouldBindJSON(&values); err != nil {
		respondBadRequest(c, err)
		return
	}

	section := c.Param("section")
	updated, err := h.auth.UpdateUserSettings(c.Request.Context(), user.ID, section, values)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"section": section, "settings": updated})
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	users, err := h.auth.ListUsers(c.Request.Context(), actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateRoleRequest is the payload for changing a user's role
type UpdateRoleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

// UpdateRole handles PUT /api/users/:id/role
func (h *UserHandler) UpdateRole(c *gin.Context) {
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

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	updated, err := h.auth.UpdateUserRole(c.Request.Context(), actor, userID, req.Role)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// parseUintParam reads a numeric URL parameter
func parseUintParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
