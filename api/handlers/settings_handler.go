package handlers

import (
	"net/http"

	"example.com/packpal/api/middleware"
	"example.com/packpal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SettingsHandler handles global sustainability settings requests
type SettingsHandler struct {
	settings service.SettingsService
	log      *logrus.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings service.SettingsService, log *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		log:      log,
	}
}

// Get handles GET /api/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// Update handles PUT /api/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	actor, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req service.SettingsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	settings, err := h.settings.Update(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
