package handlers

import (
	"net/http"

	"example.com/packpal/api/middleware"
	"example.com/packpal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PackageHandler handles shipment ledger requests
type PackageHandler struct {
	packages service.PackageService
	log      *logrus.Logger
}

// NewPackageHandler creates a new package handler
func NewPackageHandler(packages service.PackageService, log *logrus.Logger) *PackageHandler {
	return &PackageHandler{
		packages: packages,
		log:      log,
	}
}

// Create handles POST /api/packages
func (h *PackageHandler) Create(c *gin.Context) {
	actor, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req service.PackageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	pkg, err := h.packages.Create(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

// List handles GET /api/packages. Admin-capable users see every
// package, everyone else sees their own.
func (h *PackageHandler) List(c *gin.Context) {
	actor, err := middleware.GetUserFromContext(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if actor.Role.AdminCapable() {
		packages, err := h.packages.ListAll(c.Request.Context(), actor)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, packages)
		return
	}

	packages, err := h.packages.ListForUser(c.Request.Context(), actor.ID, actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, packages)
}

// Get handles GET /api/packages/:id
func (h *PackageHandler) Get(c *gin.Context) {
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

	pkg, err := h.packages.Get(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// Update handles PUT /api/packages/:id
func (h *PackageHandler) Update(c *gin.Context) {
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

	var req service.PackageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	pkg, err := h.packages.Update(c.Request.Context(), id, req, actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// Delete handles DELETE /api/packages/:id
func (h *PackageHandler) Delete(c *gin.Context) {
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

	if err := h.packages.Delete(c.Request.Context(), id, actor); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Package deleted"})
}
