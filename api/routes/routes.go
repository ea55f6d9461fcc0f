package routes

import (
	"example.com/packpal/api/handlers"
	"example.com/packpal/api/middleware"
	"example.com/packpal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Services bundles everything the route table needs.
type Services struct {
	Auth          service.AuthService
	Checklists    service.ChecklistService
	Announcements service.AnnouncementService
	Packages      service.PackageService
	Settings      service.SettingsService
}

// SetupRoutes sets up all the routes for the server
func SetupRoutes(r *gin.Engine, svc Services, log *logrus.Logger) {
	// Health check
	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")
	api.GET("/status", handlers.HealthCheck)

	authed := api.Group("")
	authed.Use(middleware.JWTAuth(svc.Auth, log))

	// User and account routes
	authHandler := handlers.NewAuthHandler(svc.Auth, log)
	userHandler := handlers.NewUserHandler(svc.Auth, log)
	users := api.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
	}
	usersAuthed := authed.Group("/users")
	{
		usersAuthed.GET("", middleware.RequireAdmin(), userHandler.ListUsers)
		usersAuthed.GET("/me", userHandler.GetProfile)
		usersAuthed.GET("/profile", userHandler.GetProfile)
		usersAuthed.PUT("/profile", userHandler.UpdateProfile)
		usersAuthed.PUT("/password", userHandler.ChangePassword)
		usersAuthed.PUT("/settings/:section", userHandler.UpdateSettings)
		usersAuthed.PUT("/:id/role", middleware.RequireAdmin(), userHandler.UpdateRole)
	}

	// Checklist routes
	checklistHandler := handlers.NewChecklistHandler(svc.Checklists, log)
	checklists := authed.Group("/checklists")
	{
		checklists.POST("", checklistHandler.Create)
		checklists.GET("", checklistHandler.List)
		checklists.GET("/:id", checklistHandler.Get)
		checklists.DELETE("/:id", checklistHandler.Delete)
		checklists.POST("/:id/items", checklistHandler.AddItem)
		checklists.PATCH("/:id/items/:itemId/status", checklistHandler.UpdateItemStatus)
		checklists.DELETE("/:id/items/:itemId", checklistHandler.RemoveItem)
		checklists.POST("/:id/team", checklistHandler.AddCollaborator)
	}

	// Announcement routes
	announcementHandler := handlers.NewAnnouncementHandler(svc.Announcements, log)
	announcements := authed.Group("/announcements")
	{
		announcements.GET("", announcementHandler.List)
		announcements.GET("/:id", announcementHandler.Get)
		announcements.POST("", announcementHandler.Create)
		announcements.DELETE("/:id", announcementHandler.Delete)
		announcements.POST("/:id/read", announcementHandler.MarkRead)
		announcements.GET("/:id/read", announcementHandler.ListReadBy)
		announcements.POST("/:id/react", announcementHandler.React)
	}
	usersAuthed.GET("/:id/announcements/read", announcementHandler.ReadHistory)

	// Package routes
	packageHandler := handlers.NewPackageHandler(svc.Packages, log)
	packages := authed.Group("/packages")
	{
		packages.POST("", packageHandler.Create)
		packages.GET("", packageHandler.List)
		packages.GET("/:id", packageHandler.Get)
		packages.PUT("/:id", packageHandler.Update)
		packages.DELETE("/:id", packageHandler.Delete)
	}

	// Global settings routes
	settingsHandler := handlers.NewSettingsHandler(svc.Settings, log)
	settings := authed.Group("/settings")
	{
		settings.GET("", settingsHandler.Get)
		settings.PUT("", settingsHandler.Update)
	}
}
