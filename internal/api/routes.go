package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"gamecraft/internal/api/middleware"
	"gamecraft/internal/auth"
	"gamecraft/internal/config"
	"gamecraft/internal/notify"
	"gamecraft/internal/storage"
)

// RegisterRoutes wires every handler into the engine.
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	authService *auth.Service,
	redisClient *redis.Client,
	storageClient *storage.Client,
) {
	notifyService := notify.NewService(db)

	authHandler := NewAuthHandler(authService, cfg.API.FrontendURL)
	jobHandler := NewJobHandler(db)
	applicationHandler := NewApplicationHandler(db, notifyService, storageClient)
	notificationHandler := NewNotificationHandler(notifyService)
	companyHandler := NewCompanyHandler(db)
	skillHandler := NewSkillHandler(db)
	adminHandler := NewAdminHandler(db, authService, notifyService)
	analyticsHandler := NewAnalyticsHandler(db)
	healthHandler := NewHealthHandler(db, redisClient)

	authRequired := middleware.AuthMiddleware(authService)
	adminRequired := middleware.AdminMiddleware(authService)

	authGroup := router.Group("/auth/kakao")
	{
		authGroup.GET("/login-url", authHandler.LoginURL)
		authGroup.GET("/callback", authHandler.Callback)
		authGroup.GET("/user-info", authRequired, authHandler.UserInfo)
		authGroup.POST("/logout", authRequired, authHandler.Logout)
	}

	positions := router.Group("/positions")
	{
		positions.GET("", jobHandler.List)
		positions.GET("/popular", jobHandler.Popular)
		positions.GET("/recent", jobHandler.Recent)
		positions.GET("/deadline-soon", jobHandler.DeadlineSoon)
		positions.GET("/filter-options", jobHandler.FilterOptions)
		positions.GET("/stats", jobHandler.Stats)
		positions.GET("/slug/:slug", jobHandler.GetBySlug)
		positions.GET("/:id", jobHandler.Get)
	}

	application := router.Group("/application")
	{
		application.GET("/form-info", applicationHandler.FormInfo)
		application.POST("/create", authRequired, applicationHandler.Create)
		application.GET("/my-list", authRequired, applicationHandler.MyList)
		application.POST("/:id/files", authRequired, applicationHandler.UploadFile)
		application.GET("/:id/files", authRequired, applicationHandler.FileURL)
	}

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/health", healthHandler.Check)

		notifications := apiGroup.Group("/notifications")
		notifications.Use(authRequired)
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/unread", notificationHandler.Unread)
			notifications.PUT("/read-all", notificationHandler.MarkAllRead)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.Delete)
		}

		companies := apiGroup.Group("/companies")
		{
			companies.GET("", companyHandler.List)
			companies.GET("/with-jobs", companyHandler.WithActiveJobs)
			companies.GET("/:id", companyHandler.Get)
		}

		skills := apiGroup.Group("/skills")
		{
			skills.GET("", skillHandler.List)
			skills.GET("/category/:category", skillHandler.ByCategory)
			skills.GET("/popular", skillHandler.Popular)
			skills.GET("/search", skillHandler.Search)
		}
	}

	admin := router.Group("/admin")
	admin.Use(authRequired)
	{
		admin.POST("/promote-to-admin", adminHandler.PromoteToAdmin)

		gated := admin.Group("")
		gated.Use(adminRequired)
		{
			gated.GET("/dashboard", adminHandler.Dashboard)
			gated.GET("/applications", adminHandler.ListApplications)
			gated.GET("/applications/:id", adminHandler.GetApplication)
			gated.PUT("/applications/:id/status", adminHandler.SetStatus)
			gated.POST("/applications/:id/transition", adminHandler.Transition)
			gated.DELETE("/notifications/cleanup", adminHandler.CleanupNotifications)
			gated.GET("/analytics/dashboard", analyticsHandler.Dashboard)
			gated.GET("/analytics/download/excel", analyticsHandler.DownloadExcel)
		}
	}
}
