// Package routes handles the setup and configuration of API routes
package routes

import (
	"database/sql"

	_ "facultyauth/docs" // Import swagger docs
	"facultyauth/internal/api/handlers"
	"facultyauth/internal/api/middleware"
	"facultyauth/internal/auth"
	"facultyauth/internal/config"
	"facultyauth/internal/registration"
	"facultyauth/internal/repository/postgres"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// SetupRoutes configures all API routes and their handlers
func SetupRoutes(cfg *config.Config, db *sql.DB, hasher auth.Hasher, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))

	// Initialize repositories
	accountRepo := postgres.NewAccountRepository(db)
	attemptRepo := postgres.NewLoginAttemptRepository(db)

	// Initialize services
	authService := auth.NewService(accountRepo, attemptRepo, hasher, log, cfg.Auth.StoreTimeout)
	regService := registration.NewService(accountRepo, hasher, log, cfg.Auth.StoreTimeout)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	regHandler := handlers.NewRegistrationHandler(regService)
	approvalHandler := handlers.NewApprovalHandler(regService, accountRepo)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.GET("/health", healthHandler.Health)
			authGroup.POST("/login", authHandler.Login)
		}

		faculty := api.Group("/faculty")
		{
			faculty.POST("/register", regHandler.Register)
			faculty.GET("/check-username", regHandler.CheckUsername)
			faculty.GET("/check-email", regHandler.CheckEmail)
			faculty.GET("", approvalHandler.List)
			faculty.PATCH("/:id/status", approvalHandler.SetStatus)
			faculty.PATCH("/:id/activation", approvalHandler.SetActivation)
		}
	}

	return r
}
