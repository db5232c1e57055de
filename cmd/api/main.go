package main

import (
	"fmt"
	"net/http"
	"os"

	"assetdesk/internal/config"
	"assetdesk/internal/database"
	"assetdesk/internal/handlers"
	"assetdesk/internal/logger"
	"assetdesk/internal/metrics"
	"assetdesk/internal/middleware"
	"assetdesk/internal/models"
	"assetdesk/internal/services"
	"assetdesk/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "assetdesk/internal/docs" // Import swagger docs
)

// @title           AssetDesk API
// @version         1.0
// @description     AssetDesk tracks physical IT equipment through acquisition, assignment, return, and retirement, with a durable audit trail.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()
	metrics.Init()

	// Services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	employeeService := services.NewEmployeeService(db)
	assetService := services.NewAssetService(db, auditService)
	assignmentService := services.NewAssignmentService(db, assetService, employeeService, auditService)
	reportService := services.NewReportService(db, auditService)

	// Handlers
	authHandler := handlers.NewAuthHandler(employeeService)
	assetHandler := handlers.NewAssetHandler(assetService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	reportHandler := handlers.NewReportHandler(auditService, reportService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check and metrics
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/me/assets", assignmentHandler.MyAssets)

	manage := protected.Group("/")
	manage.Use(middleware.RequireRole(models.RoleAdmin, models.RoleITAdmin))

	employees := manage.Group("/employees")
	employees.POST("", authHandler.CreateEmployee)

	assets := manage.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.ListAssets)
	assets.GET("/admin/summary", assetHandler.Summary)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.PATCH("/:id", assetHandler.UpdateAsset)

	assignments := manage.Group("/assignments")
	assignments.POST("", assignmentHandler.Assign)
	assignments.GET("", assignmentHandler.ListAssignments)
	assignments.POST("/:id/return", assignmentHandler.Return)
	assignments.PATCH("/:id", assignmentHandler.AmendReturn)
	assignments.GET("/admin/logs", reportHandler.AdminLogs)
	assignments.GET("/admin/logs.csv", reportHandler.AdminLogsCSV)
	assignments.GET("/admin/retired", reportHandler.RetiredAssets)
	assignments.GET("/admin/monthly", reportHandler.MonthlyReport)

	log.Infof("Starting AssetDesk backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
