package routes

import (
	"log"

	"facility-cleaning-backend/internal/api/handlers"
	"facility-cleaning-backend/internal/api/middleware"
	"facility-cleaning-backend/internal/config"
	"facility-cleaning-backend/internal/repository"
	"facility-cleaning-backend/internal/scheduler"
	"facility-cleaning-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize the facility clock
	loc, err := cfg.Location()
	if err != nil {
		log.Printf("Warning: invalid facility timezone, falling back to UTC: %v", err)
		loc = nil
	}
	clock := scheduler.NewFacilityClock(loc)

	// Initialize services
	notifier := service.NewNotificationService(repository.NewNotificationRepository(db))
	workOrderService := service.NewWorkOrderService(db, validator, clock, notifier, cfg.TaskInsertBatchSize)
	taskService := service.NewTaskService(db, clock)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	workOrderHandler := handlers.NewWorkOrderHandler(workOrderService, taskService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Work order routes
		workOrders := v1.Group("/work-orders")
		{
			workOrders.POST("", workOrderHandler.CreateWorkOrder)
			workOrders.DELETE("/reset", workOrderHandler.Reset)
			workOrders.GET("/:id", workOrderHandler.GetWorkOrder)
			workOrders.PATCH("/:id/schedule", workOrderHandler.UpdateSchedule)
			workOrders.PUT("/:id/staff", workOrderHandler.AssignStaff)
			workOrders.PUT("/:id/active", workOrderHandler.SetActive)
			workOrders.PUT("/:id/override", workOrderHandler.SetOverridePermission)
			workOrders.GET("/:id/tasks", workOrderHandler.ListTasks)
		}

		// Cleaning task routes
		tasks := v1.Group("/tasks")
		{
			tasks.GET("/:id/status", taskHandler.GetStatus)
			tasks.PUT("/:id/clean", taskHandler.MarkCleaned)
			tasks.PUT("/:id/approve", taskHandler.Approve)
		}
	}

	// Catch-all route for undefined endpoints
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":      "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("request_id"),
		})
	})

	return router
}

// SetupHealthRoutes sets up only health check routes (useful for testing)
func SetupHealthRoutes(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	return router
}
