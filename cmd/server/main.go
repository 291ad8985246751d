package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/clock"
	"taskmanager/internal/config"
	"taskmanager/internal/database"
	"taskmanager/internal/handlers"
	"taskmanager/internal/identity"
	"taskmanager/internal/middleware"
	"taskmanager/internal/repository"
	"taskmanager/internal/services"
)

const (
	adminName     = "Admin"
	adminEmail    = "admin@test.com"
	adminPassword = "Adm1nPasswordd"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Wire stores and services
	identityService := identity.NewService(db, cfg.JWTSecret)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	subtaskRepo := repository.NewSubtaskRepository(db)

	userService := services.NewUserService(userRepo, identityService)
	taskService := services.NewTaskService(taskRepo, userRepo)
	subtaskService := services.NewSubtaskService(taskRepo, subtaskRepo)
	notificationService := services.NewNotificationService(taskRepo, clock.System())

	// Seed the admin account
	if err := ensureAdmin(userService); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, identityService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	subtaskHandler := handlers.NewSubtaskHandler(subtaskService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Management API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
		}

		users := api.Group("/users")
		users.Use(middleware.RequireAuth(identityService))
		{
			// User administration (admin only)
			admin := users.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("", userHandler.ListUsers)
				admin.POST("", userHandler.CreateUser)
				admin.GET("/:id", userHandler.GetUser)
				admin.PUT("/:id", userHandler.UpdateUser)
				admin.DELETE("/:id", userHandler.DeactivateUser)
			}

			// Task routes (ownership checked in the service layer)
			users.GET("/:id/tasks", taskHandler.ListTasks)
			users.POST("/:id/tasks", taskHandler.CreateTask)
			users.GET("/:id/tasks/:task_id", taskHandler.GetTask)
			users.PUT("/:id/tasks/:task_id", taskHandler.UpdateTask)
			users.DELETE("/:id/tasks/:task_id", taskHandler.DeleteTask)

			// Subtask routes
			users.GET("/:id/tasks/:task_id/subtasks", subtaskHandler.ListSubtasks)
			users.POST("/:id/tasks/:task_id/subtasks", subtaskHandler.CreateSubtask)
			users.GET("/:id/tasks/:task_id/subtasks/:subtask_id", subtaskHandler.GetSubtask)
			users.PUT("/:id/tasks/:task_id/subtasks/:subtask_id", subtaskHandler.UpdateSubtask)
			users.DELETE("/:id/tasks/:task_id/subtasks/:subtask_id", subtaskHandler.DeleteSubtask)

			// Notification routes
			users.GET("/:id/notifications", notificationHandler.GetNotifications)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureAdmin creates the admin user on first boot and grants the admin role.
// Both steps are idempotent.
func ensureAdmin(userService *services.UserService) error {
	user, err := userService.GetByEmail(adminEmail)
	if err != nil {
		return err
	}

	if user == nil {
		user, err = userService.Create(services.CreateUserInput{
			Name:     adminName,
			Email:    adminEmail,
			Password: adminPassword,
		})
		if err != nil {
			return err
		}
	}

	return userService.GrantAdminIfNeeded(user.ID)
}
