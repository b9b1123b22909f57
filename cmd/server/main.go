package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/rueidis"
	"github.com/todoapp/todo-api/internal/cache"
	"github.com/todoapp/todo-api/internal/config"
	"github.com/todoapp/todo-api/internal/constants"
	"github.com/todoapp/todo-api/internal/database"
	"github.com/todoapp/todo-api/internal/handlers"
	"github.com/todoapp/todo-api/internal/middleware"
	"github.com/todoapp/todo-api/internal/models"
	"github.com/todoapp/todo-api/internal/repository"
	"github.com/todoapp/todo-api/internal/security"
	"github.com/todoapp/todo-api/internal/services"
)

func main() {
	// Load .env if present, then configuration from the environment
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
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

	// Build the named caches
	cacheCfg := cache.DefaultConfig(cfg.CacheTTL)
	var store cache.Store
	switch cfg.CacheBackend {
	case "redis":
		redisClient, err := rueidis.NewClient(rueidis.ClientOption{
			InitAddress: []string{cfg.RedisAddr()},
		})
		if err != nil {
			log.Fatalf("Failed to create redis client: %v", err)
		}
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient, cacheCfg)
	default:
		store = cache.NewMemoryStore(cacheCfg)
	}

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	hasher := security.NewBcryptHasher()
	taskService := services.NewTaskService(taskRepo, store)
	userService := services.NewUserService(db, userRepo, taskService, store, hasher)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, hasher)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	sessionStore, err := redisStore.NewStore(
		10,              // Redis pool size
		"tcp",           // network type
		cfg.RedisAddr(), // Redis address from config
		"",              // username (empty for default user)
		"",              // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "ToDo API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("", middleware.RequireRole(models.RoleAdmin), userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", middleware.RequireRole(models.RoleAdmin), taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.DELETE("", middleware.RequireRole(models.RoleAdmin), taskHandler.DeleteAllTasks)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
