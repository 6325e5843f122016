package main

import (
	"log"
	"net/http"
	"os"
	"runtime"
	"time"

	"kwikwork/database"
	"kwikwork/internal/cache"
	"kwikwork/internal/controllers"
	"kwikwork/internal/events"
	"kwikwork/internal/repository"
	"kwikwork/internal/services"
	"kwikwork/internal/storage"
	"kwikwork/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found: %v", err)
	}

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	database.MonitorDBConnections()

	userRepo := repository.NewUserRepository(database.DB)
	jobRepo := repository.NewJobRepository(database.DB)
	applicationRepo := repository.NewApplicationRepository(database.DB)
	verificationRepo := repository.NewVerificationRepository(database.DB)
	resetPasswordRepo := repository.NewResetPasswordRepository(database.DB)

	// The action guard, event publisher, and object store are optional
	// collaborators: the API starts without them, minus the features they
	// carry. The database transaction path holds every invariant on its own.
	var actionGuard cache.ActionGuard
	if guard, err := cache.NewRedisActionGuard(); err != nil {
		log.Printf("Warning: action guard disabled, Redis unavailable: %v", err)
	} else {
		actionGuard = guard
		defer guard.Close()
	}

	var publisher events.Publisher
	if p, err := events.NewRabbitPublisher(); err != nil {
		log.Printf("Warning: event publishing disabled, RabbitMQ unavailable: %v", err)
	} else {
		publisher = p
		defer p.Close()
	}

	var store storage.Store
	if s, err := storage.NewClient(); err != nil {
		log.Printf("Warning: profile pictures disabled, object storage unavailable: %v", err)
	} else {
		store = s
	}

	workerCount := runtime.NumCPU()
	if workerCount < 3 {
		workerCount = 3
	}
	notifier := services.NewNotifier(workerCount)
	notifier.Start()
	defer notifier.Stop()

	userController := controllers.NewUserController(userRepo, resetPasswordRepo, verificationRepo, store)
	verificationController := controllers.NewVerificationController(verificationRepo, userRepo)
	jobController := controllers.NewJobController(jobRepo)
	applicationController := controllers.NewApplicationController(applicationRepo, userRepo, actionGuard, publisher, notifier)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "KwikWork API is running",
			"version": "1.0.0",
			"status":  "healthy",
		})
	})

	routes.RegisterUserRoutes(router, userController)
	routes.RegisterVerificationRoutes(router, verificationController)
	routes.RegisterJobRoutes(router, jobController)
	routes.RegisterApplicationRoutes(router, applicationController)

	router.GET("/debug/database", func(c *gin.Context) {
		sqlDB, err := database.DB.DB()
		if err != nil {
			c.JSON(500, gin.H{
				"database_health": false,
				"error":           err.Error(),
			})
			return
		}

		var result int
		row := sqlDB.QueryRowContext(c.Request.Context(), "SELECT 1")
		err = row.Scan(&result)
		c.JSON(200, gin.H{
			"database_health": err == nil && result == 1,
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("KwikWork API Server started successfully on port %s", port)

	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
