package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fittrackapp/fittrack-api/internal/config"
	"github.com/fittrackapp/fittrack-api/internal/handler"
	"github.com/fittrackapp/fittrack-api/internal/middleware"
	"github.com/fittrackapp/fittrack-api/internal/model"
	"github.com/fittrackapp/fittrack-api/internal/repository"
	"github.com/fittrackapp/fittrack-api/internal/service"
	"github.com/fittrackapp/fittrack-api/migrations"
	"github.com/fittrackapp/fittrack-api/pkg/auth"
)

// @title           FitTrack API
// @version         1.0
// @description     Fitness tracking API: daily steps, workout log and communities with Go, Gin and PostgreSQL.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      api.localhost
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// ==================== Load Config ====================
	cfg := config.Load()
	log.Printf("🚀 Starting FitTrack API Server [env=%s]", cfg.App.Env)

	// ==================== Database (PostgreSQL) ====================
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.App.Env == "production" {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger: gormLogger,
		// Unique violations surface as gorm.ErrDuplicatedKey so the
		// services can recover from insert races.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	log.Println("✅ Connected to PostgreSQL")

	// ==================== Run Migrations ====================
	dbURL := cfg.DB.URL()
	if err := migrations.Run(dbURL); err != nil {
		log.Printf("⚠️  Migration warning: %v", err)
		log.Println("📦 Falling back to GORM AutoMigrate...")
		if err := db.AutoMigrate(
			&model.User{},
			&model.DailyStepRecord{},
			&model.WorkoutLogEntry{},
			&model.Community{},
			&model.CommunityMember{},
			&model.CommunityMessage{},
		); err != nil {
			log.Fatalf("❌ Failed to migrate database: %v", err)
		}
	}
	log.Println("✅ Database migrated successfully")

	// ==================== Redis ====================
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}
	log.Println("✅ Connected to Redis")

	// ==================== Initialize Layers ====================
	// JWT Manager
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	stepsRepo := repository.NewStepsRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	msgRepo := repository.NewMessageRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager, rdb, cfg.Google.ClientID)
	stepsService := service.NewStepsService(stepsRepo, cfg.Steps.TZOffsetMinutes)
	workoutService := service.NewWorkoutService(workoutRepo)
	communityService := service.NewCommunityService(communityRepo, msgRepo, userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	stepsHandler := handler.NewStepsHandler(stepsService)
	workoutHandler := handler.NewWorkoutHandler(workoutService)
	communityHandler := handler.NewCommunityHandler(communityService)

	// ==================== Gin Router ====================
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Serve swagger.json at /docs/swagger.json to avoid conflict with /swagger/* wildcard
	router.StaticFile("/docs/swagger.json", "./docs/swagger.json")

	url := ginSwagger.URL("/docs/swagger.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, url))

	// Global middleware
	router.Use(middleware.CORSMiddleware(cfg.CORS.Origins))

	// ==================== API Routes ====================
	api := router.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"service": "fittrack-api",
				"time":    time.Now().Format(time.RFC3339),
			})
		})

		// Auth routes (public)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/signin", authHandler.Signin)
			authGroup.POST("/google", authHandler.GoogleSignin)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtManager, rdb))
		{
			// Auth
			protected.POST("/auth/logout", authHandler.Logout)
			protected.GET("/auth/profile", authHandler.GetProfile)

			// Steps
			protected.POST("/steps", stepsHandler.RecordSteps)
			protected.GET("/steps/history", stepsHandler.GetHistory)
			protected.GET("/steps/today", stepsHandler.GetToday)

			// Workouts
			protected.POST("/workouts", workoutHandler.LogWorkout)
			protected.GET("/workouts", workoutHandler.ListWorkouts)

			// Communities
			protected.POST("/community/create", communityHandler.CreateCommunity)
			protected.GET("/community/list", communityHandler.ListPublic)
			protected.GET("/community/my-communities", communityHandler.ListMine)
			protected.POST("/community/:id/join", communityHandler.JoinPublic)
			protected.POST("/community/join-with-code", communityHandler.JoinWithCode)
			protected.POST("/community/leave", communityHandler.Leave)
			protected.DELETE("/community/delete/:id", communityHandler.Delete)
			protected.POST("/community/transfer-owner", communityHandler.TransferOwner)

			// Community messages
			protected.POST("/community/messages", communityHandler.PostMessage)
			protected.GET("/community/messages", communityHandler.ListMessages)
		}
	}

	// ==================== Start Server ====================
	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	log.Printf("🌐 FitTrack API running on http://0.0.0.0:%s", cfg.App.Port)
	log.Printf("📋 API docs: http://0.0.0.0:%s/swagger/index.html", cfg.App.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	// Give ongoing requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server exited gracefully")
}
