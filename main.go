package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()

	// Redis token blacklist is optional; without it logout cannot invalidate
	// tokens early but everything else works.
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		blacklist, err := services.NewTokenBlacklist(redisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		services.TokenBlacklist = blacklist
	} else if os.Getenv("GO_ENV") != "test" {
		log.Println("REDIS_URL not set; token blacklist disabled")
	}
}

func setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())

	// Repositories
	usersRepo := repository.GetUsersRepo(utils.MongoClient)
	tasksRepo := repository.GetTasksRepo(utils.MongoClient)
	journalRepo := repository.GetJournalRepo(utils.MongoClient)
	sessionsRepo := repository.GetSessionsRepo(utils.MongoClient)

	// Services
	userService := usecase.NewUserService(usersRepo)
	tasksService := usecase.NewTasksService(tasksRepo)
	journalService := usecase.NewJournalService(journalRepo)
	calendarService := usecase.NewCalendarService(tasksRepo, journalRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(userService)
	loginHandler := handler.NewLoginHandler(userService, sessionsRepo)
	profileHandler := handler.NewProfileHandler(userService, sessionsRepo)
	twoFactorHandler := handler.NewTwoFactorHandler(userService)
	tasksHandler := handler.NewTasksHandler(tasksService)
	journalHandler := handler.NewJournalHandler(journalService)
	calendarHandler := handler.NewCalendarHandler(calendarService)

	// Infrastructure endpoints
	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", loginHandler.Login)
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", profileHandler.GetProfile)
			user.GET("/sessions", profileHandler.GetSessions)
			user.POST("/logout", handler.Logout)
			user.POST("/2fa/enable", twoFactorHandler.Enable)
			user.POST("/2fa/verify", twoFactorHandler.Verify)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("", tasksHandler.GetUserTasks)
			tasks.GET("/buckets", tasksHandler.GetTaskBuckets)
			tasks.POST("", tasksHandler.CreateTask)
			tasks.PUT("/:id", tasksHandler.UpdateTask)
			tasks.DELETE("/:id", tasksHandler.DeleteTask)
		}

		journal := protected.Group("/journal")
		{
			journal.GET("", journalHandler.GetUserEntries)
			journal.POST("", journalHandler.CreateEntry)
			journal.PUT("/:id", journalHandler.UpdateEntry)
			journal.DELETE("/:id", journalHandler.DeleteEntry)
		}

		calendar := protected.Group("/calendar")
		{
			calendar.GET("/events", calendarHandler.GetEvents)
			calendar.GET("/export", calendarHandler.ExportICS)

			// The calendar is a derived, read-only view
			calendar.POST("/events", calendarHandler.RejectWrite)
			calendar.PUT("/events", calendarHandler.RejectWrite)
			calendar.PUT("/events/:id", calendarHandler.RejectWrite)
			calendar.DELETE("/events/:id", calendarHandler.RejectWrite)
		}
	}

	return router
}

// startSessionSweep schedules periodic removal of expired login sessions.
func startSessionSweep(sessionsRepo *repository.SessionsRepo) *cron.Cron {
	c := cron.New()
	schedule := utils.GetEnvAsString("SESSION_SWEEP_CRON", "0 * * * *")
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		deleted, err := sessionsRepo.DeleteExpiredSessions(ctx)
		if err != nil {
			log.Printf("session sweep failed: %v", err)
			return
		}
		if deleted > 0 {
			log.Printf("session sweep removed %d expired sessions", deleted)
		}
	})
	if err != nil {
		log.Fatalf("Invalid SESSION_SWEEP_CRON %q: %v", schedule, err)
	}
	c.Start()
	return c
}

func main() {
	router := setupRouter()

	sweeper := startSessionSweep(repository.GetSessionsRepo(utils.MongoClient))
	defer sweeper.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
