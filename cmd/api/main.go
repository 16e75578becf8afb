package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jointventure/jointventure-backend/internal/dashboard"
	"github.com/jointventure/jointventure-backend/internal/database"
	"github.com/jointventure/jointventure-backend/internal/handlers"
	"github.com/jointventure/jointventure-backend/internal/middleware"
	"github.com/jointventure/jointventure-backend/internal/participation"
	"github.com/jointventure/jointventure-backend/internal/services"
	"github.com/jointventure/jointventure-backend/internal/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if os.Getenv("GIN_MODE") != "release" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get database instance")
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := database.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize Redis
	if err := services.InitRedis(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Redis")
	}

	// Initialize Firebase (optional - will log warning if not configured)
	if err := services.InitFirebase(); err != nil {
		log.Warn().Err(err).Msg("Firebase initialization warning")
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}

	dataStore := store.NewGormStore(db)
	svc := participation.NewService(dataStore)
	agg := dashboard.NewAggregator(dataStore)

	// The participation service doubles as the chat access gate
	hub := services.NewHub(svc)
	go hub.Run()

	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Serve locally stored uploads (no-op when S3 is configured)
	r.Static("/uploads", services.LocalUploadDir())

	// Routes
	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
		}

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// User routes
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
				users.POST("/profile/avatar", handlers.UploadAvatar(db))
			}

			// Trip routes
			trips := protected.Group("/trips")
			{
				trips.GET("", handlers.DiscoverTrips(db))
				trips.POST("", handlers.CreateTrip(db))
				trips.GET("/:tripId", handlers.GetTrip(db, svc))
				trips.DELETE("/:tripId", handlers.DeleteTrip(db))

				trips.POST("/:tripId/join", handlers.RequestJoin(db, svc))
				trips.GET("/:tripId/participants", handlers.GetMembers(svc))
				trips.PATCH("/:tripId/participants/:userId", handlers.DecideRequest(db, svc))
				trips.DELETE("/:tripId/participants/:userId", handlers.RemoveParticipant(svc, hub))

				trips.GET("/:tripId/messages", handlers.GetMessages(svc))
				trips.POST("/:tripId/messages", handlers.SendMessage(svc, hub))
			}

			// Dashboard
			protected.GET("/dashboard", handlers.GetDashboard(agg))

			// Travel news feed
			protected.GET("/news", handlers.GetTravelNews())

			// Notification routes
			notifications := protected.Group("/notifications")
			{
				notifications.POST("/register-token", handlers.RegisterFCMToken(db))
				notifications.DELETE("/remove-token", handlers.RemoveFCMToken(db))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
