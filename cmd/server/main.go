package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/researchcollab/research-collab-api/internal/config"
	"github.com/researchcollab/research-collab-api/internal/constants"
	"github.com/researchcollab/research-collab-api/internal/database"
	"github.com/researchcollab/research-collab-api/internal/handlers"
	"github.com/researchcollab/research-collab-api/internal/middleware"
	"github.com/researchcollab/research-collab-api/internal/notify"
	"github.com/researchcollab/research-collab-api/internal/repository"
	"github.com/researchcollab/research-collab-api/internal/services"
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
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize notification dispatcher
	var mailer notify.Mailer
	if cfg.SMTPHost != "" {
		mailer = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)
	} else {
		log.Println("SMTP not configured, emails will be logged")
		mailer = &notify.LogMailer{From: cfg.EmailFrom}
	}

	var announcer notify.Announcer
	if cfg.DiscordBotToken != "" && cfg.DiscordChannelID != "" {
		announcer, err = notify.NewDiscordAnnouncer(cfg.DiscordBotToken, cfg.DiscordChannelID)
		if err != nil {
			log.Fatalf("Failed to create Discord announcer: %v", err)
		}
	} else {
		log.Println("Discord announcements not configured, skipping")
	}

	dispatcher := notify.NewDispatcher(mailer, announcer)

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	callRepo := repository.NewCallRepository(db)
	appRepo := repository.NewApplicationRepository(db)

	authService := services.NewAuthService(userRepo, cfg)
	callService := services.NewCallService(callRepo, dispatcher, cfg.PublicBaseURL)
	appService := services.NewApplicationService(appRepo, callRepo, userRepo, dispatcher)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.PublicBaseURL+"/dashboard")
	callHandler := handlers.NewCallHandler(callService)
	appHandler := handlers.NewApplicationHandler(appService)
	creditHandler := handlers.NewCreditHandler()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Research Collab API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.GET("/discord", authHandler.DiscordLogin)
			auth.GET("/discord/callback", authHandler.DiscordCallback)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// CRediT role catalog (public)
		api.GET("/roles", creditHandler.ListRoles)

		// Research call routes
		calls := api.Group("/calls")
		{
			calls.GET("", callHandler.ListCalls)
			calls.GET("/:slug", callHandler.GetCallBySlug)
			calls.POST("", middleware.RequireAuth(), callHandler.CreateCall)
			calls.PATCH("/:slug", middleware.RequireAuth(), middleware.RequireCallOwnership(), callHandler.UpdateCall)
			calls.POST("/:slug/close", middleware.RequireAuth(), middleware.RequireCallOwnership(), callHandler.CloseCall)
		}

		// Application routes (protected)
		applications := api.Group("/applications")
		applications.Use(middleware.RequireAuth())
		{
			applications.POST("", appHandler.SubmitApplication)
			applications.GET("", appHandler.ListApplications)
			applications.PATCH("/:id", appHandler.UpdateApplicationStatus)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
