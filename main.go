package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"jobpilot/config"
	"jobpilot/controllers"
	"jobpilot/database"
	"jobpilot/middleware"
	"jobpilot/models"
	"jobpilot/services"
	"jobpilot/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	cfg := config.GetAppConfig()
	logger := utils.NewLogger()

	// The engine runs without a database; it only loses the application
	// history and the few-shot answer examples.
	var store services.ApplicationStore
	if db, err := database.Connect(cfg.Database); err != nil {
		log.Printf("Database unavailable, running without persistence: %v", err)
	} else {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Database migration failed: %v", err)
		}
		store = models.NewApplicationModel(db)
		log.Printf("✓ Database connected")
	}

	var ai services.AIProvider
	if cfg.GeminiAPIKey != "" {
		ai = services.NewGeminiService(cfg.GeminiAPIKey)
		log.Printf("✓ AI provider configured")
	} else {
		log.Printf("GEMINI_API_KEY not set, AI features disabled")
	}

	browser := services.NewBrowserService(cfg.Automation)
	defer browser.Close()

	cache := services.NewAnswerCache(cfg.Automation.AnswerCacheFile)
	filler := services.NewFormFiller(cache, services.NewStdinPrompter(), ai, cfg.Automation.Interactive)

	deps := services.ScraperDeps{
		Browser: browser,
		AI:      ai,
		Filler:  filler,
		Checker: &services.SubmissionChecker{},
		Config:  cfg.Automation,
	}

	queue := services.NewApplicationQueue(cfg.Automation.QueueFile)
	if queue.Load() {
		log.Printf("✓ Restored queue with %d pending items", queue.PendingCount())
	}

	orchestrator := services.NewOrchestrator(cfg.Automation, queue, services.NewScraperRegistry(), deps, ai, store, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(cors.Default())

	limiters := middleware.CreateRateLimiters()

	appController := controllers.NewApplicationController(orchestrator)
	screenshotController := controllers.NewScreenshotController()

	api := r.Group("/api")
	api.Use(limiters["general"].Limit())
	{
		api.GET("/platforms", appController.GetPlatforms)
		api.GET("/platforms/detect", appController.DetectPlatform)
		api.GET("/applications/queue", appController.GetQueue)
		api.DELETE("/applications/queue", appController.ClearQueue)
		api.GET("/screenshots/*key", screenshotController.GetScreenshot)
	}

	automation := r.Group("/api/applications")
	automation.Use(limiters["automation"].Limit())
	{
		automation.POST("/apply", appController.Apply)
		automation.POST("/batch", appController.ApplyBatch)
	}

	log.Printf("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
