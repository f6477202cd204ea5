// api/main.go
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
	"github.com/joho/godotenv"

	"engagelens/api/database"
	"engagelens/api/handlers"
	"engagelens/api/middleware"
	"engagelens/api/store"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- PostgreSQL (dashboard users) ---
	dbClient, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
	}
	defer dbClient.Close()

	// --- ClickHouse (raw session events) ---
	chClient, err := database.NewClickHouseDB()
	if err != nil {
		log.Fatalf("Failed to initialize ClickHouse database: %v", err)
	}
	defer chClient.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := chClient.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to ensure ClickHouse schema: %v", err)
		}
	}

	// --- Stores ---
	userStore := store.NewUserStore(dbClient.DB)
	eventStore := store.NewEventStore(chClient)

	// --- Handlers ---
	authHandlers := handlers.NewAuthHandlers(userStore)
	ingestHandlers := handlers.NewIngestHandlers(eventStore)
	analyticsHandlers := handlers.NewAnalyticsHandlers(eventStore)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		// Authentication endpoints (no authentication required)
		api.POST("/signup", authHandlers.Signup)
		api.POST("/login", authHandlers.Login)
		api.POST("/logout", authHandlers.Logout)

		// Protected routes (require a valid JWT token)
		protected := api.Group("/")
		protected.Use(middleware.AuthRequired())
		{
			protected.POST("/ingest", ingestHandlers.IngestSessions)
			protected.POST("/ingest/csv", ingestHandlers.IngestSessionsCSV)

			analyticsGroup := protected.Group("/analytics")
			{
				analyticsGroup.GET("/segmentation", analyticsHandlers.GetEngagementSegmentation)
				analyticsGroup.GET("/user-types", analyticsHandlers.GetUserTypeBreakdown)
				analyticsGroup.GET("/categories", analyticsHandlers.GetCategoryPerformance)
				analyticsGroup.GET("/timeseries", analyticsHandlers.GetTimeSeries)
				analyticsGroup.GET("/funnel", analyticsHandlers.GetConversionFunnel)
				analyticsGroup.GET("/cohorts", analyticsHandlers.GetCohortAnalysis)
			}

			protected.GET("/sessions", analyticsHandlers.GetSessions)
			protected.GET("/sessions/export", analyticsHandlers.ExportSessionsCSV)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Engagement analytics API starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
