package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"budgetbuddy/advisor"
	"budgetbuddy/api"
	"budgetbuddy/config"
	"budgetbuddy/db"
	_ "budgetbuddy/docs" // Import for side effect: registers swagger spec via init()

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           BudgetBuddy API
// @version         1.0.0

// @description     Personal-finance dashboard API for a single user: profile
// @description     and savings-target management, monthly income/expense
// @description     tracking with derived savings figures, yearly summary
// @description     metrics, and AI-powered financial analysis that can suggest
// @description     a new monthly savings target.
// @description
// @description     State is a single JSON document on disk; one active session
// @description     per data file is assumed (no multi-user support, no
// @description     authentication, no concurrent-access control).

// @host      localhost:8080
// @BasePath  /
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL: Failed to load configuration: %v", err)
	}

	// --- Store ---
	database, err := db.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("CRITICAL: Failed to initialize store: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("ERROR: Final persist on close failed: %v", err)
		}
	}()

	// --- Advisor ---
	// A missing or misconfigured model client is not fatal: analysis requests
	// then return an explanatory text instead of advice.
	client, err := advisor.NewGeminiClient(context.Background(), cfg.GeminiModel)
	if err != nil {
		log.Printf("WARN: AI advisor unavailable: %v. Analysis requests will report this.", err)
		client = nil
	}
	session := advisor.NewSession(client, database)

	// --- Gin Router Setup ---
	router := gin.Default()

	// Profile routes
	profileGroup := router.Group("/profile")
	{
		profileGroup.GET("", func(c *gin.Context) {
			api.GetProfileHandler(c, database, cfg)
		})
		profileGroup.PUT("", func(c *gin.Context) {
			api.UpdateProfileHandler(c, database, cfg)
		})
	}

	// Month routes
	monthGroup := router.Group("/months")
	{
		monthGroup.GET("", func(c *gin.Context) {
			api.ListMonthsHandler(c, database, cfg)
		})
		monthGroup.GET("/:key", func(c *gin.Context) {
			api.GetMonthHandler(c, database, cfg)
		})
		monthGroup.PUT("/:key", func(c *gin.Context) {
			api.UpdateMonthHandler(c, database, cfg)
		})
	}

	// Summary route
	router.GET("/summary", func(c *gin.Context) {
		api.GetSummaryHandler(c, database, cfg)
	})

	// Analysis routes
	analysisGroup := router.Group("/analysis")
	{
		analysisGroup.GET("", func(c *gin.Context) {
			api.GetAnalysisHandler(c, session, cfg)
		})
		analysisGroup.POST("", func(c *gin.Context) {
			api.GenerateAnalysisHandler(c, session, cfg)
		})
		analysisGroup.POST("/apply", func(c *gin.Context) {
			api.ApplyRecommendationHandler(c, session, database, cfg)
		})
	}

	// --- Swagger Route ---
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// --- Start Server ---
	listenAddr := fmt.Sprintf("%s:%s", cfg.ListenAddress, cfg.ListenPort)
	log.Printf("INFO: Starting server on %s", listenAddr)

	server := &http.Server{
		Addr:    listenAddr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("CRITICAL: Server failed to start: %v", err)
	}
}
