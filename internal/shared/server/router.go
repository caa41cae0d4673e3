package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gameplan-backend/internal/gamedetails"
	"gameplan-backend/internal/llm"
	"gameplan-backend/internal/llm/gemini"
	"gameplan-backend/internal/players"
	"gameplan-backend/internal/recommendations"
	"gameplan-backend/internal/shared/config"
	"gameplan-backend/internal/shared/metrics"
	"gameplan-backend/internal/shared/server/middleware"
	"gameplan-backend/internal/shared/server/respond"
	"gameplan-backend/internal/steam"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(rateLimits()),
	)

	// Dependencies
	steamClient := steam.New(cfg.SteamAPIKey,
		steam.WithBaseURL(cfg.SteamAPIBaseURL),
		steam.WithTimeout(cfg.SteamTimeout),
	)

	var llmClient llm.Client = llm.PlaceholderClient{}
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.LLMModel, gemini.WithTimeout(cfg.GeminiTimeout))
		if err != nil {
			log.Printf("failed to construct Gemini client, model calls will fail: %v", err)
		} else {
			llmClient = client
		}
	} else {
		log.Printf("GEMINI_API_KEY is not set; model calls will fail")
	}

	recommendationSvc := &recommendations.Service{Steam: steamClient, LLM: llmClient}
	recommendationHandler := recommendations.NewHandler(recommendationSvc)
	detailsSvc := &gamedetails.Service{LLM: llmClient}
	detailsHandler := gamedetails.NewHandler(detailsSvc)
	playersHandler := players.NewHandler(steamClient)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	recommendationHandler.RegisterRoutes(api)
	detailsHandler.RegisterRoutes(api)
	playersHandler.RegisterRoutes(api)

	r.GET("/metrics", metrics.Handler())

	return r
}

// rateLimits keeps the model-backed endpoint on a tighter budget than the
// Steam passthrough endpoints.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/recommendations" {
				return "RECOMMEND"
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT":   {Rate: 5, Burst: 10},
			"RECOMMEND": {Rate: 0.5, Burst: 3},
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
