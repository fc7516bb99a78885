package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pathlight/pathlight-backend/internal/config"
	"github.com/pathlight/pathlight-backend/internal/handler"
	"github.com/pathlight/pathlight-backend/internal/middleware"
	"github.com/pathlight/pathlight-backend/internal/response"
	"github.com/pathlight/pathlight-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Roadmap   *handler.RoadmapHandler
	Analytics *handler.AnalyticsHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireLearnerJWT(authService), handlers.Auth.GetProfile)
	}

	// ─── 2. Learner Group (JWT) ────────────────────────────────────────
	learnerAPI := router.Group("/api/v1/learner")
	learnerAPI.Use(middleware.RequireLearnerJWT(authService))
	{
		// Roadmap lifecycle
		learnerAPI.POST("/roadmaps/draft", handlers.Roadmap.GenerateDraft)
		learnerAPI.POST("/roadmaps", handlers.Roadmap.Create)
		learnerAPI.GET("/roadmaps", handlers.Roadmap.List)
		learnerAPI.GET("/roadmaps/:roadmap_id", handlers.Roadmap.Get)
		learnerAPI.DELETE("/roadmaps/:roadmap_id", handlers.Roadmap.Delete)

		// Progress mutations (optimistic, queued persistence)
		learnerAPI.PATCH("/roadmaps/:roadmap_id/milestones/:milestone_id/tasks/:task_id", handlers.Roadmap.ToggleTask)
		learnerAPI.GET("/roadmaps/:roadmap_id/milestones/:milestone_id/unlocks", handlers.Roadmap.GetUnlocks)

		// Quizzes (authoritative gating on report submission)
		learnerAPI.POST("/roadmaps/:roadmap_id/milestones/:milestone_id/quiz", handlers.Roadmap.GenerateQuiz)
		learnerAPI.POST("/roadmaps/:roadmap_id/milestones/:milestone_id/quiz-analysis", handlers.Roadmap.AnalyzeQuiz)
		learnerAPI.POST("/roadmaps/:roadmap_id/milestones/:milestone_id/quiz-reports", handlers.Roadmap.SubmitQuizReport)

		// Analytics
		learnerAPI.GET("/analytics/dashboard", handlers.Analytics.Dashboard)
		learnerAPI.GET("/roadmaps/:roadmap_id/analytics", handlers.Analytics.RoadmapBreakdown)
	}

	// ─── 3. WebSocket Group (Learner WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireLearnerWSAuth(authService))
	{
		ws.GET("/learner/sync-events", handlers.WS.SyncEventStream)
	}

	return router
}
