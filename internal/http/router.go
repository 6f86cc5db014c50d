package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/ballotwise/ballotwise-backend/internal/http/handlers"
	httpMW "github.com/ballotwise/ballotwise-backend/internal/http/middleware"
	"github.com/ballotwise/ballotwise-backend/internal/observability"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/ctxutil"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log        *logger.Logger
	AdminToken string
	Metrics    *observability.Metrics

	AuthMiddleware   *httpMW.AuthMiddleware
	APIKeyMiddleware *httpMW.APIKeyMiddleware

	HealthHandler    *httpH.HealthHandler
	AuthHandler      *httpH.AuthHandler
	ElectionHandler  *httpH.ElectionHandler
	CandidateHandler *httpH.CandidateHandler
	UserHandler      *httpH.UserHandler
	PortalHandler    *httpH.PortalHandler
	CampaignHandler  *httpH.CampaignHandler
	AdminHandler     *httpH.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("ballotwise-backend"))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Public civic data
		if cfg.ElectionHandler != nil {
			api.GET("/elections", cfg.ElectionHandler.List)
			api.GET("/elections/:id", cfg.ElectionHandler.Get)
			api.GET("/elections/:id/candidates", cfg.ElectionHandler.Candidates)
			api.GET("/elections/:id/results", cfg.ElectionHandler.Results)
			api.GET("/elections/:id/polling-trends", cfg.ElectionHandler.PollingTrends)
			api.GET("/stats", cfg.ElectionHandler.Stats)
			api.GET("/members", cfg.ElectionHandler.Members)
			api.GET("/members/:state", cfg.ElectionHandler.Members)
		}
		if cfg.CandidateHandler != nil {
			api.GET("/candidates/detailed", cfg.CandidateHandler.GetDetailed)
			api.GET("/candidates/:id/positions", cfg.CandidateHandler.GetPositions)
			api.GET("/civic/status", cfg.CandidateHandler.CivicStatus)
		}

		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/signup", cfg.AuthHandler.Signup)
			api.POST("/auth/signin", cfg.AuthHandler.Signin)
			api.POST("/candidate/signup", cfg.AuthHandler.CandidateSignup)
			api.POST("/candidate/login", cfg.AuthHandler.CandidateLogin)
		}

		// Anonymous engagement events still land; authenticated ones carry
		// the voter id.
		if cfg.UserHandler != nil {
			interaction := []gin.HandlerFunc{cfg.UserHandler.LogInteraction}
			if cfg.AuthMiddleware != nil {
				interaction = append([]gin.HandlerFunc{cfg.AuthMiddleware.OptionalAuth()}, interaction...)
			}
			api.POST("/analytics/interaction", interaction...)
		}

		// Campaign marketplace
		if cfg.CampaignHandler != nil {
			api.POST("/campaign/register", cfg.CampaignHandler.Register)
			if cfg.APIKeyMiddleware != nil {
				keyed := api.Group("/campaign")
				keyed.Use(cfg.APIKeyMiddleware.RequireAPIKey())
				keyed.GET("/analytics/:electionId", cfg.CampaignHandler.Analytics)
				keyed.GET("/polling/:electionId", cfg.CampaignHandler.Polling)
				keyed.GET("/subscription", cfg.CampaignHandler.Subscription)
			}
		}
	}

	// Voter routes
	if cfg.AuthMiddleware != nil {
		voter := api.Group("/")
		voter.Use(cfg.AuthMiddleware.RequireAuth(ctxutil.ActorVoter))
		if cfg.AuthHandler != nil {
			voter.GET("/auth/me", cfg.AuthHandler.Me)
		}
		if cfg.UserHandler != nil {
			voter.GET("/watchlist", cfg.UserHandler.GetWatchlist)
			voter.POST("/watchlist", cfg.UserHandler.AddToWatchlist)
			voter.DELETE("/watchlist/:electionId", cfg.UserHandler.RemoveFromWatchlist)
			voter.GET("/user/data-export", cfg.UserHandler.ExportData)
			voter.DELETE("/user/data", cfg.UserHandler.DeleteData)
		}

		// Candidate portal
		if cfg.PortalHandler != nil {
			portal := api.Group("/candidate")
			portal.Use(cfg.AuthMiddleware.RequireAuth(ctxutil.ActorCandidate))
			portal.GET("/profile", cfg.PortalHandler.GetProfile)
			portal.PUT("/profile", cfg.PortalHandler.UpdateProfile)
			portal.GET("/data-sources", cfg.PortalHandler.GetDataSources)
			portal.GET("/dashboard", cfg.PortalHandler.Dashboard)

			portal.GET("/positions", cfg.PortalHandler.ListPositions)
			portal.POST("/positions", cfg.PortalHandler.CreatePosition)
			portal.PUT("/positions/:id", cfg.PortalHandler.UpdatePosition)
			portal.DELETE("/positions/:id", cfg.PortalHandler.DeletePosition)

			portal.GET("/qa", cfg.PortalHandler.ListQA)
			portal.POST("/qa", cfg.PortalHandler.CreateQA)
			portal.PUT("/qa/:id", cfg.PortalHandler.UpdateQA)
			portal.DELETE("/qa/:id", cfg.PortalHandler.DeleteQA)

			portal.GET("/content", cfg.PortalHandler.ListContent)
			portal.POST("/content", cfg.PortalHandler.CreateContent)
			portal.PUT("/content/:id", cfg.PortalHandler.UpdateContent)
			portal.POST("/content/:id/publish", cfg.PortalHandler.PublishContent)
			portal.DELETE("/content/:id", cfg.PortalHandler.DeleteContent)
		}
	}

	// Maintenance
	admin := api.Group("/")
	admin.Use(httpMW.RequireAdminToken(cfg.AdminToken))
	if cfg.ElectionHandler != nil {
		admin.POST("/elections/:id/update-polling", cfg.ElectionHandler.UpdatePolling)
	}
	if cfg.AdminHandler != nil {
		admin.POST("/admin/elections/fix-levels", cfg.AdminHandler.FixElectionLevels)
		admin.POST("/admin/elections/cleanup", cfg.AdminHandler.CleanupPastElections)
		admin.POST("/admin/congress/sync", cfg.AdminHandler.SyncCongress)
		admin.POST("/admin/candidates/:id/verification", cfg.AdminHandler.SetVerificationStatus)
	}

	return r
}
