package app

import (
	apphttp "github.com/ballotwise/ballotwise-backend/internal/http"
	"github.com/ballotwise/ballotwise-backend/internal/observability"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers, mw Middleware, metrics *observability.Metrics) *apphttp.Server {
	log.Info("Wiring router...")
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:        log,
		AdminToken: cfg.AdminToken,
		Metrics:    metrics,

		AuthMiddleware:   mw.Auth,
		APIKeyMiddleware: mw.APIKey,

		HealthHandler:    h.Health,
		AuthHandler:      h.Auth,
		ElectionHandler:  h.Election,
		CandidateHandler: h.Candidate,
		UserHandler:      h.User,
		PortalHandler:    h.Portal,
		CampaignHandler:  h.Campaign,
		AdminHandler:     h.Admin,
	})
}
