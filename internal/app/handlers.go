package app

import (
	httpH "github.com/ballotwise/ballotwise-backend/internal/http/handlers"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	Election  *httpH.ElectionHandler
	Candidate *httpH.CandidateHandler
	User      *httpH.UserHandler
	Portal    *httpH.PortalHandler
	Campaign  *httpH.CampaignHandler
	Admin     *httpH.AdminHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(),
		Auth:      httpH.NewAuthHandler(s.Auth),
		Election:  httpH.NewElectionHandler(s.Election, s.Polling),
		Candidate: httpH.NewCandidateHandler(s.Candidate, s.Aggregator),
		User:      httpH.NewUserHandler(s.Watchlist, s.Analytics),
		Portal:    httpH.NewPortalHandler(s.RAG, s.Profile, s.Portal),
		Campaign:  httpH.NewCampaignHandler(s.Campaign),
		Admin:     httpH.NewAdminHandler(s.Maintenance, s.Profile),
	}
}
