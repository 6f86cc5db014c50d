package app

import (
	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	Election    services.ElectionService
	Candidate   services.CandidateService
	Aggregator  services.AggregatorService
	RAG         services.RAGService
	Profile     services.ProfileService
	Portal      services.PortalService
	Polling     services.PollingService
	Campaign    services.CampaignService
	Watchlist   services.WatchlistService
	Analytics   services.AnalyticsService
	Maintenance services.MaintenanceService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, clients Clients) Services {
	log.Info("Wiring services...")

	aggregator := services.NewAggregatorService(clients.Civic, r.Candidate, r.CandidateProfile, log)
	rag := services.NewRAGService(r.Candidate, r.CandidateProfile, r.CandidateDataSource, log)

	return Services{
		Auth:        services.NewAuthService(r.User, r.CandidateAccount, r.Candidate, cfg.JWTSecretKey, cfg.TokenTTL, log),
		Election:    services.NewElectionService(r.Election, r.Candidate, r.ElectionResult, r.CongressMember, log),
		Candidate:   services.NewCandidateService(r.Candidate, r.CandidatePosition, rag, aggregator, log),
		Aggregator:  aggregator,
		RAG:         rag,
		Profile:     services.NewProfileService(r.CandidateProfile, r.CandidateDataSource, log),
		Portal:      services.NewPortalService(r.Candidate, r.CandidateProfile, r.CandidatePosition, r.CandidateQA, r.CampaignContent, log),
		Polling:     services.NewPollingService(clients.Civic, r.Candidate, r.RealTimePolling, log),
		Campaign:    services.NewCampaignService(r.CampaignAccount, r.Candidate, r.Election, r.RealTimePolling, clients.Quota, log),
		Watchlist:   services.NewWatchlistService(r.Watchlist, r.Election, log),
		Analytics:   services.NewAnalyticsService(db, r.User, r.Watchlist, r.InteractionLog, log),
		Maintenance: services.NewMaintenanceService(r.Election, r.CongressMember, log),
	}
}
