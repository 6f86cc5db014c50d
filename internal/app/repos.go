package app

import (
	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
)

type Repos struct {
	Election            repos.ElectionRepo
	Candidate           repos.CandidateRepo
	CandidateProfile    repos.CandidateProfileRepo
	CandidateDataSource repos.CandidateDataSourceRepo
	CandidatePosition   repos.CandidatePositionRepo
	CandidateQA         repos.CandidateQARepo
	CampaignContent     repos.CampaignContentRepo
	RealTimePolling     repos.RealTimePollingRepo
	CandidateAccount    repos.CandidateAccountRepo
	CampaignAccount     repos.CampaignAccountRepo
	User                repos.UserRepo
	Watchlist           repos.WatchlistRepo
	InteractionLog      repos.InteractionLogRepo
	ElectionResult      repos.ElectionResultRepo
	CongressMember      repos.CongressMemberRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Election:            repos.NewElectionRepo(db, log),
		Candidate:           repos.NewCandidateRepo(db, log),
		CandidateProfile:    repos.NewCandidateProfileRepo(db, log),
		CandidateDataSource: repos.NewCandidateDataSourceRepo(db, log),
		CandidatePosition:   repos.NewCandidatePositionRepo(db, log),
		CandidateQA:         repos.NewCandidateQARepo(db, log),
		CampaignContent:     repos.NewCampaignContentRepo(db, log),
		RealTimePolling:     repos.NewRealTimePollingRepo(db, log),
		CandidateAccount:    repos.NewCandidateAccountRepo(db, log),
		CampaignAccount:     repos.NewCampaignAccountRepo(db, log),
		User:                repos.NewUserRepo(db, log),
		Watchlist:           repos.NewWatchlistRepo(db, log),
		InteractionLog:      repos.NewInteractionLogRepo(db, log),
		ElectionResult:      repos.NewElectionResultRepo(db, log),
		CongressMember:      repos.NewCongressMemberRepo(db, log),
	}
}
