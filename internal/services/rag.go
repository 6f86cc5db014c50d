package services

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

// ProfilePlaceholder is shown for any displayable field the candidate has
// not filled in.
const ProfilePlaceholder = "Candidate has not supplied that info"

// EnrichedCandidate is the portal/display view of a candidate: the platform
// row plus the candidate-supplied profile with every gap placeholdered, and
// per-field source attribution.
type EnrichedCandidate struct {
	Candidate *types.Candidate `json:"candidate"`

	FullName         string `json:"full_name"`
	PreferredName    string `json:"preferred_name"`
	Age              *int   `json:"age"`
	BirthPlace       string `json:"birth_place"`
	CurrentResidence string `json:"current_residence"`
	FamilyStatus     string `json:"family_status"`

	CurrentOccupation string         `json:"current_occupation"`
	EmploymentHistory datatypes.JSON `json:"employment_history"`
	Education         datatypes.JSON `json:"education"`
	MilitaryService   string         `json:"military_service"`

	PreviousOffices     datatypes.JSON `json:"previous_offices"`
	PoliticalExperience string         `json:"political_experience"`
	Endorsements        datatypes.JSON `json:"endorsements"`

	Positions map[string]string `json:"positions"`

	CampaignWebsite    string         `json:"campaign_website"`
	CampaignSlogan     string         `json:"campaign_slogan"`
	TopPriorities      datatypes.JSON `json:"top_priorities"`
	KeyAccomplishments datatypes.JSON `json:"key_accomplishments"`

	DataCompleteness   int    `json:"data_completeness"`
	VerificationStatus string `json:"verification_status"`
	HasAuthenticData   bool   `json:"has_authentic_data"`

	attribution map[string]*types.CandidateDataSource
}

// AttributionFor returns the most recent data-source row recorded for a
// field, or nil when nothing ever populated it.
func (e *EnrichedCandidate) AttributionFor(field string) *types.CandidateDataSource {
	return e.attribution[field]
}

type RAGService interface {
	GetCandidateWithRAG(ctx context.Context, candidateID int) (*EnrichedCandidate, error)
}

type ragService struct {
	log            *logger.Logger
	candidateRepo  repos.CandidateRepo
	profileRepo    repos.CandidateProfileRepo
	dataSourceRepo repos.CandidateDataSourceRepo
}

func NewRAGService(
	candidateRepo repos.CandidateRepo,
	profileRepo repos.CandidateProfileRepo,
	dataSourceRepo repos.CandidateDataSourceRepo,
	baseLog *logger.Logger,
) RAGService {
	return &ragService{
		log:            baseLog.With("service", "RAGService"),
		candidateRepo:  candidateRepo,
		profileRepo:    profileRepo,
		dataSourceRepo: dataSourceRepo,
	}
}

// GetCandidateWithRAG composes two reads. It never calls the external
// adapters; enrichment beyond the profile is the aggregator's job.
func (s *ragService) GetCandidateWithRAG(ctx context.Context, candidateID int) (*EnrichedCandidate, error) {
	candidate, err := s.candidateRepo.GetByID(ctx, nil, candidateID)
	if err != nil {
		return nil, fmt.Errorf("load candidate %d: %w", candidateID, err)
	}
	profile, err := s.profileRepo.GetByCandidateID(ctx, nil, candidateID)
	if err != nil {
		return nil, fmt.Errorf("load profile for candidate %d: %w", candidateID, err)
	}
	sources, err := s.dataSourceRepo.GetByCandidateID(ctx, nil, candidateID)
	if err != nil {
		return nil, fmt.Errorf("load data sources for candidate %d: %w", candidateID, err)
	}

	enriched := &EnrichedCandidate{
		Candidate:          candidate,
		Positions:          map[string]string{},
		VerificationStatus: types.VerificationPending,
		attribution:        map[string]*types.CandidateDataSource{},
	}

	// Rows come newest-first; the first row per field is the current one.
	for _, src := range sources {
		if _, seen := enriched.attribution[src.FieldName]; !seen {
			enriched.attribution[src.FieldName] = src
		}
	}

	if profile == nil {
		for cat := range positionColumns(&types.CandidateProfile{}) {
			enriched.Positions[cat] = ProfilePlaceholder
		}
		enriched.FullName = orPlaceholder("")
		enriched.PreferredName = orPlaceholder("")
		enriched.BirthPlace = orPlaceholder("")
		enriched.CurrentResidence = orPlaceholder("")
		enriched.FamilyStatus = orPlaceholder("")
		enriched.CurrentOccupation = orPlaceholder("")
		enriched.MilitaryService = orPlaceholder("")
		enriched.PoliticalExperience = orPlaceholder("")
		enriched.CampaignWebsite = orPlaceholder("")
		enriched.CampaignSlogan = orPlaceholder("")
		return enriched, nil
	}

	enriched.HasAuthenticData = profileHasData(profile)
	enriched.FullName = orPlaceholder(profile.FullName)
	enriched.PreferredName = orPlaceholder(profile.PreferredName)
	enriched.Age = profile.Age
	enriched.BirthPlace = orPlaceholder(profile.BirthPlace)
	enriched.CurrentResidence = orPlaceholder(profile.CurrentResidence)
	enriched.FamilyStatus = orPlaceholder(profile.FamilyStatus)
	enriched.CurrentOccupation = orPlaceholder(profile.CurrentOccupation)
	enriched.EmploymentHistory = jsonOrNil(profile.EmploymentHistory)
	enriched.Education = jsonOrNil(profile.Education)
	enriched.MilitaryService = orPlaceholder(profile.MilitaryService)
	enriched.PreviousOffices = jsonOrNil(profile.PreviousOffices)
	enriched.PoliticalExperience = orPlaceholder(profile.PoliticalExperience)
	enriched.Endorsements = jsonOrNil(profile.Endorsements)
	enriched.CampaignWebsite = orPlaceholder(profile.CampaignWebsite)
	enriched.CampaignSlogan = orPlaceholder(profile.CampaignSlogan)
	enriched.TopPriorities = jsonOrNil(profile.TopPriorities)
	enriched.KeyAccomplishments = jsonOrNil(profile.KeyAccomplishments)
	enriched.DataCompleteness = profile.DataCompleteness
	enriched.VerificationStatus = profile.VerificationStatus

	for cat, v := range positionColumns(profile) {
		enriched.Positions[cat] = orPlaceholder(v)
	}
	return enriched, nil
}

func orPlaceholder(v string) string {
	if v == "" {
		return ProfilePlaceholder
	}
	return v
}

func jsonOrNil(v datatypes.JSON) datatypes.JSON {
	if len(v) == 0 || string(v) == "null" {
		return nil
	}
	return v
}
