package services

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

// Data source labels surfaced on the detailed candidate payload.
const (
	DataSourceLocal      = "Local Database"
	DataSourceAggregated = "Aggregated Sources"
)

// DetailedCandidate is the enriched payload behind the detailed candidates
// endpoint. Exactly one of the two source labels applies.
type DetailedCandidate struct {
	ID                int                  `json:"id"`
	Name              string               `json:"name"`
	FullName          string               `json:"full_name"`
	Party             string               `json:"party"`
	IsIncumbent       bool                 `json:"is_incumbent"`
	PollingSupport    *int                 `json:"polling_support"`
	Background        string               `json:"background"`
	CurrentOccupation string               `json:"current_occupation"`
	Education         datatypes.JSON       `json:"education"`
	PolicyPositions   map[string]string    `json:"policy_positions"`
	TopPriorities     datatypes.JSON       `json:"top_priorities"`
	CampaignWebsite   string               `json:"campaign_website"`
	DataSource        string               `json:"dataSource"`
	HasAuthenticData  bool                 `json:"hasAuthenticData"`
	Merged            *MergedCandidateView `json:"merged,omitempty"`
}

type CandidateService interface {
	GetDetailed(ctx context.Context, candidateIDs []int, electionID int) ([]*DetailedCandidate, error)
	GetPositions(ctx context.Context, candidateID int, category string) ([]*types.CandidatePosition, error)
}

type candidateService struct {
	log           *logger.Logger
	candidateRepo repos.CandidateRepo
	positionRepo  repos.CandidatePositionRepo
	ragService    RAGService
	aggregator    AggregatorService
}

func NewCandidateService(
	candidateRepo repos.CandidateRepo,
	positionRepo repos.CandidatePositionRepo,
	ragService RAGService,
	aggregator AggregatorService,
	baseLog *logger.Logger,
) CandidateService {
	return &candidateService{
		log:           baseLog.With("service", "CandidateService"),
		candidateRepo: candidateRepo,
		positionRepo:  positionRepo,
		ragService:    ragService,
		aggregator:    aggregator,
	}
}

// GetDetailed is local-first: candidates with authentic profile data are
// served from the database without touching any external source. Only the
// rest go through the aggregator.
func (cs *candidateService) GetDetailed(ctx context.Context, candidateIDs []int, electionID int) ([]*DetailedCandidate, error) {
	// One batch load up front so an unknown id fails the whole request
	// before any enrichment work starts.
	loaded, err := cs.candidateRepo.GetByIDs(ctx, nil, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	if len(loaded) != len(candidateIDs) {
		found := make(map[int]bool, len(loaded))
		for _, c := range loaded {
			found[c.ID] = true
		}
		for _, id := range candidateIDs {
			if !found[id] {
				return nil, fmt.Errorf("candidate %d: %w", id, gorm.ErrRecordNotFound)
			}
		}
	}

	out := make([]*DetailedCandidate, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		enriched, err := cs.ragService.GetCandidateWithRAG(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("enrich candidate %d: %w", id, err)
		}

		detail := &DetailedCandidate{
			ID:                enriched.Candidate.ID,
			Name:              enriched.Candidate.Name,
			Party:             enriched.Candidate.Party,
			IsIncumbent:       enriched.Candidate.IsIncumbent,
			PollingSupport:    enriched.Candidate.PollingSupport,
			FullName:          enriched.FullName,
			Background:        enriched.PoliticalExperience,
			CurrentOccupation: enriched.CurrentOccupation,
			Education:         enriched.Education,
			PolicyPositions:   enriched.Positions,
			TopPriorities:     enriched.TopPriorities,
			CampaignWebsite:   displayedWebsite(enriched),
		}

		if enriched.HasAuthenticData {
			detail.DataSource = DataSourceLocal
			detail.HasAuthenticData = true
			out = append(out, detail)
			continue
		}

		merged, err := cs.aggregator.Aggregate(ctx, id, electionID)
		if err != nil {
			cs.log.Warn("aggregation fallback failed, serving baseline",
				"candidate_id", id, "error", err)
			detail.DataSource = DataSourceLocal
			out = append(out, detail)
			continue
		}
		detail.DataSource = DataSourceAggregated
		detail.Merged = merged
		if merged.Biography != "" {
			detail.Background = merged.Biography
		}
		for cat, v := range merged.Positions {
			if detail.PolicyPositions[cat] == ProfilePlaceholder || detail.PolicyPositions[cat] == "" {
				detail.PolicyPositions[cat] = v
			}
		}
		out = append(out, detail)
	}
	return out, nil
}

func displayedWebsite(e *EnrichedCandidate) string {
	if e.CampaignWebsite != ProfilePlaceholder {
		return e.CampaignWebsite
	}
	return e.Candidate.Website
}

func (cs *candidateService) GetPositions(ctx context.Context, candidateID int, category string) ([]*types.CandidatePosition, error) {
	if _, err := cs.candidateRepo.GetByID(ctx, nil, candidateID); err != nil {
		return nil, fmt.Errorf("load candidate %d: %w", candidateID, err)
	}
	return cs.positionRepo.ListByCandidate(ctx, nil, candidateID, category)
}
