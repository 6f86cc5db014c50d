package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

// ElectionResultsView pairs the reporting rollup with per-candidate vote
// rows for one election.
type ElectionResultsView struct {
	Election   *types.Election       `json:"election"`
	Result     *types.ElectionResult `json:"result"`
	Candidates []*types.Candidate    `json:"candidates"`
}

// PlatformStats are the public aggregate counters.
type PlatformStats struct {
	ActiveElections int64     `json:"active_elections"`
	Candidates      int64     `json:"candidates"`
	CongressMembers int64     `json:"congress_members"`
	GeneratedAt     time.Time `json:"generated_at"`
}

type ElectionService interface {
	List(ctx context.Context, filters types.ElectionFilters) ([]*types.Election, error)
	GetByID(ctx context.Context, id int) (*types.Election, error)
	GetCandidates(ctx context.Context, electionID int) ([]*types.Candidate, error)
	GetResults(ctx context.Context, electionID int) (*ElectionResultsView, error)
	GetStats(ctx context.Context) (*PlatformStats, error)
	ListMembers(ctx context.Context, state string) ([]*types.CongressMember, error)
}

type electionService struct {
	log                *logger.Logger
	electionRepo       repos.ElectionRepo
	candidateRepo      repos.CandidateRepo
	resultRepo         repos.ElectionResultRepo
	congressMemberRepo repos.CongressMemberRepo
}

func NewElectionService(
	electionRepo repos.ElectionRepo,
	candidateRepo repos.CandidateRepo,
	resultRepo repos.ElectionResultRepo,
	congressMemberRepo repos.CongressMemberRepo,
	baseLog *logger.Logger,
) ElectionService {
	return &electionService{
		log:                baseLog.With("service", "ElectionService"),
		electionRepo:       electionRepo,
		candidateRepo:      candidateRepo,
		resultRepo:         resultRepo,
		congressMemberRepo: congressMemberRepo,
	}
}

func (es *electionService) List(ctx context.Context, filters types.ElectionFilters) ([]*types.Election, error) {
	return es.electionRepo.List(ctx, nil, filters)
}

func (es *electionService) GetByID(ctx context.Context, id int) (*types.Election, error) {
	return es.electionRepo.GetByID(ctx, nil, id)
}

// GetCandidates sanitizes the percentage fields: polling numbers survive
// only when a real polling update stamped them, and vote percentages only
// when a vote count backs them. Everything else is nulled rather than shown
// as fake precision.
func (es *electionService) GetCandidates(ctx context.Context, electionID int) ([]*types.Candidate, error) {
	if _, err := es.electionRepo.GetByID(ctx, nil, electionID); err != nil {
		return nil, fmt.Errorf("load election %d: %w", electionID, err)
	}
	candidates, err := es.candidateRepo.GetByElection(ctx, nil, electionID)
	if err != nil {
		return nil, err
	}
	for _, c := range candidates {
		sanitizeCandidate(c)
	}
	return candidates, nil
}

func sanitizeCandidate(c *types.Candidate) {
	if c.LastPollingUpdate == nil {
		c.PollingSupport = nil
		c.PollingTrend = ""
		c.PollingSource = ""
	}
	if c.VotesReceived == nil {
		c.VotePercentage = nil
	}
}

func (es *electionService) GetResults(ctx context.Context, electionID int) (*ElectionResultsView, error) {
	election, err := es.electionRepo.GetByID(ctx, nil, electionID)
	if err != nil {
		return nil, fmt.Errorf("load election %d: %w", electionID, err)
	}
	result, err := es.resultRepo.GetByElection(ctx, nil, electionID)
	if err != nil {
		return nil, err
	}
	candidates, err := es.candidateRepo.GetByElection(ctx, nil, electionID)
	if err != nil {
		return nil, err
	}
	for _, c := range candidates {
		sanitizeCandidate(c)
	}
	return &ElectionResultsView{Election: election, Result: result, Candidates: candidates}, nil
}

func (es *electionService) GetStats(ctx context.Context) (*PlatformStats, error) {
	elections, err := es.electionRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	candidates, err := es.candidateRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	members, err := es.congressMemberRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &PlatformStats{
		ActiveElections: elections,
		Candidates:      candidates,
		CongressMembers: members,
		GeneratedAt:     time.Now(),
	}, nil
}

func (es *electionService) ListMembers(ctx context.Context, state string) ([]*types.CongressMember, error) {
	if state != "" {
		return es.congressMemberRepo.ListByState(ctx, nil, state)
	}
	return es.congressMemberRepo.List(ctx, nil)
}
