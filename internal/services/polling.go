package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ballotwise/ballotwise-backend/internal/clients/civic"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

// PollingUpdateSummary reports one polling refresh run over an election.
type PollingUpdateSummary struct {
	ElectionID int      `json:"election_id"`
	Updated    int      `json:"updated"`
	Skipped    int      `json:"skipped"`
	Source     string   `json:"source"`
	Errors     []string `json:"errors,omitempty"`
}

type PollingService interface {
	UpdateElectionPolling(ctx context.Context, electionID int) (*PollingUpdateSummary, error)
	GetPollingTrends(ctx context.Context, candidateID, days int) ([]*types.RealTimePolling, error)
	GetElectionTrends(ctx context.Context, electionID, days int) ([]*types.RealTimePolling, error)
}

type pollingService struct {
	log           *logger.Logger
	registry      *civic.Registry
	candidateRepo repos.CandidateRepo
	pollingRepo   repos.RealTimePollingRepo
}

func NewPollingService(
	registry *civic.Registry,
	candidateRepo repos.CandidateRepo,
	pollingRepo repos.RealTimePollingRepo,
	baseLog *logger.Logger,
) PollingService {
	return &pollingService{
		log:           baseLog.With("service", "PollingService"),
		registry:      registry,
		candidateRepo: candidateRepo,
		pollingRepo:   pollingRepo,
	}
}

// UpdateElectionPolling resolves a fresh polling number per candidate, keeps
// the full history as append-only rows, and overwrites each candidate's
// denormalized snapshot. The snapshot write is last-writer-wins; concurrent
// runs race and the later write stands.
func (ps *pollingService) UpdateElectionPolling(ctx context.Context, electionID int) (*PollingUpdateSummary, error) {
	candidates, err := ps.candidateRepo.GetByElection(ctx, nil, electionID)
	if err != nil {
		return nil, fmt.Errorf("load candidates for election %d: %w", electionID, err)
	}

	adapter := ps.pollingAdapter()
	summary := &PollingUpdateSummary{ElectionID: electionID, Source: civic.SourceFiveThirtyEight}
	if adapter == nil {
		summary.Skipped = len(candidates)
		summary.Errors = append(summary.Errors, "polling source not configured")
		return summary, nil
	}

	now := time.Now()
	for _, candidate := range candidates {
		fact, err := adapter.Fetch(ctx, civic.Query{
			CandidateID: candidate.ID,
			Name:        candidate.Name,
			Party:       candidate.Party,
		})
		if err != nil || fact.PollingPct == nil {
			summary.Skipped++
			if err != nil {
				ps.log.Warn("polling fetch failed", "candidate_id", candidate.ID, "error", err)
				summary.Errors = append(summary.Errors, err.Error())
			}
			continue
		}

		pct := *fact.PollingPct
		trend := ps.trendFor(ctx, candidate, pct)

		row := &types.RealTimePolling{
			CandidateID:    candidate.ID,
			ElectionID:     electionID,
			PollDate:       now,
			SupportLevel:   &pct,
			TrendDirection: trend,
			Methodology:    civic.SourceFiveThirtyEight,
		}
		if err := ps.pollingRepo.Append(ctx, nil, []*types.RealTimePolling{row}); err != nil {
			return nil, fmt.Errorf("append polling row for candidate %d: %w", candidate.ID, err)
		}
		if err := ps.candidateRepo.UpdatePollingSnapshot(ctx, nil, candidate.ID, repos.PollingSnapshot{
			PollingSupport:    int(math.Round(pct)),
			PollingTrend:      trend,
			PollingSource:     civic.SourceFiveThirtyEight,
			LastPollingUpdate: now,
		}); err != nil {
			return nil, fmt.Errorf("update polling snapshot for candidate %d: %w", candidate.ID, err)
		}
		summary.Updated++
	}

	ps.log.Info("election polling updated",
		"election_id", electionID, "updated", summary.Updated, "skipped", summary.Skipped)
	return summary, nil
}

// trendFor compares the new number with the latest stored row.
func (ps *pollingService) trendFor(ctx context.Context, candidate *types.Candidate, pct float64) string {
	latest, err := ps.pollingRepo.LatestForCandidate(ctx, nil, candidate.ID, candidate.ElectionID)
	if err != nil || latest == nil || latest.SupportLevel == nil {
		return "stable"
	}
	switch {
	case pct > *latest.SupportLevel:
		return "up"
	case pct < *latest.SupportLevel:
		return "down"
	default:
		return "stable"
	}
}

func (ps *pollingService) pollingAdapter() civic.Adapter {
	for _, a := range ps.registry.Adapters() {
		if a.Source() == civic.SourceFiveThirtyEight {
			return a
		}
	}
	return nil
}

func (ps *pollingService) GetPollingTrends(ctx context.Context, candidateID, days int) ([]*types.RealTimePolling, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	return ps.pollingRepo.ListByCandidate(ctx, nil, candidateID, since)
}

func (ps *pollingService) GetElectionTrends(ctx context.Context, electionID, days int) ([]*types.RealTimePolling, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	return ps.pollingRepo.ListByElection(ctx, nil, electionID, since)
}
