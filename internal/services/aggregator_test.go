package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/clients/civic"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

// stubAdapter settles with a fixed fact or error after an optional delay, so
// tests can force completion order to differ from identity order.
type stubAdapter struct {
	source string
	fact   *civic.Fact
	err    error
	delay  time.Duration
}

func (s *stubAdapter) Source() string { return s.source }

func (s *stubAdapter) Fetch(ctx context.Context, q civic.Query) (*civic.Fact, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.fact, nil
}

func seedCandidate(t *testing.T, db *gorm.DB) (*types.Election, *types.Candidate) {
	t.Helper()
	election := &types.Election{
		Title: "U.S. Senate General", Location: "California", State: "CA",
		Date: time.Now().AddDate(0, 2, 0), Type: types.ElectionTypeGeneral,
		Level: types.ElectionLevelFederal,
	}
	require.NoError(t, db.Create(election).Error)
	candidate := &types.Candidate{
		Name: "Jane Porter", Party: "Democratic", ElectionID: election.ID,
	}
	require.NoError(t, db.Create(candidate).Error)
	return election, candidate
}

func TestAggregatorService_MergesInIdentityOrderNotCompletionOrder(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	log := logger.NewNop()

	// votesmart outranks perplexity but finishes last.
	registry := civic.NewRegistryWith(log,
		&stubAdapter{source: civic.SourceVoteSmart, delay: 30 * time.Millisecond,
			fact: &civic.Fact{Source: civic.SourceVoteSmart, Biography: "Verified biography"}},
		&stubAdapter{source: civic.SourcePerplexity,
			fact: &civic.Fact{Source: civic.SourcePerplexity, Biography: "AI biography"}},
	)
	svc := NewAggregatorService(registry,
		repos.NewCandidateRepo(db, log), repos.NewCandidateProfileRepo(db, log), log)

	view, err := svc.Aggregate(context.Background(), candidate.ID, candidate.ElectionID)

	require.NoError(t, err)
	assert.Equal(t, "Verified biography", view.Biography)
	assert.Equal(t, types.SourceVerifiedExternal, view.FieldSources["biography"])
}

func TestAggregatorService_CandidateProfileBeatsEverySource(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	log := logger.NewNop()

	profile := &types.CandidateProfile{
		CandidateID:         candidate.ID,
		PoliticalExperience: "Two terms on the city council.",
		EconomyPosition:     "Supports small business tax credits",
	}
	require.NoError(t, db.Create(profile).Error)

	registry := civic.NewRegistryWith(log,
		&stubAdapter{source: civic.SourceVoteSmart,
			fact: &civic.Fact{Source: civic.SourceVoteSmart, Biography: "External biography",
				Positions: map[string]string{"economy": "External economy take"}}},
	)
	svc := NewAggregatorService(registry,
		repos.NewCandidateRepo(db, log), repos.NewCandidateProfileRepo(db, log), log)

	view, err := svc.Aggregate(context.Background(), candidate.ID, candidate.ElectionID)

	require.NoError(t, err)
	assert.Equal(t, "Two terms on the city council.", view.Biography)
	assert.Equal(t, types.SourceCandidateSupplied, view.FieldSources["biography"])
	assert.Equal(t, "Supports small business tax credits", view.Positions["economy"])
	assert.InDelta(t, 1.0, view.Confidence["biography"], 0.001)
	assert.True(t, view.HasAuthenticData)
}

func TestAggregatorService_TotalAdapterFailureKeepsBaseline(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	log := logger.NewNop()

	registry := civic.NewRegistryWith(log,
		&stubAdapter{source: civic.SourceVoteSmart, err: &civic.AdapterError{Source: civic.SourceVoteSmart, StatusCode: 503}},
		&stubAdapter{source: civic.SourcePerplexity, err: &civic.AdapterError{Source: civic.SourcePerplexity, StatusCode: 500}},
	)
	svc := NewAggregatorService(registry,
		repos.NewCandidateRepo(db, log), repos.NewCandidateProfileRepo(db, log), log)

	view, err := svc.Aggregate(context.Background(), candidate.ID, candidate.ElectionID)

	require.NoError(t, err)
	assert.Equal(t, "Jane Porter", view.Name)
	assert.Equal(t, "Democratic", view.Party)
	assert.Empty(t, view.Biography)
	assert.Empty(t, view.SourcesUsed)
	assert.Len(t, view.SourceErrors, 2)
}

func TestAdapterFailureStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "upstream_error",
		adapterFailureStatus(&civic.AdapterError{Source: civic.SourceVoteSmart, StatusCode: 503}))
	assert.Equal(t, "upstream_error",
		adapterFailureStatus(&civic.AdapterError{Source: civic.SourceOpenFEC, StatusCode: 429}))
	assert.Equal(t, "error",
		adapterFailureStatus(&civic.AdapterError{Source: civic.SourceOpenStates, StatusCode: 404}))
	assert.Equal(t, "timeout", adapterFailureStatus(context.DeadlineExceeded))
	assert.Equal(t, "timeout",
		adapterFailureStatus(fmt.Errorf("fetch: %w", context.DeadlineExceeded)))
	assert.Equal(t, "error", adapterFailureStatus(errors.New("malformed payload")))
}

func TestAggregatorService_ConfidenceSumsWeightsCapped(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	log := logger.NewNop()

	registry := civic.NewRegistryWith(log,
		&stubAdapter{source: civic.SourceVoteSmart,
			fact: &civic.Fact{Source: civic.SourceVoteSmart, Biography: "A"}},
		&stubAdapter{source: civic.SourceProPublica,
			fact: &civic.Fact{Source: civic.SourceProPublica, Biography: "B"}},
		&stubAdapter{source: civic.SourceOpenStates,
			fact: &civic.Fact{Source: civic.SourceOpenStates, Biography: "C"}},
	)
	svc := NewAggregatorService(registry,
		repos.NewCandidateRepo(db, log), repos.NewCandidateProfileRepo(db, log), log)

	view, err := svc.Aggregate(context.Background(), candidate.ID, candidate.ElectionID)

	require.NoError(t, err)
	// 0.4 + 0.3 + 0.1
	assert.InDelta(t, 0.8, view.Confidence["biography"], 0.001)
}

func TestAggregatorService_CacheHitSkipsAdapters(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	log := logger.NewNop()

	calls := 0
	counting := &countingAdapter{source: civic.SourceVoteSmart, calls: &calls,
		fact: &civic.Fact{Source: civic.SourceVoteSmart, Biography: "Once"}}
	registry := civic.NewRegistryWith(log, counting)
	svc := NewAggregatorService(registry,
		repos.NewCandidateRepo(db, log), repos.NewCandidateProfileRepo(db, log), log)

	_, err := svc.Aggregate(context.Background(), candidate.ID, candidate.ElectionID)
	require.NoError(t, err)
	_, err = svc.Aggregate(context.Background(), candidate.ID, candidate.ElectionID)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

type countingAdapter struct {
	source string
	fact   *civic.Fact
	calls  *int
}

func (c *countingAdapter) Source() string { return c.source }

func (c *countingAdapter) Fetch(ctx context.Context, q civic.Query) (*civic.Fact, error) {
	*c.calls++
	return c.fact, nil
}

func TestAggregatorService_PollingPctFromFiveThirtyEight(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	log := logger.NewNop()

	pct := 46.5
	registry := civic.NewRegistryWith(log,
		&stubAdapter{source: civic.SourceFiveThirtyEight,
			fact: &civic.Fact{Source: civic.SourceFiveThirtyEight, PollingPct: &pct}},
	)
	svc := NewAggregatorService(registry,
		repos.NewCandidateRepo(db, log), repos.NewCandidateProfileRepo(db, log), log)

	view, err := svc.Aggregate(context.Background(), candidate.ID, candidate.ElectionID)

	require.NoError(t, err)
	require.NotNil(t, view.PollingPct)
	assert.InDelta(t, 46.5, *view.PollingPct, 0.001)
}
