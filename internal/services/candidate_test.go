package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/clients/civic"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

func newCandidateService(t *testing.T, db *gorm.DB, adapters ...civic.Adapter) (CandidateService, *int) {
	t.Helper()
	log := logger.NewNop()
	candidateRepo := repos.NewCandidateRepo(db, log)
	profileRepo := repos.NewCandidateProfileRepo(db, log)

	aggregatorCalls := 0
	counting := &aggregatorSpy{
		inner: NewAggregatorService(civic.NewRegistryWith(log, adapters...), candidateRepo, profileRepo, log),
		calls: &aggregatorCalls,
	}
	rag := NewRAGService(candidateRepo, profileRepo, repos.NewCandidateDataSourceRepo(db, log), log)
	svc := NewCandidateService(candidateRepo, repos.NewCandidatePositionRepo(db, log), rag, counting, log)
	return svc, &aggregatorCalls
}

type aggregatorSpy struct {
	inner AggregatorService
	calls *int
}

func (a *aggregatorSpy) Aggregate(ctx context.Context, candidateID, electionID int) (*MergedCandidateView, error) {
	*a.calls++
	return a.inner.Aggregate(ctx, candidateID, electionID)
}

func (a *aggregatorSpy) AggregateMany(ctx context.Context, candidateIDs []int, electionID int) ([]*MergedCandidateView, error) {
	*a.calls++
	return a.inner.AggregateMany(ctx, candidateIDs, electionID)
}

func (a *aggregatorSpy) SourceStatus() map[string]bool { return a.inner.SourceStatus() }

func TestCandidateService_GetDetailed_LocalFirstShortCircuit(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	require.NoError(t, db.Create(&types.CandidateProfile{
		CandidateID:         candidate.ID,
		PoliticalExperience: "Two terms on the city council.",
	}).Error)
	svc, aggregatorCalls := newCandidateService(t, db)

	details, err := svc.GetDetailed(context.Background(), []int{candidate.ID}, candidate.ElectionID)

	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, DataSourceLocal, details[0].DataSource)
	assert.True(t, details[0].HasAuthenticData)
	assert.Equal(t, "Two terms on the city council.", details[0].Background)
	assert.Equal(t, 0, *aggregatorCalls, "local data must short-circuit aggregation")
}

func TestCandidateService_GetDetailed_FallsBackToAggregation(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	svc, aggregatorCalls := newCandidateService(t, db, &stubAdapter{
		source: civic.SourceVoteSmart,
		fact:   &civic.Fact{Source: civic.SourceVoteSmart, Biography: "External biography"},
	})

	details, err := svc.GetDetailed(context.Background(), []int{candidate.ID}, candidate.ElectionID)

	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, DataSourceAggregated, details[0].DataSource)
	assert.False(t, details[0].HasAuthenticData)
	assert.Equal(t, "External biography", details[0].Background)
	assert.Equal(t, 1, *aggregatorCalls)
	require.NotNil(t, details[0].Merged)
}

func TestCandidateService_GetDetailed_UnknownIDFails(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	svc, aggregatorCalls := newCandidateService(t, db)

	_, err := svc.GetDetailed(context.Background(), []int{candidate.ID, 9999}, candidate.ElectionID)

	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Equal(t, 0, *aggregatorCalls, "unknown id must fail before any enrichment")
}

func TestCandidateService_GetPositions_FiltersByCategory(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	log := logger.NewNop()
	positionRepo := repos.NewCandidatePositionRepo(db, log)
	ctx := context.Background()
	_, err := positionRepo.Create(ctx, nil, &types.CandidatePosition{
		CandidateID: candidate.ID, Category: "economy", Position: "Lower taxes",
	})
	require.NoError(t, err)
	_, err = positionRepo.Create(ctx, nil, &types.CandidatePosition{
		CandidateID: candidate.ID, Category: "healthcare", Position: "Expand coverage",
	})
	require.NoError(t, err)
	svc, _ := newCandidateService(t, db)

	all, err := svc.GetPositions(ctx, candidate.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	economy, err := svc.GetPositions(ctx, candidate.ID, "economy")
	require.NoError(t, err)
	require.Len(t, economy, 1)
	assert.Equal(t, "Lower taxes", economy[0].Position)
}
