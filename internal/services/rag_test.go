package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

func TestRAGService_NoProfileReturnsPlaceholders(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	log := logger.NewNop()
	svc := NewRAGService(
		repos.NewCandidateRepo(db, log),
		repos.NewCandidateProfileRepo(db, log),
		repos.NewCandidateDataSourceRepo(db, log),
		log)

	enriched, err := svc.GetCandidateWithRAG(context.Background(), candidate.ID)

	require.NoError(t, err)
	assert.Equal(t, "Jane Porter", enriched.Candidate.Name)
	assert.Equal(t, ProfilePlaceholder, enriched.FullName)
	assert.Equal(t, ProfilePlaceholder, enriched.Positions["economy"])
	assert.Nil(t, enriched.Education)
	assert.Equal(t, types.VerificationPending, enriched.VerificationStatus)
	assert.False(t, enriched.HasAuthenticData)
}

func TestRAGService_ProfileValuesWinOverPlaceholders(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	require.NoError(t, db.Create(&types.CandidateProfile{
		CandidateID:        candidate.ID,
		FullName:           "Jane Ellen Porter",
		EconomyPosition:    "Supports small business tax credits",
		VerificationStatus: types.VerificationVerified,
	}).Error)
	log := logger.NewNop()
	svc := NewRAGService(
		repos.NewCandidateRepo(db, log),
		repos.NewCandidateProfileRepo(db, log),
		repos.NewCandidateDataSourceRepo(db, log),
		log)

	enriched, err := svc.GetCandidateWithRAG(context.Background(), candidate.ID)

	require.NoError(t, err)
	assert.Equal(t, "Jane Ellen Porter", enriched.FullName)
	assert.Equal(t, "Supports small business tax credits", enriched.Positions["economy"])
	assert.Equal(t, ProfilePlaceholder, enriched.Positions["healthcare"])
	assert.Equal(t, types.VerificationVerified, enriched.VerificationStatus)
	assert.True(t, enriched.HasAuthenticData)
}

func TestRAGService_AttributionUsesNewestRowPerField(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	log := logger.NewNop()
	dataSourceRepo := repos.NewCandidateDataSourceRepo(db, log)
	ctx := context.Background()

	require.NoError(t, dataSourceRepo.Record(ctx, nil, []*types.CandidateDataSource{
		{CandidateID: candidate.ID, FieldName: "full_name", SourceType: types.SourceAIResearch, ConfidenceScore: 40},
	}))
	require.NoError(t, dataSourceRepo.Record(ctx, nil, []*types.CandidateDataSource{
		{CandidateID: candidate.ID, FieldName: "full_name", SourceType: types.SourceCandidateSupplied, ConfidenceScore: 100},
	}))

	svc := NewRAGService(
		repos.NewCandidateRepo(db, log),
		repos.NewCandidateProfileRepo(db, log),
		dataSourceRepo,
		log)

	enriched, err := svc.GetCandidateWithRAG(ctx, candidate.ID)

	require.NoError(t, err)
	attr := enriched.AttributionFor("full_name")
	require.NotNil(t, attr)
	assert.Equal(t, types.SourceCandidateSupplied, attr.SourceType)
	assert.Nil(t, enriched.AttributionFor("education"))
}
