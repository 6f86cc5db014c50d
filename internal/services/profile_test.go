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

func newProfileService(t *testing.T) (ProfileService, repos.CandidateDataSourceRepo, *types.Candidate) {
	t.Helper()
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	log := logger.NewNop()
	profileRepo := repos.NewCandidateProfileRepo(db, log)
	dataSourceRepo := repos.NewCandidateDataSourceRepo(db, log)
	return NewProfileService(profileRepo, dataSourceRepo, log), dataSourceRepo, candidate
}

func strPtr(s string) *string { return &s }

func TestProfileService_UpdateProfile_RecordsOneRowPerChangedField(t *testing.T) {
	svc, dataSourceRepo, candidate := newProfileService(t)
	ctx := context.Background()

	profile, err := svc.UpdateProfile(ctx, candidate.ID, nil, ProfileInput{
		FullName:        strPtr("Jane Porter"),
		EconomyPosition: strPtr("Supports small business tax credits"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Jane Porter", profile.FullName)

	rows, err := dataSourceRepo.GetByCandidateID(ctx, nil, candidate.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, types.SourceCandidateSupplied, row.SourceType)
	}
}

func TestProfileService_UpdateProfile_IdenticalResubmitIsIdempotent(t *testing.T) {
	svc, dataSourceRepo, candidate := newProfileService(t)
	ctx := context.Background()
	input := ProfileInput{
		FullName:        strPtr("Jane Porter"),
		CampaignSlogan:  strPtr("Forward together"),
		EconomyPosition: strPtr("Supports small business tax credits"),
	}

	first, err := svc.UpdateProfile(ctx, candidate.ID, nil, input)
	require.NoError(t, err)
	second, err := svc.UpdateProfile(ctx, candidate.ID, nil, input)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.DataCompleteness, second.DataCompleteness)

	rows, err := dataSourceRepo.GetByCandidateID(ctx, nil, candidate.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestProfileService_UpdateProfile_CompletenessGrowsWithFields(t *testing.T) {
	svc, _, candidate := newProfileService(t)
	ctx := context.Background()

	sparse, err := svc.UpdateProfile(ctx, candidate.ID, nil, ProfileInput{
		FullName: strPtr("Jane Porter"),
	})
	require.NoError(t, err)

	fuller, err := svc.UpdateProfile(ctx, candidate.ID, nil, ProfileInput{
		CurrentOccupation:   strPtr("Attorney"),
		PoliticalExperience: strPtr("City council, two terms"),
		CampaignSlogan:      strPtr("Forward together"),
	})
	require.NoError(t, err)

	assert.Greater(t, fuller.DataCompleteness, sparse.DataCompleteness)
}

func TestProfileService_SetVerificationStatus_PendingToVerified(t *testing.T) {
	svc, _, candidate := newProfileService(t)
	ctx := context.Background()
	_, err := svc.UpdateProfile(ctx, candidate.ID, nil, ProfileInput{FullName: strPtr("Jane Porter")})
	require.NoError(t, err)

	require.NoError(t, svc.SetVerificationStatus(ctx, candidate.ID, types.VerificationVerified))
}

func TestProfileService_SetVerificationStatus_TerminalStatesRejectChanges(t *testing.T) {
	svc, _, candidate := newProfileService(t)
	ctx := context.Background()
	_, err := svc.UpdateProfile(ctx, candidate.ID, nil, ProfileInput{FullName: strPtr("Jane Porter")})
	require.NoError(t, err)
	require.NoError(t, svc.SetVerificationStatus(ctx, candidate.ID, types.VerificationNeedsReview))

	err = svc.SetVerificationStatus(ctx, candidate.ID, types.VerificationVerified)

	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestProfileService_SetVerificationStatus_RejectsUnknownTarget(t *testing.T) {
	svc, _, candidate := newProfileService(t)

	err := svc.SetVerificationStatus(context.Background(), candidate.ID, "approved")

	require.ErrorIs(t, err, ErrInvalidTransition)
}
