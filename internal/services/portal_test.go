package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

func newPortalService(t *testing.T, db *gorm.DB) PortalService {
	t.Helper()
	log := logger.NewNop()
	return NewPortalService(
		repos.NewCandidateRepo(db, log),
		repos.NewCandidateProfileRepo(db, log),
		repos.NewCandidatePositionRepo(db, log),
		repos.NewCandidateQARepo(db, log),
		repos.NewCampaignContentRepo(db, log),
		log)
}

func TestPortalService_PositionLifecycle(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	svc := newPortalService(t, db)
	ctx := context.Background()

	created, err := svc.CreatePosition(ctx, candidate.ID, PositionInput{
		Category: "Healthcare", Position: "Expand rural clinic funding",
	})
	require.NoError(t, err)
	assert.Equal(t, "healthcare", created.Category)

	updated, err := svc.UpdatePosition(ctx, candidate.ID, created.ID, PositionInput{
		Category: "healthcare", Position: "Expand rural clinic and telehealth funding",
	})
	require.NoError(t, err)
	assert.Equal(t, "Expand rural clinic and telehealth funding", updated.Position)

	listed, err := svc.ListPositions(ctx, candidate.ID, "healthcare")
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, svc.DeletePosition(ctx, candidate.ID, created.ID))
	listed, err = svc.ListPositions(ctx, candidate.ID, "")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestPortalService_CreatePositionRejectsUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	svc := newPortalService(t, db)

	_, err := svc.CreatePosition(context.Background(), candidate.ID, PositionInput{
		Category: "astrology", Position: "Stars favor bond measures",
	})

	require.ErrorIs(t, err, ErrPositionCategory)
}

func TestPortalService_QADefaultsToPublic(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	svc := newPortalService(t, db)
	ctx := context.Background()

	qa, err := svc.CreateQA(ctx, candidate.ID, QAInput{
		Question: "Where do you stand on transit?",
		Answer:   "Full funding for the regional rail plan.",
		Category: "infrastructure",
	})
	require.NoError(t, err)
	assert.True(t, qa.IsPublic)

	hidden := false
	updated, err := svc.UpdateQA(ctx, candidate.ID, qa.ID, QAInput{
		Question: qa.Question, Answer: qa.Answer, Category: qa.Category,
		IsPublic: &hidden,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsPublic)
}

func TestPortalService_ContentPublish(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	svc := newPortalService(t, db)
	ctx := context.Background()

	content, err := svc.CreateContent(ctx, candidate.ID, ContentInput{
		ContentType: "Announcement", Title: "Kickoff rally", Content: "Join us Saturday.",
	})
	require.NoError(t, err)
	assert.Equal(t, "announcement", content.ContentType)
	assert.False(t, content.IsPublished)

	published, err := svc.PublishContent(ctx, candidate.ID, content.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)
	require.NotNil(t, published.PublishDate)
}

func TestPortalService_DashboardRollsUpCounts(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	svc := newPortalService(t, db)
	profiles := NewProfileService(
		repos.NewCandidateProfileRepo(db, logger.NewNop()),
		repos.NewCandidateDataSourceRepo(db, logger.NewNop()),
		logger.NewNop())
	ctx := context.Background()

	slogan := "For every neighborhood."
	_, err := profiles.UpdateProfile(ctx, candidate.ID, nil, ProfileInput{CampaignSlogan: &slogan})
	require.NoError(t, err)

	_, err = svc.CreatePosition(ctx, candidate.ID, PositionInput{
		Category: "education", Position: "Smaller class sizes",
	})
	require.NoError(t, err)
	_, err = svc.CreateQA(ctx, candidate.ID, QAInput{Question: "Q", Answer: "A"})
	require.NoError(t, err)
	draft, err := svc.CreateContent(ctx, candidate.ID, ContentInput{
		ContentType: "post", Title: "Draft", Content: "..."})
	require.NoError(t, err)
	published, err := svc.CreateContent(ctx, candidate.ID, ContentInput{
		ContentType: "post", Title: "Live", Content: "..."})
	require.NoError(t, err)
	_, err = svc.PublishContent(ctx, candidate.ID, published.ID)
	require.NoError(t, err)
	_ = draft

	dashboard, err := svc.Dashboard(ctx, candidate.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.PositionCount)
	assert.Equal(t, 1, dashboard.QACount)
	assert.Equal(t, 1, dashboard.PublishedContent)
	assert.Equal(t, 1, dashboard.DraftContent)
	assert.Equal(t, types.VerificationPending, dashboard.VerificationStatus)
	assert.NotNil(t, dashboard.LastProfileUpdate)
	assert.Positive(t, dashboard.DataCompleteness)
}
