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

func newCampaignService(t *testing.T, db *gorm.DB) CampaignService {
	t.Helper()
	log := logger.NewNop()
	// No redis in tests; usage falls back to counting access-log rows.
	return NewCampaignService(
		repos.NewCampaignAccountRepo(db, log),
		repos.NewCandidateRepo(db, log),
		repos.NewElectionRepo(db, log),
		repos.NewRealTimePollingRepo(db, log),
		nil,
		log)
}

func registerAccount(t *testing.T, svc CampaignService, candidateID int, tier string) *types.CampaignAccount {
	t.Helper()
	account, err := svc.Register(context.Background(), CampaignRegistration{
		CandidateID:      candidateID,
		OrganizationName: "Porter for Senate",
		ContactEmail:     "data@porter2026.org",
		SubscriptionTier: tier,
	})
	require.NoError(t, err)
	return account
}

func TestCampaignService_RegisterIssuesAPIKey(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	svc := newCampaignService(t, db)

	account := registerAccount(t, svc, candidate.ID, "")

	assert.NotEmpty(t, account.APIKey)
	assert.Equal(t, types.TierBasic, account.SubscriptionTier)
	assert.Equal(t, 1000, account.MonthlyAPILimit)

	authed, err := svc.Authenticate(context.Background(), account.APIKey)
	require.NoError(t, err)
	assert.Equal(t, account.ID, authed.ID)
}

func TestCampaignService_AuthenticateRejectsUnknownKey(t *testing.T) {
	db := newTestDB(t)
	svc := newCampaignService(t, db)

	_, err := svc.Authenticate(context.Background(), "no-such-key")

	require.ErrorIs(t, err, ErrInvalidAPIKey)
}

func TestCampaignService_RegisterRejectsUnknownTier(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	svc := newCampaignService(t, db)

	_, err := svc.Register(context.Background(), CampaignRegistration{
		CandidateID: candidate.ID, OrganizationName: "X", ContactEmail: "a@b.c",
		SubscriptionTier: "platinum",
	})

	require.ErrorIs(t, err, ErrUnknownTier)
}

func TestCampaignService_TierGating(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	svc := newCampaignService(t, db)
	basic := registerAccount(t, svc, candidate.ID, types.TierBasic)
	premium := registerAccount2(t, svc, candidate.ID, types.TierPremium)

	_, err := svc.GetAnalytics(context.Background(), basic, candidate.ElectionID)
	require.ErrorIs(t, err, ErrTierInsufficient)

	analytics, err := svc.GetAnalytics(context.Background(), premium, candidate.ElectionID)
	require.NoError(t, err)
	assert.Len(t, analytics.Candidates, 1)

	_, err = svc.GetPolling(context.Background(), basic, candidate.ElectionID, 30)
	require.NoError(t, err)
}

func registerAccount2(t *testing.T, svc CampaignService, candidateID int, tier string) *types.CampaignAccount {
	t.Helper()
	account, err := svc.Register(context.Background(), CampaignRegistration{
		CandidateID:      candidateID,
		OrganizationName: "Second Org",
		ContactEmail:     "ops@second.org",
		SubscriptionTier: tier,
	})
	require.NoError(t, err)
	return account
}

func TestCampaignService_QuotaExceededAfterLimit(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	svc := newCampaignService(t, db)
	account := registerAccount(t, svc, candidate.ID, types.TierBasic)
	// Tiny limit to keep the test fast.
	require.NoError(t, db.Model(&types.CampaignAccount{}).
		Where("id = ?", account.ID).Update("monthly_api_limit", 2).Error)
	account.MonthlyAPILimit = 2
	ctx := context.Background()
	record := AccessRecord{Endpoint: "/api/campaign/polling/1", Method: "GET", StatusCode: 200}

	require.NoError(t, svc.ConsumeQuota(ctx, account, record))
	require.NoError(t, svc.ConsumeQuota(ctx, account, record))
	err := svc.ConsumeQuota(ctx, account, record)

	require.ErrorIs(t, err, ErrQuotaExceeded)

	// Every call, including the rejected one, leaves an audit row.
	var logged int64
	require.NoError(t, db.Model(&types.CampaignAccessLog{}).
		Where("campaign_id = ?", account.ID).Count(&logged).Error)
	assert.Equal(t, int64(3), logged)
}

func TestCampaignService_SubscriptionReportsUsage(t *testing.T) {
	db := newTestDB(t)
	_, candidate := seedCandidate(t, db)
	svc := newCampaignService(t, db)
	account := registerAccount(t, svc, candidate.ID, types.TierPremium)
	ctx := context.Background()
	require.NoError(t, svc.ConsumeQuota(ctx, account, AccessRecord{Endpoint: "/x", Method: "GET"}))

	info, err := svc.GetSubscription(ctx, account)

	require.NoError(t, err)
	assert.Equal(t, types.TierPremium, info.SubscriptionTier)
	assert.Equal(t, int64(1), info.CallsThisMonth)
	assert.Equal(t, 10000, info.MonthlyAPILimit)
}
