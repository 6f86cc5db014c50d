package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

func newAnalyticsService(t *testing.T, db *gorm.DB) AnalyticsService {
	t.Helper()
	log := logger.NewNop()
	return NewAnalyticsService(
		db,
		repos.NewUserRepo(db, log),
		repos.NewWatchlistRepo(db, log),
		repos.NewInteractionLogRepo(db, log),
		log)
}

func newWatchlistService(t *testing.T, db *gorm.DB) WatchlistService {
	t.Helper()
	log := logger.NewNop()
	return NewWatchlistService(
		repos.NewWatchlistRepo(db, log),
		repos.NewElectionRepo(db, log),
		log)
}

func seedUser(t *testing.T, db *gorm.DB) *types.User {
	t.Helper()
	user := &types.User{
		Email:        "voter@example.com",
		PasswordHash: "x",
		FirstName:    "Ada",
		LastName:     "Nguyen",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestAnalyticsService_LogInteractionAcceptsAnonymous(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(t, db)

	err := svc.LogInteraction(context.Background(), nil, InteractionInput{
		SessionID:  "sess-1",
		ActionType: "view_candidate",
		TargetID:   "42",
		TargetType: "candidate",
		Metadata:   datatypes.JSON(`{"referrer":"search"}`),
	})

	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&types.InteractionLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAnalyticsService_ExportUserData(t *testing.T) {
	db := newTestDB(t)
	election, _ := seedCandidate(t, db)
	user := seedUser(t, db)
	analytics := newAnalyticsService(t, db)
	watchlist := newWatchlistService(t, db)
	ctx := context.Background()

	_, err := watchlist.Add(ctx, user.ID, election.ID)
	require.NoError(t, err)
	require.NoError(t, analytics.LogInteraction(ctx, &user.ID, InteractionInput{
		ActionType: "watch_election", TargetType: "election",
	}))

	export, err := analytics.ExportUserData(ctx, user.ID)

	require.NoError(t, err)
	assert.Equal(t, user.Email, export.User.Email)
	require.Len(t, export.Watchlist, 1)
	assert.Equal(t, election.ID, export.Watchlist[0].ElectionID)
	assert.Len(t, export.Interactions, 1)
	assert.False(t, export.ExportedAt.IsZero())
}

func TestAnalyticsService_DeleteUserDataRemovesEverything(t *testing.T) {
	db := newTestDB(t)
	election, _ := seedCandidate(t, db)
	user := seedUser(t, db)
	analytics := newAnalyticsService(t, db)
	watchlist := newWatchlistService(t, db)
	ctx := context.Background()

	_, err := watchlist.Add(ctx, user.ID, election.ID)
	require.NoError(t, err)
	require.NoError(t, analytics.LogInteraction(ctx, &user.ID, InteractionInput{
		ActionType: "view_candidate",
	}))

	require.NoError(t, analytics.DeleteUserData(ctx, user.ID))

	var users, items, logs int64
	require.NoError(t, db.Model(&types.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&types.WatchlistItem{}).Where("user_id = ?", user.ID).Count(&items).Error)
	require.NoError(t, db.Model(&types.InteractionLog{}).Where("user_id = ?", user.ID).Count(&logs).Error)
	assert.Zero(t, users)
	assert.Zero(t, items)
	assert.Zero(t, logs)
}

func TestAnalyticsService_DeleteUserDataUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(t, db)

	err := svc.DeleteUserData(context.Background(), 9999)

	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestWatchlistService_AddIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	election, _ := seedCandidate(t, db)
	user := seedUser(t, db)
	svc := newWatchlistService(t, db)
	ctx := context.Background()

	first, err := svc.Add(ctx, user.ID, election.ID)
	require.NoError(t, err)
	second, err := svc.Add(ctx, user.ID, election.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	items, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Election)
	assert.Equal(t, election.Title, items[0].Election.Title)
}

func TestWatchlistService_AddRejectsUnknownElection(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	svc := newWatchlistService(t, db)

	_, err := svc.Add(context.Background(), user.ID, 9999)

	require.Error(t, err)
}

func TestWatchlistService_Remove(t *testing.T) {
	db := newTestDB(t)
	election, _ := seedCandidate(t, db)
	user := seedUser(t, db)
	svc := newWatchlistService(t, db)
	ctx := context.Background()

	_, err := svc.Add(ctx, user.ID, election.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, user.ID, election.ID))

	items, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
