package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/repos"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

func newElectionService(t *testing.T, db *gorm.DB) ElectionService {
	t.Helper()
	log := logger.NewNop()
	return NewElectionService(
		repos.NewElectionRepo(db, log),
		repos.NewCandidateRepo(db, log),
		repos.NewElectionResultRepo(db, log),
		repos.NewCongressMemberRepo(db, log),
		log)
}

func TestElectionService_List_ExcludesPastElections(t *testing.T) {
	db := newTestDB(t)
	svc := newElectionService(t, db)
	require.NoError(t, db.Create(&types.Election{
		Title: "Past Primary", Location: "Austin", State: "TX",
		Date: time.Now().AddDate(0, 0, -2), Type: types.ElectionTypePrimary,
		Level: types.ElectionLevelState,
	}).Error)
	require.NoError(t, db.Create(&types.Election{
		Title: "Upcoming General", Location: "Austin", State: "TX",
		Date: time.Now().AddDate(0, 1, 0), Type: types.ElectionTypeGeneral,
		Level: types.ElectionLevelState,
	}).Error)

	elections, err := svc.List(context.Background(), types.ElectionFilters{})

	require.NoError(t, err)
	require.Len(t, elections, 1)
	assert.Equal(t, "Upcoming General", elections[0].Title)
}

func TestElectionService_List_ElectionDayStillListed(t *testing.T) {
	db := newTestDB(t)
	svc := newElectionService(t, db)
	// Dated earlier today: before now, after local midnight.
	now := time.Now()
	todayMorning := time.Date(now.Year(), now.Month(), now.Day(), 0, 30, 0, 0, now.Location())
	require.NoError(t, db.Create(&types.Election{
		Title: "Election Day Vote", Location: "Reno", State: "NV",
		Date: todayMorning, Type: types.ElectionTypeGeneral, Level: types.ElectionLevelLocal,
	}).Error)

	elections, err := svc.List(context.Background(), types.ElectionFilters{})

	require.NoError(t, err)
	require.Len(t, elections, 1)
}

func TestElectionService_List_ElectionDayStillListedWithTimeframe(t *testing.T) {
	db := newTestDB(t)
	svc := newElectionService(t, db)
	now := time.Now()
	todayMorning := time.Date(now.Year(), now.Month(), now.Day(), 0, 30, 0, 0, now.Location())
	require.NoError(t, db.Create(&types.Election{
		Title: "Election Day Vote", Location: "Reno", State: "NV",
		Date: todayMorning, Type: types.ElectionTypeGeneral, Level: types.ElectionLevelLocal,
	}).Error)

	// The timeframe window must use the same midnight lower bound as the
	// baseline exclusion.
	elections, err := svc.List(context.Background(), types.ElectionFilters{
		Timeframe: types.TimeframeWeek,
	})

	require.NoError(t, err)
	require.Len(t, elections, 1)
}

func TestElectionService_List_FiltersByStateTypeAndParty(t *testing.T) {
	db := newTestDB(t)
	svc := newElectionService(t, db)
	caGeneral := &types.Election{
		Title: "CA General", Location: "Sacramento", State: "CA",
		Date: time.Now().AddDate(0, 1, 0), Type: types.ElectionTypeGeneral,
		Level: types.ElectionLevelState,
	}
	txPrimary := &types.Election{
		Title: "TX Primary", Location: "Austin", State: "TX",
		Date: time.Now().AddDate(0, 1, 0), Type: types.ElectionTypePrimary,
		Level: types.ElectionLevelState,
	}
	require.NoError(t, db.Create(caGeneral).Error)
	require.NoError(t, db.Create(txPrimary).Error)
	require.NoError(t, db.Create(&types.Candidate{
		Name: "Green Candidate", Party: "Green", ElectionID: caGeneral.ID,
	}).Error)

	byState, err := svc.List(context.Background(), types.ElectionFilters{State: "TX"})
	require.NoError(t, err)
	require.Len(t, byState, 1)
	assert.Equal(t, "TX Primary", byState[0].Title)

	byType, err := svc.List(context.Background(), types.ElectionFilters{Types: []string{types.ElectionTypeGeneral}})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "CA General", byType[0].Title)

	byParty, err := svc.List(context.Background(), types.ElectionFilters{Parties: []string{"Green"}})
	require.NoError(t, err)
	require.Len(t, byParty, 1)
	assert.Equal(t, "CA General", byParty[0].Title)
}

func TestElectionService_GetCandidates_SanitizesNonAuthenticNumbers(t *testing.T) {
	db := newTestDB(t)
	svc := newElectionService(t, db)
	election, _ := seedCandidate(t, db)

	// Second candidate with a polling number but no polling-update stamp and
	// a vote percentage with no vote count behind it.
	stale := 42
	fakePct := 51.5
	require.NoError(t, db.Create(&types.Candidate{
		Name: "John Smith", Party: "Republican", ElectionID: election.ID,
		PollingSupport: &stale, VotePercentage: &fakePct,
	}).Error)

	// Third candidate with authentic values.
	votes := 10321
	realPct := 48.2
	support := 47
	stamped := time.Now()
	require.NoError(t, db.Create(&types.Candidate{
		Name: "Maria Lopez", Party: "Independent", ElectionID: election.ID,
		PollingSupport: &support, LastPollingUpdate: &stamped,
		VotesReceived: &votes, VotePercentage: &realPct,
	}).Error)

	candidates, err := svc.GetCandidates(context.Background(), election.ID)

	require.NoError(t, err)
	require.Len(t, candidates, 3)
	byName := map[string]*types.Candidate{}
	for _, c := range candidates {
		byName[c.Name] = c
	}

	assert.Nil(t, byName["John Smith"].PollingSupport)
	assert.Nil(t, byName["John Smith"].VotePercentage)
	require.NotNil(t, byName["Maria Lopez"].PollingSupport)
	assert.Equal(t, 47, *byName["Maria Lopez"].PollingSupport)
	require.NotNil(t, byName["Maria Lopez"].VotePercentage)
}

func TestElectionService_GetResults_IncludesRollup(t *testing.T) {
	db := newTestDB(t)
	svc := newElectionService(t, db)
	election, _ := seedCandidate(t, db)
	total := 25000
	require.NoError(t, db.Create(&types.ElectionResult{
		ElectionID: election.ID, TotalVotes: &total, IsComplete: true,
		ResultsSource: "state election office",
	}).Error)

	view, err := svc.GetResults(context.Background(), election.ID)

	require.NoError(t, err)
	require.NotNil(t, view.Result)
	assert.Equal(t, 25000, *view.Result.TotalVotes)
	assert.Len(t, view.Candidates, 1)
}

func TestElectionService_GetStats(t *testing.T) {
	db := newTestDB(t)
	svc := newElectionService(t, db)
	seedCandidate(t, db)
	require.NoError(t, db.Create(&types.CongressMember{
		BioguideID: "A000001", Name: "Alex Doe", State: "CA", Chamber: "house",
	}).Error)

	stats, err := svc.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ActiveElections)
	assert.Equal(t, int64(1), stats.Candidates)
	assert.Equal(t, int64(1), stats.CongressMembers)
}
