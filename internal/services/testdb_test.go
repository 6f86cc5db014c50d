package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ballotwise/ballotwise-backend/internal/types"
)

// newTestDB opens a private in-memory sqlite database and migrates the full
// schema. Each test gets its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&types.Election{},
		&types.Candidate{},
		&types.CandidateProfile{},
		&types.CandidateDataSource{},
		&types.CandidatePosition{},
		&types.CandidateQA{},
		&types.CampaignContent{},
		&types.RealTimePolling{},
		&types.CandidateAccount{},
		&types.CampaignAccount{},
		&types.CampaignAccessLog{},
		&types.User{},
		&types.WatchlistItem{},
		&types.InteractionLog{},
		&types.ElectionResult{},
		&types.CongressMember{},
	))
	return db
}
