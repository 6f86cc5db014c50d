package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

type RealTimePollingRepo interface {
	Append(ctx context.Context, tx *gorm.DB, rows []*types.RealTimePolling) error
	ListByCandidate(ctx context.Context, tx *gorm.DB, candidateID int, since time.Time) ([]*types.RealTimePolling, error)
	ListByElection(ctx context.Context, tx *gorm.DB, electionID int, since time.Time) ([]*types.RealTimePolling, error)
	LatestForCandidate(ctx context.Context, tx *gorm.DB, candidateID, electionID int) (*types.RealTimePolling, error)
}

type realTimePollingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRealTimePollingRepo(db *gorm.DB, baseLog *logger.Logger) RealTimePollingRepo {
	return &realTimePollingRepo{db: db, log: baseLog.With("repo", "RealTimePollingRepo")}
}

func (rr *realTimePollingRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

func (rr *realTimePollingRepo) Append(ctx context.Context, tx *gorm.DB, rows []*types.RealTimePolling) error {
	if len(rows) == 0 {
		return nil
	}
	return rr.conn(tx).WithContext(ctx).Create(&rows).Error
}

func (rr *realTimePollingRepo) ListByCandidate(ctx context.Context, tx *gorm.DB, candidateID int, since time.Time) ([]*types.RealTimePolling, error) {
	var results []*types.RealTimePolling
	if err := rr.conn(tx).WithContext(ctx).
		Where("candidate_id = ? AND poll_date >= ?", candidateID, since).
		Order("poll_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *realTimePollingRepo) ListByElection(ctx context.Context, tx *gorm.DB, electionID int, since time.Time) ([]*types.RealTimePolling, error) {
	var results []*types.RealTimePolling
	if err := rr.conn(tx).WithContext(ctx).
		Where("election_id = ? AND poll_date >= ?", electionID, since).
		Order("poll_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *realTimePollingRepo) LatestForCandidate(ctx context.Context, tx *gorm.DB, candidateID, electionID int) (*types.RealTimePolling, error) {
	var result types.RealTimePolling
	err := rr.conn(tx).WithContext(ctx).
		Where("candidate_id = ? AND election_id = ?", candidateID, electionID).
		Order("poll_date DESC, id DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
