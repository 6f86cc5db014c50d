package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

// PollingSnapshot is the denormalized "latest polling" view mirrored onto a
// candidate row by the polling update operation.
type PollingSnapshot struct {
	PollingSupport    int
	PollingTrend      string
	PollingSource     string
	LastPollingUpdate time.Time
}

type CandidateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, candidates []*types.Candidate) ([]*types.Candidate, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*types.Candidate, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]*types.Candidate, error)
	GetByElection(ctx context.Context, tx *gorm.DB, electionID int) ([]*types.Candidate, error)
	Update(ctx context.Context, tx *gorm.DB, candidate *types.Candidate) error
	UpdatePollingSnapshot(ctx context.Context, tx *gorm.DB, candidateID int, snap PollingSnapshot) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type candidateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCandidateRepo(db *gorm.DB, baseLog *logger.Logger) CandidateRepo {
	return &candidateRepo{db: db, log: baseLog.With("repo", "CandidateRepo")}
}

func (cr *candidateRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *candidateRepo) Create(ctx context.Context, tx *gorm.DB, candidates []*types.Candidate) ([]*types.Candidate, error) {
	if len(candidates) == 0 {
		return []*types.Candidate{}, nil
	}
	if err := cr.conn(tx).WithContext(ctx).Create(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

func (cr *candidateRepo) GetByID(ctx context.Context, tx *gorm.DB, id int) (*types.Candidate, error) {
	var result types.Candidate
	if err := cr.conn(tx).WithContext(ctx).
		Preload("Election").
		First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *candidateRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]*types.Candidate, error) {
	var results []*types.Candidate
	if len(ids) == 0 {
		return results, nil
	}
	if err := cr.conn(tx).WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *candidateRepo) GetByElection(ctx context.Context, tx *gorm.DB, electionID int) ([]*types.Candidate, error) {
	var results []*types.Candidate
	if err := cr.conn(tx).WithContext(ctx).
		Where("election_id = ?", electionID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *candidateRepo) Update(ctx context.Context, tx *gorm.DB, candidate *types.Candidate) error {
	return cr.conn(tx).WithContext(ctx).Save(candidate).Error
}

func (cr *candidateRepo) UpdatePollingSnapshot(ctx context.Context, tx *gorm.DB, candidateID int, snap PollingSnapshot) error {
	return cr.conn(tx).WithContext(ctx).
		Model(&types.Candidate{}).
		Where("id = ?", candidateID).
		Updates(map[string]interface{}{
			"polling_support":     snap.PollingSupport,
			"polling_trend":       snap.PollingTrend,
			"polling_source":      snap.PollingSource,
			"last_polling_update": snap.LastPollingUpdate,
		}).Error
}

func (cr *candidateRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := cr.conn(tx).WithContext(ctx).Model(&types.Candidate{}).Count(&count).Error
	return count, err
}
