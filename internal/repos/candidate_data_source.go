package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

type CandidateDataSourceRepo interface {
	Record(ctx context.Context, tx *gorm.DB, sources []*types.CandidateDataSource) error
	GetByCandidateID(ctx context.Context, tx *gorm.DB, candidateID int) ([]*types.CandidateDataSource, error)
}

type candidateDataSourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCandidateDataSourceRepo(db *gorm.DB, baseLog *logger.Logger) CandidateDataSourceRepo {
	return &candidateDataSourceRepo{db: db, log: baseLog.With("repo", "CandidateDataSourceRepo")}
}

func (dr *candidateDataSourceRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return dr.db
}

func (dr *candidateDataSourceRepo) Record(ctx context.Context, tx *gorm.DB, sources []*types.CandidateDataSource) error {
	if len(sources) == 0 {
		return nil
	}
	return dr.conn(tx).WithContext(ctx).Create(&sources).Error
}

// GetByCandidateID returns attribution rows newest-first so the first row
// per field name is the current attribution.
func (dr *candidateDataSourceRepo) GetByCandidateID(ctx context.Context, tx *gorm.DB, candidateID int) ([]*types.CandidateDataSource, error) {
	var results []*types.CandidateDataSource
	if err := dr.conn(tx).WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
