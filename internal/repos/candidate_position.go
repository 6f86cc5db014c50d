package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

type CandidatePositionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, position *types.CandidatePosition) (*types.CandidatePosition, error)
	Update(ctx context.Context, tx *gorm.DB, candidateID, positionID int, updates map[string]interface{}) (*types.CandidatePosition, error)
	ListByCandidate(ctx context.Context, tx *gorm.DB, candidateID int, category string) ([]*types.CandidatePosition, error)
	Delete(ctx context.Context, tx *gorm.DB, candidateID, positionID int) error
}

type candidatePositionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCandidatePositionRepo(db *gorm.DB, baseLog *logger.Logger) CandidatePositionRepo {
	return &candidatePositionRepo{db: db, log: baseLog.With("repo", "CandidatePositionRepo")}
}

func (pr *candidatePositionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return pr.db
}

func (pr *candidatePositionRepo) Create(ctx context.Context, tx *gorm.DB, position *types.CandidatePosition) (*types.CandidatePosition, error) {
	if err := pr.conn(tx).WithContext(ctx).Create(position).Error; err != nil {
		return nil, err
	}
	return position, nil
}

func (pr *candidatePositionRepo) Update(ctx context.Context, tx *gorm.DB, candidateID, positionID int, updates map[string]interface{}) (*types.CandidatePosition, error) {
	res := pr.conn(tx).WithContext(ctx).
		Model(&types.CandidatePosition{}).
		Where("id = ? AND candidate_id = ?", positionID, candidateID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var result types.CandidatePosition
	if err := pr.conn(tx).WithContext(ctx).First(&result, "id = ?", positionID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *candidatePositionRepo) ListByCandidate(ctx context.Context, tx *gorm.DB, candidateID int, category string) ([]*types.CandidatePosition, error) {
	q := pr.conn(tx).WithContext(ctx).Where("candidate_id = ?", candidateID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var results []*types.CandidatePosition
	if err := q.Order("last_updated DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *candidatePositionRepo) Delete(ctx context.Context, tx *gorm.DB, candidateID, positionID int) error {
	res := pr.conn(tx).WithContext(ctx).
		Where("id = ? AND candidate_id = ?", positionID, candidateID).
		Delete(&types.CandidatePosition{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
