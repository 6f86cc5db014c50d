package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

// QAFilters narrow a candidate's Q&A listing; nil booleans mean no constraint.
type QAFilters struct {
	Category   string
	IsPublic   *bool
	IsPriority *bool
}

type CandidateQARepo interface {
	Create(ctx context.Context, tx *gorm.DB, qa *types.CandidateQA) (*types.CandidateQA, error)
	Update(ctx context.Context, tx *gorm.DB, candidateID, qaID int, updates map[string]interface{}) (*types.CandidateQA, error)
	ListByCandidate(ctx context.Context, tx *gorm.DB, candidateID int, filters QAFilters) ([]*types.CandidateQA, error)
	Delete(ctx context.Context, tx *gorm.DB, candidateID, qaID int) error
}

type candidateQARepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCandidateQARepo(db *gorm.DB, baseLog *logger.Logger) CandidateQARepo {
	return &candidateQARepo{db: db, log: baseLog.With("repo", "CandidateQARepo")}
}

func (qr *candidateQARepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return qr.db
}

func (qr *candidateQARepo) Create(ctx context.Context, tx *gorm.DB, qa *types.CandidateQA) (*types.CandidateQA, error) {
	if err := qr.conn(tx).WithContext(ctx).Create(qa).Error; err != nil {
		return nil, err
	}
	return qa, nil
}

func (qr *candidateQARepo) Update(ctx context.Context, tx *gorm.DB, candidateID, qaID int, updates map[string]interface{}) (*types.CandidateQA, error) {
	res := qr.conn(tx).WithContext(ctx).
		Model(&types.CandidateQA{}).
		Where("id = ? AND candidate_id = ?", qaID, candidateID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var result types.CandidateQA
	if err := qr.conn(tx).WithContext(ctx).First(&result, "id = ?", qaID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (qr *candidateQARepo) ListByCandidate(ctx context.Context, tx *gorm.DB, candidateID int, filters QAFilters) ([]*types.CandidateQA, error) {
	q := qr.conn(tx).WithContext(ctx).Where("candidate_id = ?", candidateID)
	if filters.Category != "" {
		q = q.Where("category = ?", filters.Category)
	}
	if filters.IsPublic != nil {
		q = q.Where("is_public = ?", *filters.IsPublic)
	}
	if filters.IsPriority != nil {
		q = q.Where("is_priority = ?", *filters.IsPriority)
	}
	var results []*types.CandidateQA
	if err := q.Order("updated_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *candidateQARepo) Delete(ctx context.Context, tx *gorm.DB, candidateID, qaID int) error {
	res := qr.conn(tx).WithContext(ctx).
		Where("id = ? AND candidate_id = ?", qaID, candidateID).
		Delete(&types.CandidateQA{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
