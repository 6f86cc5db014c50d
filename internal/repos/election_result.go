package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

type ElectionResultRepo interface {
	GetByElection(ctx context.Context, tx *gorm.DB, electionID int) (*types.ElectionResult, error)
	Upsert(ctx context.Context, tx *gorm.DB, result *types.ElectionResult) (*types.ElectionResult, error)
}

type electionResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewElectionResultRepo(db *gorm.DB, baseLog *logger.Logger) ElectionResultRepo {
	return &electionResultRepo{db: db, log: baseLog.With("repo", "ElectionResultRepo")}
}

func (er *electionResultRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return er.db
}

func (er *electionResultRepo) GetByElection(ctx context.Context, tx *gorm.DB, electionID int) (*types.ElectionResult, error) {
	var result types.ElectionResult
	err := er.conn(tx).WithContext(ctx).
		Where("election_id = ?", electionID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Upsert keys on election_id so a re-run overwrites the standing row.
func (er *electionResultRepo) Upsert(ctx context.Context, tx *gorm.DB, result *types.ElectionResult) (*types.ElectionResult, error) {
	existing, err := er.GetByElection(ctx, tx, result.ElectionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		result.ID = existing.ID
	}
	if err := er.conn(tx).WithContext(ctx).Save(result).Error; err != nil {
		return nil, err
	}
	return result, nil
}
