package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

type CandidateProfileRepo interface {
	GetByCandidateID(ctx context.Context, tx *gorm.DB, candidateID int) (*types.CandidateProfile, error)
	Upsert(ctx context.Context, tx *gorm.DB, profile *types.CandidateProfile) (*types.CandidateProfile, error)
	SetVerificationStatus(ctx context.Context, tx *gorm.DB, candidateID int, status string) error
}

type candidateProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCandidateProfileRepo(db *gorm.DB, baseLog *logger.Logger) CandidateProfileRepo {
	return &candidateProfileRepo{db: db, log: baseLog.With("repo", "CandidateProfileRepo")}
}

func (pr *candidateProfileRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return pr.db
}

// GetByCandidateID returns (nil, nil) when no profile row exists; a missing
// profile is a normal state, not an error.
func (pr *candidateProfileRepo) GetByCandidateID(ctx context.Context, tx *gorm.DB, candidateID int) (*types.CandidateProfile, error) {
	var result types.CandidateProfile
	err := pr.conn(tx).WithContext(ctx).First(&result, "candidate_id = ?", candidateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *candidateProfileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *types.CandidateProfile) (*types.CandidateProfile, error) {
	existing, err := pr.GetByCandidateID(ctx, tx, profile.CandidateID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	}
	if err := pr.conn(tx).WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (pr *candidateProfileRepo) SetVerificationStatus(ctx context.Context, tx *gorm.DB, candidateID int, status string) error {
	return pr.conn(tx).WithContext(ctx).
		Model(&types.CandidateProfile{}).
		Where("candidate_id = ?", candidateID).
		Update("verification_status", status).Error
}
