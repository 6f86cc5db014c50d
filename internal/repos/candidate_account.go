package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

type CandidateAccountRepo interface {
	Create(ctx context.Context, tx *gorm.DB, account *types.CandidateAccount) (*types.CandidateAccount, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*types.CandidateAccount, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.CandidateAccount, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	TouchLastLogin(ctx context.Context, tx *gorm.DB, id int) error
}

type candidateAccountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCandidateAccountRepo(db *gorm.DB, baseLog *logger.Logger) CandidateAccountRepo {
	return &candidateAccountRepo{db: db, log: baseLog.With("repo", "CandidateAccountRepo")}
}

func (ar *candidateAccountRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ar.db
}

func (ar *candidateAccountRepo) Create(ctx context.Context, tx *gorm.DB, account *types.CandidateAccount) (*types.CandidateAccount, error) {
	if err := ar.conn(tx).WithContext(ctx).Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func (ar *candidateAccountRepo) GetByID(ctx context.Context, tx *gorm.DB, id int) (*types.CandidateAccount, error) {
	var result types.CandidateAccount
	if err := ar.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *candidateAccountRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.CandidateAccount, error) {
	var result types.CandidateAccount
	err := ar.conn(tx).WithContext(ctx).First(&result, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *candidateAccountRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	var count int64
	if err := ar.conn(tx).WithContext(ctx).
		Model(&types.CandidateAccount{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *candidateAccountRepo) TouchLastLogin(ctx context.Context, tx *gorm.DB, id int) error {
	return ar.conn(tx).WithContext(ctx).
		Model(&types.CandidateAccount{}).
		Where("id = ?", id).
		Update("last_login", time.Now()).Error
}
