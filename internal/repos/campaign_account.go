package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

type CampaignAccountRepo interface {
	Create(ctx context.Context, tx *gorm.DB, account *types.CampaignAccount) (*types.CampaignAccount, error)
	GetByAPIKey(ctx context.Context, tx *gorm.DB, apiKey string) (*types.CampaignAccount, error)
	RecordAccess(ctx context.Context, tx *gorm.DB, accountID int) error
	AppendAccessLog(ctx context.Context, tx *gorm.DB, row *types.CampaignAccessLog) error
	MonthlyCallCount(ctx context.Context, tx *gorm.DB, accountID int, monthStart time.Time) (int64, error)
}

type campaignAccountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCampaignAccountRepo(db *gorm.DB, baseLog *logger.Logger) CampaignAccountRepo {
	return &campaignAccountRepo{db: db, log: baseLog.With("repo", "CampaignAccountRepo")}
}

func (cr *campaignAccountRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *campaignAccountRepo) Create(ctx context.Context, tx *gorm.DB, account *types.CampaignAccount) (*types.CampaignAccount, error) {
	if err := cr.conn(tx).WithContext(ctx).Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func (cr *campaignAccountRepo) GetByAPIKey(ctx context.Context, tx *gorm.DB, apiKey string) (*types.CampaignAccount, error) {
	var result types.CampaignAccount
	err := cr.conn(tx).WithContext(ctx).First(&result, "api_key = ?", apiKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RecordAccess bumps the lifetime call counter and last-access timestamp.
func (cr *campaignAccountRepo) RecordAccess(ctx context.Context, tx *gorm.DB, accountID int) error {
	return cr.conn(tx).WithContext(ctx).
		Model(&types.CampaignAccount{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"total_api_calls":  gorm.Expr("total_api_calls + 1"),
			"last_accessed_at": time.Now(),
		}).Error
}

func (cr *campaignAccountRepo) AppendAccessLog(ctx context.Context, tx *gorm.DB, row *types.CampaignAccessLog) error {
	return cr.conn(tx).WithContext(ctx).Create(row).Error
}

// MonthlyCallCount is the fallback quota source when redis is unavailable.
func (cr *campaignAccountRepo) MonthlyCallCount(ctx context.Context, tx *gorm.DB, accountID int, monthStart time.Time) (int64, error) {
	var count int64
	err := cr.conn(tx).WithContext(ctx).
		Model(&types.CampaignAccessLog{}).
		Where("campaign_id = ? AND created_at >= ?", accountID, monthStart).
		Count(&count).Error
	return count, err
}
