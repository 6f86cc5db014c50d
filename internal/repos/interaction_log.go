package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

type InteractionLogRepo interface {
	Append(ctx context.Context, tx *gorm.DB, row *types.InteractionLog) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID int) ([]*types.InteractionLog, error)
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID int) error
}

type interactionLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInteractionLogRepo(db *gorm.DB, baseLog *logger.Logger) InteractionLogRepo {
	return &interactionLogRepo{db: db, log: baseLog.With("repo", "InteractionLogRepo")}
}

func (ir *interactionLogRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ir.db
}

func (ir *interactionLogRepo) Append(ctx context.Context, tx *gorm.DB, row *types.InteractionLog) error {
	return ir.conn(tx).WithContext(ctx).Create(row).Error
}

func (ir *interactionLogRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID int) ([]*types.InteractionLog, error) {
	var results []*types.InteractionLog
	if err := ir.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *interactionLogRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID int) error {
	return ir.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.InteractionLog{}).Error
}
