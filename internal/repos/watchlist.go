package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

type WatchlistRepo interface {
	Add(ctx context.Context, tx *gorm.DB, item *types.WatchlistItem) (*types.WatchlistItem, error)
	Remove(ctx context.Context, tx *gorm.DB, userID, electionID int) error
	Exists(ctx context.Context, tx *gorm.DB, userID, electionID int) (bool, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID int) ([]*types.WatchlistItem, error)
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID int) error
}

type watchlistRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWatchlistRepo(db *gorm.DB, baseLog *logger.Logger) WatchlistRepo {
	return &watchlistRepo{db: db, log: baseLog.With("repo", "WatchlistRepo")}
}

func (wr *watchlistRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return wr.db
}

func (wr *watchlistRepo) Add(ctx context.Context, tx *gorm.DB, item *types.WatchlistItem) (*types.WatchlistItem, error) {
	existing, err := wr.find(ctx, tx, item.UserID, item.ElectionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if err := wr.conn(tx).WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (wr *watchlistRepo) find(ctx context.Context, tx *gorm.DB, userID, electionID int) (*types.WatchlistItem, error) {
	var result types.WatchlistItem
	err := wr.conn(tx).WithContext(ctx).
		Where("user_id = ? AND election_id = ?", userID, electionID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (wr *watchlistRepo) Remove(ctx context.Context, tx *gorm.DB, userID, electionID int) error {
	res := wr.conn(tx).WithContext(ctx).
		Where("user_id = ? AND election_id = ?", userID, electionID).
		Delete(&types.WatchlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (wr *watchlistRepo) Exists(ctx context.Context, tx *gorm.DB, userID, electionID int) (bool, error) {
	var count int64
	if err := wr.conn(tx).WithContext(ctx).
		Model(&types.WatchlistItem{}).
		Where("user_id = ? AND election_id = ?", userID, electionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (wr *watchlistRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID int) ([]*types.WatchlistItem, error) {
	var results []*types.WatchlistItem
	if err := wr.conn(tx).WithContext(ctx).
		Preload("Election").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *watchlistRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID int) error {
	return wr.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.WatchlistItem{}).Error
}
