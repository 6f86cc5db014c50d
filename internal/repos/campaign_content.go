package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

type ContentFilters struct {
	ContentType string
	IsPublished *bool
}

type CampaignContentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, content *types.CampaignContent) (*types.CampaignContent, error)
	Update(ctx context.Context, tx *gorm.DB, candidateID, contentID int, updates map[string]interface{}) (*types.CampaignContent, error)
	ListByCandidate(ctx context.Context, tx *gorm.DB, candidateID int, filters ContentFilters) ([]*types.CampaignContent, error)
	Publish(ctx context.Context, tx *gorm.DB, candidateID, contentID int) (*types.CampaignContent, error)
	Delete(ctx context.Context, tx *gorm.DB, candidateID, contentID int) error
	IncrementViews(ctx context.Context, tx *gorm.DB, contentID int) error
}

type campaignContentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCampaignContentRepo(db *gorm.DB, baseLog *logger.Logger) CampaignContentRepo {
	return &campaignContentRepo{db: db, log: baseLog.With("repo", "CampaignContentRepo")}
}

func (cr *campaignContentRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *campaignContentRepo) Create(ctx context.Context, tx *gorm.DB, content *types.CampaignContent) (*types.CampaignContent, error) {
	if err := cr.conn(tx).WithContext(ctx).Create(content).Error; err != nil {
		return nil, err
	}
	return content, nil
}

func (cr *campaignContentRepo) Update(ctx context.Context, tx *gorm.DB, candidateID, contentID int, updates map[string]interface{}) (*types.CampaignContent, error) {
	res := cr.conn(tx).WithContext(ctx).
		Model(&types.CampaignContent{}).
		Where("id = ? AND candidate_id = ?", contentID, candidateID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var result types.CampaignContent
	if err := cr.conn(tx).WithContext(ctx).First(&result, "id = ?", contentID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *campaignContentRepo) ListByCandidate(ctx context.Context, tx *gorm.DB, candidateID int, filters ContentFilters) ([]*types.CampaignContent, error) {
	q := cr.conn(tx).WithContext(ctx).Where("candidate_id = ?", candidateID)
	if filters.ContentType != "" {
		q = q.Where("content_type = ?", filters.ContentType)
	}
	if filters.IsPublished != nil {
		q = q.Where("is_published = ?", *filters.IsPublished)
	}
	var results []*types.CampaignContent
	if err := q.Order("updated_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *campaignContentRepo) Publish(ctx context.Context, tx *gorm.DB, candidateID, contentID int) (*types.CampaignContent, error) {
	now := time.Now()
	return cr.Update(ctx, tx, candidateID, contentID, map[string]interface{}{
		"is_published": true,
		"publish_date": now,
	})
}

func (cr *campaignContentRepo) Delete(ctx context.Context, tx *gorm.DB, candidateID, contentID int) error {
	res := cr.conn(tx).WithContext(ctx).
		Where("id = ? AND candidate_id = ?", contentID, candidateID).
		Delete(&types.CampaignContent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (cr *campaignContentRepo) IncrementViews(ctx context.Context, tx *gorm.DB, contentID int) error {
	return cr.conn(tx).WithContext(ctx).
		Model(&types.CampaignContent{}).
		Where("id = ?", contentID).
		Update("views", gorm.Expr("views + 1")).Error
}
