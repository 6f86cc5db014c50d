package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

type CongressMemberRepo interface {
	UpsertByBioguide(ctx context.Context, tx *gorm.DB, member *types.CongressMember) (*types.CongressMember, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.CongressMember, error)
	ListByState(ctx context.Context, tx *gorm.DB, state string) ([]*types.CongressMember, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	Dedupe(ctx context.Context, tx *gorm.DB) (int64, error)
}

type congressMemberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCongressMemberRepo(db *gorm.DB, baseLog *logger.Logger) CongressMemberRepo {
	return &congressMemberRepo{db: db, log: baseLog.With("repo", "CongressMemberRepo")}
}

func (cr *congressMemberRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *congressMemberRepo) UpsertByBioguide(ctx context.Context, tx *gorm.DB, member *types.CongressMember) (*types.CongressMember, error) {
	var existing types.CongressMember
	err := cr.conn(tx).WithContext(ctx).
		Where("bioguide_id = ?", member.BioguideID).
		First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		member.ID = existing.ID
		member.CreatedAt = existing.CreatedAt
	}
	if err := cr.conn(tx).WithContext(ctx).Save(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (cr *congressMemberRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.CongressMember, error) {
	var results []*types.CongressMember
	if err := cr.conn(tx).WithContext(ctx).
		Order("state ASC, name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *congressMemberRepo) ListByState(ctx context.Context, tx *gorm.DB, state string) ([]*types.CongressMember, error) {
	var results []*types.CongressMember
	if err := cr.conn(tx).WithContext(ctx).
		Where("state = ?", state).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *congressMemberRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := cr.conn(tx).WithContext(ctx).Model(&types.CongressMember{}).Count(&count).Error
	return count, err
}

// Dedupe removes rows sharing a bioguide_id, keeping the lowest id. Rows
// predating the unique index can carry duplicates.
func (cr *congressMemberRepo) Dedupe(ctx context.Context, tx *gorm.DB) (int64, error) {
	res := cr.conn(tx).WithContext(ctx).Exec(`
		DELETE FROM congress_members
		WHERE id NOT IN (
			SELECT MIN(id) FROM congress_members GROUP BY bioguide_id
		)`)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
