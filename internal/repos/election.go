package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/types"
)

type ElectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, elections []*types.Election) ([]*types.Election, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*types.Election, error)
	List(ctx context.Context, tx *gorm.DB, filters types.ElectionFilters) ([]*types.Election, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Election, error)
	Update(ctx context.Context, tx *gorm.DB, election *types.Election) error
	SetLevel(ctx context.Context, tx *gorm.DB, id int, level string) error
	DeactivateBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type electionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewElectionRepo(db *gorm.DB, baseLog *logger.Logger) ElectionRepo {
	return &electionRepo{db: db, log: baseLog.With("repo", "ElectionRepo")}
}

func (er *electionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return er.db
}

func (er *electionRepo) Create(ctx context.Context, tx *gorm.DB, elections []*types.Election) ([]*types.Election, error) {
	if len(elections) == 0 {
		return []*types.Election{}, nil
	}
	if err := er.conn(tx).WithContext(ctx).Create(&elections).Error; err != nil {
		return nil, err
	}
	return elections, nil
}

func (er *electionRepo) GetByID(ctx context.Context, tx *gorm.DB, id int) (*types.Election, error) {
	var result types.Election
	err := er.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (er *electionRepo) List(ctx context.Context, tx *gorm.DB, filters types.ElectionFilters) ([]*types.Election, error) {
	// Elections stay listed through their whole election day; the cutoff is
	// local midnight, not the current instant.
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	q := er.conn(tx).WithContext(ctx).Model(&types.Election{}).
		Where("is_active = ?", true).
		Where("date >= ?", startOfDay)

	if filters.State != "" {
		q = q.Where("state = ?", filters.State)
	}
	if len(filters.Types) > 0 {
		q = q.Where("type IN ?", filters.Types)
	}
	if len(filters.Levels) > 0 {
		q = q.Where("level IN ?", filters.Levels)
	}
	if filters.Timeframe != "" {
		var end time.Time
		switch filters.Timeframe {
		case types.TimeframeWeek:
			end = now.AddDate(0, 0, 7)
		case types.TimeframeMonth:
			end = now.AddDate(0, 1, 0)
		case types.TimeframeQuarter:
			end = now.AddDate(0, 3, 0)
		case types.TimeframeYear:
			end = now.AddDate(1, 0, 0)
		}
		// Same lower bound as the baseline exclusion: election day counts
		// until local midnight.
		if !end.IsZero() {
			q = q.Where("date >= ? AND date <= ?", startOfDay, end)
		}
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		q = q.Where("title LIKE ? OR location LIKE ? OR description LIKE ?", like, like, like)
	}
	if len(filters.Parties) > 0 {
		q = q.Where("id IN (?)",
			er.conn(tx).Model(&types.Candidate{}).Select("election_id").Where("party IN ?", filters.Parties))
	}

	var results []*types.Election
	if err := q.Order("date ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListAll returns every row regardless of date or active flag. Maintenance
// operations need the full table.
func (er *electionRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Election, error) {
	var results []*types.Election
	if err := er.conn(tx).WithContext(ctx).Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *electionRepo) Update(ctx context.Context, tx *gorm.DB, election *types.Election) error {
	return er.conn(tx).WithContext(ctx).Save(election).Error
}

func (er *electionRepo) SetLevel(ctx context.Context, tx *gorm.DB, id int, level string) error {
	return er.conn(tx).WithContext(ctx).
		Model(&types.Election{}).
		Where("id = ?", id).
		Update("level", level).Error
}

func (er *electionRepo) DeactivateBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	res := er.conn(tx).WithContext(ctx).
		Model(&types.Election{}).
		Where("date < ? AND is_active = ?", cutoff, true).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}

func (er *electionRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := er.conn(tx).WithContext(ctx).Model(&types.Election{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
