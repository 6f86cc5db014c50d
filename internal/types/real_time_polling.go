package types

import (
	"time"

	"gorm.io/datatypes"
)

// RealTimePolling is an append-only time series per (candidate, election).
// The latest row is mirrored onto Candidate.polling_* by the polling update
// operation; this table stays the full history.
type RealTimePolling struct {
	ID             int            `gorm:"primaryKey;autoIncrement" json:"id"`
	CandidateID    int            `gorm:"index;not null;column:candidate_id" json:"candidate_id"`
	Candidate      *Candidate     `gorm:"foreignKey:CandidateID;references:ID" json:"-"`
	ElectionID     int            `gorm:"index;not null;column:election_id" json:"election_id"`
	Election       *Election      `gorm:"foreignKey:ElectionID;references:ID" json:"-"`
	PollDate       time.Time      `gorm:"column:poll_date;autoCreateTime" json:"poll_date"`
	SupportLevel   *float64       `gorm:"column:support_level;type:numeric(5,2)" json:"support_level"`
	Confidence     *float64       `gorm:"column:confidence;type:numeric(5,2)" json:"confidence"`
	SampleSize     *int           `gorm:"column:sample_size" json:"sample_size"`
	Methodology    string         `gorm:"column:methodology" json:"methodology"`
	Demographics   datatypes.JSON `gorm:"column:demographics" json:"demographics"`
	TrendDirection string         `gorm:"column:trend_direction" json:"trend_direction"`
	CreatedAt      time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (RealTimePolling) TableName() string {
	return "real_time_polling"
}
