package types

import "time"

type CandidatePosition struct {
	ID                int        `gorm:"primaryKey;autoIncrement" json:"id"`
	CandidateID       int        `gorm:"index;not null;column:candidate_id" json:"candidate_id"`
	Candidate         *Candidate `gorm:"foreignKey:CandidateID;references:ID" json:"-"`
	Category          string     `gorm:"not null;column:category" json:"category"`
	Position          string     `gorm:"not null;column:position" json:"position"`
	DetailedStatement string     `gorm:"column:detailed_statement" json:"detailed_statement"`
	IsVerified        bool       `gorm:"column:is_verified;default:false" json:"is_verified"`
	SourceURL         string     `gorm:"column:source_url" json:"source_url"`
	LastUpdated       time.Time  `gorm:"column:last_updated;autoUpdateTime" json:"last_updated"`
	CreatedAt         time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (CandidatePosition) TableName() string {
	return "candidate_positions"
}
