package types

import "time"

// Source kinds for attribution rows, ordered here from highest to lowest
// merge precedence.
const (
	SourceCandidateSupplied = "candidate_supplied"
	SourceVerifiedExternal  = "verified_external"
	SourceAIResearch        = "ai_research"
)

// CandidateDataSource is an append-only attribution row: which source
// populated a given candidate field, and with what confidence. Display and
// audit metadata only; it never decides which value wins.
type CandidateDataSource struct {
	ID                int        `gorm:"primaryKey;autoIncrement" json:"id"`
	CandidateID       int        `gorm:"index;not null;column:candidate_id" json:"candidate_id"`
	Candidate         *Candidate `gorm:"foreignKey:CandidateID;references:ID" json:"-"`
	FieldName         string     `gorm:"not null;column:field_name" json:"field_name"`
	SourceType        string     `gorm:"not null;column:source_type" json:"source_type"`
	SourceDescription string     `gorm:"column:source_description" json:"source_description"`
	SourceURL         string     `gorm:"column:source_url" json:"source_url"`
	LastVerified      *time.Time `gorm:"column:last_verified" json:"last_verified"`
	ConfidenceScore   int        `gorm:"column:confidence_score" json:"confidence_score"`
	CreatedAt         time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (CandidateDataSource) TableName() string {
	return "candidate_data_sources"
}
