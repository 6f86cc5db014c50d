package types

import "time"

type ElectionResult struct {
	ID                 int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ElectionID         int       `gorm:"index;not null;column:election_id" json:"election_id"`
	Election           *Election `gorm:"foreignKey:ElectionID;references:ID" json:"-"`
	TotalVotes         *int      `gorm:"column:total_votes" json:"total_votes"`
	ReportingPrecincts *int      `gorm:"column:reporting_precincts" json:"reporting_precincts"`
	TotalPrecincts     *int      `gorm:"column:total_precincts" json:"total_precincts"`
	PercentReporting   *float64  `gorm:"column:percent_reporting;type:numeric(5,2)" json:"percent_reporting"`
	IsComplete         bool      `gorm:"column:is_complete;default:false" json:"is_complete"`
	IsCertified        bool      `gorm:"column:is_certified;default:false" json:"is_certified"`
	LastUpdated        time.Time `gorm:"column:last_updated;autoUpdateTime" json:"last_updated"`
	ResultsSource      string    `gorm:"column:results_source" json:"results_source"`
}

func (ElectionResult) TableName() string {
	return "election_results"
}
