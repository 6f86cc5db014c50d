package types

import (
	"time"

	"gorm.io/datatypes"
)

type CampaignContent struct {
	ID              int            `gorm:"primaryKey;autoIncrement" json:"id"`
	CandidateID     int            `gorm:"index;not null;column:candidate_id" json:"candidate_id"`
	Candidate       *Candidate     `gorm:"foreignKey:CandidateID;references:ID" json:"-"`
	ContentType     string         `gorm:"not null;column:content_type" json:"content_type"`
	Title           string         `gorm:"not null;column:title" json:"title"`
	Content         string         `gorm:"not null;column:content" json:"content"`
	MediaURLs       datatypes.JSON `gorm:"column:media_urls" json:"media_urls"`
	IsPublished     bool           `gorm:"column:is_published;default:false" json:"is_published"`
	PublishDate     *time.Time     `gorm:"column:publish_date" json:"publish_date"`
	Views           int            `gorm:"column:views;default:0" json:"views"`
	EngagementScore float64        `gorm:"column:engagement_score;type:numeric(5,2);default:0" json:"engagement_score"`
	Tags            datatypes.JSON `gorm:"column:tags" json:"tags"`
	CreatedAt       time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (CampaignContent) TableName() string {
	return "campaign_content"
}
