package types

import (
	"time"

	"gorm.io/datatypes"
)

// Candidate belongs to exactly one Election. The polling_* columns are a
// denormalized snapshot of the latest RealTimePolling row for fast reads.
type Candidate struct {
	ID                int            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string         `gorm:"not null;index;column:name" json:"name"`
	Party             string         `gorm:"not null;column:party" json:"party"`
	ElectionID        int            `gorm:"index;not null;column:election_id" json:"election_id"`
	Election          *Election      `gorm:"foreignKey:ElectionID;references:ID" json:"-"`
	PollingSupport    *int           `gorm:"column:polling_support" json:"polling_support"`
	PollingTrend      string         `gorm:"column:polling_trend" json:"polling_trend"`
	LastPollingUpdate *time.Time     `gorm:"column:last_polling_update" json:"last_polling_update"`
	PollingSource     string         `gorm:"column:polling_source" json:"polling_source"`
	IsIncumbent       bool           `gorm:"column:is_incumbent;default:false" json:"is_incumbent"`
	Description       string         `gorm:"column:description" json:"description"`
	Website           string         `gorm:"column:website" json:"website"`
	VotesReceived     *int           `gorm:"column:votes_received" json:"votes_received"`
	VotePercentage    *float64       `gorm:"column:vote_percentage;type:numeric(5,2)" json:"vote_percentage"`
	IsWinner          bool           `gorm:"column:is_winner;default:false" json:"is_winner"`
	IsProjectedWinner bool           `gorm:"column:is_projected_winner;default:false" json:"is_projected_winner"`
	IsVerified        bool           `gorm:"column:is_verified;default:false" json:"is_verified"`
	SubscriptionTier  string         `gorm:"column:subscription_tier" json:"subscription_tier"`
	ProfileImageURL   string         `gorm:"column:profile_image_url" json:"profile_image_url"`
	CampaignBio       string         `gorm:"column:campaign_bio" json:"campaign_bio"`
	ContactEmail      string         `gorm:"column:contact_email" json:"contact_email"`
	CampaignPhone     string         `gorm:"column:campaign_phone" json:"campaign_phone"`
	SocialMedia       datatypes.JSON `gorm:"column:social_media" json:"social_media"`
	CreatedAt         time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Candidate) TableName() string {
	return "candidates"
}
