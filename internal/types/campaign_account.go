package types

import "time"

// Subscription tiers for the data marketplace.
const (
	TierBasic      = "basic"
	TierPremium    = "premium"
	TierEnterprise = "enterprise"
)

// CampaignAccount authenticates data-marketplace clients by API key.
type CampaignAccount struct {
	ID               int        `gorm:"primaryKey;autoIncrement" json:"id"`
	CandidateID      int        `gorm:"index;not null;column:candidate_id" json:"candidate_id"`
	Candidate        *Candidate `gorm:"foreignKey:CandidateID;references:ID" json:"-"`
	APIKey           string     `gorm:"uniqueIndex;not null;column:api_key" json:"api_key"`
	OrganizationName string     `gorm:"not null;column:organization_name" json:"organization_name"`
	ContactEmail     string     `gorm:"not null;column:contact_email" json:"contact_email"`
	SubscriptionTier string     `gorm:"column:subscription_tier;default:basic" json:"subscription_tier"`
	IsActive         bool       `gorm:"column:is_active;default:true" json:"is_active"`
	LastAccessedAt   *time.Time `gorm:"column:last_accessed_at" json:"last_accessed_at"`
	TotalAPICalls    int        `gorm:"column:total_api_calls;default:0" json:"total_api_calls"`
	MonthlyAPILimit  int        `gorm:"column:monthly_api_limit;default:1000" json:"monthly_api_limit"`
	CreatedAt        time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (CampaignAccount) TableName() string {
	return "campaign_accounts"
}
