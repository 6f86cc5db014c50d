package types

import "time"

// CandidateAccount is a self-service login for the campaign portal. A
// Candidate may be linked to an account, never the other way around.
type CandidateAccount struct {
	ID               int        `gorm:"primaryKey;autoIncrement" json:"id"`
	CandidateID      int        `gorm:"index;not null;column:candidate_id" json:"candidate_id"`
	Candidate        *Candidate `gorm:"foreignKey:CandidateID;references:ID" json:"-"`
	Email            string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordHash     string     `gorm:"not null;column:password_hash" json:"-"`
	Role             string     `gorm:"not null;column:role;default:campaign_manager" json:"role"`
	SubscriptionTier string     `gorm:"not null;column:subscription_tier;default:basic" json:"subscription_tier"`
	IsActive         bool       `gorm:"column:is_active;default:true" json:"is_active"`
	EmailVerified    bool       `gorm:"column:email_verified;default:false" json:"email_verified"`
	LastLogin        *time.Time `gorm:"column:last_login" json:"last_login"`
	CampaignName     string     `gorm:"column:campaign_name" json:"campaign_name"`
	CampaignTitle    string     `gorm:"column:campaign_title" json:"campaign_title"`
	AccessLevel      string     `gorm:"column:access_level;default:full" json:"access_level"`
	CreatedAt        time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (CandidateAccount) TableName() string {
	return "candidate_accounts"
}
