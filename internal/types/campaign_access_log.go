package types

import "time"

// CampaignAccessLog is an append-only audit row per API-key request.
type CampaignAccessLog struct {
	ID           int              `gorm:"primaryKey;autoIncrement" json:"id"`
	CampaignID   int              `gorm:"index;not null;column:campaign_id" json:"campaign_id"`
	Campaign     *CampaignAccount `gorm:"foreignKey:CampaignID;references:ID" json:"-"`
	APIKey       string           `gorm:"not null;column:api_key" json:"api_key"`
	Endpoint     string           `gorm:"not null;column:endpoint" json:"endpoint"`
	Method       string           `gorm:"not null;column:method" json:"method"`
	StatusCode   int              `gorm:"column:status_code" json:"status_code"`
	ResponseTime int              `gorm:"column:response_time" json:"response_time"`
	IPAddress    string           `gorm:"column:ip_address" json:"ip_address"`
	UserAgent    string           `gorm:"column:user_agent" json:"user_agent"`
	CreatedAt    time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (CampaignAccessLog) TableName() string {
	return "campaign_access_logs"
}
