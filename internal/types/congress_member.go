package types

import "time"

// CongressMember is a synced roster row keyed by bioguide ID; the sync
// operation upserts on that key so re-runs never duplicate members.
type CongressMember struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	BioguideID string    `gorm:"uniqueIndex;not null;column:bioguide_id" json:"bioguide_id"`
	Name       string    `gorm:"not null;column:name" json:"name"`
	Party      string    `gorm:"column:party" json:"party"`
	State      string    `gorm:"not null;index;column:state" json:"state"`
	District   string    `gorm:"column:district" json:"district"`
	Chamber    string    `gorm:"not null;column:chamber" json:"chamber"`
	Congress   int       `gorm:"column:congress;default:119" json:"congress"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (CongressMember) TableName() string {
	return "congress_members"
}
