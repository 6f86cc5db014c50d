package types

import (
	"time"

	"gorm.io/datatypes"
)

// InteractionLog records voter engagement events. Exported and deleted
// wholesale by the GDPR operations.
type InteractionLog struct {
	ID         int            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *int           `gorm:"index;column:user_id" json:"user_id"`
	SessionID  string         `gorm:"column:session_id" json:"session_id"`
	ActionType string         `gorm:"not null;column:action_type" json:"action_type"`
	TargetID   string         `gorm:"column:target_id" json:"target_id"`
	TargetType string         `gorm:"column:target_type" json:"target_type"`
	Metadata   datatypes.JSON `gorm:"column:metadata" json:"metadata"`
	CreatedAt  time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (InteractionLog) TableName() string {
	return "interaction_logs"
}
