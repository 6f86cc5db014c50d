package types

import (
	"time"

	"gorm.io/datatypes"
)

type Election struct {
	ID          int            `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string         `gorm:"not null;column:title" json:"title"`
	Subtitle    string         `gorm:"column:subtitle" json:"subtitle"`
	Location    string         `gorm:"not null;column:location" json:"location"`
	State       string         `gorm:"not null;index;column:state" json:"state"`
	Date        time.Time      `gorm:"not null;index;column:date" json:"date"`
	Type        string         `gorm:"not null;column:type" json:"type"`
	Level       string         `gorm:"not null;column:level" json:"level"`
	Offices     datatypes.JSON `gorm:"column:offices" json:"offices"`
	Description string         `gorm:"column:description" json:"description"`
	PollsOpen   string         `gorm:"column:polls_open" json:"polls_open"`
	PollsClose  string         `gorm:"column:polls_close" json:"polls_close"`
	Timezone    string         `gorm:"column:timezone" json:"timezone"`
	IsActive    *bool          `gorm:"column:is_active;default:true" json:"is_active"`
}

func (Election) TableName() string {
	return "elections"
}

// Election types.
const (
	ElectionTypePrimary = "primary"
	ElectionTypeGeneral = "general"
	ElectionTypeSpecial = "special"
)

// Election levels.
const (
	ElectionLevelFederal = "federal"
	ElectionLevelState   = "state"
	ElectionLevelLocal   = "local"
)
