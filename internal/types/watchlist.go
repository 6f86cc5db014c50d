package types

import "time"

type WatchlistItem struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int       `gorm:"index;not null;column:user_id" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID;references:ID" json:"-"`
	ElectionID int       `gorm:"index;not null;column:election_id" json:"election_id"`
	Election   *Election `gorm:"foreignKey:ElectionID;references:ID" json:"election,omitempty"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (WatchlistItem) TableName() string {
	return "watchlist"
}
