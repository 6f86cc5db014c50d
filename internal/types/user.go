package types

import "time"

// User is a voter-facing account (watchlists, analytics, GDPR tooling).
type User struct {
	ID              int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email           string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordHash    string    `gorm:"not null;column:password_hash" json:"-"`
	FirstName       string    `gorm:"column:first_name" json:"first_name"`
	LastName        string    `gorm:"column:last_name" json:"last_name"`
	ProfileImageURL string    `gorm:"column:profile_image_url" json:"profile_image_url"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
