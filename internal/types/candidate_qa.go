package types

import "time"

type CandidateQA struct {
	ID          int        `gorm:"primaryKey;autoIncrement" json:"id"`
	CandidateID int        `gorm:"index;not null;column:candidate_id" json:"candidate_id"`
	Candidate   *Candidate `gorm:"foreignKey:CandidateID;references:ID" json:"-"`
	Question    string     `gorm:"not null;column:question" json:"question"`
	Answer      string     `gorm:"not null;column:answer" json:"answer"`
	Category    string     `gorm:"column:category" json:"category"`
	IsPublic    bool       `gorm:"column:is_public;default:true" json:"is_public"`
	IsPriority  bool       `gorm:"column:is_priority;default:false" json:"is_priority"`
	IsVerified  bool       `gorm:"column:is_verified;default:false" json:"is_verified"`
	Upvotes     int        `gorm:"column:upvotes;default:0" json:"upvotes"`
	Views       int        `gorm:"column:views;default:0" json:"views"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (CandidateQA) TableName() string {
	return "candidate_qa"
}
