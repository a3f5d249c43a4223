package model

import (
	"time"
)

// QuizResult records one completed attempt. QuizID is the attempt's snapshot quiz.
type QuizResult struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	UserID           uint      `json:"userId" gorm:"not null;index"`
	User             *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	QuizID           uint      `json:"quizId" gorm:"not null;index"`
	Quiz             *Quiz     `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	Points           int       `json:"points"`
	TimeDuration     int       `json:"timeDuration"` // seconds spent
	DateOfCompletion time.Time `json:"dateOfCompletion" gorm:"not null;index"`
	IsDeleted        bool      `json:"isDeleted" gorm:"not null;default:false;index"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (QuizResult) TableName() string { return "quiz_results" }
