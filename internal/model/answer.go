package model

import (
	"time"
)

// Answer is an option of a template question, or a submitted text on a snapshot question.
type Answer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"questionId" gorm:"not null;index"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	IsCorrect  bool      `json:"isCorrect" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Answer) TableName() string { return "answers" }
