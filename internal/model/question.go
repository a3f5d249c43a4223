package model

import (
	"time"
)

type AnswerType string

const (
	AnswerOneCorrect     AnswerType = "OneCorrect"
	AnswerMultipleChoice AnswerType = "MultipleChoice"
	AnswerTrueFalse      AnswerType = "TrueFalse"
	AnswerFillTheBlank   AnswerType = "FillTheBlank"
)

type Question struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	QuizID         uint       `json:"quizId" gorm:"not null;index"`
	Body           string     `json:"body" gorm:"type:text;not null"`
	AnswerType     AnswerType `json:"answerType" gorm:"type:varchar(32);not null"`
	Points         int        `json:"points"`
	ParentQuestion *uint      `json:"parentQuestion,omitempty" gorm:"index"` // question of the template this one was derived from
	Answers        []Answer   `json:"answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (Question) TableName() string { return "questions" }

// CorrectTexts returns the texts of the answers flagged correct, in storage order.
func (q *Question) CorrectTexts() []string {
	var out []string
	for _, a := range q.Answers {
		if a.IsCorrect {
			out = append(out, a.Text)
		}
	}
	return out
}
