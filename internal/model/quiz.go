package model

import (
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Quiz is either an authored template (UserID nil) or the snapshot of a
// completed attempt (UserID set, ParentQuiz pointing at the template).
// VersionParentQuiz links a template to the version it superseded.
type Quiz struct {
	ID                uint       `gorm:"primarykey" json:"id"`
	Name              string     `json:"name" gorm:"not null"`
	Description       string     `json:"description" gorm:"type:text"`
	Category          string     `json:"category"`
	Difficulty        Difficulty `json:"difficulty" gorm:"type:varchar(16);not null"`
	NumOfQuestions    int        `json:"numOfQuestions"`
	TimeDuration      int        `json:"timeDuration"` // seconds
	QuizPoints        int        `json:"quizPoints"`
	ParentQuiz        *uint      `json:"parentQuiz,omitempty" gorm:"index"`
	VersionParentQuiz *uint      `json:"versionParentQuiz,omitempty" gorm:"uniqueIndex"` // one successor per version
	Version           int        `json:"version" gorm:"not null;default:1"`
	IsDeleted         bool       `json:"isDeleted" gorm:"not null;default:false;index"`
	UserID            *uint      `json:"userId,omitempty" gorm:"index"`
	Questions         []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (Quiz) TableName() string { return "quizzes" }

func (q *Quiz) IsTemplate() bool {
	return q.UserID == nil
}

// TotalPoints sums question points.
func (q *Quiz) TotalPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}
