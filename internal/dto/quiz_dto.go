package dto

import (
	"time"

	"github.com/uros002/QuizHubApp/internal/model"
)

// AnswerDTO is one option of an authored question.
type AnswerDTO struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionDTO struct {
	Body       string           `json:"body" binding:"required"`
	AnswerType model.AnswerType `json:"answerType" binding:"required,oneof=OneCorrect MultipleChoice TrueFalse FillTheBlank"`
	Points     int              `json:"points" binding:"min=0"`
	Answers    []AnswerDTO      `json:"answers" binding:"omitempty,dive"`
}

// QuizDTO is the body of createQuiz and updateQuiz. ParentQuiz names a quiz
// whose questions are matched by body; VersionParentQuiz names the quiz a new
// version supersedes and is required by updateQuiz.
type QuizDTO struct {
	Name              string           `json:"name" binding:"required"`
	Description       string           `json:"description"`
	Category          string           `json:"category"`
	Difficulty        model.Difficulty `json:"difficulty" binding:"required,oneof=Easy Medium Hard"`
	NumOfQuestions    int              `json:"numOfQuestions" binding:"min=0"`
	TimeDuration      int              `json:"timeDuration" binding:"min=0"`
	ParentQuiz        *uint            `json:"parentQuiz"`
	VersionParentQuiz *uint            `json:"versionParentQuiz"`
	Questions         []QuestionDTO    `json:"questions" binding:"omitempty,dive"`
}

type AnswerResponse struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"questionId"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"isCorrect"`
}

type QuestionResponse struct {
	ID             uint             `json:"id"`
	QuizID         uint             `json:"quizId"`
	Body           string           `json:"body"`
	AnswerType     model.AnswerType `json:"answerType"`
	Points         int              `json:"points"`
	ParentQuestion *uint            `json:"parentQuestion,omitempty"`
	Answers        []AnswerResponse `json:"answers"`
}

type QuizResponse struct {
	ID                uint               `json:"id"`
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	Category          string             `json:"category"`
	Difficulty        model.Difficulty   `json:"difficulty"`
	NumOfQuestions    int                `json:"numOfQuestions"`
	TimeDuration      int                `json:"timeDuration"`
	QuizPoints        int                `json:"quizPoints"`
	ParentQuiz        *uint              `json:"parentQuiz,omitempty"`
	VersionParentQuiz *uint              `json:"versionParentQuiz,omitempty"`
	Version           int                `json:"version"`
	UserID            *uint              `json:"userId,omitempty"`
	Questions         []QuestionResponse `json:"questions"`
	CreatedAt         time.Time          `json:"createdAt"`
}

// SubmittedAnswerDTO is one answer text given for a question of the live quiz.
// Multiple-choice questions are answered with one entry per selected option.
type SubmittedAnswerDTO struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Text       string `json:"text"`
}

// QuizCompletionDTO is the body of doQuiz. TimeLeft is in seconds.
type QuizCompletionDTO struct {
	UserID   uint                 `json:"userId" binding:"required"`
	QuizID   uint                 `json:"quizId"`
	TimeLeft int                  `json:"timeLeft" binding:"min=0"`
	Answers  []SubmittedAnswerDTO `json:"answers" binding:"omitempty,dive"`
}
