package dto

import "time"

// QuizResultResponse is a result row joined with the name of the quiz taken.
type QuizResultResponse struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"userId"`
	Username         string    `json:"username,omitempty"`
	QuizID           uint      `json:"quizId"`
	ParentQuiz       *uint     `json:"parentQuiz,omitempty"`
	QuizName         string    `json:"quizName"`
	QuizPoints       int       `json:"quizPoints"`
	Points           int       `json:"points"`
	TimeDuration     int       `json:"timeDuration"`
	DateOfCompletion time.Time `json:"dateOfCompletion"`
}

type LeaderboardEntry struct {
	Rank             int       `json:"rank"`
	ResultID         uint      `json:"resultId"`
	UserID           uint      `json:"userId"`
	Username         string    `json:"username"`
	Points           int       `json:"points"`
	Percentage       int       `json:"percentage"`
	TimeDuration     int       `json:"timeDuration"`
	DateOfCompletion time.Time `json:"dateOfCompletion"`
}

type LeaderboardResponse struct {
	QuizID      uint               `json:"quizId"`
	QuizName    string             `json:"quizName"`
	QuizPoints  int                `json:"quizPoints"`
	Period      string             `json:"period"`
	Entries     []LeaderboardEntry `json:"entries"`
	GeneratedAt time.Time          `json:"generatedAt"`
}
