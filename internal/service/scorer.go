package service

import (
	"slices"
	"strings"

	"github.com/uros002/QuizHubApp/internal/model"
)

// SubmittedAnswer is one answer text given for a question of the live quiz.
type SubmittedAnswer struct {
	QuestionID uint
	Text       string
}

type Score struct {
	Points int
	// Percentage is Points over the number of questions, times 100. It is not
	// bounded by 100 when questions are worth more than one point.
	Percentage float64
	Awarded    map[uint]int // question id -> points awarded
}

type Scorer interface {
	Score(quiz *model.Quiz, answers []SubmittedAnswer) Score
}

type scorer struct{}

func NewScorer() Scorer {
	return scorer{}
}

func (scorer) Score(quiz *model.Quiz, answers []SubmittedAnswer) Score {
	byQuestion := make(map[uint][]string, len(quiz.Questions))
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a.Text)
	}

	score := Score{Awarded: make(map[uint]int, len(quiz.Questions))}
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		if isCorrect(q, byQuestion[q.ID]) {
			score.Points += q.Points
			score.Awarded[q.ID] = q.Points
		} else {
			score.Awarded[q.ID] = 0
		}
	}
	if n := len(quiz.Questions); n > 0 {
		score.Percentage = float64(score.Points) / float64(n) * 100
	}
	return score
}

func isCorrect(q *model.Question, submitted []string) bool {
	given := distinctNormalized(submitted)
	if len(given) == 0 {
		return false
	}
	correct := q.CorrectTexts()

	switch q.AnswerType {
	case model.AnswerOneCorrect, model.AnswerTrueFalse:
		return len(correct) > 0 && len(given) == 1 && given[0] == normalize(correct[0])
	case model.AnswerMultipleChoice:
		return slices.Equal(given, distinctNormalized(correct))
	case model.AnswerFillTheBlank:
		return len(given) == 1 && slices.Contains(distinctNormalized(correct), given[0])
	default:
		return false
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// distinctNormalized returns the sorted set of normalized non-empty texts.
func distinctNormalized(texts []string) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if n := normalize(t); n != "" {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
