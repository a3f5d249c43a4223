package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/uros002/QuizHubApp/internal/dto"
	"github.com/uros002/QuizHubApp/internal/model"
)

func toQuizResponse(quiz *model.Quiz) (*dto.QuizResponse, error) {
	var resp dto.QuizResponse
	if err := copier.Copy(&resp, quiz); err != nil {
		return nil, fmt.Errorf("error preparing quiz response: %w", err)
	}
	if resp.Questions == nil {
		resp.Questions = []dto.QuestionResponse{}
	}
	for i := range resp.Questions {
		if resp.Questions[i].Answers == nil {
			resp.Questions[i].Answers = []dto.AnswerResponse{}
		}
	}
	return &resp, nil
}

func toQuizResponses(quizzes []model.Quiz) ([]dto.QuizResponse, error) {
	out := make([]dto.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		resp, err := toQuizResponse(&quizzes[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func toResultResponses(results []model.QuizResult) []dto.QuizResultResponse {
	out := make([]dto.QuizResultResponse, 0, len(results))
	for _, r := range results {
		item := dto.QuizResultResponse{
			ID:               r.ID,
			UserID:           r.UserID,
			QuizID:           r.QuizID,
			Points:           r.Points,
			TimeDuration:     r.TimeDuration,
			DateOfCompletion: r.DateOfCompletion,
		}
		if r.Quiz != nil {
			item.QuizName = r.Quiz.Name
			item.QuizPoints = r.Quiz.QuizPoints
			item.ParentQuiz = r.Quiz.ParentQuiz
		}
		if r.User != nil {
			item.Username = r.User.Username
		}
		out = append(out, item)
	}
	return out
}

// questionsFromDTO builds unsaved template questions from authored input.
func questionsFromDTO(in []dto.QuestionDTO) []model.Question {
	questions := make([]model.Question, 0, len(in))
	for _, q := range in {
		question := model.Question{
			Body:       q.Body,
			AnswerType: q.AnswerType,
			Points:     q.Points,
		}
		for _, a := range q.Answers {
			question.Answers = append(question.Answers, model.Answer{Text: a.Text, IsCorrect: a.IsCorrect})
		}
		questions = append(questions, question)
	}
	return questions
}

// matchParentQuestion finds the first parent question whose normalized body
// equals body.
func matchParentQuestion(body string, parent []model.Question) (uint, bool) {
	want := normalize(body)
	for _, pq := range parent {
		if normalize(pq.Body) == want {
			return pq.ID, true
		}
	}
	return 0, false
}

func linkParentQuestions(questions []model.Question, parent []model.Question) {
	for i := range questions {
		if id, ok := matchParentQuestion(questions[i].Body, parent); ok {
			questions[i].ParentQuestion = &id
		}
	}
}
