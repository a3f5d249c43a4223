package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uros002/QuizHubApp/internal/dto"
	"github.com/uros002/QuizHubApp/internal/model"
	"github.com/uros002/QuizHubApp/internal/repository"
	"gorm.io/gorm"
)

// AttemptReceipt describes a recorded completion. Score is kept for logging
// and tests; the HTTP layer only confirms.
type AttemptReceipt struct {
	SnapshotQuizID uint
	ResultID       uint
	Elapsed        int
	Score          Score
}

type AttemptService interface {
	// DoQuiz records a completion of live quiz quizID: an immutable snapshot of
	// the questions and submitted answers plus one scored result.
	DoQuiz(ctx context.Context, quizID uint, req dto.QuizCompletionDTO) (*AttemptReceipt, error)
}

type attemptService struct {
	quizRepo    repository.QuizRepository
	resultRepo  repository.QuizResultRepository
	userRepo    repository.UserRepository
	scorer      Scorer
	leaderboard LeaderboardService
	db          *gorm.DB
	now         func() time.Time
}

func NewAttemptService(
	quizRepo repository.QuizRepository,
	resultRepo repository.QuizResultRepository,
	userRepo repository.UserRepository,
	scorer Scorer,
	leaderboard LeaderboardService,
	db *gorm.DB,
) AttemptService {
	return &attemptService{
		quizRepo:    quizRepo,
		resultRepo:  resultRepo,
		userRepo:    userRepo,
		scorer:      scorer,
		leaderboard: leaderboard,
		db:          db,
		now:         time.Now,
	}
}

func (s *attemptService) DoQuiz(ctx context.Context, quizID uint, req dto.QuizCompletionDTO) (*AttemptReceipt, error) {
	if req.QuizID != 0 && req.QuizID != quizID {
		return nil, invalid("Quiz id in body does not match path")
	}

	// snapshots are never taken, only templates
	quiz, err := s.quizRepo.FindTemplateByIDWithQuestions(ctx, quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(MsgQuizNotFound)
	}
	if err != nil {
		return nil, internal("Failed to record attempt", err)
	}

	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(MsgUserNotFound)
		}
		return nil, internal("Failed to record attempt", err)
	}

	if req.TimeLeft < 0 || req.TimeLeft > quiz.TimeDuration {
		return nil, invalid(fmt.Sprintf("timeLeft must be between 0 and %d", quiz.TimeDuration))
	}
	elapsed := quiz.TimeDuration - req.TimeLeft

	submitted := make([]SubmittedAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		submitted = append(submitted, SubmittedAnswer{QuestionID: a.QuestionID, Text: a.Text})
	}
	score := s.scorer.Score(quiz, submitted)

	// the path quiz is both the live quiz and the lineage parent
	snapshot, err := buildSnapshot(quiz, quiz, req.UserID, elapsed, submitted)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("DoQuiz: snapshot could not be linked to parent")
		return nil, internal("Failed to record attempt", err)
	}

	result := model.QuizResult{
		UserID:           req.UserID,
		Points:           score.Points,
		TimeDuration:     elapsed,
		DateOfCompletion: s.now().UTC(),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.quizRepo.WithTx(tx).Create(ctx, snapshot); err != nil {
			return fmt.Errorf("create snapshot quiz: %w", err)
		}
		result.QuizID = snapshot.ID
		if err := s.resultRepo.WithTx(tx).Create(ctx, &result); err != nil {
			return fmt.Errorf("create quiz result: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Uint("userID", req.UserID).Msg("DoQuiz: transaction failed")
		return nil, internal("Failed to record attempt", err)
	}

	log.Info().
		Uint("quizID", quizID).
		Uint("userID", req.UserID).
		Uint("snapshotID", snapshot.ID).
		Int("points", score.Points).
		Float64("percentage", score.Percentage).
		Int("elapsed", elapsed).
		Msg("Quiz attempt recorded")

	s.leaderboard.Refresh(ctx, quizID)

	return &AttemptReceipt{
		SnapshotQuizID: snapshot.ID,
		ResultID:       result.ID,
		Elapsed:        elapsed,
		Score:          score,
	}, nil
}

// buildSnapshot copies live into an unsaved attempt quiz owned by userID. Each
// snapshot question is linked to the parent question with the same normalized
// body and carries the texts submitted for it.
func buildSnapshot(live, parent *model.Quiz, userID uint, elapsed int, submitted []SubmittedAnswer) (*model.Quiz, error) {
	parentID := parent.ID
	owner := userID
	snapshot := &model.Quiz{
		Name:           live.Name,
		Description:    live.Description,
		Category:       live.Category,
		Difficulty:     live.Difficulty,
		NumOfQuestions: live.NumOfQuestions,
		QuizPoints:     live.QuizPoints,
		Version:        live.Version,
		TimeDuration:   elapsed,
		ParentQuiz:     &parentID,
		UserID:         &owner,
		Questions:      make([]model.Question, 0, len(live.Questions)),
	}

	for _, q := range live.Questions {
		parentQuestion, ok := matchParentQuestion(q.Body, parent.Questions)
		if !ok {
			return nil, fmt.Errorf("parent question not found for %q", q.Body)
		}
		question := model.Question{
			Body:           q.Body,
			AnswerType:     q.AnswerType,
			Points:         q.Points,
			ParentQuestion: &parentQuestion,
		}
		for _, a := range submitted {
			if a.QuestionID == q.ID {
				question.Answers = append(question.Answers, model.Answer{Text: a.Text})
			}
		}
		snapshot.Questions = append(snapshot.Questions, question)
	}
	return snapshot, nil
}
