package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/uros002/QuizHubApp/internal/dto"
	"github.com/uros002/QuizHubApp/internal/model"
	"github.com/uros002/QuizHubApp/internal/repository"
	"gorm.io/gorm"
)

type QuizService interface {
	CreateQuiz(ctx context.Context, req dto.QuizDTO) (*dto.QuizResponse, error)
	// UpdateQuiz appends a new version of req.VersionParentQuiz; the parent row is left untouched.
	UpdateQuiz(ctx context.Context, req dto.QuizDTO) (*dto.QuizResponse, error)
	GetQuiz(ctx context.Context, id uint) (*dto.QuizResponse, error)
	// GetAllQuizzes lists the latest version of every live template.
	GetAllQuizzes(ctx context.Context) ([]dto.QuizResponse, error)
	GetAllQuizzesForResults(ctx context.Context) ([]dto.QuizResponse, error)
	// DeleteQuiz soft-deletes a quiz together with the attempts taken from it and their results.
	DeleteQuiz(ctx context.Context, id uint) error
}

type quizService struct {
	quizRepo    repository.QuizRepository
	resultRepo  repository.QuizResultRepository
	leaderboard LeaderboardService
	db          *gorm.DB
}

func NewQuizService(
	quizRepo repository.QuizRepository,
	resultRepo repository.QuizResultRepository,
	leaderboard LeaderboardService,
	db *gorm.DB,
) QuizService {
	return &quizService{quizRepo: quizRepo, resultRepo: resultRepo, leaderboard: leaderboard, db: db}
}

func (s *quizService) CreateQuiz(ctx context.Context, req dto.QuizDTO) (*dto.QuizResponse, error) {
	quiz := newTemplate(req)

	if req.ParentQuiz != nil && *req.ParentQuiz != 0 {
		parent, err := s.quizRepo.FindTemplateByIDWithQuestions(ctx, *req.ParentQuiz)
		switch {
		case err == nil:
			linkParentQuestions(quiz.Questions, parent.Questions)
		case errors.Is(err, gorm.ErrRecordNotFound):
			log.Warn().Uint("parentQuiz", *req.ParentQuiz).Msg("CreateQuiz: parent quiz not found, questions left unlinked")
		default:
			return nil, internal("Failed to create quiz", err)
		}
	}

	if err := s.quizRepo.Create(ctx, &quiz); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create quiz in database")
		return nil, internal("Failed to create quiz", err)
	}
	log.Info().Uint("quizID", quiz.ID).Int("questions", len(quiz.Questions)).Msg("Quiz created")
	return s.respond(&quiz)
}

func (s *quizService) UpdateQuiz(ctx context.Context, req dto.QuizDTO) (*dto.QuizResponse, error) {
	if req.VersionParentQuiz == nil || *req.VersionParentQuiz == 0 {
		return nil, notFound(MsgVersionParentNotFound)
	}
	parent, err := s.quizRepo.FindTemplateByIDWithQuestions(ctx, *req.VersionParentQuiz)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(MsgVersionParentNotFound)
	}
	if err != nil {
		return nil, internal("Failed to update quiz", err)
	}
	superseded, err := s.quizRepo.HasSuccessor(ctx, parent.ID)
	if err != nil {
		return nil, internal("Failed to update quiz", err)
	}
	if superseded {
		return nil, newError(KindConflict, MsgVersionSuperseded, nil)
	}

	quiz := newTemplate(req)
	quiz.Version = parent.Version + 1
	quiz.VersionParentQuiz = &parent.ID
	linkParentQuestions(quiz.Questions, parent.Questions)

	if err := s.quizRepo.Create(ctx, &quiz); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// a concurrent edit of the same version won
			return nil, newError(KindConflict, MsgVersionSuperseded, err)
		}
		log.Error().Err(err).Uint("versionParentQuiz", parent.ID).Msg("Failed to store new quiz version")
		return nil, internal("Failed to update quiz", err)
	}
	log.Info().Uint("quizID", quiz.ID).Uint("versionParentQuiz", parent.ID).Int("version", quiz.Version).Msg("Quiz version created")
	return s.respond(&quiz)
}

func (s *quizService) GetQuiz(ctx context.Context, id uint) (*dto.QuizResponse, error) {
	quiz, err := s.quizRepo.FindActiveByIDWithQuestions(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(MsgQuizNotFound)
	}
	if err != nil {
		return nil, internal("Failed to load quiz", err)
	}
	return s.respond(quiz)
}

func (s *quizService) GetAllQuizzes(ctx context.Context) ([]dto.QuizResponse, error) {
	quizzes, err := s.quizRepo.FindLatestTemplates(ctx)
	if err != nil {
		return nil, internal("Failed to load quizzes", err)
	}
	resp, err := toQuizResponses(quizzes)
	if err != nil {
		return nil, internal("Failed to load quizzes", err)
	}
	return resp, nil
}

func (s *quizService) GetAllQuizzesForResults(ctx context.Context) ([]dto.QuizResponse, error) {
	quizzes, err := s.quizRepo.FindAllActive(ctx)
	if err != nil {
		return nil, internal("Failed to load quizzes", err)
	}
	resp, err := toQuizResponses(quizzes)
	if err != nil {
		return nil, internal("Failed to load quizzes", err)
	}
	return resp, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, id uint) error {
	if _, err := s.quizRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(MsgQuizNotFound)
		}
		return internal("Failed to delete quiz", err)
	}

	var attempts []uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quizzes := s.quizRepo.WithTx(tx)
		var err error
		if attempts, err = quizzes.FindAttemptIDs(ctx, id); err != nil {
			return err
		}
		ids := append([]uint{id}, attempts...)
		if err := quizzes.MarkDeleted(ctx, ids); err != nil {
			return err
		}
		return s.resultRepo.WithTx(tx).MarkDeletedByQuizIDs(ctx, ids)
	})
	if err != nil {
		log.Error().Err(err).Uint("quizID", id).Msg("Failed to delete quiz")
		return internal("Failed to delete quiz", err)
	}
	log.Info().Uint("quizID", id).Int("attempts", len(attempts)).Msg("Quiz deleted")

	s.leaderboard.Invalidate(ctx, id)
	return nil
}

func (s *quizService) respond(quiz *model.Quiz) (*dto.QuizResponse, error) {
	resp, err := toQuizResponse(quiz)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Failed to map quiz")
		return nil, internal("Failed to prepare quiz", err)
	}
	return resp, nil
}

func newTemplate(req dto.QuizDTO) model.Quiz {
	quiz := model.Quiz{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Difficulty:     req.Difficulty,
		NumOfQuestions: req.NumOfQuestions,
		TimeDuration:   req.TimeDuration,
		Version:        1,
		Questions:      questionsFromDTO(req.Questions),
	}
	quiz.QuizPoints = quiz.TotalPoints()
	if quiz.NumOfQuestions == 0 {
		quiz.NumOfQuestions = len(quiz.Questions)
	}
	return quiz
}
