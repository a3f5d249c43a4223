package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/uros002/QuizHubApp/internal/dto"
	"github.com/uros002/QuizHubApp/internal/repository"
)

type ResultService interface {
	GetMyResults(ctx context.Context, userID uint) ([]dto.QuizResultResponse, error)
	GetAllResults(ctx context.Context) ([]dto.QuizResultResponse, error)
}

type resultService struct {
	resultRepo repository.QuizResultRepository
}

func NewResultService(resultRepo repository.QuizResultRepository) ResultService {
	return &resultService{resultRepo: resultRepo}
}

func (s *resultService) GetMyResults(ctx context.Context, userID uint) ([]dto.QuizResultResponse, error) {
	results, err := s.resultRepo.FindByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to load user results")
		return nil, internal("Failed to load results", err)
	}
	return toResultResponses(results), nil
}

func (s *resultService) GetAllResults(ctx context.Context) ([]dto.QuizResultResponse, error) {
	results, err := s.resultRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load results")
		return nil, internal("Failed to load results", err)
	}
	return toResultResponses(results), nil
}
