package repository

import (
	"context"
	"time"

	"github.com/uros002/QuizHubApp/internal/model"
	"gorm.io/gorm"
)

type QuizResultRepository interface {
	WithTx(tx *gorm.DB) QuizResultRepository
	Create(ctx context.Context, result *model.QuizResult) error
	// FindByUser and FindAll skip deleted rows and return newest first with the quiz preloaded.
	FindByUser(ctx context.Context, userID uint) ([]model.QuizResult, error)
	FindAll(ctx context.Context) ([]model.QuizResult, error)
	// FindForTemplate returns live results whose snapshot quiz was taken from
	// templateID, completed at or after since when since is non-nil.
	FindForTemplate(ctx context.Context, templateID uint, since *time.Time) ([]model.QuizResult, error)
	MarkDeletedByQuizIDs(ctx context.Context, quizIDs []uint) error
}

type quizResultRepository struct {
	db *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) QuizResultRepository {
	return &quizResultRepository{db: db}
}

func (r *quizResultRepository) WithTx(tx *gorm.DB) QuizResultRepository {
	return &quizResultRepository{db: tx}
}

func (r *quizResultRepository) Create(ctx context.Context, result *model.QuizResult) error {
	return r.db.WithContext(ctx).Omit("User", "Quiz").Create(result).Error
}

func (r *quizResultRepository) FindByUser(ctx context.Context, userID uint) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.db.WithContext(ctx).
		Preload("Quiz").
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("date_of_completion DESC, id DESC").
		Find(&results).Error
	return results, err
}

func (r *quizResultRepository) FindAll(ctx context.Context) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.db.WithContext(ctx).
		Preload("Quiz").
		Preload("User").
		Where("is_deleted = ?", false).
		Order("date_of_completion DESC, id DESC").
		Find(&results).Error
	return results, err
}

func (r *quizResultRepository) FindForTemplate(ctx context.Context, templateID uint, since *time.Time) ([]model.QuizResult, error) {
	query := r.db.WithContext(ctx).
		Joins("JOIN quizzes ON quizzes.id = quiz_results.quiz_id").
		Preload("User").
		Where("quizzes.parent_quiz = ?", templateID).
		Where("quiz_results.is_deleted = ? AND quizzes.is_deleted = ?", false, false)
	if since != nil {
		query = query.Where("quiz_results.date_of_completion >= ?", *since)
	}

	var results []model.QuizResult
	err := query.Find(&results).Error
	return results, err
}

func (r *quizResultRepository) MarkDeletedByQuizIDs(ctx context.Context, quizIDs []uint) error {
	if len(quizIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.QuizResult{}).
		Where("quiz_id IN ?", quizIDs).
		Update("is_deleted", true).Error
}
