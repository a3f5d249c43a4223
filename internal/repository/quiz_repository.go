package repository

import (
	"context"

	"github.com/uros002/QuizHubApp/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	WithTx(tx *gorm.DB) QuizRepository
	Create(ctx context.Context, quiz *model.Quiz) error
	FindByID(ctx context.Context, id uint) (*model.Quiz, error)
	// FindActiveByIDWithQuestions loads a non-deleted quiz with questions and answers.
	FindActiveByIDWithQuestions(ctx context.Context, id uint) (*model.Quiz, error)
	// FindTemplateByIDWithQuestions is FindActiveByIDWithQuestions restricted to
	// authored templates; attempt snapshots are reported as not found.
	FindTemplateByIDWithQuestions(ctx context.Context, id uint) (*model.Quiz, error)
	// HasSuccessor reports whether any quiz names id as its version parent.
	HasSuccessor(ctx context.Context, id uint) (bool, error)
	// FindLatestTemplates returns non-deleted templates that no other quiz supersedes.
	FindLatestTemplates(ctx context.Context) ([]model.Quiz, error)
	FindAllActive(ctx context.Context) ([]model.Quiz, error)
	// FindAttemptIDs returns the ids of snapshot quizzes taken from template parentID.
	FindAttemptIDs(ctx context.Context, parentID uint) ([]uint, error)
	MarkDeleted(ctx context.Context, ids []uint) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) WithTx(tx *gorm.DB) QuizRepository {
	return &quizRepository{db: tx}
}

func (r *quizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	// questions and answers are inserted through the has-many associations
	return r.db.WithContext(ctx).Create(quiz).Error
}

func (r *quizRepository) FindByID(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindActiveByIDWithQuestions(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := withQuestions(r.db.WithContext(ctx)).
		Where("is_deleted = ?", false).
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindTemplateByIDWithQuestions(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := withQuestions(r.db.WithContext(ctx)).
		Where("user_id IS NULL AND is_deleted = ?", false).
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) HasSuccessor(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Quiz{}).
		Where("version_parent_quiz = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *quizRepository) FindLatestTemplates(ctx context.Context) ([]model.Quiz, error) {
	superseded := r.db.Model(&model.Quiz{}).
		Select("version_parent_quiz").
		Where("version_parent_quiz IS NOT NULL")

	var quizzes []model.Quiz
	err := withQuestions(r.db.WithContext(ctx)).
		Where("user_id IS NULL AND is_deleted = ?", false).
		Where("id NOT IN (?)", superseded).
		Order("id ASC").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) FindAllActive(ctx context.Context) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := withQuestions(r.db.WithContext(ctx)).
		Where("is_deleted = ?", false).
		Order("id ASC").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) FindAttemptIDs(ctx context.Context, parentID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Quiz{}).
		Where("parent_quiz = ?", parentID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *quizRepository) MarkDeleted(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Quiz{}).
		Where("id IN ?", ids).
		Update("is_deleted", true).Error
}

func withQuestions(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id ASC")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.id ASC")
		})
}
