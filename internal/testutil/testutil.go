// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/uros002/QuizHubApp/config"
	"github.com/uros002/QuizHubApp/database"
	"github.com/uros002/QuizHubApp/internal/model"
	"gorm.io/gorm"
)

// DB opens a migrated in-memory sqlite database private to tb.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	db, err := database.Open(config.Database{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString()),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func SeedUser(tb testing.TB, db *gorm.DB, username string) *model.User {
	tb.Helper()
	user := &model.User{
		Username: username,
		Password: "not-a-real-hash",
		Email:    username + "@example.com",
	}
	if err := db.Create(user).Error; err != nil {
		tb.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

// SeedTemplate stores a two-question template: a OneCorrect question worth 5
// points ("Capital of France?" → "Paris") and a MultipleChoice question worth
// 10 points ("Pick primes" → "2", "3").
func SeedTemplate(tb testing.TB, db *gorm.DB, name string) *model.Quiz {
	tb.Helper()
	quiz := &model.Quiz{
		Name:           name,
		Description:    "seeded",
		Category:       "General",
		Difficulty:     model.DifficultyEasy,
		NumOfQuestions: 2,
		TimeDuration:   300,
		QuizPoints:     15,
		Version:        1,
		Questions: []model.Question{
			{
				Body:       "Capital of France?",
				AnswerType: model.AnswerOneCorrect,
				Points:     5,
				Answers: []model.Answer{
					{Text: "Paris", IsCorrect: true},
					{Text: "Lyon"},
				},
			},
			{
				Body:       "Pick primes",
				AnswerType: model.AnswerMultipleChoice,
				Points:     10,
				Answers: []model.Answer{
					{Text: "2", IsCorrect: true},
					{Text: "3", IsCorrect: true},
					{Text: "4"},
				},
			},
		},
	}
	if err := db.Create(quiz).Error; err != nil {
		tb.Fatalf("seed template %s: %v", name, err)
	}
	return quiz
}
