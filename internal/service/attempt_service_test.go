package service

import (
	"context"
	"errors"
	"testing"

	"github.com/uros002/QuizHubApp/internal/dto"
	"github.com/uros002/QuizHubApp/internal/model"
	"github.com/uros002/QuizHubApp/internal/testutil"
	"gorm.io/gorm"
)

func TestDoQuizRecordsSnapshotAndResult(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiz := testutil.SeedTemplate(t, f.db, "Capitals")
	user := testutil.SeedUser(t, f.db, "frank")
	q1, q2 := quiz.Questions[0], quiz.Questions[1]

	receipt, err := f.attempts.DoQuiz(ctx, quiz.ID, dto.QuizCompletionDTO{
		UserID:   user.ID,
		QuizID:   quiz.ID,
		TimeLeft: 120,
		Answers: []dto.SubmittedAnswerDTO{
			{QuestionID: q1.ID, Text: "Paris"},
			{QuestionID: q2.ID, Text: "2"},
		},
	})
	if err != nil {
		t.Fatalf("DoQuiz: %v", err)
	}
	if receipt.Score.Points != 5 || receipt.Score.Percentage != 250 {
		t.Fatalf("score = %+v, want 5 points / 250", receipt.Score)
	}
	if receipt.Elapsed != 180 {
		t.Fatalf("elapsed = %d, want 180", receipt.Elapsed)
	}

	snapshot, err := f.quizRepo.FindActiveByIDWithQuestions(ctx, receipt.SnapshotQuizID)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if snapshot.ParentQuiz == nil || *snapshot.ParentQuiz != quiz.ID {
		t.Fatalf("snapshot parent = %v", snapshot.ParentQuiz)
	}
	if snapshot.UserID == nil || *snapshot.UserID != user.ID || snapshot.TimeDuration != 180 {
		t.Fatalf("snapshot owner/time wrong: %+v", snapshot)
	}
	if snapshot.Name != quiz.Name || snapshot.Version != quiz.Version || snapshot.Difficulty != quiz.Difficulty {
		t.Fatalf("snapshot metadata not copied: %+v", snapshot)
	}
	if len(snapshot.Questions) != 2 {
		t.Fatalf("snapshot questions = %d", len(snapshot.Questions))
	}
	for i, sq := range snapshot.Questions {
		if sq.ParentQuestion == nil || *sq.ParentQuestion != quiz.Questions[i].ID {
			t.Fatalf("question %d parent = %v", i, sq.ParentQuestion)
		}
		if len(sq.Answers) != 1 || sq.Answers[0].IsCorrect {
			t.Fatalf("question %d answers = %+v", i, sq.Answers)
		}
	}
	if snapshot.Questions[0].Answers[0].Text != "Paris" {
		t.Fatalf("submitted text not kept: %+v", snapshot.Questions[0].Answers)
	}

	var result model.QuizResult
	if err := f.db.First(&result, receipt.ResultID).Error; err != nil {
		t.Fatalf("load result: %v", err)
	}
	if result.QuizID != snapshot.ID || result.Points != 5 || result.TimeDuration != 180 || !result.DateOfCompletion.Equal(fixedNow) {
		t.Fatalf("unexpected result %+v", result)
	}

	if f.publisher.count(quiz.ID) != 1 {
		t.Fatalf("leaderboard update not published")
	}

	listed, err := f.quizzes.GetAllQuizzes(ctx)
	if err != nil {
		t.Fatalf("GetAllQuizzes: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != quiz.ID {
		t.Fatalf("snapshot leaked into template listing: %+v", listed)
	}
}

func TestDoQuizRejectsMismatchedBodyQuizID(t *testing.T) {
	f := newFixture(t)
	quiz := testutil.SeedTemplate(t, f.db, "A")
	other := testutil.SeedTemplate(t, f.db, "B")
	user := testutil.SeedUser(t, f.db, "gina")

	_, err := f.attempts.DoQuiz(context.Background(), quiz.ID, dto.QuizCompletionDTO{UserID: user.ID, QuizID: other.ID})
	kindOf(t, err, KindInvalid)
	assertNoAttempts(t, f.db)
}

func TestDoQuizValidatesInputs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiz := testutil.SeedTemplate(t, f.db, "A")
	user := testutil.SeedUser(t, f.db, "hank")

	_, err := f.attempts.DoQuiz(ctx, quiz.ID, dto.QuizCompletionDTO{UserID: user.ID, TimeLeft: quiz.TimeDuration + 1})
	kindOf(t, err, KindInvalid)

	_, err = f.attempts.DoQuiz(ctx, quiz.ID, dto.QuizCompletionDTO{UserID: user.ID, TimeLeft: -1})
	kindOf(t, err, KindInvalid)

	_, err = f.attempts.DoQuiz(ctx, quiz.ID, dto.QuizCompletionDTO{UserID: 999})
	if e := kindOf(t, err, KindNotFound); e.Message != MsgUserNotFound {
		t.Fatalf("message = %q", e.Message)
	}

	_, err = f.attempts.DoQuiz(ctx, 999, dto.QuizCompletionDTO{UserID: user.ID})
	if e := kindOf(t, err, KindNotFound); e.Message != MsgQuizNotFound {
		t.Fatalf("message = %q", e.Message)
	}

	if err := f.quizzes.DeleteQuiz(ctx, quiz.ID); err != nil {
		t.Fatalf("DeleteQuiz: %v", err)
	}
	_, err = f.attempts.DoQuiz(ctx, quiz.ID, dto.QuizCompletionDTO{UserID: user.ID})
	kindOf(t, err, KindNotFound)

	assertNoAttempts(t, f.db)
}

func TestDoQuizIsAtomic(t *testing.T) {
	f := newFixture(t)
	quiz := testutil.SeedTemplate(t, f.db, "A")
	user := testutil.SeedUser(t, f.db, "ivy")

	err := f.db.Callback().Create().Before("gorm:create").Register("test:fail_results", func(tx *gorm.DB) {
		if tx.Statement.Table == "quiz_results" {
			_ = tx.AddError(errors.New("injected failure"))
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, err = f.attempts.DoQuiz(context.Background(), quiz.ID, dto.QuizCompletionDTO{UserID: user.ID, TimeLeft: 10})
	kindOf(t, err, KindInternal)
	assertNoAttempts(t, f.db)
	if f.publisher.count(quiz.ID) != 0 {
		t.Fatal("published despite failed transaction")
	}
}

func TestBuildSnapshotFailsWithoutParentQuestion(t *testing.T) {
	live := &model.Quiz{ID: 2, Questions: []model.Question{{ID: 10, Body: "New question"}}}
	parent := &model.Quiz{ID: 1, Questions: []model.Question{{ID: 5, Body: "Old question"}}}

	if _, err := buildSnapshot(live, parent, 1, 0, nil); err == nil {
		t.Fatal("expected error for unmatched question")
	}
}

func assertNoAttempts(t *testing.T, db *gorm.DB) {
	t.Helper()
	var snapshots, results int64
	db.Model(&model.Quiz{}).Where("user_id IS NOT NULL").Count(&snapshots)
	db.Model(&model.QuizResult{}).Count(&results)
	if snapshots != 0 || results != 0 {
		t.Fatalf("found %d snapshots and %d results, want none", snapshots, results)
	}
}

func TestDoQuizRejectsSnapshotID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	template := testutil.SeedTemplate(t, f.db, "Capitals")
	snapshotID := takeAttempt(t, f, template, "kasia")
	user := testutil.SeedUser(t, f.db, "lena")

	_, err := f.attempts.DoQuiz(ctx, snapshotID, dto.QuizCompletionDTO{
		UserID:   user.ID,
		TimeLeft: 0,
		Answers:  []dto.SubmittedAnswerDTO{{QuestionID: 1, Text: "Paris"}},
	})
	if e := kindOf(t, err, KindNotFound); e.Message != MsgQuizNotFound {
		t.Fatalf("message = %q", e.Message)
	}

	var quizzes, results int64
	f.db.Model(&model.Quiz{}).Count(&quizzes)
	f.db.Model(&model.QuizResult{}).Count(&results)
	if quizzes != 2 || results != 1 {
		t.Fatalf("rows written for snapshot attempt: quizzes=%d results=%d", quizzes, results)
	}

	if _, err := f.leaderboard.GetLeaderboard(ctx, snapshotID, PeriodAll, 0); KindOf(err) != KindNotFound {
		t.Fatalf("leaderboard of a snapshot: %v", err)
	}
}
