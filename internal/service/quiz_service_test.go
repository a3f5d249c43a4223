package service

import (
	"context"
	"testing"
	"time"

	"github.com/uros002/QuizHubApp/internal/dto"
	"github.com/uros002/QuizHubApp/internal/model"
	"github.com/uros002/QuizHubApp/internal/testutil"
)

func uintPtr(v uint) *uint { return &v }

func geographyDTO() dto.QuizDTO {
	return dto.QuizDTO{
		Name:         "Geography",
		Description:  "Capitals",
		Category:     "General",
		Difficulty:   model.DifficultyMedium,
		TimeDuration: 120,
		Questions: []dto.QuestionDTO{
			{Body: "  capital of FRANCE? ", AnswerType: model.AnswerOneCorrect, Points: 4, Answers: []dto.AnswerDTO{
				{Text: "Paris", IsCorrect: true}, {Text: "Nice"},
			}},
			{Body: "Capital of Spain?", AnswerType: model.AnswerOneCorrect, Points: 6, Answers: []dto.AnswerDTO{
				{Text: "Madrid", IsCorrect: true},
			}},
		},
	}
}

func TestCreateQuizLinksQuestionsToParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent := testutil.SeedTemplate(t, f.db, "Seed")

	req := geographyDTO()
	req.ParentQuiz = uintPtr(parent.ID)
	resp, err := f.quizzes.CreateQuiz(ctx, req)
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	if resp.QuizPoints != 10 || resp.NumOfQuestions != 2 || resp.Version != 1 {
		t.Fatalf("unexpected quiz %+v", resp)
	}
	if resp.ParentQuiz != nil || resp.UserID != nil {
		t.Fatalf("template must not carry parentQuiz/userId: %+v", resp)
	}
	if len(resp.Questions) != 2 {
		t.Fatalf("questions = %d", len(resp.Questions))
	}
	first := resp.Questions[0]
	if first.ParentQuestion == nil || *first.ParentQuestion != parent.Questions[0].ID {
		t.Fatalf("first question parent = %v, want %d", first.ParentQuestion, parent.Questions[0].ID)
	}
	if resp.Questions[1].ParentQuestion != nil {
		t.Fatalf("unmatched question got parent %d", *resp.Questions[1].ParentQuestion)
	}
	if first.Answers[0].Text != "Paris" || !first.Answers[0].IsCorrect {
		t.Fatalf("answers not stored: %+v", first.Answers)
	}
}

func TestCreateQuizWithUnknownParentLeavesQuestionsUnlinked(t *testing.T) {
	f := newFixture(t)
	req := geographyDTO()
	req.ParentQuiz = uintPtr(4242)
	req.NumOfQuestions = 7

	resp, err := f.quizzes.CreateQuiz(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	if resp.NumOfQuestions != 7 {
		t.Fatalf("numOfQuestions = %d, want input value 7", resp.NumOfQuestions)
	}
	for _, q := range resp.Questions {
		if q.ParentQuestion != nil {
			t.Fatalf("question %q linked to %d", q.Body, *q.ParentQuestion)
		}
	}
}

func TestUpdateQuizAppendsVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v1, err := f.quizzes.CreateQuiz(ctx, geographyDTO())
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	req := geographyDTO()
	req.Name = "Geography (revised)"
	req.VersionParentQuiz = uintPtr(v1.ID)
	req.Questions = append(req.Questions, dto.QuestionDTO{
		Body: "Capital of Italy?", AnswerType: model.AnswerOneCorrect, Points: 1,
		Answers: []dto.AnswerDTO{{Text: "Rome", IsCorrect: true}},
	})
	v2, err := f.quizzes.UpdateQuiz(ctx, req)
	if err != nil {
		t.Fatalf("UpdateQuiz: %v", err)
	}

	if v2.ID == v1.ID || v2.Version != 2 || v2.VersionParentQuiz == nil || *v2.VersionParentQuiz != v1.ID {
		t.Fatalf("unexpected version row %+v", v2)
	}
	if v2.QuizPoints != 11 {
		t.Fatalf("quizPoints = %d, want 11", v2.QuizPoints)
	}
	if p := v2.Questions[0].ParentQuestion; p == nil || *p != v1.Questions[0].ID {
		t.Fatalf("question not linked to previous version: %v", p)
	}
	if v2.Questions[2].ParentQuestion != nil {
		t.Fatal("new question should have no parent")
	}

	old, err := f.quizzes.GetQuiz(ctx, v1.ID)
	if err != nil {
		t.Fatalf("GetQuiz v1: %v", err)
	}
	if old.Name != "Geography" || len(old.Questions) != 2 {
		t.Fatalf("previous version modified: %+v", old)
	}

	listed, err := f.quizzes.GetAllQuizzes(ctx)
	if err != nil {
		t.Fatalf("GetAllQuizzes: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != v2.ID {
		t.Fatalf("listing should only hold v2: %+v", listed)
	}

	all, err := f.quizzes.GetAllQuizzesForResults(ctx)
	if err != nil {
		t.Fatalf("GetAllQuizzesForResults: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("results listing = %d quizzes, want 2", len(all))
	}
}

func TestUpdateQuizRequiresExistingParent(t *testing.T) {
	f := newFixture(t)
	req := geographyDTO()

	_, err := f.quizzes.UpdateQuiz(context.Background(), req)
	if e := kindOf(t, err, KindNotFound); e.Message != MsgVersionParentNotFound {
		t.Fatalf("message = %q", e.Message)
	}

	req.VersionParentQuiz = uintPtr(999)
	_, err = f.quizzes.UpdateQuiz(context.Background(), req)
	kindOf(t, err, KindNotFound)
}

func TestGetQuizNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.quizzes.GetQuiz(context.Background(), 12345)
	if e := kindOf(t, err, KindNotFound); e.Message != MsgQuizNotFound {
		t.Fatalf("message = %q", e.Message)
	}
}

func TestDeleteQuizCascadesToAttemptsAndResults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	target := testutil.SeedTemplate(t, f.db, "Target")
	other := testutil.SeedTemplate(t, f.db, "Other")
	user := testutil.SeedUser(t, f.db, "dave")

	answers := dto.QuizCompletionDTO{UserID: user.ID, TimeLeft: 100, Answers: []dto.SubmittedAnswerDTO{
		{QuestionID: target.Questions[0].ID, Text: "Paris"},
	}}
	first, err := f.attempts.DoQuiz(ctx, target.ID, answers)
	if err != nil {
		t.Fatalf("DoQuiz target: %v", err)
	}
	if _, err := f.attempts.DoQuiz(ctx, target.ID, answers); err != nil {
		t.Fatalf("DoQuiz target again: %v", err)
	}
	otherAttempt, err := f.attempts.DoQuiz(ctx, other.ID, dto.QuizCompletionDTO{UserID: user.ID})
	if err != nil {
		t.Fatalf("DoQuiz other: %v", err)
	}

	if err := f.quizzes.DeleteQuiz(ctx, target.ID); err != nil {
		t.Fatalf("DeleteQuiz: %v", err)
	}

	var deletedQuizzes int64
	f.db.Model(&model.Quiz{}).Where("is_deleted = ?", true).Count(&deletedQuizzes)
	if deletedQuizzes != 3 {
		t.Fatalf("deleted quizzes = %d, want template plus two attempts", deletedQuizzes)
	}
	var snap model.Quiz
	f.db.First(&snap, first.SnapshotQuizID)
	if !snap.IsDeleted {
		t.Fatal("attempt snapshot not deleted")
	}
	var otherSnap model.Quiz
	f.db.First(&otherSnap, otherAttempt.SnapshotQuizID)
	if otherSnap.IsDeleted {
		t.Fatal("unrelated attempt deleted")
	}

	mine, err := f.results.GetMyResults(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetMyResults: %v", err)
	}
	if len(mine) != 1 || mine[0].QuizID != otherAttempt.SnapshotQuizID {
		t.Fatalf("remaining results = %+v", mine)
	}

	if len(f.cache.invalidated) == 0 || f.cache.invalidated[len(f.cache.invalidated)-1] != target.ID {
		t.Fatalf("leaderboard cache not invalidated: %v", f.cache.invalidated)
	}

	if _, err := f.quizzes.GetQuiz(ctx, target.ID); KindOf(err) != KindNotFound {
		t.Fatalf("deleted quiz still readable: %v", err)
	}
}

func TestDeleteQuizNotFound(t *testing.T) {
	f := newFixture(t)
	err := f.quizzes.DeleteQuiz(context.Background(), 77)
	kindOf(t, err, KindNotFound)
}

func TestGetMyResultsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiz := testutil.SeedTemplate(t, f.db, "History")
	user := testutil.SeedUser(t, f.db, "erin")

	at := []time.Time{fixedNow.Add(-2 * time.Hour), fixedNow}
	for i, when := range at {
		svc := f.attempts.(*attemptService)
		svc.now = func() time.Time { return when }
		if _, err := f.attempts.DoQuiz(ctx, quiz.ID, dto.QuizCompletionDTO{UserID: user.ID, TimeLeft: i}); err != nil {
			t.Fatalf("DoQuiz %d: %v", i, err)
		}
	}

	results, err := f.results.GetMyResults(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetMyResults: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	if !results[0].DateOfCompletion.After(results[1].DateOfCompletion) {
		t.Fatalf("not newest first: %v, %v", results[0].DateOfCompletion, results[1].DateOfCompletion)
	}
	if results[0].QuizName != "History" || results[0].ParentQuiz == nil || *results[0].ParentQuiz != quiz.ID {
		t.Fatalf("quiz details missing: %+v", results[0])
	}

	all, err := f.results.GetAllResults(ctx)
	if err != nil {
		t.Fatalf("GetAllResults: %v", err)
	}
	if len(all) != 2 || all[0].Username != "erin" {
		t.Fatalf("all results = %+v", all)
	}
}

// takeAttempt records one completion of template and returns the snapshot id.
func takeAttempt(t *testing.T, f *fixture, template *model.Quiz, username string) uint {
	t.Helper()
	user := testutil.SeedUser(t, f.db, username)
	receipt, err := f.attempts.DoQuiz(context.Background(), template.ID, dto.QuizCompletionDTO{
		UserID:   user.ID,
		TimeLeft: 100,
		Answers:  []dto.SubmittedAnswerDTO{{QuestionID: template.Questions[0].ID, Text: "Paris"}},
	})
	if err != nil {
		t.Fatalf("DoQuiz: %v", err)
	}
	return receipt.SnapshotQuizID
}

func TestUpdateQuizRejectsSnapshotAsVersionParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	template := testutil.SeedTemplate(t, f.db, "Capitals")
	snapshotID := takeAttempt(t, f, template, "irene")

	req := geographyDTO()
	req.VersionParentQuiz = uintPtr(snapshotID)
	_, err := f.quizzes.UpdateQuiz(ctx, req)
	if e := kindOf(t, err, KindNotFound); e.Message != MsgVersionParentNotFound {
		t.Fatalf("message = %q", e.Message)
	}

	listed, err := f.quizzes.GetAllQuizzes(ctx)
	if err != nil {
		t.Fatalf("GetAllQuizzes: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != template.ID {
		t.Fatalf("listing = %+v, want only the template", listed)
	}
}

func TestUpdateQuizRejectsAlreadySupersededVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v1, err := f.quizzes.CreateQuiz(ctx, geographyDTO())
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	req := geographyDTO()
	req.VersionParentQuiz = uintPtr(v1.ID)
	if _, err := f.quizzes.UpdateQuiz(ctx, req); err != nil {
		t.Fatalf("first UpdateQuiz: %v", err)
	}

	req.Name = "Geography (fork)"
	_, err = f.quizzes.UpdateQuiz(ctx, req)
	if e := kindOf(t, err, KindConflict); e.Message != MsgVersionSuperseded {
		t.Fatalf("message = %q", e.Message)
	}

	listed, err := f.quizzes.GetAllQuizzes(ctx)
	if err != nil {
		t.Fatalf("GetAllQuizzes: %v", err)
	}
	if len(listed) != 1 || listed[0].Version != 2 {
		t.Fatalf("listing = %+v, want the single v2", listed)
	}
}

func TestCreateQuizDoesNotLinkToSnapshot(t *testing.T) {
	f := newFixture(t)
	template := testutil.SeedTemplate(t, f.db, "Capitals")
	snapshotID := takeAttempt(t, f, template, "jonas")

	req := geographyDTO()
	req.ParentQuiz = uintPtr(snapshotID)
	resp, err := f.quizzes.CreateQuiz(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	for _, q := range resp.Questions {
		if q.ParentQuestion != nil {
			t.Fatalf("question %q linked to snapshot question %d", q.Body, *q.ParentQuestion)
		}
	}
}
