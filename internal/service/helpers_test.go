package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/uros002/QuizHubApp/internal/repository"
	"github.com/uros002/QuizHubApp/internal/testutil"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC) // a Wednesday

type spyPublisher struct {
	mu       sync.Mutex
	messages map[uint][][]byte
}

func (p *spyPublisher) Publish(quizID uint, payload []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.messages == nil {
		p.messages = make(map[uint][][]byte)
	}
	p.messages[quizID] = append(p.messages[quizID], payload)
}

func (p *spyPublisher) count(quizID uint) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages[quizID])
}

// countingCache wraps a cache and records invalidations.
type countingCache struct {
	repository.LeaderboardCache
	mu          sync.Mutex
	invalidated []uint
}

func (c *countingCache) Invalidate(ctx context.Context, quizID uint) error {
	c.mu.Lock()
	c.invalidated = append(c.invalidated, quizID)
	c.mu.Unlock()
	return c.LeaderboardCache.Invalidate(ctx, quizID)
}

type fixture struct {
	db          *gorm.DB
	quizRepo    repository.QuizRepository
	resultRepo  repository.QuizResultRepository
	userRepo    repository.UserRepository
	cache       *countingCache
	publisher   *spyPublisher
	leaderboard LeaderboardService
	quizzes     QuizService
	attempts    AttemptService
	results     ResultService
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithCache(t, repository.NewLeaderboardCache(nil, 0))
}

func newFixtureWithCache(t *testing.T, cache repository.LeaderboardCache) *fixture {
	t.Helper()
	db := testutil.DB(t)
	f := &fixture{
		db:         db,
		quizRepo:   repository.NewQuizRepository(db),
		resultRepo: repository.NewQuizResultRepository(db),
		userRepo:   repository.NewUserRepository(db),
		cache:      &countingCache{LeaderboardCache: cache},
		publisher:  &spyPublisher{},
	}
	f.leaderboard = NewLeaderboardServiceWithClock(f.quizRepo, f.resultRepo, f.cache, f.publisher, func() time.Time { return fixedNow })
	f.quizzes = NewQuizService(f.quizRepo, f.resultRepo, f.leaderboard, db)
	attempts := NewAttemptService(f.quizRepo, f.resultRepo, f.userRepo, NewScorer(), f.leaderboard, db).(*attemptService)
	attempts.now = func() time.Time { return fixedNow }
	f.attempts = attempts
	f.results = NewResultService(f.resultRepo)
	return f
}

func kindOf(t *testing.T, err error, want ErrorKind) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("error kind = %v, want %v (%v)", got, want, err)
	}
	e, _ := err.(*Error)
	return e
}
