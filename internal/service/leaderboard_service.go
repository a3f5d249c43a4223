package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uros002/QuizHubApp/internal/dto"
	"github.com/uros002/QuizHubApp/internal/model"
	"github.com/uros002/QuizHubApp/internal/repository"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	PeriodAll      = "all"
	PeriodWeek     = "week"
	PeriodMonth    = "month"
	Period3Months  = "3months"
	PeriodYear     = "year"
	defaultPeriod  = PeriodAll
	msgUnknownSpan = "Unknown leaderboard period"
)

// LeaderboardPublisher pushes a rendered leaderboard to live subscribers of a template.
type LeaderboardPublisher interface {
	Publish(quizID uint, payload []byte)
}

type LeaderboardService interface {
	// GetLeaderboard ranks results of attempts taken from template quizID.
	// A limit of 0 returns every entry.
	GetLeaderboard(ctx context.Context, quizID uint, period string, limit int) (*dto.LeaderboardResponse, error)
	Invalidate(ctx context.Context, quizID uint)
	// Refresh invalidates the cached boards and publishes the current all-time board.
	Refresh(ctx context.Context, quizID uint)
}

type leaderboardService struct {
	quizRepo   repository.QuizRepository
	resultRepo repository.QuizResultRepository
	cache      repository.LeaderboardCache
	publisher  LeaderboardPublisher
	group      singleflight.Group
	now        func() time.Time

	mu          sync.Mutex
	generations map[uint]uint64 // bumped on every invalidation
}

func NewLeaderboardService(
	quizRepo repository.QuizRepository,
	resultRepo repository.QuizResultRepository,
	cache repository.LeaderboardCache,
	publisher LeaderboardPublisher,
) LeaderboardService {
	return NewLeaderboardServiceWithClock(quizRepo, resultRepo, cache, publisher, time.Now)
}

// NewLeaderboardServiceWithClock is NewLeaderboardService with an injectable clock.
func NewLeaderboardServiceWithClock(
	quizRepo repository.QuizRepository,
	resultRepo repository.QuizResultRepository,
	cache repository.LeaderboardCache,
	publisher LeaderboardPublisher,
	now func() time.Time,
) LeaderboardService {
	return &leaderboardService{
		quizRepo:    quizRepo,
		resultRepo:  resultRepo,
		cache:       cache,
		publisher:   publisher,
		now:         now,
		generations: make(map[uint]uint64),
	}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, quizID uint, period string, limit int) (*dto.LeaderboardResponse, error) {
	if period == "" {
		period = defaultPeriod
	}
	if limit < 0 {
		return nil, invalid("limit must not be negative")
	}
	now := s.now().UTC()
	since, ok := PeriodStart(period, now)
	if !ok {
		return nil, invalid(msgUnknownSpan)
	}

	template, err := s.template(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if board, ok := s.cached(ctx, quizID, period); ok {
		return truncate(board, limit), nil
	}

	board, err := s.load(ctx, template, period, since, now)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Str("period", period).Msg("Failed to compute leaderboard")
		return nil, internal("Failed to load leaderboard", err)
	}
	return truncate(board, limit), nil
}

func (s *leaderboardService) Invalidate(ctx context.Context, quizID uint) {
	s.bump(quizID)
	if err := s.cache.Invalidate(ctx, quizID); err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Msg("Failed to invalidate leaderboard cache")
	}
}

// Refresh never reads the cache: the published board is computed after the
// invalidation that follows the caller's commit.
func (s *leaderboardService) Refresh(ctx context.Context, quizID uint) {
	s.Invalidate(ctx, quizID)
	if s.publisher == nil {
		return
	}
	template, err := s.template(ctx, quizID)
	if err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Msg("Failed to build leaderboard update")
		return
	}
	board, err := s.load(ctx, template, PeriodAll, nil, s.now().UTC())
	if err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Msg("Failed to build leaderboard update")
		return
	}
	payload, err := json.Marshal(board)
	if err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Msg("Failed to encode leaderboard update")
		return
	}
	s.publisher.Publish(quizID, payload)
}

func (s *leaderboardService) template(ctx context.Context, quizID uint) (*model.Quiz, error) {
	template, err := s.quizRepo.FindByID(ctx, quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && (template.IsDeleted || !template.IsTemplate())) {
		return nil, notFound(MsgQuizNotFound)
	}
	if err != nil {
		return nil, internal("Failed to load leaderboard", err)
	}
	return template, nil
}

// load computes a board, sharing the work with concurrent callers of the same
// cache generation. Computations from an older generation never join newer
// ones, and a board they cached late is invalidated again.
func (s *leaderboardService) load(ctx context.Context, template *model.Quiz, period string, since *time.Time, now time.Time) (*dto.LeaderboardResponse, error) {
	gen := s.generation(template.ID)
	key := fmt.Sprintf("%d:%s:%d", template.ID, period, gen)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		// shared by every waiter, so detached from the first caller's cancellation
		ctx := context.WithoutCancel(ctx)
		board, err := s.compute(ctx, template, period, since, now)
		if err != nil {
			return nil, err
		}
		s.store(ctx, template.ID, period, gen, board)
		return board, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.LeaderboardResponse), nil
}

func (s *leaderboardService) store(ctx context.Context, quizID uint, period string, gen uint64, board *dto.LeaderboardResponse) {
	data, err := json.Marshal(board)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, quizID, period, data); err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Str("period", period).Msg("Failed to cache leaderboard")
		return
	}
	if s.generation(quizID) != gen {
		if err := s.cache.Invalidate(ctx, quizID); err != nil {
			log.Warn().Err(err).Uint("quizID", quizID).Msg("Failed to drop outdated leaderboard")
		}
	}
}

func (s *leaderboardService) generation(quizID uint) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[quizID]
}

func (s *leaderboardService) bump(quizID uint) {
	s.mu.Lock()
	s.generations[quizID]++
	s.mu.Unlock()
}

func (s *leaderboardService) cached(ctx context.Context, quizID uint, period string) (*dto.LeaderboardResponse, bool) {
	data, ok, err := s.cache.Get(ctx, quizID, period)
	if err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Msg("Leaderboard cache read failed, falling back to database")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var board dto.LeaderboardResponse
	if err := json.Unmarshal(data, &board); err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Msg("Discarding undecodable cached leaderboard")
		return nil, false
	}
	return &board, true
}

func (s *leaderboardService) compute(ctx context.Context, template *model.Quiz, period string, since *time.Time, now time.Time) (*dto.LeaderboardResponse, error) {
	results, err := s.resultRepo.FindForTemplate(ctx, template.ID, since)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.TimeDuration != b.TimeDuration {
			return a.TimeDuration < b.TimeDuration
		}
		if !a.DateOfCompletion.Equal(b.DateOfCompletion) {
			return a.DateOfCompletion.Before(b.DateOfCompletion)
		}
		return a.ID < b.ID
	})

	entries := make([]dto.LeaderboardEntry, 0, len(results))
	for i, r := range results {
		entry := dto.LeaderboardEntry{
			Rank:             i + 1,
			ResultID:         r.ID,
			UserID:           r.UserID,
			Points:           r.Points,
			Percentage:       percentOf(r.Points, template.QuizPoints),
			TimeDuration:     r.TimeDuration,
			DateOfCompletion: r.DateOfCompletion,
		}
		if r.User != nil {
			entry.Username = r.User.Username
		}
		entries = append(entries, entry)
	}

	return &dto.LeaderboardResponse{
		QuizID:      template.ID,
		QuizName:    template.Name,
		QuizPoints:  template.QuizPoints,
		Period:      period,
		Entries:     entries,
		GeneratedAt: now,
	}, nil
}

// PeriodStart returns the inclusive lower bound of period relative to now,
// nil for the all-time period. ok is false for unknown periods.
func PeriodStart(period string, now time.Time) (since *time.Time, ok bool) {
	var start time.Time
	switch period {
	case PeriodAll:
		return nil, true
	case PeriodWeek:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		start = midnight.AddDate(0, 0, -int(now.Weekday()))
	case PeriodMonth:
		start = now.AddDate(0, -1, 0)
	case Period3Months:
		start = now.AddDate(0, -3, 0)
	case PeriodYear:
		start = now.AddDate(-1, 0, 0)
	default:
		return nil, false
	}
	return &start, true
}

func percentOf(points, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(points) / float64(total) * 100))
}

func truncate(board *dto.LeaderboardResponse, limit int) *dto.LeaderboardResponse {
	if limit == 0 || len(board.Entries) <= limit {
		return board
	}
	out := *board
	out.Entries = board.Entries[:limit:limit]
	return &out
}
