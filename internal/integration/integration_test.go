package integration

import (
	"context"
	"strings"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uros002/QuizHubApp/config"
	"github.com/uros002/QuizHubApp/database"
	"github.com/uros002/QuizHubApp/internal/dto"
	"github.com/uros002/QuizHubApp/internal/realtime"
	"github.com/uros002/QuizHubApp/internal/repository"
	"github.com/uros002/QuizHubApp/internal/service"
	"github.com/uros002/QuizHubApp/internal/testutil"
)

func TestDoQuizAndLeaderboardOnPostgresAndRedis(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pg := startPostgres(t, ctx)
	redisAddr := startRedis(t, ctx)

	db, err := database.Open(pg)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	client := database.NewRedisClient(config.Redis{Addr: redisAddr})
	t.Cleanup(func() { _ = client.Close() })

	quizRepo := repository.NewQuizRepository(db)
	resultRepo := repository.NewQuizResultRepository(db)
	userRepo := repository.NewUserRepository(db)
	cache := repository.NewLeaderboardCache(client, time.Minute)
	leaderboard := service.NewLeaderboardService(quizRepo, resultRepo, cache, realtime.NewHub())
	attempts := service.NewAttemptService(quizRepo, resultRepo, userRepo, service.NewScorer(), leaderboard, db)
	quizzes := service.NewQuizService(quizRepo, resultRepo, leaderboard, db)

	user := testutil.SeedUser(t, db, "marta")
	template := testutil.SeedTemplate(t, db, "Integration")

	receipt, err := attempts.DoQuiz(ctx, template.ID, dto.QuizCompletionDTO{
		UserID:   user.ID,
		TimeLeft: 100,
		Answers: []dto.SubmittedAnswerDTO{
			{QuestionID: template.Questions[0].ID, Text: "Paris"},
			{QuestionID: template.Questions[1].ID, Text: "2"},
			{QuestionID: template.Questions[1].ID, Text: "3"},
		},
	})
	if err != nil {
		t.Fatalf("DoQuiz: %v", err)
	}
	if receipt.Score.Points != 15 || receipt.Elapsed != 200 {
		t.Fatalf("receipt = %+v", receipt)
	}

	board, err := leaderboard.GetLeaderboard(ctx, template.ID, service.PeriodAll, 0)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if len(board.Entries) != 1 || board.Entries[0].Username != "marta" || board.Entries[0].Percentage != 100 {
		t.Fatalf("board = %+v", board)
	}
	key := repository.LeaderboardKey(template.ID)
	if n, err := client.HLen(ctx, key).Result(); err != nil || n == 0 {
		t.Fatalf("expected cached board under %s, got %d (%v)", key, n, err)
	}

	if err := quizzes.DeleteQuiz(ctx, template.ID); err != nil {
		t.Fatalf("DeleteQuiz: %v", err)
	}
	if n, _ := client.Exists(ctx, key).Result(); n != 0 {
		t.Fatalf("cached board survived delete")
	}
	if _, err := leaderboard.GetLeaderboard(ctx, template.ID, service.PeriodAll, 0); service.KindOf(err) != service.KindNotFound {
		t.Fatalf("leaderboard after delete: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) config.Database {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizhub"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	return config.Database{
		Driver:   "postgres",
		Host:     host,
		Port:     port.Port(),
		User:     "quiz",
		Password: "quizpass",
		Name:     "quizhub",
		SSLMode:  "disable",
	}
}

func startRedis(t *testing.T, ctx context.Context) string {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	return host + ":" + port.Port()
}

func requireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
