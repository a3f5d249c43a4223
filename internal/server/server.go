// Package server assembles the HTTP application with fx.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/uros002/QuizHubApp/config"
	"github.com/uros002/QuizHubApp/database"
	_ "github.com/uros002/QuizHubApp/docs" // swagger spec
	"github.com/uros002/QuizHubApp/internal/controller"
	quizctrl "github.com/uros002/QuizHubApp/internal/controller/quiz"
	socketctrl "github.com/uros002/QuizHubApp/internal/controller/socket"
	userctrl "github.com/uros002/QuizHubApp/internal/controller/user"
	"github.com/uros002/QuizHubApp/internal/middleware"
	"github.com/uros002/QuizHubApp/internal/model"
	"github.com/uros002/QuizHubApp/internal/realtime"
	"github.com/uros002/QuizHubApp/internal/repository"
	"github.com/uros002/QuizHubApp/internal/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Module provides everything below the HTTP listener. The caller supplies *config.Config.
func Module() fx.Option {
	return fx.Options(
		// Infrastructure
		fx.Provide(
			NewDatabase,
			NewRedisClient,
			func(client *redis.Client, cfg *config.Config) repository.LeaderboardCache {
				return repository.NewLeaderboardCache(client, cfg.Leaderboard.CacheTTL)
			},
			realtime.NewHub,
			func(hub *realtime.Hub) service.LeaderboardPublisher { return hub },
			NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewQuizRepository,
			repository.NewQuizResultRepository,
			repository.NewUserRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewScorer,
			service.NewTokenService,
			service.NewLeaderboardService,
			service.NewQuizService,
			service.NewAttemptService,
			service.NewResultService,
			service.NewUserService,
		),

		// API Controllers Layer
		fx.Provide(
			quizctrl.NewQuizController,
			userctrl.NewUserController,
			socketctrl.NewLeaderboardSocketController,
			controller.NewHealthController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutes),
	)
}

// NewDatabase opens the database and closes it when the application stops.
func NewDatabase(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return db, nil
}

// NewRedisClient returns nil when REDIS_ADDR is empty.
func NewRedisClient(lc fx.Lifecycle, cfg *config.Config) *redis.Client {
	client := database.NewRedisClient(cfg.Redis)
	if client == nil {
		log.Info().Msg("REDIS_ADDR not set, leaderboard cache disabled")
		return nil
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				// the leaderboard degrades to database reads
				log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable at startup")
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		requestID, _ := param.Keys[middleware.ContextRequestID].(string)
		log.Info().
			Str("request_id", requestID).
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

type Routes struct {
	fx.In

	Router      *gin.Engine
	Tokens      service.TokenService
	Quizzes     *quizctrl.QuizController
	Users       *userctrl.UserController
	Leaderboard *socketctrl.LeaderboardSocketController
	Health      *controller.HealthController
}

// RegisterRoutes mounts the API. Quiz authoring needs a bearer token and
// deletion additionally the Admin role.
func RegisterRoutes(rt Routes) {
	router := rt.Router
	router.GET("/health", rt.Health.Health)
	router.GET("/ws/leaderboard/:quizId", rt.Leaderboard.Stream)

	api := router.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/register", rt.Users.Register)
		users.POST("/login", rt.Users.Login)
		users.GET("/getAllUsers", rt.Users.GetAllUsers)
	}

	auth := middleware.RequireAuth(rt.Tokens)
	quizzes := api.Group("/quizzes")
	{
		quizzes.GET("/getAllQuizzes", rt.Quizzes.GetAllQuizzes)
		quizzes.GET("/getAllQuizzesForResults", rt.Quizzes.GetAllQuizzesForResults)
		quizzes.GET("/getQuiz/:quizId", rt.Quizzes.GetQuiz)
		quizzes.POST("/createQuiz", auth, rt.Quizzes.CreateQuiz)
		quizzes.POST("/updateQuiz", auth, rt.Quizzes.UpdateQuiz)
		quizzes.DELETE("/deleteQuiz/:quizId", auth, middleware.RequireRole(model.RoleAdmin), rt.Quizzes.DeleteQuiz)
		quizzes.POST("/doQuiz/:quizId", rt.Quizzes.DoQuiz)
		quizzes.GET("/getMyResults/:userId", rt.Quizzes.GetMyResults)
		quizzes.GET("/getAllResults", rt.Quizzes.GetAllResults)
		quizzes.GET("/getLeaderboard/:quizId", rt.Quizzes.GetLeaderboard)
	}
}

// StartServer manages the HTTP listener through the fx lifecycle.
func StartServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Config) {
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QuizHub API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := database.AutoMigrate(db); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
