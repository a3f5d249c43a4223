package socket

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/uros002/QuizHubApp/config"
	"github.com/uros002/QuizHubApp/internal/controller"
	"github.com/uros002/QuizHubApp/internal/realtime"
	"github.com/uros002/QuizHubApp/internal/service"
)

type LeaderboardSocketController struct {
	hub                *realtime.Hub
	leaderboardService service.LeaderboardService
	upgrader           websocket.Upgrader
}

func NewLeaderboardSocketController(hub *realtime.Hub, leaderboardService service.LeaderboardService, cfg *config.Config) *LeaderboardSocketController {
	allowed := make(map[string]struct{}, len(cfg.CORS.AllowOrigins))
	for _, o := range cfg.CORS.AllowOrigins {
		allowed[o] = struct{}{}
	}
	return &LeaderboardSocketController{
		hub:                hub,
		leaderboardService: leaderboardService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				_, wildcard := allowed["*"]
				return ok || wildcard
			},
		},
	}
}

// Stream godoc
// @Summary Live leaderboard of a quiz template
// @Description Upgrades to a websocket. Sends the current all-time board, then a new board after every completion.
// @Tags Results
// @Param quizId path int true "Template quiz ID"
// @Success 101
// @Failure 404 {object} dto.ErrorResponse
// @Router /ws/leaderboard/{quizId} [get]
func (c *LeaderboardSocketController) Stream(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "quizId")
	if !ok {
		return
	}
	board, err := c.leaderboardService.GetLeaderboard(ctx.Request.Context(), id, service.PeriodAll, 0)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	initial, err := json.Marshal(board)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Warn().Err(err).Uint("quizID", id).Msg("Websocket upgrade failed")
		return
	}
	log.Info().Uint("quizID", id).Msg("Leaderboard subscriber connected")
	c.hub.Serve(conn, id, initial)
	log.Info().Uint("quizID", id).Msg("Leaderboard subscriber disconnected")
}
