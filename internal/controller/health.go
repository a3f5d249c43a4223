package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uros002/QuizHubApp/internal/dto"
	"github.com/uros002/QuizHubApp/internal/repository"
	"gorm.io/gorm"
)

type HealthController struct {
	db    *gorm.DB
	cache repository.LeaderboardCache
}

func NewHealthController(db *gorm.DB, cache repository.LeaderboardCache) *HealthController {
	return &HealthController{db: db, cache: cache}
}

// Health godoc
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", Database: "ok", Cache: "ok"}
	status := http.StatusOK

	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request.Context())
	}
	if err != nil {
		resp.Status, resp.Database = "degraded", "unavailable"
		status = http.StatusServiceUnavailable
	}

	if err := c.cache.Ping(ctx.Request.Context()); err != nil {
		if err == repository.ErrCacheDisabled {
			resp.Cache = "disabled"
		} else {
			// the leaderboard falls back to the database
			resp.Cache = "unavailable"
		}
	}
	ctx.JSON(status, resp)
}
