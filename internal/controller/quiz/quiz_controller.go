package quiz

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/uros002/QuizHubApp/internal/controller"
	"github.com/uros002/QuizHubApp/internal/dto"
	"github.com/uros002/QuizHubApp/internal/service"
)

type QuizController struct {
	quizService        service.QuizService
	attemptService     service.AttemptService
	resultService      service.ResultService
	leaderboardService service.LeaderboardService
}

func NewQuizController(
	quizService service.QuizService,
	attemptService service.AttemptService,
	resultService service.ResultService,
	leaderboardService service.LeaderboardService,
) *QuizController {
	return &QuizController{
		quizService:        quizService,
		attemptService:     attemptService,
		resultService:      resultService,
		leaderboardService: leaderboardService,
	}
}

// CreateQuiz godoc
// @Summary Create a quiz template
// @Description Questions are linked to the questions of parentQuiz by body when parentQuiz is given.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz body dto.QuizDTO true "Quiz with questions and answers"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes/createQuiz [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req dto.QuizDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	if _, err := c.quizService.CreateQuiz(ctx.Request.Context(), req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: service.MsgQuizCreated})
}

// UpdateQuiz godoc
// @Summary Publish a new version of a quiz
// @Description Appends a quiz row superseding versionParentQuiz. The previous version is kept unchanged.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz body dto.QuizDTO true "New version; versionParentQuiz is required"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Parent quiz for version is not existing!"
// @Failure 409 {object} dto.ErrorResponse "Quiz already has a newer version!"
// @Router /quizzes/updateQuiz [post]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	var req dto.QuizDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	if _, err := c.quizService.UpdateQuiz(ctx.Request.Context(), req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: service.MsgQuizUpdated})
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Description Soft-deletes the quiz, every attempt taken from it and their results. Admin only.
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/deleteQuiz/{quizId} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "quizId")
	if !ok {
		return
	}
	if err := c.quizService.DeleteQuiz(ctx.Request.Context(), id); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: service.MsgQuizDeleted})
}

// GetAllQuizzes godoc
// @Summary List quizzes available to take
// @Description Latest version of every live template.
// @Tags Quizzes
// @Produce json
// @Success 200 {array} dto.QuizResponse
// @Router /quizzes/getAllQuizzes [get]
func (c *QuizController) GetAllQuizzes(ctx *gin.Context) {
	quizzes, err := c.quizService.GetAllQuizzes(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetAllQuizzesForResults godoc
// @Summary List every live quiz
// @Description Includes older versions and attempt snapshots, for rendering results.
// @Tags Quizzes
// @Produce json
// @Success 200 {array} dto.QuizResponse
// @Router /quizzes/getAllQuizzesForResults [get]
func (c *QuizController) GetAllQuizzesForResults(ctx *gin.Context) {
	quizzes, err := c.quizService.GetAllQuizzesForResults(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary Get a quiz with questions and answers
// @Tags Quizzes
// @Produce json
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/getQuiz/{quizId} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "quizId")
	if !ok {
		return
	}
	quiz, err := c.quizService.GetQuiz(ctx.Request.Context(), id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// DoQuiz godoc
// @Summary Submit a completed quiz
// @Description Records a snapshot of the attempt and its score. The score is not returned.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param quizId path int true "Quiz ID"
// @Param completion body dto.QuizCompletionDTO true "Answers and remaining time"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/doQuiz/{quizId} [post]
func (c *QuizController) DoQuiz(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "quizId")
	if !ok {
		return
	}
	var req dto.QuizCompletionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	if _, err := c.attemptService.DoQuiz(ctx.Request.Context(), id, req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: service.MsgQuizDone})
}

// GetMyResults godoc
// @Summary Results of one user
// @Tags Results
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} dto.QuizResultResponse
// @Router /quizzes/getMyResults/{userId} [get]
func (c *QuizController) GetMyResults(ctx *gin.Context) {
	userID, ok := controller.ParseID(ctx, "userId")
	if !ok {
		return
	}
	results, err := c.resultService.GetMyResults(ctx.Request.Context(), userID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// GetAllResults godoc
// @Summary Results of every user
// @Tags Results
// @Produce json
// @Success 200 {array} dto.QuizResultResponse
// @Router /quizzes/getAllResults [get]
func (c *QuizController) GetAllResults(ctx *gin.Context) {
	results, err := c.resultService.GetAllResults(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// GetLeaderboard godoc
// @Summary Leaderboard of a quiz template
// @Description Results of attempts taken from the template, ranked by points then time.
// @Tags Results
// @Produce json
// @Param quizId path int true "Template quiz ID"
// @Param period query string false "all, week, month, 3months or year" default(all)
// @Param limit query int false "Maximum entries, 0 for all" default(0)
// @Success 200 {object} dto.LeaderboardResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/getLeaderboard/{quizId} [get]
func (c *QuizController) GetLeaderboard(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "quizId")
	if !ok {
		return
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	if err != nil {
		log.Warn().Str("limit", ctx.Query("limit")).Msg("GetLeaderboard: bad limit")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid limit format"})
		return
	}
	board, err := c.leaderboardService.GetLeaderboard(ctx.Request.Context(), id, ctx.DefaultQuery("period", service.PeriodAll), limit)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, board)
}
