// Package controller holds helpers shared by the HTTP controllers.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/uros002/QuizHubApp/internal/dto"
	"github.com/uros002/QuizHubApp/internal/service"
)

// RespondError writes err as a dto.ErrorResponse with the status of its kind.
// Causes of internal errors are logged, never returned.
func RespondError(ctx *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unclassified service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
		return
	}

	status := StatusFor(svcErr.Kind)
	if status == http.StatusInternalServerError {
		log.Error().Err(svcErr.Err).Str("path", ctx.FullPath()).Msg(svcErr.Message)
	}
	ctx.JSON(status, dto.ErrorResponse{Message: svcErr.Message})
}

func StatusFor(kind service.ErrorKind) int {
	switch kind {
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// BindError answers 400 for a request that failed binding or validation.
func BindError(ctx *gin.Context, err error) {
	log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Failed to bind request")
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
}

// ParseID reads a positive numeric path parameter, answering 400 when it is malformed.
func ParseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}
