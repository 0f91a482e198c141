package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timeless-server/internal/ai"
	"timeless-server/internal/models"
)

const (
	msgInvalidRequest       = "Invalid request body."
	msgInvalidID            = "Invalid id."
	msgUnauthorized         = "Unauthorized"
	msgInvalidCredentials   = "Invalid username or password."
	msgPromptNotConfigured  = "System prompt not configured."
	msgGenerationFailed     = "An error occurred while generating completions."
	msgInternalServerError  = "Internal server error."
	msgSystemPromptNotFound = "System prompt not found."
	msgExampleNotFound      = "Example not found."
	msgProposalNotFound     = "Proposed example not found."
)

// errorStatus сопоставляет ошибку сервиса с HTTP статусом и текстом для клиента.
func errorStatus(err error, notFoundMessage string) (int, string) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest, msgInvalidRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, notFoundMessage
	case errors.Is(err, models.ErrSystemPromptNotConfigured):
		return http.StatusInternalServerError, msgPromptNotConfigured
	case errors.Is(err, ai.ErrGenerationFailed):
		return http.StatusBadGateway, msgGenerationFailed
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, models.ErrUnauthorized),
		errors.Is(err, models.ErrTokenInvalid),
		errors.Is(err, models.ErrTokenMalformed),
		errors.Is(err, models.ErrTokenExpired),
		errors.Is(err, models.ErrTokenNotFound):
		return http.StatusUnauthorized, msgUnauthorized
	default:
		return http.StatusInternalServerError, msgInternalServerError
	}
}

// handleServiceError пишет JSON-ответ {error} для ошибки сервиса.
func (h *Handler) handleServiceError(c *gin.Context, err error, notFoundMessage string) {
	status, message := errorStatus(err, notFoundMessage)
	log := h.logger.With(
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", status),
		zap.Error(err),
	)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed")
	} else {
		log.Warn("Request rejected")
	}
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: message})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: message})
}

// parseID читает положительный числовой параметр :id.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, msgInvalidID)
		return 0, false
	}
	return id, true
}
