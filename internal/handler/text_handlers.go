package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeless-server/internal/models"
)

func (h *Handler) processInput(c *gin.Context) {
	var req models.ProcessInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidRequest)
		return
	}

	text, err := h.textService.ProcessInput(c.Request.Context(), req.Input)
	if err != nil {
		h.handleServiceError(c, err, msgSystemPromptNotFound)
		return
	}
	c.JSON(http.StatusOK, models.ProcessInputResponse{ProcessedText: text})
}
