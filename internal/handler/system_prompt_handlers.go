package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeless-server/internal/models"
)

func (h *Handler) listSystemPrompts(c *gin.Context) {
	prompts, err := h.promptService.ListPrompts(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, msgSystemPromptNotFound)
		return
	}
	if prompts == nil {
		prompts = []*models.SystemPrompt{}
	}
	c.JSON(http.StatusOK, gin.H{"prompts": prompts})
}

func (h *Handler) getActiveSystemPrompt(c *gin.Context) {
	prompt, err := h.promptService.GetActivePrompt(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, msgSystemPromptNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": prompt})
}

// previewSystemPrompt возвращает промпт в том виде, в каком он уйдет модели.
func (h *Handler) previewSystemPrompt(c *gin.Context) {
	preview, err := h.assembler.Preview(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, msgSystemPromptNotFound)
		return
	}
	c.JSON(http.StatusOK, preview)
}

func (h *Handler) createSystemPrompt(c *gin.Context) {
	var req models.CreateSystemPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidRequest)
		return
	}

	prompt, err := h.promptService.CreatePrompt(c.Request.Context(), req.Content)
	if err != nil {
		h.handleServiceError(c, err, msgSystemPromptNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"prompt": prompt})
}

func (h *Handler) deleteSystemPrompt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.promptService.DeletePrompt(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, msgSystemPromptNotFound)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "System prompt deleted."})
}
