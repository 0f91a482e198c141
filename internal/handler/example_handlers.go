package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeless-server/internal/models"
)

func (h *Handler) listExamples(c *gin.Context) {
	examples, err := h.exampleService.ListExamples(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, msgExampleNotFound)
		return
	}
	if examples == nil {
		examples = []*models.Example{}
	}
	c.JSON(http.StatusOK, gin.H{"examples": examples})
}

func (h *Handler) getExample(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	example, err := h.exampleService.GetExample(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, msgExampleNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"example": example})
}

func (h *Handler) createExample(c *gin.Context) {
	var req models.CreateExampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidRequest)
		return
	}

	example, err := h.exampleService.CreateExample(c.Request.Context(), req.Input, req.Output)
	if err != nil {
		h.handleServiceError(c, err, msgExampleNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"example": example})
}

// updateExample принимает частичное обновление: страница автосохраняет одно поле за раз.
func (h *Handler) updateExample(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var update models.ExampleUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, msgInvalidRequest)
		return
	}

	example, err := h.exampleService.UpdateExample(c.Request.Context(), id, update)
	if err != nil {
		h.handleServiceError(c, err, msgExampleNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"example": example})
}

func (h *Handler) deleteExample(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.exampleService.DeleteExample(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, msgExampleNotFound)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Example deleted."})
}

// regenerateExample возвращает принятый пример на проверку с новыми вариантами.
func (h *Handler) regenerateExample(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	proposal, err := h.proposalService.RegenerateExample(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, msgExampleNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"proposedExample": proposal})
}
