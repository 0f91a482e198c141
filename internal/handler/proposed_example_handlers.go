package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timeless-server/internal/models"
	"timeless-server/internal/service"
)

func (h *Handler) listProposedExamples(c *gin.Context) {
	proposals, err := h.proposalService.ListProposedExamples(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, msgProposalNotFound)
		return
	}
	if proposals == nil {
		proposals = []*models.ProposedExample{}
	}
	c.JSON(http.StatusOK, gin.H{"proposedExamples": proposals})
}

func (h *Handler) getProposedExample(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	proposal, err := h.proposalService.GetProposedExample(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, msgProposalNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposedExample": proposal})
}

func (h *Handler) createProposedExample(c *gin.Context) {
	var req models.CreateProposedExampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidRequest)
		return
	}

	proposal, err := h.proposalService.Generate(c.Request.Context(), req.Input)
	if err != nil {
		h.handleServiceError(c, err, msgProposalNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"proposedExample": proposal})
}

// batchProposedExamples принимает {inputs:[...]} и/или {text:"по фразе на строку"}.
func (h *Handler) batchProposedExamples(c *gin.Context) {
	var req models.BatchProposedExamplesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidRequest)
		return
	}
	inputs := append(append([]string{}, req.Inputs...), service.SplitLines(req.Text)...)

	results, err := h.proposalService.GenerateBatch(c.Request.Context(), inputs)
	if err != nil {
		h.handleServiceError(c, err, msgProposalNotFound)
		return
	}

	succeeded := 0
	for _, r := range results {
		if r.Succeeded() {
			succeeded++
		}
	}
	status := batchStatus(succeeded, len(results))
	if status != http.StatusOK {
		h.logger.Warn("Batch generation finished with failures",
			zap.Int("succeeded", succeeded),
			zap.Int("total", len(results)))
	}
	c.JSON(status, gin.H{"results": results})
}

// batchStatus: 200 - все фразы успешны, 207 - часть с ошибками, 502 - ни одной успешной.
func batchStatus(succeeded, total int) int {
	switch {
	case succeeded == total:
		return http.StatusOK
	case succeeded == 0:
		return http.StatusBadGateway
	default:
		return http.StatusMultiStatus
	}
}

func (h *Handler) regenerateProposedExample(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	proposal, err := h.proposalService.Regenerate(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, msgProposalNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposedExample": proposal})
}

func (h *Handler) promoteProposedExample(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidRequest)
		return
	}

	example, err := h.proposalService.Promote(c.Request.Context(), id, req.Completion)
	if err != nil {
		h.handleServiceError(c, err, msgProposalNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"example": example})
}

func (h *Handler) deleteProposedExample(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.proposalService.Discard(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, msgProposalNotFound)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Proposed example deleted."})
}
