package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timeless-server/internal/models"
)

type adminPageData struct {
	Title            string
	Active           string
	Username         string
	Flash            *FlashMessage
	Prompts          []*models.SystemPrompt
	Preview          *models.PromptPreview
	Examples         []*models.Example
	ProposedExamples []*models.ProposedExample
}

func (h *Handler) newPageData(c *gin.Context, title, active string) *adminPageData {
	return &adminPageData{
		Title:    title,
		Active:   active,
		Username: c.GetString(string(models.AdminContextKey)),
		Flash:    h.readFlash(c),
	}
}

// pageLoadFailed логирует ошибку и показывает ее на странице вместо данных.
func (h *Handler) pageLoadFailed(data *adminPageData, what string, err error) {
	h.logger.Error("Failed to load admin page data", zap.String("page", data.Active), zap.Error(err))
	data.Flash = &FlashMessage{Type: flashError, Message: "Could not load " + what + "."}
}

func (h *Handler) showIndexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"Title": "Timeless"})
}

func (h *Handler) showSystemPromptPage(c *gin.Context) {
	data := h.newPageData(c, "System prompt", "system-prompt")
	ctx := c.Request.Context()

	prompts, err := h.promptService.ListPrompts(ctx)
	if err != nil {
		h.pageLoadFailed(data, "system prompts", err)
	}
	data.Prompts = prompts

	preview, err := h.assembler.Preview(ctx)
	switch {
	case err == nil:
		data.Preview = preview
	case errors.Is(err, models.ErrSystemPromptNotConfigured):
	default:
		h.pageLoadFailed(data, "prompt preview", err)
	}

	c.HTML(http.StatusOK, "system_prompt.html", data)
}

func (h *Handler) showExamplesPage(c *gin.Context) {
	data := h.newPageData(c, "Examples", "examples")

	examples, err := h.exampleService.ListExamples(c.Request.Context())
	if err != nil {
		h.pageLoadFailed(data, "examples", err)
	}
	data.Examples = examples

	c.HTML(http.StatusOK, "examples.html", data)
}

func (h *Handler) showProposedExamplesPage(c *gin.Context) {
	data := h.newPageData(c, "Proposed examples", "proposed-examples")

	proposals, err := h.proposalService.ListProposedExamples(c.Request.Context())
	if err != nil {
		h.pageLoadFailed(data, "proposed examples", err)
	}
	data.ProposedExamples = proposals

	c.HTML(http.StatusOK, "proposed_examples.html", data)
}
