package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timeless-server/internal/auth"
	"timeless-server/internal/config"
	"timeless-server/internal/service"
)

// Handler обслуживает публичную страницу, JSON API и админские страницы.
type Handler struct {
	textService     service.TextService
	promptService   service.SystemPromptService
	exampleService  service.ExampleService
	proposalService service.ProposedExampleService
	assembler       service.PromptAssembler
	authService     auth.AdminAuthService
	cfg             config.AdminConfig
	logger          *zap.Logger
}

func NewHandler(
	cfg config.AdminConfig,
	logger *zap.Logger,
	textService service.TextService,
	promptService service.SystemPromptService,
	exampleService service.ExampleService,
	proposalService service.ProposedExampleService,
	assembler service.PromptAssembler,
	authService auth.AdminAuthService,
) *Handler {
	return &Handler{
		textService:     textService,
		promptService:   promptService,
		exampleService:  exampleService,
		proposalService: proposalService,
		assembler:       assembler,
		authService:     authService,
		cfg:             cfg,
		logger:          logger.Named("Handler"),
	}
}

// RegisterRoutes регистрирует все маршруты сервиса. loginRateLimit применяется только к POST /login;
// nil отключает ограничение.
func (h *Handler) RegisterRoutes(router *gin.Engine, loginRateLimit gin.HandlerFunc) error {
	if err := setupTemplates(router); err != nil {
		return err
	}
	if err := setupStatic(router); err != nil {
		return err
	}

	router.GET("/health", h.healthCheck)
	router.GET("/", h.showIndexPage)

	router.GET("/login", h.showLoginPage)
	if loginRateLimit != nil {
		router.POST("/login", loginRateLimit, h.handleLogin)
	} else {
		router.POST("/login", h.handleLogin)
	}
	router.POST("/logout", h.handleLogout)

	api := router.Group("/api")
	api.POST("/processInput", h.processInput)

	adminAPI := api.Group("", h.apiAuthMiddleware)
	{
		prompts := adminAPI.Group("/systemPrompts")
		prompts.GET("", h.listSystemPrompts)
		prompts.POST("", h.createSystemPrompt)
		prompts.GET("/active", h.getActiveSystemPrompt)
		prompts.GET("/preview", h.previewSystemPrompt)
		prompts.DELETE("/:id", h.deleteSystemPrompt)

		examples := adminAPI.Group("/examples")
		examples.GET("", h.listExamples)
		examples.POST("", h.createExample)
		examples.GET("/:id", h.getExample)
		examples.PUT("/:id", h.updateExample)
		examples.DELETE("/:id", h.deleteExample)
		examples.POST("/:id/regenerate", h.regenerateExample)

		proposals := adminAPI.Group("/proposedExamples")
		proposals.GET("", h.listProposedExamples)
		proposals.POST("", h.createProposedExample)
		proposals.POST("/batch", h.batchProposedExamples)
		proposals.GET("/:id", h.getProposedExample)
		proposals.DELETE("/:id", h.deleteProposedExample)
		proposals.POST("/:id/regenerate", h.regenerateProposedExample)
		proposals.POST("/:id/promote", h.promoteProposedExample)
	}

	adminGroup := router.Group("/admin", h.pageAuthMiddleware)
	{
		adminGroup.GET("", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/admin/system-prompt")
		})
		adminGroup.GET("/system-prompt", h.showSystemPromptPage)
		adminGroup.GET("/examples", h.showExamplesPage)
		adminGroup.GET("/proposed-examples", h.showProposedExamplesPage)
		adminGroup.GET("/logout", h.handleLogout)
	}
	return nil
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
