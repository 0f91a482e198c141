package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timeless-server/internal/models"
)

const sessionCookieName = "admin_session"

// authenticate проверяет куку admin_session и кладет данные администратора в контекст gin.
func (h *Handler) authenticate(c *gin.Context) (*models.Claims, error) {
	token, err := c.Cookie(sessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}
	if token == "" {
		return nil, models.ErrUnauthorized
	}

	claims, err := h.authService.VerifySession(c.Request.Context(), token)
	if err != nil {
		return nil, err
	}
	c.Set(string(models.AdminContextKey), claims.Subject)
	c.Set(string(models.SessionContextKey), claims.ID)
	return claims, nil
}

// apiAuthMiddleware отвечает 401 JSON, если сессии нет или она недействительна.
func (h *Handler) apiAuthMiddleware(c *gin.Context) {
	if _, err := h.authenticate(c); err != nil {
		h.logger.Debug("API request without valid admin session",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		unauthorizedRequestsTotal.WithLabelValues("api").Inc()
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: msgUnauthorized})
		return
	}
	c.Next()
}

// pageAuthMiddleware перенаправляет на /login, если сессии нет или она недействительна.
func (h *Handler) pageAuthMiddleware(c *gin.Context) {
	if _, err := h.authenticate(c); err != nil {
		h.logger.Debug("Admin page request without valid session, redirecting to login",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		unauthorizedRequestsTotal.WithLabelValues("page").Inc()
		h.clearSessionCookie(c)
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	c.Next()
}
