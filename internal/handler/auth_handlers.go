package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timeless-server/internal/models"
)

type loginPageData struct {
	Title    string
	Active   string
	Username string
	Error    string
	Flash    *FlashMessage
}

func (h *Handler) showLoginPage(c *gin.Context) {
	if token, err := c.Cookie(sessionCookieName); err == nil && token != "" {
		if _, verifyErr := h.authService.VerifySession(c.Request.Context(), token); verifyErr == nil {
			c.Redirect(http.StatusSeeOther, "/admin")
			return
		}
		h.clearSessionCookie(c)
	}

	c.HTML(http.StatusOK, "login.html", loginPageData{
		Title: "Login",
		Flash: h.readFlash(c),
	})
}

// handleLogin принимает форму или JSON. Для формы при ошибке страница входа рендерится заново.
func (h *Handler) handleLogin(c *gin.Context) {
	wantsJSON := c.ContentType() == gin.MIMEJSON

	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		adminLoginsTotal.WithLabelValues("bad_request").Inc()
		if wantsJSON {
			badRequest(c, msgInvalidRequest)
			return
		}
		c.HTML(http.StatusBadRequest, "login.html", loginPageData{Title: "Login", Error: msgInvalidRequest})
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		status, message := http.StatusUnauthorized, msgInvalidCredentials
		if !errors.Is(err, models.ErrInvalidCredentials) {
			h.logger.Error("Login failed with internal error", zap.String("username", req.Username), zap.Error(err))
			status, message = http.StatusInternalServerError, msgInternalServerError
			adminLoginsTotal.WithLabelValues("error").Inc()
		} else {
			h.logger.Warn("Login failed", zap.String("username", req.Username), zap.String("ip", c.ClientIP()))
			adminLoginsTotal.WithLabelValues("invalid_credentials").Inc()
		}
		if wantsJSON {
			c.AbortWithStatusJSON(status, models.ErrorResponse{Error: message})
			return
		}
		c.HTML(status, "login.html", loginPageData{Title: "Login", Username: req.Username, Error: message})
		return
	}

	h.setSessionCookie(c, session.Token, session.ExpiresAt)
	adminLoginsTotal.WithLabelValues("success").Inc()
	h.logger.Info("Admin login successful", zap.String("username", session.Username), zap.String("sessionID", session.SessionID))

	if wantsJSON {
		c.JSON(http.StatusOK, gin.H{"username": session.Username, "expiresAt": session.ExpiresAt})
		return
	}
	h.writeFlash(c, flashSuccess, "Signed in as "+session.Username+".")
	c.Redirect(http.StatusSeeOther, "/admin")
}

func (h *Handler) handleLogout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookieName); err == nil && token != "" {
		if logoutErr := h.authService.Logout(c.Request.Context(), token); logoutErr != nil {
			h.logger.Error("Failed to revoke admin session", zap.Error(logoutErr))
		}
	}
	h.clearSessionCookie(c)
	adminLogoutsTotal.Inc()

	if c.ContentType() == gin.MIMEJSON {
		c.JSON(http.StatusOK, models.MessageResponse{Message: "Logged out."})
		return
	}
	h.writeFlash(c, flashInfo, "You have been logged out.")
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = int(h.cfg.SessionTTL.Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", h.cfg.SecureCookies, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", h.cfg.SecureCookies, true)
}
