package handler

import (
	"fmt"
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timeless-server/internal/models"
)

// NewRouter создает gin.Engine, который берет IP клиента из X-Forwarded-For и X-Real-IP
// только для запросов от trustedProxies. Пустой список: IP клиента = адрес сокета.
func NewRouter(trustedProxies []string) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies %v: %w", trustedProxies, err)
	}
	return router, nil
}

// NewLoginRateLimiter ограничивает попытки входа по IP клиента (c.ClientIP).
func NewLoginRateLimiter(store ratelimit.Store, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("LoginRateLimit")
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			log.Warn("Login rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error: "Too many login attempts. Try again in " + time.Until(info.ResetTime).Round(time.Second).String() + ".",
			})
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
}
