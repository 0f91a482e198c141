package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	flashCookieName = "flash_message"
	flashCookieTTL  = 5 * time.Second

	flashSuccess = "success"
	flashError   = "error"
	flashInfo    = "info"
)

// FlashMessage - одноразовое сообщение, переживающее редирект.
type FlashMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// setFlashMessage пишет подписанную HMAC-SHA256 куку: base64(подпись || json).
func setFlashMessage(c *gin.Context, msgType, message string, secret []byte, secure bool) error {
	jsonData, err := json.Marshal(FlashMessage{Type: msgType, Message: message})
	if err != nil {
		return fmt.Errorf("failed to marshal flash message: %w", err)
	}

	signedData := append(signFlash(jsonData, secret), jsonData...)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName,
		base64.URLEncoding.EncodeToString(signedData),
		int(flashCookieTTL.Seconds()),
		"/",
		"",
		secure,
		true,
	)
	return nil
}

// getFlashMessage читает, проверяет и удаляет flash-куку. Нет куки - (nil, nil).
func getFlashMessage(c *gin.Context, secret []byte, secure bool) (*FlashMessage, error) {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get flash cookie: %w", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, "", -1, "/", "", secure, true)

	signedData, err := base64.URLEncoding.DecodeString(cookie)
	if err != nil {
		return nil, fmt.Errorf("failed to decode flash cookie: %w", err)
	}
	if len(signedData) < sha256.Size {
		return nil, errors.New("invalid flash cookie length")
	}

	receivedSig, jsonData := signedData[:sha256.Size], signedData[sha256.Size:]
	if !hmac.Equal(receivedSig, signFlash(jsonData, secret)) {
		return nil, errors.New("invalid flash cookie signature")
	}

	var flash FlashMessage
	if err := json.Unmarshal(jsonData, &flash); err != nil {
		return nil, fmt.Errorf("failed to unmarshal flash message: %w", err)
	}
	return &flash, nil
}

func signFlash(data, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(data)
	return mac.Sum(nil)
}

func (h *Handler) writeFlash(c *gin.Context, msgType, message string) {
	if err := setFlashMessage(c, msgType, message, []byte(h.cfg.JWTSecret), h.cfg.SecureCookies); err != nil {
		h.logger.Error("Failed to set flash message", zap.Error(err))
	}
}

func (h *Handler) readFlash(c *gin.Context) *FlashMessage {
	flash, err := getFlashMessage(c, []byte(h.cfg.JWTSecret), h.cfg.SecureCookies)
	if err != nil {
		h.logger.Warn("Failed to read flash message", zap.Error(err))
		return nil
	}
	return flash
}
