package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"timeless-server/internal/config"
	"timeless-server/internal/interfaces"
	"timeless-server/internal/models"
)

const tokenIssuer = "timeless-server"

// Session - выданный после входа токен и его параметры.
type Session struct {
	Token     string
	SessionID string
	Username  string
	ExpiresAt time.Time
}

// AdminAuthService проверяет учетные данные администратора и управляет сессиями.
type AdminAuthService interface {
	Login(ctx context.Context, username, password string) (*Session, error)
	// VerifySession проверяет подпись, срок действия и наличие сессии в хранилище.
	VerifySession(ctx context.Context, token string) (*models.Claims, error)
	// Logout отзывает сессию. Невалидный или уже отозванный токен не считается ошибкой.
	Logout(ctx context.Context, token string) error
}

type AdminAuthServiceImpl struct {
	username     string
	passwordHash []byte
	jwtSecret    []byte
	sessionTTL   time.Duration
	sessions     interfaces.SessionRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewAdminAuthService создает сервис. Если задан только ADMIN_PASSWORD, он хешируется при старте.
func NewAdminAuthService(cfg config.AdminConfig, sessions interfaces.SessionRepository, logger *zap.Logger) (*AdminAuthServiceImpl, error) {
	if cfg.Username == "" || cfg.JWTSecret == "" {
		return nil, errors.New("admin username and JWT secret are required")
	}

	passwordHash := cfg.PasswordHash
	if passwordHash == "" {
		if cfg.Password == "" {
			return nil, errors.New("admin password or password hash is required")
		}
		hash, err := HashPassword(cfg.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = hash
	} else if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}

	return &AdminAuthServiceImpl{
		username:     cfg.Username,
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(cfg.JWTSecret),
		sessionTTL:   cfg.SessionTTL,
		sessions:     sessions,
		logger:       logger.Named("AdminAuthService"),
		now:          time.Now,
	}, nil
}

// HashPassword возвращает bcrypt-хеш пароля.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AdminAuthServiceImpl) Login(ctx context.Context, username, password string) (*Session, error) {
	usernameMatches := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	// bcrypt проверяется всегда, чтобы время ответа не зависело от имени пользователя.
	passwordMatches := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	if !usernameMatches || !passwordMatches {
		s.logger.Warn("Admin login failed", zap.String("username", username))
		return nil, models.ErrInvalidCredentials
	}

	now := s.now()
	session := &Session{
		SessionID: uuid.New().String(),
		Username:  s.username,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	claims := &models.Claims{
		Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.SessionID,
			Subject:   s.username,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		s.logger.Error("Failed to sign session token", zap.Error(err))
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	session.Token = token

	if err := s.sessions.SetSession(ctx, session.SessionID, s.username, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("Admin logged in", zap.String("sessionID", session.SessionID))
	return session, nil
}

func (s *AdminAuthServiceImpl) VerifySession(ctx context.Context, tokenString string) (*models.Claims, error) {
	claims, err := s.parse(tokenString, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if claims.Role != models.RoleAdmin || claims.Subject != s.username {
		s.logger.Warn("Session token has unexpected subject or role", zap.String("subject", claims.Subject))
		return nil, models.ErrTokenInvalid
	}

	if _, err := s.sessions.GetUsernameBySessionID(ctx, claims.ID); err != nil {
		if errors.Is(err, models.ErrTokenNotFound) {
			s.logger.Debug("Session not found in store (revoked or expired)", zap.String("sessionID", claims.ID))
			return nil, models.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error checking session existence: %w", err)
	}
	return claims, nil
}

func (s *AdminAuthServiceImpl) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString, jwt.WithoutClaimsValidation())
	if err != nil {
		s.logger.Debug("Logout with unparsable token ignored", zap.Error(err))
		return nil
	}
	if claims.ID == "" {
		return nil
	}
	if err := s.sessions.DeleteSession(ctx, claims.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.Info("Admin logged out", zap.String("sessionID", claims.ID))
	return nil
}

func (s *AdminAuthServiceImpl) parse(tokenString string, opts ...jwt.ParserOption) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, models.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, models.ErrTokenMalformed
		default:
			return nil, models.ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}
