package models

import "errors"

// Application-wide standard errors
var (
	// Common Resource/DB Errors
	ErrNotFound                  = errors.New("resource not found")
	ErrSystemPromptNotConfigured = errors.New("system prompt not configured")

	// Validation
	ErrInvalidInput = errors.New("invalid input data")
	ErrBadRequest   = errors.New("bad request")

	// Authentication Errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")

	// Token Errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenNotFound  = errors.New("token not found in storage")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
)

// ValidationError несет сообщение для пользователя и оборачивает ErrInvalidInput.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError создает ошибку валидации с текстом для ответа API.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
