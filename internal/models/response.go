package models

// ErrorResponse - стандартная структура для ответа об ошибке в формате JSON.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse - ответ без данных, только с сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProcessInputRequest - тело запроса POST /api/processInput.
type ProcessInputRequest struct {
	Input string `json:"input"`
}

// ProcessInputResponse - ответ POST /api/processInput.
type ProcessInputResponse struct {
	ProcessedText string `json:"processedText"`
}

// CreateSystemPromptRequest - тело запроса создания системного промпта.
type CreateSystemPromptRequest struct {
	Content string `json:"content"`
}

// CreateExampleRequest - тело запроса создания примера.
type CreateExampleRequest struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// CreateProposedExampleRequest - тело запроса генерации предложенного примера.
type CreateProposedExampleRequest struct {
	Input string `json:"input"`
}

// BatchProposedExamplesRequest принимает либо список фраз, либо текст "по фразе на строку".
type BatchProposedExamplesRequest struct {
	Inputs []string `json:"inputs"`
	Text   string   `json:"text"`
}

// PromoteRequest - выбранный вариант для переноса в принятые примеры.
type PromoteRequest struct {
	Completion string `json:"completion"`
}

// LoginRequest - учетные данные администратора (JSON или форма).
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// PromptPreview - собранный системный промпт и его примерный размер в токенах.
type PromptPreview struct {
	Prompt       string `json:"prompt"`
	ExampleCount int    `json:"exampleCount"`
	TokenCount   int    `json:"tokenCount"`
}
