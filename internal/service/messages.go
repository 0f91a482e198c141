package service

// Тексты ошибок валидации, возвращаемые клиенту.
const (
	msgInputRequired       = "Input is required."
	msgContentRequired     = "Content is required."
	msgInputOutputRequired = "Both input and output are required."
	msgCompletionRequired  = "Completion is required."
	msgNothingToUpdate     = "Nothing to update."
	msgNoBatchInputs       = "At least one input is required."
	msgNulCharacter        = "Text must not contain NUL characters."
	msgTooManyBatchInputs  = "Too many inputs, at most %d per batch."
)
