package models

import "time"

// SystemPrompt - инструкция для модели. Активным считается самый новый промпт.
type SystemPrompt struct {
	ID        int64     `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
