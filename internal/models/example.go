package models

import "time"

// Example - принятая пара input/output, которая подставляется в промпт.
type Example struct {
	ID        int64     `db:"id" json:"id"`
	Input     string    `db:"input" json:"input"`
	Output    string    `db:"output" json:"output"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ExampleUpdate - частичное обновление примера (автосохранение одного поля).
// nil означает "не менять".
type ExampleUpdate struct {
	Input  *string `json:"input"`
	Output *string `json:"output"`
}

// IsEmpty сообщает, что в запросе нет ни одного поля.
func (u ExampleUpdate) IsEmpty() bool {
	return u.Input == nil && u.Output == nil
}
