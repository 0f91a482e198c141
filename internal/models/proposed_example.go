package models

import "time"

// DefaultCandidateCount - сколько вариантов запрашивается для одного предложенного примера.
const DefaultCandidateCount = 3

// ProposedExample - варианты ответа для одной фразы, ожидающие проверки.
type ProposedExample struct {
	ID          int64     `db:"id" json:"id"`
	Input       string    `db:"input" json:"input"`
	Completions []string  `db:"completions" json:"completions"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// BatchItemResult - результат генерации для одной фразы из пакета.
type BatchItemResult struct {
	Input           string           `json:"input"`
	ProposedExample *ProposedExample `json:"proposedExample,omitempty"`
	Error           string           `json:"error,omitempty"`
}

// Succeeded сообщает, создано ли предложение для фразы.
func (r BatchItemResult) Succeeded() bool {
	return r.ProposedExample != nil && r.Error == ""
}
