package interfaces

import (
	"context"
)

// ContentEventType represents the type of content change.
type ContentEventType string

const (
	ContentEventCreated  ContentEventType = "created"
	ContentEventUpdated  ContentEventType = "updated"
	ContentEventDeleted  ContentEventType = "deleted"
	ContentEventPromoted ContentEventType = "promoted"
)

// ContentEntity names the record collection an event refers to.
type ContentEntity string

const (
	EntitySystemPrompt    ContentEntity = "systemPrompt"
	EntityExample         ContentEntity = "example"
	EntityProposedExample ContentEntity = "proposedExample"
)

// ContentEvent represents a change of a system prompt, example or proposal.
type ContentEvent struct {
	EventType ContentEventType `json:"eventType"`
	Entity    ContentEntity    `json:"entity"`
	ID        int64            `json:"id"`
	// SourceID - id предложенного примера, из которого получен пример (только для promoted).
	SourceID int64 `json:"sourceId,omitempty"`
}

// ContentEventPublisher defines the interface for publishing content change events.
type ContentEventPublisher interface {
	PublishContentEvent(ctx context.Context, event ContentEvent) error
}
