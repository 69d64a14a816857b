package repository

import (
	"context"
	"time"
)

// ListEventAction identifies what happened to a membership row.
type ListEventAction string

const (
	ListEventAdded   ListEventAction = "added"
	ListEventRemoved ListEventAction = "removed"
)

// ListEvent is published after a successful list mutation. Consumers
// (recommendations, analytics) are outside this service.
type ListEvent struct {
	UserID      string          `json:"user_id"`
	ContentID   string          `json:"content_id"`
	ContentType string          `json:"content_type"`
	Action      ListEventAction `json:"action"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// ListEventPublisher defines the interface for emitting list activity events.
// Implementations should be provided by the infrastructure layer (e.g., RabbitMQ).
type ListEventPublisher interface {
	// PublishListEvent sends a list activity event to the broker.
	PublishListEvent(ctx context.Context, event ListEvent) error

	// Close gracefully closes the connection to the broker.
	Close() error
}
