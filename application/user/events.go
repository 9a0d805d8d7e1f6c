package user

import (
	"context"
	"time"
)

// UserRegisteredEvent is published after a successful registration so that
// downstream services, e.g. the mailer, can react.
type UserRegisteredEvent struct {
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// EventPublisher delivers registration events to the message broker.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, event UserRegisteredEvent) error
}

// NoopPublisher drops events. Used when messaging is disabled.
type NoopPublisher struct{}

// PublishUserRegistered discards the event.
func (NoopPublisher) PublishUserRegistered(ctx context.Context, event UserRegisteredEvent) error {
	return nil
}
