package events

import (
	"context"

	"github.com/smallbooks/smallbooks_backend/internal/core/ports"
)

// NoopPublisher drops all events. Used when no broker is configured.
type NoopPublisher struct{}

var _ ports.EventPublisher = (*NoopPublisher)(nil)

func (NoopPublisher) EntryPosted(context.Context, string, string, string) error {
	return nil
}

func (NoopPublisher) PaymentMessageCreated(context.Context, string, string) error {
	return nil
}
