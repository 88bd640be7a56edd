package event

import "context"

// NoopPublisher drops messages. Used in dev when no broker is configured
// and in tests.
type NoopPublisher struct{}

func (NoopPublisher) PublishEvent(ctx context.Context, routingKey, messageID string, body []byte) error {
	return nil
}
