package event

import (
	"context"

	"github.com/civhall/municipal-events/internal/contracts/messaging"
	zlog "github.com/rs/zerolog/log"
)

// publish is best effort: a broker outage must not fail the state change
// that already committed.
func (s *Service) publish(ctx context.Context, routingKey string, payload any) {
	env := messaging.NewEnvelope(routingKey, s.clock.Now(), payload)
	body, err := env.Marshal()
	if err != nil {
		zlog.Error().Err(err).Str("routing_key", routingKey).Msg("envelope marshal failed")
		return
	}
	if err := s.pub.PublishEvent(ctx, routingKey, env.MessageID, body); err != nil {
		zlog.Warn().Err(err).Str("routing_key", routingKey).Msg("publish failed")
	}
}
