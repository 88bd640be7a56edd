package event

import (
	"context"
	"time"

	"github.com/civhall/municipal-events/internal/domain"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

// Transition advances the stored lifecycle status through its explicit
// chain: planned -> confirmed -> running -> finished. The date-derived
// "ended" override never mutates the stored status; only these organizer
// actions do.
func (s *Service) Confirm(ctx context.Context, id string, actorID uuid.UUID, actorRole string) (*domain.Event, error) {
	return s.transition(ctx, id, actorID, actorRole, "event.confirmed", (*domain.Event).Confirm)
}

func (s *Service) Start(ctx context.Context, id string, actorID uuid.UUID, actorRole string) (*domain.Event, error) {
	return s.transition(ctx, id, actorID, actorRole, "event.started", (*domain.Event).Start)
}

func (s *Service) Finish(ctx context.Context, id string, actorID uuid.UUID, actorRole string) (*domain.Event, error) {
	return s.transition(ctx, id, actorID, actorRole, "event.finished", (*domain.Event).Finish)
}

func (s *Service) transition(
	ctx context.Context,
	id string,
	actorID uuid.UUID,
	actorRole string,
	routingKey string,
	apply func(*domain.Event, time.Time) error,
) (*domain.Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(e, actorID, actorRole) {
		return nil, domain.ErrForbidden("only an organizer can change event status")
	}
	if err := apply(e, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, e); err != nil {
		return nil, err
	}

	s.invalidate(ctx, e.ID.String())
	s.publish(ctx, routingKey, map[string]any{
		"event_id": e.ID,
		"status":   e.Status,
	})
	return e, nil
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKeyEventDetails(id)); err != nil {
		zlog.Warn().Err(err).Str("event_id", id).Msg("cache invalidation failed")
	}
}
