package event

import (
	"context"

	"github.com/civhall/municipal-events/internal/domain"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

func (s *Service) GetPublic(ctx context.Context, id string) (*domain.Event, error) {
	key := cacheKeyEventDetails(id)
	var cached domain.Event

	if s.cache != nil {
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if found {
			return &cached, nil
		}
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, e, s.ttlDetails); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}

	return e, nil
}

// GetForOrganizer bypasses the cache: management views need strict
// consistency.
func (s *Service) GetForOrganizer(ctx context.Context, id string, actorID uuid.UUID, actorRole string) (*domain.Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(e, actorID, actorRole) {
		return nil, domain.ErrForbidden("not allowed")
	}
	return e, nil
}
