package event

import (
	"context"

	"github.com/civhall/municipal-events/internal/domain"
	"github.com/google/uuid"
)

func (s *Service) ListPublic(ctx context.Context, f ListFilter) ([]*domain.Event, int, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
	return s.repo.ListPublic(ctx, f)
}

func (s *Service) ListMine(ctx context.Context, actorID uuid.UUID, page, pageSize int) ([]*domain.Event, int, error) {
	return s.repo.ListByOrganizer(ctx, actorID.String(), page, pageSize)
}
