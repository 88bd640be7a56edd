package event

import (
	"context"
	"time"

	"github.com/civhall/municipal-events/internal/domain"
	"github.com/google/uuid"
)

type CreateCmd struct {
	ActorID   uuid.UUID
	ActorRole string

	Name         string
	StartDate    time.Time
	DurationDays int
	Organizers   []uuid.UUID
	Details      domain.Details
}

func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Event, error) {
	if !canCreate(cmd.ActorRole) {
		return nil, domain.ErrForbidden("only staff can create events")
	}

	organizers := cmd.Organizers
	if len(organizers) == 0 {
		organizers = []uuid.UUID{cmd.ActorID}
	}

	e, err := domain.New(cmd.Name, cmd.StartDate, cmd.DurationDays, organizers, cmd.Details, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
