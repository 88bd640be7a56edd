package enrollment

import (
	"context"
	"time"

	"github.com/civhall/municipal-events/internal/contracts/messaging"
	"github.com/civhall/municipal-events/internal/domain"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

type Service struct {
	repo   EnrollmentRepo
	events EventGetter
	slots  SlotsCache
	pub    Publisher
	clock  Clock

	ttlSlots time.Duration
}

func New(repo EnrollmentRepo, events EventGetter, clock Clock, pub Publisher, slots SlotsCache, ttlSlots time.Duration) *Service {
	if ttlSlots == 0 {
		ttlSlots = 30 * time.Second
	}
	return &Service{
		repo:     repo,
		events:   events,
		slots:    slots,
		pub:      pub,
		clock:    clock,
		ttlSlots: ttlSlots,
	}
}

// Enroll runs the eligibility engine against the store. The cache only
// short-circuits events already known to be full; every accepted
// enrollment went through the transactional decision in the repository.
func (s *Service) Enroll(ctx context.Context, eventID, personID uuid.UUID) (*domain.Enrollment, error) {
	if s.slots != nil {
		if n, err := s.slots.GetAvailableSlots(ctx, eventID); err == nil && n <= 0 {
			return nil, domain.ErrNoCapacity
		}
	}

	rec, ev, err := s.repo.Enroll(ctx, eventID, personID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.refreshSlots(ctx, ev)
	s.publish(ctx, "enrollment.created", map[string]any{
		"enrollment_id": rec.ID,
		"event_id":      rec.EventID,
		"person_id":     rec.PersonID,
	})
	return rec, nil
}

func (s *Service) Withdraw(ctx context.Context, eventID, personID uuid.UUID) error {
	ev, err := s.repo.Withdraw(ctx, eventID, personID, s.clock.Now())
	if err != nil {
		return err
	}

	s.refreshSlots(ctx, ev)
	s.publish(ctx, "enrollment.canceled", map[string]any{
		"event_id":  eventID,
		"person_id": personID,
	})
	return nil
}

// Availability is the public view of the capacity tracker plus the
// lifecycle evaluator, with the rejection a hypothetical enrollment would
// get right now.
type Availability struct {
	EventID    uuid.UUID          `json:"event_id"`
	Status     domain.EventStatus `json:"status"`
	Enrollable bool               `json:"enrollable"`
	Reason     string             `json:"reason,omitempty"`
	Limited    bool               `json:"limited"`
	Slots      *int               `json:"available_slots,omitempty"`
}

func (s *Service) Availability(ctx context.Context, eventID uuid.UUID) (Availability, error) {
	ev, err := s.events.GetByID(ctx, eventID.String())
	if err != nil {
		return Availability{}, err
	}

	now := s.clock.Now()
	a := Availability{
		EventID:    ev.ID,
		Status:     ev.Status,
		Enrollable: ev.Enrollable(now) && ev.HasAvailability(),
	}
	if slots, limited := ev.AvailableSlots(); limited {
		a.Limited = true
		a.Slots = &slots
	}
	if reason := ev.NotEnrollableReason(now); reason != nil {
		a.Reason = reason.Error()
	} else if !ev.HasAvailability() {
		a.Reason = domain.ErrNoCapacity.Error()
	}
	return a, nil
}

func (s *Service) ListParticipants(ctx context.Context, eventID, actorID uuid.UUID, actorRole string, page, pageSize int) ([]domain.Enrollment, int, error) {
	ev, err := s.events.GetByID(ctx, eventID.String())
	if err != nil {
		return nil, 0, err
	}
	if actorRole != "admin" && !ev.HasOrganizer(actorID) {
		return nil, 0, domain.ErrForbidden("only an organizer can list participants")
	}
	return s.repo.ListParticipants(ctx, eventID, page, pageSize)
}

func (s *Service) ListMine(ctx context.Context, personID uuid.UUID, page, pageSize int) ([]domain.Enrollment, int, error) {
	return s.repo.ListByPerson(ctx, personID, page, pageSize)
}

func (s *Service) refreshSlots(ctx context.Context, ev *domain.Event) {
	if s.slots == nil || ev == nil {
		return
	}
	slots, limited := ev.AvailableSlots()
	if !limited {
		return
	}
	if err := s.slots.SetAvailableSlots(ctx, ev.ID, slots, s.ttlSlots); err != nil {
		zlog.Warn().Err(err).Str("event_id", ev.ID.String()).Msg("slots cache refresh failed")
	}
}

func (s *Service) publish(ctx context.Context, routingKey string, payload any) {
	if s.pub == nil {
		return
	}
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
