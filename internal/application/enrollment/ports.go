package enrollment

import (
	"context"
	"time"

	"github.com/civhall/municipal-events/internal/domain"
	"github.com/google/uuid"
)

type Clock interface {
	Now() time.Time
}

// EnrollmentRepo runs the eligibility decision inside a per-event
// transaction and reports the post-write event snapshot so callers can
// refresh caches without a second round trip.
type EnrollmentRepo interface {
	Enroll(ctx context.Context, eventID, personID uuid.UUID, now time.Time) (*domain.Enrollment, *domain.Event, error)
	Withdraw(ctx context.Context, eventID, personID uuid.UUID, now time.Time) (*domain.Event, error)

	ListParticipants(ctx context.Context, eventID uuid.UUID, page, pageSize int) ([]domain.Enrollment, int, error)
	ListByPerson(ctx context.Context, personID uuid.UUID, page, pageSize int) ([]domain.Enrollment, int, error)
}

type EventGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Event, error)
}

// SlotsCache fast-fails obviously full events before touching the store.
// A miss or error is never fatal; the store stays authoritative.
type SlotsCache interface {
	GetAvailableSlots(ctx context.Context, eventID uuid.UUID) (int, error)
	SetAvailableSlots(ctx context.Context, eventID uuid.UUID, slots int, ttl time.Duration) error
	DeleteAvailableSlots(ctx context.Context, eventID uuid.UUID) error
}

type Publisher interface {
	PublishEvent(ctx context.Context, routingKey, messageID string, body []byte) error
}
