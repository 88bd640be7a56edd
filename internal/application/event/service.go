package event

import (
	"time"

	"github.com/civhall/municipal-events/internal/domain"
	"github.com/google/uuid"
)

type Service struct {
	repo  EventRepo
	pub   Publisher
	cache Cache
	clock Clock

	ttlDetails time.Duration
}

func New(repo EventRepo, clock Clock, pub Publisher, cache Cache, ttlDetails time.Duration) *Service {
	if ttlDetails == 0 {
		ttlDetails = 5 * time.Minute
	}
	if pub == nil {
		pub = NoopPublisher{}
	}
	return &Service{
		repo:       repo,
		pub:        pub,
		cache:      cache,
		clock:      clock,
		ttlDetails: ttlDetails,
	}
}

func isAdmin(role string) bool { return role == "admin" }

// Staff create events; admins can manage any event.
func canCreate(role string) bool {
	return role == "staff" || isAdmin(role)
}

func canManage(e *domain.Event, actorID uuid.UUID, actorRole string) bool {
	if isAdmin(actorRole) {
		return true
	}
	return e.HasOrganizer(actorID)
}
