package event

import (
	"context"
	"time"

	"github.com/civhall/municipal-events/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type ListFilter struct {
	Kind     *domain.EventKind
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	UpdateStatus(ctx context.Context, e *domain.Event) error

	ListPublic(ctx context.Context, f ListFilter) ([]*domain.Event, int, error)
	ListByOrganizer(ctx context.Context, organizerID string, page, pageSize int) ([]*domain.Event, int, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Publisher interface {
	PublishEvent(ctx context.Context, routingKey, messageID string, body []byte) error
}
