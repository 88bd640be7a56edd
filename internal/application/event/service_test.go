package event

import (
	"context"
	"testing"
	"time"

	"github.com/civhall/municipal-events/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type MockRepo struct{ mock.Mock }

func (m *MockRepo) Create(ctx context.Context, e *domain.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockRepo) UpdateStatus(ctx context.Context, e *domain.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockRepo) ListPublic(ctx context.Context, f ListFilter) ([]*domain.Event, int, error) {
	args := m.Called(ctx, f)
	var out []*domain.Event
	if args.Get(0) != nil {
		out = args.Get(0).([]*domain.Event)
	}
	return out, args.Int(1), args.Error(2)
}

func (m *MockRepo) ListByOrganizer(ctx context.Context, organizerID string, page, pageSize int) ([]*domain.Event, int, error) {
	args := m.Called(ctx, organizerID, page, pageSize)
	var out []*domain.Event
	if args.Get(0) != nil {
		out = args.Get(0).([]*domain.Event)
	}
	return out, args.Int(1), args.Error(2)
}

type MockCache struct{ mock.Mock }

func (m *MockCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, val any, ttl time.Duration) error {
	return m.Called(ctx, key, val, ttl).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishEvent(ctx context.Context, routingKey, messageID string, body []byte) error {
	return m.Called(ctx, routingKey, messageID, body).Error(0)
}

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func plannedFair(organizer uuid.UUID) *domain.Event {
	e, err := domain.New("Spring Fair",
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), 2,
		[]uuid.UUID{organizer},
		domain.FairDetails{StandCount: 8}, testNow)
	if err != nil {
		panic(err)
	}
	return e
}

func TestService_Create_ForbiddenForCitizen(t *testing.T) {
	repo := new(MockRepo)
	svc := New(repo, fixedClock{testNow}, nil, nil, 0)

	_, err := svc.Create(context.Background(), CreateCmd{
		ActorID:      uuid.New(),
		ActorRole:    "citizen",
		Name:         "Spring Fair",
		StartDate:    time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		DurationDays: 1,
		Details:      domain.FairDetails{StandCount: 3},
	})

	var app *domain.AppError
	require.ErrorAs(t, err, &app)
	assert.Equal(t, domain.CodeForbidden, app.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_DefaultsOrganizerToActor(t *testing.T) {
	actor := uuid.New()
	repo := new(MockRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Event")).Return(nil)

	svc := New(repo, fixedClock{testNow}, nil, nil, 0)
	e, err := svc.Create(context.Background(), CreateCmd{
		ActorID:      actor,
		ActorRole:    "staff",
		Name:         "Spring Fair",
		StartDate:    time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		DurationDays: 2,
		Details:      domain.FairDetails{StandCount: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{actor}, e.Organizers)
	assert.Equal(t, domain.StatusPlanned, e.Status)
	repo.AssertExpectations(t)
}

func TestService_GetPublic_CacheHit(t *testing.T) {
	repo := new(MockRepo)
	cache := new(MockCache)
	cache.On("Get", mock.Anything, "event:details:abc", mock.Anything).Return(true, nil)

	svc := New(repo, fixedClock{testNow}, nil, cache, 0)
	_, err := svc.GetPublic(context.Background(), "abc")
	require.NoError(t, err)

	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestService_GetPublic_CacheMissFillsCache(t *testing.T) {
	organizer := uuid.New()
	e := plannedFair(organizer)

	repo := new(MockRepo)
	repo.On("GetByID", mock.Anything, e.ID.String()).Return(e, nil)

	cache := new(MockCache)
	cache.On("Get", mock.Anything, "event:details:"+e.ID.String(), mock.Anything).Return(false, nil)
	cache.On("Set", mock.Anything, "event:details:"+e.ID.String(), e, 5*time.Minute).Return(nil)

	svc := New(repo, fixedClock{testNow}, nil, cache, 0)
	got, err := svc.GetPublic(context.Background(), e.ID.String())
	require.NoError(t, err)
	assert.Equal(t, e, got)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Confirm(t *testing.T) {
	organizer := uuid.New()
	e := plannedFair(organizer)

	repo := new(MockRepo)
	repo.On("GetByID", mock.Anything, e.ID.String()).Return(e, nil)
	repo.On("UpdateStatus", mock.Anything, e).Return(nil)

	cache := new(MockCache)
	cache.On("Delete", mock.Anything, []string{"event:details:" + e.ID.String()}).Return(nil)

	pub := new(MockPublisher)
	pub.On("PublishEvent", mock.Anything, "event.confirmed", mock.Anything, mock.Anything).Return(nil)

	svc := New(repo, fixedClock{testNow}, pub, cache, 0)
	got, err := svc.Confirm(context.Background(), e.ID.String(), organizer, "staff")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestService_Confirm_ForbiddenForStranger(t *testing.T) {
	organizer := uuid.New()
	e := plannedFair(organizer)

	repo := new(MockRepo)
	repo.On("GetByID", mock.Anything, e.ID.String()).Return(e, nil)

	svc := New(repo, fixedClock{testNow}, nil, nil, 0)
	_, err := svc.Confirm(context.Background(), e.ID.String(), uuid.New(), "staff")

	var app *domain.AppError
	require.ErrorAs(t, err, &app)
	assert.Equal(t, domain.CodeForbidden, app.Code)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestService_Confirm_AdminBypassesOwnership(t *testing.T) {
	e := plannedFair(uuid.New())

	repo := new(MockRepo)
	repo.On("GetByID", mock.Anything, e.ID.String()).Return(e, nil)
	repo.On("UpdateStatus", mock.Anything, e).Return(nil)

	svc := New(repo, fixedClock{testNow}, nil, nil, 0)
	got, err := svc.Confirm(context.Background(), e.ID.String(), uuid.New(), "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
}

func TestService_ListPublic_Bounds(t *testing.T) {
	repo := new(MockRepo)
	repo.On("ListPublic", mock.Anything, ListFilter{Page: 1, PageSize: 100}).
		Return([]*domain.Event{}, 0, nil)

	svc := New(repo, fixedClock{testNow}, nil, nil, 0)
	_, _, err := svc.ListPublic(context.Background(), ListFilter{Page: -3, PageSize: 9999})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
