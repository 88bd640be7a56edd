package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID           uuid.UUID
	Name         string
	StartDate    time.Time // calendar day, UTC midnight
	DurationDays int
	Status       EventStatus

	Organizers []uuid.UUID

	// Capacity is the optional capacity capability. nil means the variant
	// does not bound enrollment; do not conflate with 0 remaining slots.
	Capacity *int

	Details Details

	// EnrolledCount counts active enrollments. It is kept next to
	// Participants so an event hydrated with the counter only (storage
	// fast path) still answers capacity questions.
	EnrolledCount int
	Participants  []Enrollment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateOf truncates an instant to its calendar day in UTC. All lifecycle
// date arithmetic happens at day granularity.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// New validates field by field, left to right, and returns the first
// violated rule. Shared fields come first, then the variant payload.
func New(name string, start time.Time, durationDays int, organizers []uuid.UUID, details Details, now time.Time) (*Event, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 120 {
		return nil, ErrValidation("name is required and must be <= 120 chars")
	}
	if start.IsZero() {
		return nil, ErrValidation("start_date is required")
	}
	if durationDays < 1 {
		return nil, ErrValidation("duration_days must be >= 1")
	}
	if len(organizers) == 0 {
		return nil, ErrValidation("at least one organizer is required")
	}
	for _, o := range organizers {
		if o == uuid.Nil {
			return nil, ErrValidation("organizer ids must be non-zero")
		}
	}
	if details == nil {
		return nil, ErrValidation("kind details are required")
	}
	if err := details.validate(); err != nil {
		return nil, err
	}

	e := &Event{
		ID:           uuid.New(),
		Name:         name,
		StartDate:    DateOf(start),
		DurationDays: durationDays,
		Status:       StatusPlanned,
		Organizers:   append([]uuid.UUID(nil), organizers...),
		Details:      details,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}
	if w, ok := details.(WorkshopDetails); ok {
		c := w.MaxCapacity
		e.Capacity = &c
	}
	return e, nil
}

func (e *Event) Kind() EventKind {
	if e.Details == nil {
		return ""
	}
	return e.Details.Kind()
}

func (e *Event) HasOrganizer(personID uuid.UUID) bool {
	for _, o := range e.Organizers {
		if o == personID {
			return true
		}
	}
	if s, ok := e.Details.(staffed); ok {
		for _, p := range s.staff() {
			if p == personID {
				return true
			}
		}
	}
	return false
}

func (e *Event) Confirm(now time.Time) error {
	if e.Status != StatusPlanned {
		return ErrInvalidState("only planned events can be confirmed")
	}
	if e.HasEnded(now) {
		return ErrInvalidState("cannot confirm an ended event")
	}
	e.Status = StatusConfirmed
	e.UpdatedAt = now.UTC()
	return nil
}

func (e *Event) Start(now time.Time) error {
	if e.Status != StatusConfirmed {
		return ErrInvalidState("only confirmed events can be started")
	}
	e.Status = StatusRunning
	e.UpdatedAt = now.UTC()
	return nil
}

func (e *Event) Finish(now time.Time) error {
	if e.Status != StatusRunning {
		return ErrInvalidState("only running events can be finished")
	}
	e.Status = StatusFinished
	e.UpdatedAt = now.UTC()
	return nil
}
