package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tt, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return tt.UTC()
}

func validFair() FairDetails {
	return FairDetails{StandCount: 12, Outdoor: true}
}

func TestNew_SharedValidation(t *testing.T) {
	now := mustTime(t, "2026-03-01T10:00:00Z")
	start := now.AddDate(0, 0, 7)
	org := []uuid.UUID{uuid.New()}

	t.Run("valid_fair", func(t *testing.T) {
		e, err := New("Spring Fair", start, 3, org, validFair(), now)
		require.NoError(t, err)
		assert.Equal(t, StatusPlanned, e.Status)
		assert.Equal(t, KindFair, e.Kind())
		assert.Nil(t, e.Capacity)
		assert.Equal(t, DateOf(start), e.StartDate)
		assert.NotEqual(t, uuid.Nil, e.ID)
	})

	t.Run("empty_name", func(t *testing.T) {
		_, err := New("   ", start, 3, org, validFair(), now)
		require.Error(t, err)
		assert.Equal(t, CodeValidation, err.(*AppError).Code)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("zero_start", func(t *testing.T) {
		_, err := New("Fair", time.Time{}, 3, org, validFair(), now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "start_date")
	})

	t.Run("duration_below_one", func(t *testing.T) {
		_, err := New("Fair", start, 0, org, validFair(), now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duration_days must be >= 1")
	})

	t.Run("no_organizers", func(t *testing.T) {
		_, err := New("Fair", start, 3, nil, validFair(), now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "organizer")
	})

	t.Run("first_violation_wins", func(t *testing.T) {
		// Name and duration both invalid: name is reported.
		_, err := New("", start, 0, nil, FairDetails{}, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})
}

func TestNew_VariantValidation(t *testing.T) {
	now := mustTime(t, "2026-03-01T10:00:00Z")
	start := now.AddDate(0, 0, 7)
	org := []uuid.UUID{uuid.New()}

	t.Run("fair_requires_stands", func(t *testing.T) {
		_, err := New("Fair", start, 1, org, FairDetails{StandCount: 0}, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stand_count")
	})

	t.Run("concert_has_no_extra_rules", func(t *testing.T) {
		e, err := New("Concert", start, 1, org, ConcertDetails{FreeEntry: true}, now)
		require.NoError(t, err)
		assert.Nil(t, e.Capacity)
	})

	t.Run("exhibition_requires_category_then_curator", func(t *testing.T) {
		_, err := New("Expo", start, 1, org, ExhibitionDetails{}, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "art_category")

		_, err = New("Expo", start, 1, org, ExhibitionDetails{ArtCategory: "sculpture"}, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "curator_id")
	})

	t.Run("workshop_rules_in_field_order", func(t *testing.T) {
		instructor := uuid.New()

		_, err := New("Taller", start, 1, org, WorkshopDetails{MaxCapacity: 0, InstructorID: instructor, Mode: ModeInPerson}, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_capacity")

		_, err = New("Taller", start, 1, org, WorkshopDetails{MaxCapacity: 5, Mode: ModeInPerson}, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "instructor_id")

		_, err = New("Taller", start, 1, org, WorkshopDetails{MaxCapacity: 5, InstructorID: instructor, Mode: "hybrid"}, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mode")
	})

	t.Run("workshop_declares_capacity", func(t *testing.T) {
		e, err := New("Taller", start, 1, org, WorkshopDetails{MaxCapacity: 8, InstructorID: uuid.New(), Mode: ModeVirtual}, now)
		require.NoError(t, err)
		require.NotNil(t, e.Capacity)
		assert.Equal(t, 8, *e.Capacity)
	})

	t.Run("film_series_rules", func(t *testing.T) {
		_, err := New("Cine", start, 5, org, FilmSeriesDetails{}, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one film")

		_, err = New("Cine", start, 5, org, FilmSeriesDetails{Films: []Film{{Title: "A", Order: 0}}}, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order must be >= 1")

		_, err = New("Cine", start, 5, org, FilmSeriesDetails{Films: []Film{{Title: "A", Order: 1}, {Title: "B", Order: 1}}}, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "distinct")

		e, err := New("Cine", start, 5, org, FilmSeriesDetails{
			Films:              []Film{{Title: "A", Order: 1}, {Title: "B", Order: 2}},
			PostScreeningTalks: true,
		}, now)
		require.NoError(t, err)
		assert.Nil(t, e.Capacity)
	})
}

func TestEvent_Transitions(t *testing.T) {
	now := mustTime(t, "2026-03-01T10:00:00Z")
	org := []uuid.UUID{uuid.New()}

	newEvent := func(t *testing.T) *Event {
		t.Helper()
		e, err := New("Fair", now.AddDate(0, 0, 7), 2, org, validFair(), now)
		require.NoError(t, err)
		return e
	}

	t.Run("full_chain", func(t *testing.T) {
		e := newEvent(t)
		require.NoError(t, e.Confirm(now))
		assert.Equal(t, StatusConfirmed, e.Status)
		require.NoError(t, e.Start(now))
		assert.Equal(t, StatusRunning, e.Status)
		require.NoError(t, e.Finish(now))
		assert.Equal(t, StatusFinished, e.Status)
	})

	t.Run("cannot_skip_states", func(t *testing.T) {
		e := newEvent(t)
		err := e.Start(now)
		require.Error(t, err)
		assert.Equal(t, CodeInvalidState, err.(*AppError).Code)

		err = e.Finish(now)
		require.Error(t, err)
	})

	t.Run("cannot_confirm_twice", func(t *testing.T) {
		e := newEvent(t)
		require.NoError(t, e.Confirm(now))
		require.Error(t, e.Confirm(now))
	})

	t.Run("cannot_confirm_ended_event", func(t *testing.T) {
		e, err := New("Fair", now.AddDate(0, 0, -10), 2, org, validFair(), now)
		require.NoError(t, err)
		err = e.Confirm(now)
		require.Error(t, err)
		assert.Equal(t, CodeInvalidState, err.(*AppError).Code)
	})
}
