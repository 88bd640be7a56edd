package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workshop(t *testing.T, capacity int, start time.Time, status EventStatus) *Event {
	t.Helper()
	e, err := New("Taller", start, 2, []uuid.UUID{uuid.New()},
		WorkshopDetails{MaxCapacity: capacity, InstructorID: uuid.New(), Mode: ModeInPerson},
		start.AddDate(0, 0, -30))
	require.NoError(t, err)
	e.Status = status
	return e
}

func TestEvent_AvailableSlots(t *testing.T) {
	now := mustTime(t, "2026-04-01T09:00:00Z")
	start := now.AddDate(0, 0, 7)

	t.Run("unlimited_variant_is_not_zero", func(t *testing.T) {
		e := eventWith(t, StatusConfirmed, start, 1)
		_, limited := e.AvailableSlots()
		assert.False(t, limited)
		assert.True(t, e.HasAvailability())
	})

	t.Run("slots_track_enrollment_count", func(t *testing.T) {
		e := workshop(t, 5, start, StatusConfirmed)
		e.EnrolledCount = 2
		slots, limited := e.AvailableSlots()
		assert.True(t, limited)
		assert.Equal(t, 3, slots)
	})

	t.Run("never_negative", func(t *testing.T) {
		e := workshop(t, 2, start, StatusConfirmed)
		e.EnrolledCount = 7 // over-enrolled snapshot, e.g. capacity lowered after the fact
		slots, limited := e.AvailableSlots()
		assert.True(t, limited)
		assert.Equal(t, 0, slots)
		assert.False(t, e.HasAvailability())
	})
}

func TestEvent_TryEnroll_CheckOrder(t *testing.T) {
	now := mustTime(t, "2026-04-01T09:00:00Z")
	start := now.AddDate(0, 0, 7)

	t.Run("lifecycle_checked_first", func(t *testing.T) {
		e := workshop(t, 1, start, StatusPlanned)
		organizer := e.Organizers[0]
		// Organizer and planned status both apply: lifecycle wins.
		_, err := e.TryEnroll(organizer, now)
		assert.ErrorIs(t, err, ErrNotYetConfirmed)
	})

	t.Run("organizer_rejected_before_duplicate_and_capacity", func(t *testing.T) {
		e := workshop(t, 1, start, StatusConfirmed)
		_, err := e.TryEnroll(e.Organizers[0], now)
		assert.ErrorIs(t, err, ErrOrganizerConflict)
		assert.Empty(t, e.Participants)
	})

	t.Run("instructor_counts_as_organizer", func(t *testing.T) {
		e := workshop(t, 3, start, StatusConfirmed)
		instructor := e.Details.(WorkshopDetails).InstructorID
		_, err := e.TryEnroll(instructor, now)
		assert.ErrorIs(t, err, ErrOrganizerConflict)
	})

	t.Run("duplicate_rejected_before_capacity", func(t *testing.T) {
		e := workshop(t, 1, start, StatusConfirmed)
		p := uuid.New()
		_, err := e.TryEnroll(p, now)
		require.NoError(t, err)
		// Capacity now exhausted, but the duplicate reason must win.
		_, err = e.TryEnroll(p, now)
		assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	})

	t.Run("no_mutation_on_rejection", func(t *testing.T) {
		e := workshop(t, 1, start, StatusConfirmed)
		_, err := e.TryEnroll(e.Organizers[0], now)
		require.Error(t, err)
		assert.Equal(t, 0, e.EnrolledCount)
		assert.Empty(t, e.Participants)
	})
}

func TestEvent_TryEnroll_Idempotence(t *testing.T) {
	now := mustTime(t, "2026-04-01T09:00:00Z")
	e := workshop(t, 5, now.AddDate(0, 0, 7), StatusConfirmed)
	p := uuid.New()

	rec, err := e.TryEnroll(p, now)
	require.NoError(t, err)
	assert.Equal(t, p, rec.PersonID)
	assert.Equal(t, EnrollmentActive, rec.Status)

	_, err = e.TryEnroll(p, now)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	assert.Equal(t, 1, e.EnrolledCount)
	assert.Len(t, e.Participants, 1)
}

func TestEvent_Withdraw(t *testing.T) {
	now := mustTime(t, "2026-04-01T09:00:00Z")
	e := workshop(t, 1, now.AddDate(0, 0, 7), StatusConfirmed)
	p := uuid.New()

	t.Run("not_enrolled", func(t *testing.T) {
		assert.ErrorIs(t, e.Withdraw(uuid.New(), now), ErrNotEnrolled)
	})

	t.Run("withdraw_frees_slot_and_allows_reenroll", func(t *testing.T) {
		_, err := e.TryEnroll(p, now)
		require.NoError(t, err)
		assert.False(t, e.HasAvailability())

		require.NoError(t, e.Withdraw(p, now))
		assert.Equal(t, 0, e.EnrolledCount)
		assert.True(t, e.HasAvailability())

		_, err = e.TryEnroll(p, now)
		require.NoError(t, err)
	})
}

// Scenario tests mirror the product acceptance cases one for one.
func TestEnrollmentScenarios(t *testing.T) {
	now := mustTime(t, "2026-04-10T12:00:00Z")
	org := []uuid.UUID{uuid.New()}

	t.Run("full_workshop_rejects_with_no_capacity", func(t *testing.T) {
		e := workshop(t, 2, now.AddDate(0, 0, 7), StatusConfirmed)
		_, err := e.TryEnroll(uuid.New(), now)
		require.NoError(t, err)
		_, err = e.TryEnroll(uuid.New(), now)
		require.NoError(t, err)

		_, err = e.TryEnroll(uuid.New(), now)
		assert.ErrorIs(t, err, ErrNoCapacity)
		assert.EqualError(t, err, "no capacity available")
	})

	t.Run("planned_concert_rejects_regardless_of_dates", func(t *testing.T) {
		e, err := New("Concert", now.AddDate(0, 0, 30), 1, org, ConcertDetails{}, now)
		require.NoError(t, err)
		_, err = e.TryEnroll(uuid.New(), now)
		assert.ErrorIs(t, err, ErrNotYetConfirmed)
		assert.EqualError(t, err, "not yet confirmed")
	})

	t.Run("confirmed_fair_ended_a_week_ago", func(t *testing.T) {
		e, err := New("Fair", now.AddDate(0, 0, -10), 3, org, validFair(), now.AddDate(0, 0, -30))
		require.NoError(t, err)
		e.Status = StatusConfirmed

		_, err = e.TryEnroll(uuid.New(), now)
		require.Error(t, err)
		var ended *EndedError
		require.ErrorAs(t, err, &ended)
		assert.EqualError(t, err, "ended on 2026-04-02")
	})

	t.Run("curator_cannot_enroll_in_own_exhibition", func(t *testing.T) {
		curator := uuid.New()
		e, err := New("Expo", now.AddDate(0, 0, 3), 10, org,
			ExhibitionDetails{ArtCategory: "painting", CuratorID: curator}, now)
		require.NoError(t, err)
		e.Status = StatusRunning

		_, err = e.TryEnroll(curator, now)
		assert.ErrorIs(t, err, ErrOrganizerConflict)
		assert.EqualError(t, err, "organizer cannot enroll in own event")
	})

	t.Run("workshop_with_room_accepts_and_reports_slots", func(t *testing.T) {
		e := workshop(t, 5, now.AddDate(0, 0, 7), StatusConfirmed)
		_, err := e.TryEnroll(uuid.New(), now)
		require.NoError(t, err)

		_, err = e.TryEnroll(uuid.New(), now)
		require.NoError(t, err)

		slots, limited := e.AvailableSlots()
		assert.True(t, limited)
		assert.Equal(t, 3, slots)
	})
}
