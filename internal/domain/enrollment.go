package domain

import (
	"time"

	"github.com/google/uuid"
)

type EnrollmentStatus string

const (
	EnrollmentActive   EnrollmentStatus = "active"
	EnrollmentCanceled EnrollmentStatus = "canceled"
)

type Enrollment struct {
	ID       uuid.UUID        `json:"id"`
	EventID  uuid.UUID        `json:"event_id"`
	PersonID uuid.UUID        `json:"person_id"`
	Status   EnrollmentStatus `json:"status"`

	CreatedAt  time.Time  `json:"created_at"`
	CanceledAt *time.Time `json:"canceled_at,omitempty"`
}

func (e *Event) activeEnrollment(personID uuid.UUID) *Enrollment {
	for i := range e.Participants {
		if e.Participants[i].PersonID == personID && e.Participants[i].Status == EnrollmentActive {
			return &e.Participants[i]
		}
	}
	return nil
}

// IsEnrolled considers active enrollments only; a canceled record does not
// block re-enrollment.
func (e *Event) IsEnrolled(personID uuid.UUID) bool {
	return e.activeEnrollment(personID) != nil
}

// TryEnroll is the enrollment eligibility engine. Checks run in fixed
// order and the first failure wins; nothing is mutated until every check
// has passed. On success the record is appended to the participant
// collection and returned.
func (e *Event) TryEnroll(personID uuid.UUID, now time.Time) (*Enrollment, error) {
	if err := e.NotEnrollableReason(now); err != nil {
		return nil, err
	}
	if e.HasOrganizer(personID) {
		return nil, ErrOrganizerConflict
	}
	if e.IsEnrolled(personID) {
		return nil, ErrAlreadyEnrolled
	}
	if !e.HasAvailability() {
		return nil, ErrNoCapacity
	}

	rec := Enrollment{
		ID:        uuid.New(),
		EventID:   e.ID,
		PersonID:  personID,
		Status:    EnrollmentActive,
		CreatedAt: now.UTC(),
	}
	e.Participants = append(e.Participants, rec)
	e.EnrolledCount++
	e.UpdatedAt = now.UTC()
	return &rec, nil
}

// Withdraw cancels the person's active enrollment, freeing a slot on
// capacity-bounded events.
func (e *Event) Withdraw(personID uuid.UUID, now time.Time) error {
	rec := e.activeEnrollment(personID)
	if rec == nil {
		return ErrNotEnrolled
	}
	t := now.UTC()
	rec.Status = EnrollmentCanceled
	rec.CanceledAt = &t
	if e.EnrolledCount > 0 {
		e.EnrolledCount--
	}
	e.UpdatedAt = t
	return nil
}
