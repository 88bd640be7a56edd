package domain

import "time"

// EndDate is the computed last day of the event:
// start date + (duration - 1) days. A one-day event ends on its start date.
func (e *Event) EndDate() time.Time {
	return e.StartDate.AddDate(0, 0, e.DurationDays-1)
}

// HasEnded is true only when today is strictly after the computed end date.
// An event ending today is still open: the end day itself is a grace day.
func (e *Event) HasEnded(now time.Time) bool {
	return DateOf(now).After(DateOf(e.EndDate()))
}

// EligibleStatus is true for the two stored statuses that accept
// enrollment. Planned and finished never do, regardless of dates.
func (e *Event) EligibleStatus() bool {
	return e.Status == StatusConfirmed || e.Status == StatusRunning
}

func (e *Event) Enrollable(now time.Time) bool {
	return e.EligibleStatus() && !e.HasEnded(now)
}

// NotEnrollableReason returns exactly one rejection, in fixed priority
// order: planned, finished, date-ended, generic. nil when enrollable.
// The date check overrides an eligible stored status for enrollment
// purposes only; the stored status is never mutated here.
func (e *Event) NotEnrollableReason(now time.Time) error {
	switch {
	case e.Status == StatusPlanned:
		return ErrNotYetConfirmed
	case e.Status == StatusFinished:
		return ErrAlreadyFinished
	case e.HasEnded(now):
		return &EndedError{EndDate: e.EndDate()}
	case !e.EligibleStatus():
		return ErrNotEnrollable
	}
	return nil
}
