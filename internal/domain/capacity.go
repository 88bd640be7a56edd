package domain

// AvailableSlots reports remaining capacity, floored at zero. limited is
// false when the event declares no capacity: such events are unlimited and
// the slot count is meaningless, not zero.
func (e *Event) AvailableSlots() (slots int, limited bool) {
	if e.Capacity == nil {
		return 0, false
	}
	left := *e.Capacity - e.EnrolledCount
	if left < 0 {
		left = 0
	}
	return left, true
}

func (e *Event) HasAvailability() bool {
	left, limited := e.AvailableSlots()
	return !limited || left > 0
}
