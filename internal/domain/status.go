package domain

type EventStatus string

const (
	StatusPlanned   EventStatus = "planned"
	StatusConfirmed EventStatus = "confirmed"
	StatusRunning   EventStatus = "running"
	StatusFinished  EventStatus = "finished"
)

func (s EventStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusConfirmed, StatusRunning, StatusFinished:
		return true
	}
	return false
}
