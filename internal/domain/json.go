package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UnmarshalDetails decodes a variant payload for the given kind. Storage
// and transport both keep the payload as raw JSON next to a kind column.
func UnmarshalDetails(kind EventKind, raw []byte) (Details, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	switch kind {
	case KindFair:
		var d FairDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case KindConcert:
		var d ConcertDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case KindExhibition:
		var d ExhibitionDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case KindWorkshop:
		var d WorkshopDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case KindFilmSeries:
		var d FilmSeriesDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, fmt.Errorf("unknown event kind %q", kind)
}

type eventJSON struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Kind         EventKind       `json:"kind"`
	StartDate    string          `json:"start_date"`
	DurationDays int             `json:"duration_days"`
	EndDate      string          `json:"end_date"`
	Status       EventStatus     `json:"status"`
	Organizers   []uuid.UUID     `json:"organizers"`
	Capacity     *int            `json:"capacity,omitempty"`
	Details      json.RawMessage `json:"details"`

	EnrolledCount int          `json:"enrolled_count"`
	Participants  []Enrollment `json:"participants,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const dateLayout = "2006-01-02"

func (e *Event) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(e.Details)
	if err != nil {
		return nil, err
	}
	return json.Marshal(eventJSON{
		ID:            e.ID,
		Name:          e.Name,
		Kind:          e.Kind(),
		StartDate:     e.StartDate.Format(dateLayout),
		DurationDays:  e.DurationDays,
		EndDate:       e.EndDate().Format(dateLayout),
		Status:        e.Status,
		Organizers:    e.Organizers,
		Capacity:      e.Capacity,
		Details:       raw,
		EnrolledCount: e.EnrolledCount,
		Participants:  e.Participants,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	})
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var v eventJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	details, err := UnmarshalDetails(v.Kind, v.Details)
	if err != nil {
		return err
	}
	start, err := time.ParseInLocation(dateLayout, v.StartDate, time.UTC)
	if err != nil {
		return err
	}
	*e = Event{
		ID:            v.ID,
		Name:          v.Name,
		StartDate:     start,
		DurationDays:  v.DurationDays,
		Status:        v.Status,
		Organizers:    v.Organizers,
		Capacity:      v.Capacity,
		Details:       details,
		EnrolledCount: v.EnrolledCount,
		Participants:  v.Participants,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
	return nil
}
