package domain

import (
	"strings"

	"github.com/google/uuid"
)

type EventKind string

const (
	KindFair       EventKind = "fair"
	KindConcert    EventKind = "concert"
	KindExhibition EventKind = "exhibition"
	KindWorkshop   EventKind = "workshop"
	KindFilmSeries EventKind = "film_series"
)

func (k EventKind) Valid() bool {
	switch k {
	case KindFair, KindConcert, KindExhibition, KindWorkshop, KindFilmSeries:
		return true
	}
	return false
}

type DeliveryMode string

const (
	ModeInPerson DeliveryMode = "in_person"
	ModeVirtual  DeliveryMode = "virtual"
)

// Details carries the variant-specific payload of an event. An event is
// exactly one variant; dispatching on Kind replaces subtype checks.
type Details interface {
	Kind() EventKind
	validate() error
}

// staffed is implemented by variants whose payload names a responsible
// person beyond the organizer list. Staff fall under the same rule as
// organizers: they cannot enroll in their own event.
type staffed interface {
	staff() []uuid.UUID
}

type FairDetails struct {
	StandCount int  `json:"stand_count"`
	Outdoor    bool `json:"outdoor"`
}

func (FairDetails) Kind() EventKind { return KindFair }

func (d FairDetails) validate() error {
	if d.StandCount < 1 {
		return ErrValidation("stand_count must be >= 1")
	}
	return nil
}

type ConcertDetails struct {
	Performers []uuid.UUID `json:"performers"`
	FreeEntry  bool        `json:"free_entry"`
}

func (ConcertDetails) Kind() EventKind { return KindConcert }

func (d ConcertDetails) validate() error { return nil }

type ExhibitionDetails struct {
	ArtCategory string    `json:"art_category"`
	CuratorID   uuid.UUID `json:"curator_id"`
}

func (ExhibitionDetails) Kind() EventKind { return KindExhibition }

func (d ExhibitionDetails) validate() error {
	if strings.TrimSpace(d.ArtCategory) == "" {
		return ErrValidation("art_category is required")
	}
	if d.CuratorID == uuid.Nil {
		return ErrValidation("curator_id is required")
	}
	return nil
}

func (d ExhibitionDetails) staff() []uuid.UUID { return []uuid.UUID{d.CuratorID} }

type WorkshopDetails struct {
	MaxCapacity  int          `json:"max_capacity"`
	InstructorID uuid.UUID    `json:"instructor_id"`
	Mode         DeliveryMode `json:"mode"`
}

func (WorkshopDetails) Kind() EventKind { return KindWorkshop }

func (d WorkshopDetails) validate() error {
	if d.MaxCapacity < 1 {
		return ErrValidation("max_capacity must be >= 1")
	}
	if d.InstructorID == uuid.Nil {
		return ErrValidation("instructor_id is required")
	}
	if d.Mode != ModeInPerson && d.Mode != ModeVirtual {
		return ErrValidation("mode must be in_person or virtual")
	}
	return nil
}

func (d WorkshopDetails) staff() []uuid.UUID { return []uuid.UUID{d.InstructorID} }

type Film struct {
	Title string `json:"title"`
	Order int    `json:"order"`
}

type FilmSeriesDetails struct {
	Films              []Film `json:"films"`
	PostScreeningTalks bool   `json:"post_screening_talks"`
}

func (FilmSeriesDetails) Kind() EventKind { return KindFilmSeries }

func (d FilmSeriesDetails) validate() error {
	if len(d.Films) == 0 {
		return ErrValidation("at least one film is required")
	}
	seen := make(map[int]struct{}, len(d.Films))
	for _, f := range d.Films {
		if strings.TrimSpace(f.Title) == "" {
			return ErrValidation("film title is required")
		}
		if f.Order < 1 {
			return ErrValidation("film order must be >= 1")
		}
		if _, dup := seen[f.Order]; dup {
			return ErrValidation("film order values must be distinct within a series")
		}
		seen[f.Order] = struct{}{}
	}
	return nil
}
