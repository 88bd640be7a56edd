package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/civhall/municipal-events/internal/application/event"
	"github.com/civhall/municipal-events/internal/domain"
	"github.com/google/uuid"
)

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, e *domain.Event) error {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, insertEventSQL,
		e.ID, e.Name, string(e.Kind()), e.StartDate, e.DurationDays,
		string(e.Status), nullableInt(e.Capacity), e.EnrolledCount, details,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	for _, org := range e.Organizers {
		if _, err := tx.ExecContext(ctx, insertOrganizerSQL, e.ID, org); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, getEventSQL, id))
	if err != nil {
		return nil, err
	}

	orgs, err := r.organizersOf(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.Organizers = orgs
	return e, nil
}

func (r *Repo) UpdateStatus(ctx context.Context, e *domain.Event) error {
	_, err := r.db.ExecContext(ctx, updateEventStatusSQL, e.ID, string(e.Status), e.UpdatedAt)
	return err
}

func (r *Repo) ListPublic(ctx context.Context, f event.ListFilter) ([]*domain.Event, int, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}

	// Planned events are internal drafts; everything else is browsable.
	where := []string{"status <> 'planned'"}
	args := []any{}
	argN := 1

	add := func(condFmt string, val any) {
		where = append(where, fmt.Sprintf(condFmt, argN))
		args = append(args, val)
		argN++
	}

	if f.Kind != nil {
		add("kind = $%d", string(*f.Kind))
	}
	if f.From != nil {
		add("start_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("start_date <= $%d", *f.To)
	}

	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM events WHERE "+cond, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.PageSize
	query := fmt.Sprintf(`
SELECT id, name, kind, start_date, duration_days, status, capacity, enrolled_count, details, created_at, updated_at
FROM events
WHERE %s
ORDER BY start_date ASC, id ASC
LIMIT $%d OFFSET $%d
`, cond, argN, argN+1)
	args = append(args, f.PageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *Repo) ListByOrganizer(ctx context.Context, organizerID string, page, pageSize int) ([]*domain.Event, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	var total int
	if err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM events e
JOIN event_organizers o ON o.event_id = e.id
WHERE o.person_id = $1
`, organizerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT e.id, e.name, e.kind, e.start_date, e.duration_days, e.status, e.capacity, e.enrolled_count, e.details, e.created_at, e.updated_at
FROM events e
JOIN event_organizers o ON o.event_id = e.id
WHERE o.person_id = $1
ORDER BY e.start_date DESC, e.id
LIMIT $2 OFFSET $3
`, organizerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *Repo) organizersOf(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, getOrganizersSQL, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		orgs = append(orgs, id)
	}
	return orgs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var (
		e        domain.Event
		kind     string
		status   string
		capacity sql.NullInt64
		details  []byte
	)
	err := row.Scan(
		&e.ID, &e.Name, &kind, &e.StartDate, &e.DurationDays, &status,
		&capacity, &e.EnrolledCount, &details, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("event not found")
	}
	if err != nil {
		return nil, err
	}

	e.Status = domain.EventStatus(status)
	if !e.Status.Valid() {
		return nil, domain.ErrInvalidState("invalid status in db")
	}
	e.StartDate = domain.DateOf(e.StartDate)
	if capacity.Valid {
		c := int(capacity.Int64)
		e.Capacity = &c
	}

	d, err := domain.UnmarshalDetails(domain.EventKind(kind), details)
	if err != nil {
		return nil, err
	}
	e.Details = d
	return &e, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

var _ event.EventRepo = (*Repo)(nil)
