package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/civhall/municipal-events/internal/application/enrollment"
	"github.com/civhall/municipal-events/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type EnrollmentRepo struct {
	db *sql.DB
}

func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo { return &EnrollmentRepo{db: db} }

// Lock order per event: the events row first (FOR UPDATE), then the
// enrollment rows. Every writer for a given event serializes on that row,
// which closes the window between the duplicate/capacity checks and the
// insert. The partial unique index on active (event_id, person_id) is the
// backstop if a writer ever gets past the check outside this path.
func (r *EnrollmentRepo) Enroll(ctx context.Context, eventID, personID uuid.UUID, now time.Time) (*domain.Enrollment, *domain.Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	ev, err := scanEvent(tx.QueryRowContext(ctx, lockEventSQL, eventID))
	if err != nil {
		return nil, nil, err
	}

	orgs, err := organizersOfTx(ctx, tx, eventID)
	if err != nil {
		return nil, nil, err
	}
	ev.Organizers = orgs

	// Hydrate only the candidate's active enrollment; the engine's
	// duplicate check needs nothing else and the counter carries capacity.
	var existing domain.Enrollment
	err = tx.QueryRowContext(ctx, getActiveEnrollmentSQL, eventID, personID).
		Scan(&existing.ID, &existing.CreatedAt)
	switch {
	case err == nil:
		existing.EventID = eventID
		existing.PersonID = personID
		existing.Status = domain.EnrollmentActive
		ev.Participants = append(ev.Participants, existing)
	case err == sql.ErrNoRows:
		// first enrollment attempt for this person
	default:
		return nil, nil, err
	}

	rec, err := ev.TryEnroll(personID, now)
	if err != nil {
		return nil, nil, err
	}

	if _, err := tx.ExecContext(ctx, insertEnrollmentSQL,
		rec.ID, rec.EventID, rec.PersonID, string(rec.Status), rec.CreatedAt,
	); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, nil, domain.ErrAlreadyEnrolled
		}
		return nil, nil, err
	}

	if _, err := tx.ExecContext(ctx, bumpEnrolledCountSQL, eventID, now.UTC()); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return rec, ev, nil
}

func (r *EnrollmentRepo) Withdraw(ctx context.Context, eventID, personID uuid.UUID, now time.Time) (*domain.Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	ev, err := scanEvent(tx.QueryRowContext(ctx, lockEventSQL, eventID))
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, cancelEnrollmentSQL, eventID, personID, now.UTC())
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotEnrolled
	}

	if _, err := tx.ExecContext(ctx, dropEnrolledCountSQL, eventID, now.UTC()); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if ev.EnrolledCount > 0 {
		ev.EnrolledCount--
	}
	return ev, nil
}

func (r *EnrollmentRepo) ListParticipants(ctx context.Context, eventID uuid.UUID, page, pageSize int) ([]domain.Enrollment, int, error) {
	_, pageSize, offset := pageBounds(page, pageSize)

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE event_id = $1 AND status = 'active'`,
		eventID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, event_id, person_id, status, created_at, canceled_at
FROM enrollments
WHERE event_id = $1 AND status = 'active'
ORDER BY created_at ASC, id ASC
LIMIT $2 OFFSET $3
`, eventID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := scanEnrollments(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *EnrollmentRepo) ListByPerson(ctx context.Context, personID uuid.UUID, page, pageSize int) ([]domain.Enrollment, int, error) {
	_, pageSize, offset := pageBounds(page, pageSize)

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE person_id = $1`,
		personID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, event_id, person_id, status, created_at, canceled_at
FROM enrollments
WHERE person_id = $1
ORDER BY created_at DESC, id
LIMIT $2 OFFSET $3
`, personID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := scanEnrollments(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func organizersOfTx(ctx context.Context, tx *sql.Tx, eventID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := tx.QueryContext(ctx, getOrganizersSQL, eventID)
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

func scanEnrollments(rows *sql.Rows) ([]domain.Enrollment, error) {
	var out []domain.Enrollment
	for rows.Next() {
		var (
			rec      domain.Enrollment
			status   string
			canceled sql.NullTime
		)
		if err := rows.Scan(&rec.ID, &rec.EventID, &rec.PersonID, &status, &rec.CreatedAt, &canceled); err != nil {
			return nil, err
		}
		rec.Status = domain.EnrollmentStatus(status)
		if canceled.Valid {
			t := canceled.Time
			rec.CanceledAt = &t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func pageBounds(page, pageSize int) (int, int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize, (page - 1) * pageSize
}

var _ enrollment.EnrollmentRepo = (*EnrollmentRepo)(nil)
