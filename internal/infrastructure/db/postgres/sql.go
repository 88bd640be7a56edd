package postgres

const insertEventSQL = `
INSERT INTO events (id, name, kind, start_date, duration_days, status, capacity, enrolled_count, details, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

const insertOrganizerSQL = `
INSERT INTO event_organizers (event_id, person_id)
VALUES ($1, $2)
`

const getEventSQL = `
SELECT id, name, kind, start_date, duration_days, status, capacity, enrolled_count, details, created_at, updated_at
FROM events
WHERE id = $1
`

const getOrganizersSQL = `
SELECT person_id
FROM event_organizers
WHERE event_id = $1
ORDER BY person_id
`

const updateEventStatusSQL = `
UPDATE events
SET status = $2, updated_at = $3
WHERE id = $1
`

const lockEventSQL = `
SELECT id, name, kind, start_date, duration_days, status, capacity, enrolled_count, details, created_at, updated_at
FROM events
WHERE id = $1
FOR UPDATE
`

const getActiveEnrollmentSQL = `
SELECT id, created_at
FROM enrollments
WHERE event_id = $1 AND person_id = $2 AND status = 'active'
`

const insertEnrollmentSQL = `
INSERT INTO enrollments (id, event_id, person_id, status, created_at)
VALUES ($1, $2, $3, $4, $5)
`

const bumpEnrolledCountSQL = `
UPDATE events
SET enrolled_count = enrolled_count + 1, updated_at = $2
WHERE id = $1
`

const cancelEnrollmentSQL = `
UPDATE enrollments
SET status = 'canceled', canceled_at = $3
WHERE event_id = $1 AND person_id = $2 AND status = 'active'
`

const dropEnrolledCountSQL = `
UPDATE events
SET enrolled_count = GREATEST(enrolled_count - 1, 0), updated_at = $2
WHERE id = $1
`
