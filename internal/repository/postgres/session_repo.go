package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"conferencecentral/internal/domain"

	"github.com/lib/pq"
)

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{
		DB: db,
	}
}

const sessionColumns = `id, conference_id, name, highlights, speaker, duration, session_types, date, start_time, organizer_id, created_at, updated_at`

func (r *sessionRepository) Create(ctx context.Context, sess *domain.Session) error {
	query := `
		INSERT INTO sessions (conference_id, name, highlights, speaker, duration, session_types, date, start_time, organizer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		sess.ConferenceID, sess.Name, sess.Highlights, sess.Speaker, sess.Duration,
		pq.Array(sess.SessionTypes), sess.Date, sess.StartTime, sess.OrganizerID,
		sess.CreatedAt, sess.UpdatedAt,
	).Scan(&sess.ID)
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE id = $1
	`
	sess, err := scanSession(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (r *sessionRepository) ListByConferenceID(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE conference_id = $1
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, conferenceID)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

func (r *sessionRepository) ListByConferenceIDAndType(ctx context.Context, conferenceID, sessionType string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE conference_id = $1 AND $2 = ANY(session_types)
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, conferenceID, sessionType)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

func (r *sessionRepository) ListByConferenceIDAndSpeaker(ctx context.Context, conferenceID, speaker string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE conference_id = $1 AND speaker = $2
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, conferenceID, speaker)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

func (r *sessionRepository) ListByConferenceIDToDate(ctx context.Context, conferenceID string, cutoff time.Time) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE conference_id = $1 AND date IS NOT NULL AND date <= $2
		ORDER BY date ASC, start_time ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, conferenceID, cutoff)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

func (r *sessionRepository) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE speaker = $1
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, speaker)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

func (r *sessionRepository) ListStartingBy(ctx context.Context, hour int) ([]*domain.Session, error) {
	// start_time holds a bare time of day. The cutoff is inclusive at the
	// exact hour, so 19:00 qualifies for hour 19 but 19:01 does not.
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE start_time IS NOT NULL AND start_time <= make_time($1::int, 0, 0)
		ORDER BY start_time ASC, name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, hour)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

func (r *sessionRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	if len(ids) == 0 {
		return []*domain.Session{}, nil
	}
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE id = ANY($1)
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

func scanSession(row rowScanner) (*domain.Session, error) {
	sess := &domain.Session{}
	var dateNull, startNull sql.NullTime
	err := row.Scan(
		&sess.ID, &sess.ConferenceID, &sess.Name, &sess.Highlights, &sess.Speaker,
		&sess.Duration, pq.Array(&sess.SessionTypes), &dateNull, &startNull,
		&sess.OrganizerID, &sess.CreatedAt, &sess.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dateNull.Valid {
		sess.Date = &dateNull.Time
	}
	if startNull.Valid {
		sess.StartTime = &startNull.Time
	}
	return sess, nil
}

func scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	defer rows.Close()
	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}
