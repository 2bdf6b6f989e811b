package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"conferencecentral/internal/domain"

	"github.com/lib/pq"
)

type conferenceRepository struct {
	DB *sql.DB
}

func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &conferenceRepository{
		DB: db,
	}
}

const conferenceColumns = `id, organizer_id, name, description, topics, city, start_date, month, end_date, max_attendees, seats_available, created_at, updated_at`

func (r *conferenceRepository) Create(ctx context.Context, conf *domain.Conference) error {
	query := `
		INSERT INTO conferences (organizer_id, name, description, topics, city, start_date, month, end_date, max_attendees, seats_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		conf.OrganizerID, conf.Name, conf.Description, pq.Array(conf.Topics), conf.City,
		conf.StartDate, conf.Month, conf.EndDate, conf.MaxAttendees, conf.SeatsAvailable,
		conf.CreatedAt, conf.UpdatedAt,
	).Scan(&conf.ID)
}

func (r *conferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	query := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE id = $1
	`
	conf, err := scanConference(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return conf, nil
}

func (r *conferenceRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	query := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE organizer_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}
	return scanConferences(rows)
}

func (r *conferenceRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	if len(ids) == 0 {
		return []*domain.Conference{}, nil
	}
	query := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE id = ANY($1)
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return scanConferences(rows)
}

// queryColumns maps compiled filter fields to columns. Filter compilation
// already rejected anything outside this set.
var queryColumns = map[string]string{
	"city":         "city",
	"topics":       "topics",
	"month":        "month",
	"maxAttendees": "max_attendees",
	"name":         "name",
}

func (r *conferenceRepository) ListByQuery(ctx context.Context, q domain.ConferenceQuery) ([]*domain.Conference, error) {
	var (
		where []string
		args  []any
	)
	for _, f := range q.Filters {
		col, ok := queryColumns[f.Field]
		if !ok {
			return nil, fmt.Errorf("unknown query field %q", f.Field)
		}
		args = append(args, f.Value)
		if col == "topics" {
			// Repeated-value semantics: the filter matches when any one
			// element of the array satisfies it.
			where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(topics) AS topic WHERE topic %s $%d)", f.Operator, len(args)))
		} else {
			where = append(where, fmt.Sprintf("%s %s $%d", col, f.Operator, len(args)))
		}
	}

	var order []string
	for _, field := range q.OrderBy {
		col, ok := queryColumns[field]
		if !ok {
			return nil, fmt.Errorf("unknown order field %q", field)
		}
		order = append(order, col+" ASC")
	}
	if len(order) == 0 {
		order = []string{"name ASC"}
	}

	query := `SELECT ` + conferenceColumns + ` FROM conferences`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + strings.Join(order, ", ")

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanConferences(rows)
}

func (r *conferenceRepository) ListAlmostSoldOut(ctx context.Context, limit int) ([]*domain.Conference, error) {
	query := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE seats_available > 0 AND seats_available <= $1
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return scanConferences(rows)
}

func (r *conferenceRepository) Update(ctx context.Context, conf *domain.Conference) error {
	query := `
		UPDATE conferences
		SET name = $2, description = $3, topics = $4, city = $5, start_date = $6, month = $7,
		    end_date = $8, max_attendees = $9, seats_available = $10, updated_at = $11
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		conf.ID, conf.Name, conf.Description, pq.Array(conf.Topics), conf.City,
		conf.StartDate, conf.Month, conf.EndDate, conf.MaxAttendees, conf.SeatsAvailable,
		conf.UpdatedAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConference(row rowScanner) (*domain.Conference, error) {
	conf := &domain.Conference{}
	var startNull, endNull sql.NullTime
	err := row.Scan(
		&conf.ID, &conf.OrganizerID, &conf.Name, &conf.Description, pq.Array(&conf.Topics),
		&conf.City, &startNull, &conf.Month, &endNull, &conf.MaxAttendees, &conf.SeatsAvailable,
		&conf.CreatedAt, &conf.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if startNull.Valid {
		conf.StartDate = &startNull.Time
	}
	if endNull.Valid {
		conf.EndDate = &endNull.Time
	}
	return conf, nil
}

func scanConferences(rows *sql.Rows) ([]*domain.Conference, error) {
	defer rows.Close()
	confs := make([]*domain.Conference, 0)
	for rows.Next() {
		conf, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		confs = append(confs, conf)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return confs, nil
}
