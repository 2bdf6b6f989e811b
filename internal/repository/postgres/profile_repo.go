package postgres

import (
	"context"
	"database/sql"
	"errors"

	"conferencecentral/internal/domain"

	"github.com/lib/pq"
)

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{
		DB: db,
	}
}

func (r *profileRepository) Create(ctx context.Context, prof *domain.Profile) error {
	// The id comes from the identity provider, not the database.
	query := `
		INSERT INTO profiles (id, display_name, main_email, tee_shirt_size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query,
		prof.ID, prof.DisplayName, prof.MainEmail, string(prof.TeeShirtSize),
		prof.CreatedAt, prof.UpdatedAt,
	)
	return err
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `
		SELECT id, display_name, main_email, tee_shirt_size, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	prof := &domain.Profile{}
	var size string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&prof.ID, &prof.DisplayName, &prof.MainEmail, &size, &prof.CreatedAt, &prof.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	prof.TeeShirtSize = domain.TeeShirtSize(size)
	return prof, nil
}

func (r *profileRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Profile, error) {
	out := make(map[string]*domain.Profile)
	if len(ids) == 0 {
		return out, nil
	}
	query := `
		SELECT id, display_name, main_email, tee_shirt_size, created_at, updated_at
		FROM profiles
		WHERE id = ANY($1)
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		prof := &domain.Profile{}
		var size string
		if err := rows.Scan(&prof.ID, &prof.DisplayName, &prof.MainEmail, &size, &prof.CreatedAt, &prof.UpdatedAt); err != nil {
			return nil, err
		}
		prof.TeeShirtSize = domain.TeeShirtSize(size)
		out[prof.ID] = prof
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *profileRepository) Update(ctx context.Context, prof *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $2, main_email = $3, tee_shirt_size = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		prof.ID, prof.DisplayName, prof.MainEmail, string(prof.TeeShirtSize), prof.UpdatedAt,
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
