package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conferencecentral/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

// Register runs in a transaction holding a row lock on the conference, so
// concurrent attempts serialize and the counter never goes below zero.
func (r *registrationRepository) Register(ctx context.Context, conferenceID, userID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seats int
	err = tx.QueryRowContext(ctx,
		`SELECT seats_available FROM conferences WHERE id = $1 FOR UPDATE`,
		conferenceID,
	).Scan(&seats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	var registered bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM conference_attendance WHERE conference_id = $1 AND user_id = $2)`,
		conferenceID, userID,
	).Scan(&registered)
	if err != nil {
		return err
	}
	if registered {
		return domain.ErrAlreadyRegistered
	}
	if seats <= 0 {
		return domain.ErrNoSeatsAvailable
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO conference_attendance (conference_id, user_id) VALUES ($1, $2)`,
		conferenceID, userID,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE conferences SET seats_available = seats_available - 1 WHERE id = $1`,
		conferenceID,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *registrationRepository) Unregister(ctx context.Context, conferenceID, userID string) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seats int
	err = tx.QueryRowContext(ctx,
		`SELECT seats_available FROM conferences WHERE id = $1 FOR UPDATE`,
		conferenceID,
	).Scan(&seats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM conference_attendance WHERE conference_id = $1 AND user_id = $2`,
		conferenceID, userID,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE conferences SET seats_available = seats_available + 1 WHERE id = $1`,
		conferenceID,
	); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *registrationRepository) ListConferenceIDsByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT conference_id FROM conference_attendance WHERE user_id = $1 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
