package postgres

import (
	"context"
	"database/sql"
	"errors"

	"confprogram/internal/domain"
)

type enrollmentRepository struct {
	DB *sql.DB
}

func NewEnrollmentRepository(db *sql.DB) domain.EnrollmentRepository {
	return &enrollmentRepository{
		DB: db,
	}
}

func (r *enrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) error {
	// The registered-users counter lives on the event row and is kept in
	// step with the insert inside one transaction.
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO enrollments (event_id, user_id, confirmation_code, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, e.EventID, e.UserID, e.ConfirmationCode, e.CreatedAt).Scan(&e.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE events SET registered_count = registered_count + 1 WHERE id = $1`, e.EventID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *enrollmentRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Enrollment, error) {
	query := `
		SELECT id, event_id, user_id, confirmation_code, created_at
		FROM enrollments
		WHERE event_id = $1 AND user_id = $2
	`
	e := &domain.Enrollment{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(
		&e.ID, &e.EventID, &e.UserID, &e.ConfirmationCode, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *enrollmentRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM enrollments WHERE event_id = $1`, eventID).Scan(&n)
	return n, err
}
