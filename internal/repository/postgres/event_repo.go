package postgres

import (
	"context"
	"database/sql"
	"errors"

	"confprogram/internal/domain"
)

const eventColumns = `id, name, edition, slug, description, stocking, tags,
		start_date, end_date, enrollment_deadline, public,
		place, street, district, city, state, country,
		workload, registered_count, owner_id, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(
		&e.ID, &e.Name, &e.Edition, &e.Slug, &e.Description, &e.Stocking, &e.Tags,
		&e.StartDate, &e.EndDate, &e.EnrollmentDeadline, &e.Public,
		&e.Place, &e.Street, &e.District, &e.City, &e.State, &e.Country,
		&e.Workload, &e.RegisteredCount, &e.OwnerID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, edition, slug, description, stocking, tags,
			start_date, end_date, enrollment_deadline, public,
			place, street, district, city, state, country,
			workload, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Name, e.Edition, e.Slug, e.Description, e.Stocking, e.Tags,
		e.StartDate, e.EndDate, e.EnrollmentDeadline, e.Public,
		e.Place, e.Street, e.District, e.City, e.State, e.Country,
		e.Workload, e.OwnerID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`
	return scanEvent(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *eventRepository) ListPublic(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE public = TRUE`).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE public = TRUE
		ORDER BY start_date DESC, id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) ListUpcoming(ctx context.Context, limit int) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE public = TRUE
		ORDER BY start_date DESC
		LIMIT $1
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events SET
			name = $1, edition = $2, description = $3, stocking = $4, tags = $5,
			start_date = $6, end_date = $7, enrollment_deadline = $8, public = $9,
			place = $10, street = $11, district = $12, city = $13, state = $14, country = $15,
			workload = $16, updated_at = $17
		WHERE id = $18
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.Name, e.Edition, e.Description, e.Stocking, e.Tags,
		e.StartDate, e.EndDate, e.EnrollmentDeadline, e.Public,
		e.Place, e.Street, e.District, e.City, e.State, e.Country,
		e.Workload, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) CountSchedules(ctx context.Context, eventID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedule_slots WHERE event_id = $1`, eventID).Scan(&n)
	return n, err
}

func (r *eventRepository) CountEnrollments(ctx context.Context, eventID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM enrollments WHERE event_id = $1`, eventID).Scan(&n)
	return n, err
}
