package postgres

import (
	"context"
	"database/sql"
	"errors"

	"confprogram/internal/domain"
)

type scheduleRepository struct {
	DB *sql.DB
}

func NewScheduleRepository(db *sql.DB) domain.ScheduleRepository {
	return &scheduleRepository{
		DB: db,
	}
}

func scanSlot(row interface{ Scan(...any) error }) (*domain.ScheduleSlot, error) {
	s := &domain.ScheduleSlot{}
	var talkID sql.NullString
	err := row.Scan(&s.ID, &s.EventID, &s.Day, &s.Time, &s.Kind, &talkID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if talkID.Valid {
		s.TalkID = &talkID.String
	}
	return s, nil
}

func (r *scheduleRepository) Create(ctx context.Context, slot *domain.ScheduleSlot) error {
	query := `
		INSERT INTO schedule_slots (event_id, day, slot_time, kind, talk_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		slot.EventID, slot.Day, slot.Time, slot.Kind, slot.TalkID, slot.CreatedAt, slot.UpdatedAt,
	).Scan(&slot.ID)
}

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (*domain.ScheduleSlot, error) {
	query := `
		SELECT id, event_id, day, slot_time, kind, talk_id, created_at, updated_at
		FROM schedule_slots
		WHERE id = $1
	`
	return scanSlot(r.DB.QueryRowContext(ctx, query, id))
}

func (r *scheduleRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.ScheduleSlot, error) {
	query := `
		SELECT id, event_id, day, slot_time, kind, talk_id, created_at, updated_at
		FROM schedule_slots
		WHERE event_id = $1
		ORDER BY day, slot_time
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	slots := make([]*domain.ScheduleSlot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *scheduleRepository) Replace(ctx context.Context, slot *domain.ScheduleSlot) error {
	query := `
		UPDATE schedule_slots
		SET day = $1, slot_time = $2, kind = $3, talk_id = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := r.DB.ExecContext(ctx, query,
		slot.Day, slot.Time, slot.Kind, slot.TalkID, slot.UpdatedAt, slot.ID,
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

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM schedule_slots WHERE id = $1`
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

func (r *scheduleRepository) DeleteByEventID(ctx context.Context, eventID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM schedule_slots WHERE event_id = $1`, eventID)
	return err
}
