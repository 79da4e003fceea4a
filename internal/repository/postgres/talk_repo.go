package postgres

import (
	"context"
	"database/sql"
	"errors"

	"confprogram/internal/domain"
)

type talkRepository struct {
	DB *sql.DB
}

func NewTalkRepository(db *sql.DB) domain.TalkRepository {
	return &talkRepository{
		DB: db,
	}
}

func scanTalk(row interface{ Scan(...any) error }) (*domain.Talk, error) {
	t := &domain.Talk{}
	err := row.Scan(&t.ID, &t.Title, &t.Slug, &t.Description, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *talkRepository) Create(ctx context.Context, t *domain.Talk) error {
	query := `
		INSERT INTO talks (title, slug, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		t.Title, t.Slug, t.Description, t.OwnerID, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
}

func (r *talkRepository) GetByID(ctx context.Context, id string) (*domain.Talk, error) {
	query := `
		SELECT id, title, slug, description, owner_id, created_at, updated_at
		FROM talks
		WHERE id = $1
	`
	return scanTalk(r.DB.QueryRowContext(ctx, query, id))
}

func (r *talkRepository) GetBySlug(ctx context.Context, slug string) (*domain.Talk, error) {
	query := `
		SELECT id, title, slug, description, owner_id, created_at, updated_at
		FROM talks
		WHERE slug = $1
	`
	return scanTalk(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *talkRepository) Update(ctx context.Context, t *domain.Talk) error {
	query := `
		UPDATE talks
		SET title = $1, description = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := r.DB.ExecContext(ctx, query, t.Title, t.Description, t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
