package domain

import (
	"context"
	"time"
)

// Talk represents a talk that can be assigned to a schedule slot. Slots hold
// a reference to a talk, never a copy, and a talk appears in at most one
// slot per event.
// swagger:model Talk
type Talk struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTalk returns a new Talk. ID is set by the repository on create.
func NewTalk(title, slug, description, ownerID string, createdAt, updatedAt time.Time) *Talk {
	return &Talk{
		Title:       title,
		Slug:        slug,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// TalkRepository defines the interface for talk storage.
type TalkRepository interface {
	Create(ctx context.Context, talk *Talk) error
	GetByID(ctx context.Context, id string) (*Talk, error)
	GetBySlug(ctx context.Context, slug string) (*Talk, error)
	Update(ctx context.Context, talk *Talk) error
}

// TalkService defines the business logic for talks.
type TalkService interface {
	CreateTalk(ctx context.Context, talk *Talk) error
	UpdateTalk(ctx context.Context, talk *Talk, actorID string) error
	GetTalkBySlug(ctx context.Context, slug string) (*Talk, error)
}
