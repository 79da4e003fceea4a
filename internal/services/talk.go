package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"confprogram/internal/domain"
)

type talkService struct {
	talkRepo       domain.TalkRepository
	contextTimeout time.Duration
}

func NewTalkService(talkRepo domain.TalkRepository, timeout time.Duration) domain.TalkService {
	return &talkService{
		talkRepo:       talkRepo,
		contextTimeout: timeout,
	}
}

func validateTalk(t *domain.Talk) *domain.ValidationFailed {
	fields := domain.FieldErrors{}
	if t.Title == "" {
		fields["title"] = "talks.title.required"
	}
	if len(t.Title) > 100 {
		fields["title"] = "talks.title.too_long"
	}
	if len(t.Description) > 2000 {
		fields["description"] = "talks.description.too_long"
	}
	if len(fields) > 0 {
		return &domain.ValidationFailed{Fields: fields}
	}
	return nil
}

func (s *talkService) CreateTalk(ctx context.Context, talk *domain.Talk) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if talk.OwnerID == "" {
		return fmt.Errorf("talk owner is required")
	}
	if vf := validateTalk(talk); vf != nil {
		return vf
	}

	talk.Slug = slugify(talk.Title)
	if _, err := s.talkRepo.GetBySlug(ctx, talk.Slug); err == nil {
		return domain.NewValidationFailed("title", "talks.slug.taken")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check slug: %w", err)
	}

	talk.CreatedAt = time.Now()
	talk.UpdatedAt = time.Now()
	return s.talkRepo.Create(ctx, talk)
}

func (s *talkService) UpdateTalk(ctx context.Context, talk *domain.Talk, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	current, err := s.talkRepo.GetByID(ctx, talk.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get talk: %w", err)
	}
	if current.OwnerID != actorID {
		return domain.ErrForbidden
	}
	if vf := validateTalk(talk); vf != nil {
		return vf
	}

	talk.Slug = current.Slug
	talk.OwnerID = current.OwnerID
	talk.CreatedAt = current.CreatedAt
	talk.UpdatedAt = time.Now()
	if err := s.talkRepo.Update(ctx, talk); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update talk: %w", err)
	}
	return nil
}

func (s *talkService) GetTalkBySlug(ctx context.Context, slug string) (*domain.Talk, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	talk, err := s.talkRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get talk by slug: %w", err)
	}
	return talk, nil
}
