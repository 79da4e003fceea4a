package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"confprogram/internal/domain"
)

const upcomingEventsLimit = 3

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

// validateEvent enforces the event's own invariants. Messages are
// localization keys; rendering them is the presentation layer's concern.
func validateEvent(e *domain.Event) *domain.ValidationFailed {
	fields := domain.FieldErrors{}
	required := []struct {
		field, value string
	}{
		{"name", e.Name},
		{"edition", e.Edition},
		{"tags", e.Tags},
		{"place", e.Place},
		{"street", e.Street},
		{"district", e.District},
		{"city", e.City},
		{"state", e.State},
		{"country", e.Country},
	}
	for _, r := range required {
		if r.value == "" {
			fields[r.field] = "events." + r.field + ".required"
		}
	}
	if len(e.Name) > 50 {
		fields["name"] = "events.name.too_long"
	}
	if len(e.Edition) > 10 {
		fields["edition"] = "events.edition.too_long"
	}
	if len(e.Description) > 2000 {
		fields["description"] = "events.description.too_long"
	}
	if e.Stocking < 0 {
		fields["stocking"] = "events.stocking.negative"
	}
	if e.Workload < 0 {
		fields["workload"] = "events.workload.negative"
	}
	if e.StartDate.IsZero() {
		fields["start_date"] = "events.start_date.required"
	}
	if e.EndDate.IsZero() {
		fields["end_date"] = "events.end_date.required"
	}
	if e.EnrollmentDeadline.IsZero() {
		fields["enrollment_deadline"] = "events.enrollment_deadline.required"
	}
	if !e.StartDate.IsZero() && !e.EndDate.IsZero() && e.EndDate.Before(e.StartDate) {
		fields["end_date"] = "events.end_date.before_start"
	}
	if len(fields) > 0 {
		return &domain.ValidationFailed{Fields: fields}
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.OwnerID == "" {
		return fmt.Errorf("event owner is required")
	}
	if vf := validateEvent(event); vf != nil {
		return vf
	}

	event.Slug = slugify(event.Name + " " + event.Edition)
	if _, err := s.eventRepo.GetBySlug(ctx, event.Slug); err == nil {
		return domain.NewValidationFailed("name", "events.slug.taken")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check slug: %w", err)
	}

	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) UpdateEvent(ctx context.Context, event *domain.Event, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	current, err := s.eventRepo.GetByID(ctx, event.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if current.OwnerID != actorID {
		return domain.ErrForbidden
	}
	if vf := validateEvent(event); vf != nil {
		return vf
	}

	// Slug and ownership are stable once assigned.
	event.Slug = current.Slug
	event.OwnerID = current.OwnerID
	event.CreatedAt = current.CreatedAt
	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListPublicEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.ListPublic(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list public events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) ListUpcomingEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListUpcoming(ctx, upcomingEventsLimit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != actorID {
		return domain.ErrForbidden
	}

	schedules, err := s.eventRepo.CountSchedules(ctx, eventID)
	if err != nil {
		return fmt.Errorf("count schedules: %w", err)
	}
	enrollments, err := s.eventRepo.CountEnrollments(ctx, eventID)
	if err != nil {
		return fmt.Errorf("count enrollments: %w", err)
	}
	if schedules > 0 || enrollments > 0 {
		return domain.ErrEventInUse
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
