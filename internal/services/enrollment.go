package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"confprogram/internal/domain"
)

type enrollmentService struct {
	enrollmentRepo domain.EnrollmentRepository
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewEnrollmentService(enrollmentRepo domain.EnrollmentRepository, eventRepo domain.EventRepository, userRepo domain.UserRepository, emailService domain.EmailService, logger *slog.Logger, timeout time.Duration) domain.EnrollmentService {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, eventID, userID string) (*domain.Enrollment, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get event: %w", err)
	}
	// Private events are invisible to everyone but their owner.
	if !event.Public && event.OwnerID != userID {
		return nil, false, domain.ErrNotFound
	}

	if existing, err := s.enrollmentRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get enrollment: %w", err)
	}

	if time.Now().After(event.EnrollmentDeadline) {
		return nil, false, domain.ErrDeadlinePassed
	}
	// Stocking 0 means unlimited places.
	if event.Stocking > 0 {
		count, err := s.enrollmentRepo.CountByEventID(ctx, eventID)
		if err != nil {
			return nil, false, fmt.Errorf("count enrollments: %w", err)
		}
		if count >= event.Stocking {
			return nil, false, domain.ErrEventFull
		}
	}

	enrollment := &domain.Enrollment{
		EventID:          eventID,
		UserID:           userID,
		ConfirmationCode: uuid.NewString(),
		CreatedAt:        time.Now(),
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, false, fmt.Errorf("create enrollment: %w", err)
	}

	// The enrollment stands even when the confirmation email fails.
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "enrollment email skipped", "event_id", eventID, "user_id", userID, "err", err)
		return enrollment, true, nil
	}
	data := &domain.EnrollmentConfirmationEmailData{
		Email:            user.Email,
		UserName:         user.Name,
		EventTitle:       event.NameEdition(),
		EventDates:       event.LongDate(),
		ConfirmationCode: enrollment.ConfirmationCode,
	}
	if err := s.emailService.SendEnrollmentConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "enrollment email failed", "event_id", eventID, "user_id", userID, "err", err)
	}
	return enrollment, true, nil
}
