package domain

import (
	"context"
	"time"
)

// Enrollment represents a user's enrollment in an event.
// swagger:model Enrollment
type Enrollment struct {
	ID               string    `json:"id"`
	EventID          string    `json:"event_id"`
	UserID           string    `json:"user_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	CreatedAt        time.Time `json:"created_at"`
}

// EnrollmentRepository defines storage operations for enrollments.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *Enrollment) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Enrollment, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
}

// EnrollmentService defines the enrollment workflow: deadline and capacity
// checks, idempotent re-enrollment, and a confirmation email.
type EnrollmentService interface {
	// Enroll enrolls the user in the event. created is false when the user
	// was already enrolled.
	Enroll(ctx context.Context, eventID, userID string) (enrollment *Enrollment, created bool, err error)
}
