package domain

import (
	"context"
	"fmt"
	"time"
)

// Event represents a conference event and its program metadata.
// swagger:model Event
type Event struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Edition            string    `json:"edition"`
	Slug               string    `json:"slug"`
	Description        string    `json:"description"`
	Stocking           int       `json:"stocking"`
	Tags               string    `json:"tags"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	EnrollmentDeadline time.Time `json:"enrollment_deadline"`
	Public             bool      `json:"public"`
	Place              string    `json:"place"`
	Street             string    `json:"street"`
	District           string    `json:"district"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Country            string    `json:"country"`
	Workload           int       `json:"workload"`
	RegisteredCount    int       `json:"registered_count"`
	OwnerID            string    `json:"owner_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NameEdition returns the display title "<name> - <edition>".
func (e *Event) NameEdition() string {
	return fmt.Sprintf("%s - %s", e.Name, e.Edition)
}

// ContainsDay reports whether day falls within [StartDate, EndDate],
// boundaries included. Only the calendar date is compared.
func (e *Event) ContainsDay(day time.Time) bool {
	d := dateOnly(day)
	return !d.Before(dateOnly(e.StartDate)) && !d.After(dateOnly(e.EndDate))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LongDate returns the human-readable span of the event dates. Day numbers
// are always zero-padded to two digits. The four phrasings:
//
//	single day:             "on June 06, 2012"
//	different years:        "from June 30, 2012 to July 01, 2013"
//	same month and year:    "from 05 to 06 of June 2012"
//	same year, other month: "from 30 of June to 01 of July 2012"
func (e *Event) LongDate() string {
	d1, d2 := dateOnly(e.StartDate), dateOnly(e.EndDate)
	switch {
	case d1.Equal(d2):
		return "on " + d1.Format("January 02, 2006")
	case d1.Year() != d2.Year():
		return "from " + d1.Format("January 02, 2006") + " to " + d2.Format("January 02, 2006")
	case d1.Month() == d2.Month():
		return "from " + d1.Format("02") + " to " + d2.Format("02") + " of " + d1.Format("January 2006")
	default:
		return "from " + d1.Format("02") + " of " + d1.Format("January") +
			" to " + d2.Format("02") + " of " + d2.Format("January 2006")
	}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	ListPublic(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	// ListUpcoming returns the most recent public events by start date, at most limit.
	ListUpcoming(ctx context.Context, limit int) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	// CountSchedules and CountEnrollments back the restricted-delete rule:
	// an event with schedules or enrollments cannot be destroyed.
	CountSchedules(ctx context.Context, eventID string) (int, error)
	CountEnrollments(ctx context.Context, eventID string) (int, error)
}

// EventService defines the business logic for event management.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	UpdateEvent(ctx context.Context, event *Event, actorID string) error
	GetEventByID(ctx context.Context, id string) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListPublicEvents(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	ListUpcomingEvents(ctx context.Context) ([]*Event, error)
	DeleteEvent(ctx context.Context, eventID, actorID string) error
}
