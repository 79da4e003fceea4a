package domain

import (
	"context"
	"time"
)

// SlotKind is the kind of program item a slot holds.
type SlotKind string

const (
	SlotOpening SlotKind = "opening"
	SlotBreak   SlotKind = "break"
	SlotTalk    SlotKind = "talk"
)

// Valid reports whether k is one of the known slot kinds.
func (k SlotKind) Valid() bool {
	switch k {
	case SlotOpening, SlotBreak, SlotTalk:
		return true
	}
	return false
}

// ScheduleSlot is one unit of program time within an event: a day inside the
// event's date range, a start time, a kind, and for talk slots a talk
// reference. Two slots of the same event never share the same (day, time).
// swagger:model ScheduleSlot
type ScheduleSlot struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Day       time.Time `json:"day"`
	Time      TimeOfDay `json:"time"`
	Kind      SlotKind  `json:"kind"`
	TalkID    *string   `json:"talk_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewScheduleSlot returns a new ScheduleSlot. ID is set by the repository on create.
func NewScheduleSlot(eventID string, day time.Time, t TimeOfDay, kind SlotKind, talkID *string, createdAt, updatedAt time.Time) *ScheduleSlot {
	return &ScheduleSlot{
		EventID:   eventID,
		Day:       day,
		Time:      t,
		Kind:      kind,
		TalkID:    talkID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// SameStart reports whether the slot starts at the given (day, time) pair,
// the collision key for program conflicts.
func (s *ScheduleSlot) SameStart(day time.Time, t TimeOfDay) bool {
	return dateOnly(s.Day).Equal(dateOnly(day)) && s.Time.Equal(t)
}

// ScheduleRepository defines the interface for schedule slot storage.
// ListByEventID orders by (day ASC, time ASC); that ordering is the contract
// the program rendering relies on.
type ScheduleRepository interface {
	Create(ctx context.Context, slot *ScheduleSlot) error
	GetByID(ctx context.Context, id string) (*ScheduleSlot, error)
	ListByEventID(ctx context.Context, eventID string) ([]*ScheduleSlot, error)
	// Replace overwrites day, time, kind, and talk of the slot in one
	// statement.
	Replace(ctx context.Context, slot *ScheduleSlot) error
	Delete(ctx context.Context, id string) error
	DeleteByEventID(ctx context.Context, eventID string) error
}

// ScheduleEditRequest is a proposed whole-record replacement of a slot. The
// time is carried raw so its validation failure can be reported on the form
// field that produced it.
type ScheduleEditRequest struct {
	SlotID  string  `json:"slot_id"`
	Day     string  `json:"day"` // "2006-01-02"
	TimeRaw string  `json:"time"`
	TalkID  *string `json:"talk_id"`
}

// ScheduleService maintains the ordered slot set of one event and enforces
// program-wide invariants on every edit.
type ScheduleService interface {
	ListSlots(ctx context.Context, eventID string) ([]*ScheduleSlot, error)
	// ProposeEdit validates and atomically commits a whole-record slot
	// replacement. A failed validation mutates nothing.
	ProposeEdit(ctx context.Context, slotID string, day time.Time, timeRaw string, talkID *string, actorID string) (*ScheduleSlot, error)
	// SeedProgram creates the opening and break placeholder slots for an
	// event whose program has no slots yet.
	SeedProgram(ctx context.Context, eventID, actorID string) ([]*ScheduleSlot, error)
	RemoveSlot(ctx context.Context, slotID, actorID string) error
}
