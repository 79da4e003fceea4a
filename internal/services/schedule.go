package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"confprogram/internal/domain"
)

type scheduleService struct {
	scheduleRepo      domain.ScheduleRepository
	eventRepo         domain.EventRepository
	talkRepo          domain.TalkRepository
	contextTimeout    time.Duration
	talkLookupTimeout time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex // eventID -> edit lock
}

// NewScheduleService returns the schedule engine for slot listing, seeding,
// and validated atomic edits. talkLookupTimeout bounds the external talk
// lookup during edit validation.
func NewScheduleService(scheduleRepo domain.ScheduleRepository, eventRepo domain.EventRepository, talkRepo domain.TalkRepository, timeout, talkLookupTimeout time.Duration) domain.ScheduleService {
	return &scheduleService{
		scheduleRepo:      scheduleRepo,
		eventRepo:         eventRepo,
		talkRepo:          talkRepo,
		contextTimeout:    timeout,
		talkLookupTimeout: talkLookupTimeout,
		locks:             make(map[string]*sync.Mutex),
	}
}

// eventLock returns the edit lock for one event. Slot edits to the same
// event are serialized so the conflict check never races another writer;
// edits to different events proceed in parallel.
func (s *scheduleService) eventLock(eventID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[eventID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[eventID] = l
	}
	return l
}

func (s *scheduleService) ListSlots(ctx context.Context, eventID string) ([]*domain.ScheduleSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	slots, err := s.scheduleRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	if slots == nil {
		slots = []*domain.ScheduleSlot{}
	}
	return slots, nil
}

func (s *scheduleService) ProposeEdit(ctx context.Context, slotID string, day time.Time, timeRaw string, talkID *string, actorID string) (*domain.ScheduleSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Time parsing first: a malformed time fails before anything is read.
	slotTime, err := domain.ParseTimeOfDay(timeRaw)
	if err != nil {
		return nil, err
	}

	slot, err := s.scheduleRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get slot: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, slot.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != actorID {
		return nil, domain.ErrForbidden
	}

	if !event.ContainsDay(day) {
		return nil, domain.ErrDayOutOfRange
	}
	if slot.Kind == domain.SlotTalk && talkID == nil {
		return nil, domain.ErrTalkRequired
	}
	if slot.Kind != domain.SlotTalk && talkID != nil {
		return nil, domain.ErrInvalidInput
	}
	if talkID != nil {
		if err := s.lookupTalk(ctx, *talkID); err != nil {
			return nil, err
		}
	}

	// The conflict check reads the full slot set and must not race a
	// concurrent writer inserting a colliding slot between read and write.
	lock := s.eventLock(event.ID)
	lock.Lock()
	defer lock.Unlock()

	others, err := s.scheduleRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	for _, other := range others {
		if other.ID == slot.ID {
			continue // a slot never conflicts with itself
		}
		if talkID != nil && other.TalkID != nil && *other.TalkID == *talkID {
			return nil, domain.ErrTalkAlreadyScheduled
		}
		if other.SameStart(day, slotTime) {
			return nil, domain.ErrSlotConflict
		}
	}

	// Whole-record replace: build the candidate and commit it in one
	// statement. The fetched slot is left untouched until Replace succeeds.
	updated := *slot
	updated.Day = day
	updated.Time = slotTime
	updated.TalkID = talkID
	updated.UpdatedAt = time.Now()
	if err := s.scheduleRepo.Replace(ctx, &updated); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("replace slot: %w", err)
	}
	return &updated, nil
}

// lookupTalk resolves the talk reference with its own deadline. A timeout or
// transport failure is reported as ErrTalkLookupFailed, a recoverable
// validation failure on the talk field, never a crash.
func (s *scheduleService) lookupTalk(ctx context.Context, talkID string) error {
	lctx, cancel := context.WithTimeout(ctx, s.talkLookupTimeout)
	defer cancel()
	if _, err := s.talkRepo.GetByID(lctx, talkID); err != nil {
		return domain.ErrTalkLookupFailed
	}
	return nil
}

// Placeholder times used when a program is first drafted.
var seedSlots = []struct {
	kind domain.SlotKind
	at   string
}{
	{domain.SlotOpening, "08:00"},
	{domain.SlotBreak, "12:00"},
}

func (s *scheduleService) SeedProgram(ctx context.Context, eventID, actorID string) ([]*domain.ScheduleSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != actorID {
		return nil, domain.ErrForbidden
	}

	lock := s.eventLock(event.ID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.scheduleRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	if len(existing) > 0 {
		return nil, domain.ErrInvalidInput
	}

	created := make([]*domain.ScheduleSlot, 0, len(seedSlots))
	for _, seed := range seedSlots {
		at, err := domain.ParseTimeOfDay(seed.at)
		if err != nil {
			return nil, fmt.Errorf("parse seed time: %w", err)
		}
		now := time.Now()
		slot := domain.NewScheduleSlot(eventID, event.StartDate, at, seed.kind, nil, now, now)
		if err := s.scheduleRepo.Create(ctx, slot); err != nil {
			return nil, fmt.Errorf("create %s slot: %w", seed.kind, err)
		}
		created = append(created, slot)
	}
	return created, nil
}

func (s *scheduleService) RemoveSlot(ctx context.Context, slotID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slot, err := s.scheduleRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get slot: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, slot.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != actorID {
		return domain.ErrForbidden
	}
	if err := s.scheduleRepo.Delete(ctx, slotID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}
