package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"confprogram/internal/domain"
)

// RegisterPersisters populates the dispatcher with every persistable kind.
// Adding a kind here is the only integration point; an object of any other
// type cannot reach a persister.
func RegisterPersisters(d *Dispatcher, events domain.EventService, talks domain.TalkService, schedule domain.ScheduleService, users domain.UserService) {
	d.Register(domain.KindEvents, decodeInto[domain.Event], &eventPersister{events: events})
	d.Register(domain.KindTalks, decodeInto[domain.Talk], &talkPersister{talks: talks})
	d.Register(domain.KindSchedules, decodeInto[domain.ScheduleEditRequest], &schedulePersister{schedule: schedule})
	d.Register(domain.KindUsers, decodeInto[domain.User], &userPersister{users: users})
}

func decodeInto[T any](payload []byte) (any, error) {
	obj := new(T)
	if err := json.Unmarshal(payload, obj); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return obj, nil
}

type eventPersister struct {
	events domain.EventService
}

func (p *eventPersister) Create(ctx context.Context, object any, actors domain.ActorSet) (domain.Saved, error) {
	event, ok := object.(*domain.Event)
	if !ok {
		return domain.Saved{}, fmt.Errorf("event persister got %T", object)
	}
	event.OwnerID = actors.ActorID
	if err := p.events.CreateEvent(ctx, event); err != nil {
		return domain.Saved{}, err
	}
	return domain.Saved{Slug: event.Slug}, nil
}

func (p *eventPersister) Update(ctx context.Context, object any, actors domain.ActorSet) (domain.Saved, error) {
	event, ok := object.(*domain.Event)
	if !ok {
		return domain.Saved{}, fmt.Errorf("event persister got %T", object)
	}
	if err := p.events.UpdateEvent(ctx, event, actors.ActorID); err != nil {
		return domain.Saved{}, err
	}
	return domain.Saved{Slug: event.Slug}, nil
}

type talkPersister struct {
	talks domain.TalkService
}

func (p *talkPersister) Create(ctx context.Context, object any, actors domain.ActorSet) (domain.Saved, error) {
	talk, ok := object.(*domain.Talk)
	if !ok {
		return domain.Saved{}, fmt.Errorf("talk persister got %T", object)
	}
	talk.OwnerID = actors.ActorID
	if err := p.talks.CreateTalk(ctx, talk); err != nil {
		return domain.Saved{}, err
	}
	return domain.Saved{Slug: talk.Slug}, nil
}

func (p *talkPersister) Update(ctx context.Context, object any, actors domain.ActorSet) (domain.Saved, error) {
	talk, ok := object.(*domain.Talk)
	if !ok {
		return domain.Saved{}, fmt.Errorf("talk persister got %T", object)
	}
	if err := p.talks.UpdateTalk(ctx, talk, actors.ActorID); err != nil {
		return domain.Saved{}, err
	}
	return domain.Saved{Slug: talk.Slug}, nil
}

type schedulePersister struct {
	schedule domain.ScheduleService
}

func (p *schedulePersister) Create(ctx context.Context, object any, actors domain.ActorSet) (domain.Saved, error) {
	return domain.Saved{}, fmt.Errorf("schedule slots are created by seeding a program, not saved directly")
}

// scheduleFieldErrors maps each schedule edit failure to the form field that
// produced it. Values are localization keys.
var scheduleFieldErrors = []struct {
	err     error
	field   string
	message string
}{
	{domain.ErrInvalidTimeFormat, "time", "schedules.time.invalid"},
	{domain.ErrDayOutOfRange, "day", "schedules.day.out_of_range"},
	{domain.ErrSlotConflict, "time", "schedules.time.conflict"},
	{domain.ErrTalkAlreadyScheduled, "talk_id", "schedules.talk.already_scheduled"},
	{domain.ErrTalkLookupFailed, "talk_id", "schedules.talk.not_found"},
	{domain.ErrTalkRequired, "talk_id", "schedules.talk.required"},
	{domain.ErrInvalidInput, "talk_id", "schedules.talk.not_allowed"},
}

func (p *schedulePersister) Update(ctx context.Context, object any, actors domain.ActorSet) (domain.Saved, error) {
	req, ok := object.(*domain.ScheduleEditRequest)
	if !ok {
		return domain.Saved{}, fmt.Errorf("schedule persister got %T", object)
	}
	day, err := time.Parse("2006-01-02", req.Day)
	if err != nil {
		return domain.Saved{}, domain.NewValidationFailed("day", "schedules.day.invalid")
	}
	slot, err := p.schedule.ProposeEdit(ctx, req.SlotID, day, req.TimeRaw, req.TalkID, actors.ActorID)
	if err != nil {
		for _, m := range scheduleFieldErrors {
			if errors.Is(err, m.err) {
				return domain.Saved{}, domain.NewValidationFailed(m.field, m.message)
			}
		}
		return domain.Saved{}, err
	}
	return domain.Saved{Slug: slot.ID}, nil
}

type userPersister struct {
	users domain.UserService
}

func (p *userPersister) Create(ctx context.Context, object any, actors domain.ActorSet) (domain.Saved, error) {
	return domain.Saved{}, fmt.Errorf("users are created through signup, not saved directly")
}

func (p *userPersister) Update(ctx context.Context, object any, actors domain.ActorSet) (domain.Saved, error) {
	user, ok := object.(*domain.User)
	if !ok {
		return domain.Saved{}, fmt.Errorf("user persister got %T", object)
	}
	if user.ID == "" {
		user.ID = actors.ActorID
	}
	if err := p.users.Update(ctx, user, actors.ActorID); err != nil {
		return domain.Saved{}, err
	}
	return domain.Saved{Slug: user.ID}, nil
}
