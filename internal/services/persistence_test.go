package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"confprogram/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubPersister returns canned results for dispatcher routing tests.
type stubPersister struct {
	saved      domain.Saved
	createErr  error
	updateErr  error
	createObj  any
	updateObj  any
	createCall int
	updateCall int
}

func (s *stubPersister) Create(ctx context.Context, object any, actors domain.ActorSet) (domain.Saved, error) {
	s.createCall++
	s.createObj = object
	return s.saved, s.createErr
}

func (s *stubPersister) Update(ctx context.Context, object any, actors domain.ActorSet) (domain.Saved, error) {
	s.updateCall++
	s.updateObj = object
	return s.saved, s.updateErr
}

func TestDispatcher_Save_create_redirects(t *testing.T) {
	d := NewDispatcher(testLogger())
	p := &stubPersister{saved: domain.Saved{Slug: "my-talk"}}
	d.Register(domain.KindTalks, decodeInto[domain.Talk], p)

	outcome, err := d.Save(context.Background(), domain.KindTalks, &domain.Talk{}, domain.ActorSet{ActorID: "u-1"}, domain.SaveOptions{Owner: true})
	require.NoError(t, err)
	assert.True(t, outcome.Redirect)
	assert.Equal(t, "/talks/my-talk", outcome.Location)
	assert.Equal(t, "talks.create.notice", outcome.NoticeKey)
	assert.Equal(t, 1, p.createCall)
	assert.Equal(t, 0, p.updateCall, "exactly one operation per save")
}

func TestDispatcher_Save_update_redirects(t *testing.T) {
	d := NewDispatcher(testLogger())
	p := &stubPersister{saved: domain.Saved{Slug: "gophercon-2026"}}
	d.Register(domain.KindEvents, decodeInto[domain.Event], p)

	outcome, err := d.Save(context.Background(), domain.KindEvents, &domain.Event{}, domain.ActorSet{ActorID: "u-1"}, domain.SaveOptions{Owner: false})
	require.NoError(t, err)
	assert.True(t, outcome.Redirect)
	assert.Equal(t, "/events/gophercon-2026", outcome.Location)
	assert.Equal(t, "events.update.notice", outcome.NoticeKey)
	assert.Equal(t, 0, p.createCall)
	assert.Equal(t, 1, p.updateCall)
}

func TestDispatcher_Save_validation_renders_form(t *testing.T) {
	d := NewDispatcher(testLogger())
	p := &stubPersister{createErr: domain.NewValidationFailed("name", "events.name.required")}
	d.Register(domain.KindEvents, decodeInto[domain.Event], p)

	submitted := &domain.Event{Name: "", Edition: "2026"}
	outcome, err := d.Save(context.Background(), domain.KindEvents, submitted, domain.ActorSet{ActorID: "u-1"}, domain.SaveOptions{Owner: true})
	require.NoError(t, err, "validation failure is a rendered outcome, not an error")
	assert.False(t, outcome.Redirect)
	assert.Equal(t, domain.FormModeNew, outcome.FormMode)
	assert.Same(t, submitted, outcome.FormState, "submitted values survive for the re-render")
	assert.Equal(t, "events.name.required", outcome.FieldErrors["name"])
	assert.Empty(t, outcome.BaseError)
}

func TestDispatcher_Save_storage_failure_renders_form(t *testing.T) {
	d := NewDispatcher(testLogger())
	p := &stubPersister{updateErr: errors.New("connection reset")}
	d.Register(domain.KindEvents, decodeInto[domain.Event], p)

	submitted := &domain.Event{Name: "GopherCon"}
	outcome, err := d.Save(context.Background(), domain.KindEvents, submitted, domain.ActorSet{ActorID: "u-1"}, domain.SaveOptions{Owner: false})
	require.NoError(t, err)
	assert.False(t, outcome.Redirect)
	assert.Equal(t, domain.FormModeEdit, outcome.FormMode)
	assert.Same(t, submitted, outcome.FormState)
	assert.Equal(t, "events.update.failed", outcome.BaseError)
	assert.Empty(t, outcome.FieldErrors)
}

func TestDispatcher_Save_propagates_access_errors(t *testing.T) {
	for _, sentinel := range []error{domain.ErrForbidden, domain.ErrNotFound, domain.ErrUserNotFound} {
		d := NewDispatcher(testLogger())
		d.Register(domain.KindEvents, decodeInto[domain.Event], &stubPersister{updateErr: sentinel})

		_, err := d.Save(context.Background(), domain.KindEvents, &domain.Event{}, domain.ActorSet{}, domain.SaveOptions{})
		assert.ErrorIs(t, err, sentinel)
	}
}

func TestDispatcher_Save_unregistered_kind(t *testing.T) {
	d := NewDispatcher(testLogger())

	_, err := d.Save(context.Background(), domain.EntityKind("widgets"), struct{}{}, domain.ActorSet{}, domain.SaveOptions{})
	require.ErrorIs(t, err, domain.ErrPersisterNotRegistered)
	assert.Contains(t, err.Error(), "widgets")
}

func TestDispatcher_Decode(t *testing.T) {
	d := NewDispatcher(testLogger())
	d.Register(domain.KindTalks, decodeInto[domain.Talk], &stubPersister{})

	obj, err := d.Decode(domain.KindTalks, []byte(`{"title":"Go Generics"}`))
	require.NoError(t, err)
	talk, ok := obj.(*domain.Talk)
	require.True(t, ok)
	assert.Equal(t, "Go Generics", talk.Title)

	_, err = d.Decode(domain.KindTalks, []byte(`{not json`))
	assert.Error(t, err)

	_, err = d.Decode(domain.EntityKind("widgets"), []byte(`{}`))
	assert.ErrorIs(t, err, domain.ErrPersisterNotRegistered)
}

func TestRegisteredPersisters_end_to_end(t *testing.T) {
	events := newFakeEventRepo()
	slots := newFakeScheduleRepo()
	talks := newFakeTalkRepo()
	eventSvc := NewEventService(events, 2*time.Second)
	talkSvc := NewTalkService(talks, 2*time.Second)
	scheduleSvc := NewScheduleService(slots, events, talks, 2*time.Second, time.Second)
	userSvc := NewUserService(newFakeUserRepo(), &fakeHasher{}, &fakeIssuer{}, time.Hour, 2*time.Second)

	d := NewDispatcher(testLogger())
	RegisterPersisters(d, eventSvc, talkSvc, scheduleSvc, userSvc)
	actors := domain.ActorSet{ActorID: "owner-1"}

	// Creating a talk through the dispatcher redirects to its slug.
	talk := &domain.Talk{Title: "Profiling Go Programs"}
	outcome, err := d.Save(context.Background(), domain.KindTalks, talk, actors, domain.SaveOptions{Owner: true})
	require.NoError(t, err)
	assert.True(t, outcome.Redirect)
	assert.Equal(t, "/talks/profiling-go-programs", outcome.Location)
	assert.Equal(t, "owner-1", talk.OwnerID, "actor becomes owner on create")

	// An invalid event renders the new form with the submitted values.
	event := &domain.Event{Name: "GopherCon"}
	outcome, err = d.Save(context.Background(), domain.KindEvents, event, actors, domain.SaveOptions{Owner: true})
	require.NoError(t, err)
	assert.False(t, outcome.Redirect)
	assert.Equal(t, domain.FormModeNew, outcome.FormMode)
	assert.Same(t, event, outcome.FormState)
	assert.Equal(t, "events.edition.required", outcome.FieldErrors["edition"])

	// A schedule edit with a malformed time renders the edit form.
	valid := validEvent("owner-1")
	require.NoError(t, eventSvc.CreateEvent(context.Background(), valid))
	seeded, err := scheduleSvc.SeedProgram(context.Background(), valid.ID, "owner-1")
	require.NoError(t, err)

	edit := &domain.ScheduleEditRequest{
		SlotID:  seeded[0].ID,
		Day:     valid.StartDate.Format("2006-01-02"),
		TimeRaw: "24:00",
	}
	outcome, err = d.Save(context.Background(), domain.KindSchedules, edit, actors, domain.SaveOptions{Owner: false})
	require.NoError(t, err)
	assert.False(t, outcome.Redirect)
	assert.Equal(t, "schedules.time.invalid", outcome.FieldErrors["time"])

	// The same edit with a valid time redirects.
	edit.TimeRaw = "08:30"
	outcome, err = d.Save(context.Background(), domain.KindSchedules, edit, actors, domain.SaveOptions{Owner: false})
	require.NoError(t, err)
	assert.True(t, outcome.Redirect)
	assert.Equal(t, "/schedules/"+seeded[0].ID, outcome.Location)
	assert.Equal(t, "schedules.update.notice", outcome.NoticeKey)

	// A schedule edit by a non-owner propagates as an error.
	_, err = d.Save(context.Background(), domain.KindSchedules, edit, domain.ActorSet{ActorID: "intruder"}, domain.SaveOptions{Owner: false})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Direct schedule creation is not a thing.
	outcome, err = d.Save(context.Background(), domain.KindSchedules, edit, actors, domain.SaveOptions{Owner: true})
	require.NoError(t, err)
	assert.False(t, outcome.Redirect)
	assert.Equal(t, "schedules.create.failed", outcome.BaseError)
}
