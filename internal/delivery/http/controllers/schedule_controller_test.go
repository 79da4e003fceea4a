package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"confprogram/internal/delivery/http/helpers"
	"confprogram/internal/delivery/http/middleware"
	"confprogram/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeScheduleService implements domain.ScheduleService for handler tests.
type fakeScheduleService struct {
	slots         []*domain.ScheduleSlot
	listErr       error
	seedSlots     []*domain.ScheduleSlot
	seedErr       error
	removeErr     error
	lastListEvent string
	lastSeedEvent string
	lastSeedActor string
	lastRemoveID  string
}

func (f *fakeScheduleService) ListSlots(ctx context.Context, eventID string) ([]*domain.ScheduleSlot, error) {
	f.lastListEvent = eventID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.slots, nil
}

func (f *fakeScheduleService) ProposeEdit(ctx context.Context, slotID string, day time.Time, timeRaw string, talkID *string, actorID string) (*domain.ScheduleSlot, error) {
	return nil, errors.New("not used in these tests")
}

func (f *fakeScheduleService) SeedProgram(ctx context.Context, eventID, actorID string) ([]*domain.ScheduleSlot, error) {
	f.lastSeedEvent = eventID
	f.lastSeedActor = actorID
	if f.seedErr != nil {
		return nil, f.seedErr
	}
	return f.seedSlots, nil
}

func (f *fakeScheduleService) RemoveSlot(ctx context.Context, slotID, actorID string) error {
	f.lastRemoveID = slotID
	return f.removeErr
}

// fakeEventService implements domain.EventService; only the lookups the
// schedule handlers need are wired.
type fakeEventService struct {
	bySlug      map[string]*domain.Event
	upcoming    []*domain.Event
	err         error
	deleteErr   error
	lastDeleted string
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error { return f.err }
func (f *fakeEventService) UpdateEvent(ctx context.Context, event *domain.Event, actorID string) error {
	return f.err
}
func (f *fakeEventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.bySlug[slug]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) ListPublicEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var out []*domain.Event
	for _, e := range f.bySlug {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeEventService) ListUpcomingEvents(ctx context.Context) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.upcoming, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, eventID, actorID string) error {
	f.lastDeleted = eventID
	return f.deleteErr
}

// fakeDispatcher implements domain.PersistenceDispatcher for handler tests.
type fakeDispatcher struct {
	outcome    domain.Outcome
	saveErr    error
	decoded    any
	decodeErr  error
	lastKind   domain.EntityKind
	lastObject any
	lastActors domain.ActorSet
	lastOpts   domain.SaveOptions
}

func (f *fakeDispatcher) Save(ctx context.Context, kind domain.EntityKind, object any, actors domain.ActorSet, opts domain.SaveOptions) (domain.Outcome, error) {
	f.lastKind = kind
	f.lastObject = object
	f.lastActors = actors
	f.lastOpts = opts
	if f.saveErr != nil {
		return domain.Outcome{}, f.saveErr
	}
	return f.outcome, nil
}

func (f *fakeDispatcher) Decode(kind domain.EntityKind, payload []byte) (any, error) {
	if f.decodeErr != nil {
		return nil, f.decodeErr
	}
	return f.decoded, nil
}

func programEvent() *domain.Event {
	return &domain.Event{
		ID:        "ev-1",
		Name:      "GopherCon",
		Edition:   "2026",
		Slug:      "gophercon-2026",
		StartDate: time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 7, 0, 0, 0, 0, time.UTC),
		Public:    true,
		OwnerID:   "user-123",
	}
}

func TestScheduleController_ListProgram(t *testing.T) {
	tests := []struct {
		name           string
		slug           string
		listErr        error
		wantStatus     int
		wantBodySubstr string
		wantSlots      int
	}{
		{
			name:       "success",
			slug:       "gophercon-2026",
			wantStatus: http.StatusOK,
			wantSlots:  2,
		},
		{
			name:           "event not found",
			slug:           "missing",
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "event not found",
		},
		{
			name:           "missing slug",
			slug:           "",
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "missing slug",
		},
		{
			name:           "service error",
			slug:           "gophercon-2026",
			listErr:        errors.New("db error"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeScheduleService{
				slots: []*domain.ScheduleSlot{
					{ID: "slot-1", EventID: "ev-1", Kind: domain.SlotOpening},
					{ID: "slot-2", EventID: "ev-1", Kind: domain.SlotBreak},
				},
				listErr: tt.listErr,
			}
			events := &fakeEventService{bySlug: map[string]*domain.Event{"gophercon-2026": programEvent()}}
			ctrl := NewScheduleController(testLogger, svc, events, &fakeDispatcher{})

			req := httptest.NewRequest(http.MethodGet, "/events/"+tt.slug+"/schedules", nil)
			req.SetPathValue("slug", tt.slug)
			rr := httptest.NewRecorder()
			ctrl.ListProgram(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error, "success response must have error nil")
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var program ProgramResponse
				require.NoError(t, json.Unmarshal(dataBytes, &program))
				assert.Equal(t, "gophercon-2026", program.Event.Slug)
				assert.Equal(t, "GopherCon - 2026", program.Event.NameEdition)
				assert.Len(t, program.Slots, tt.wantSlots)
				assert.Equal(t, "ev-1", svc.lastListEvent)
			} else {
				require.NotNil(t, envelope.Error, "error response must have error set")
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
		})
	}
}

func TestScheduleController_EditSlot(t *testing.T) {
	redirectOutcome := domain.Outcome{
		Redirect:  true,
		Location:  "/schedules/slot-1",
		NoticeKey: "schedules.update.notice",
	}
	formOutcome := domain.Outcome{
		FormMode:    domain.FormModeEdit,
		FieldErrors: domain.FieldErrors{"time": "schedules.time.invalid"},
	}

	tests := []struct {
		name           string
		body           string
		outcome        domain.Outcome
		saveErr        error
		noUserContext  bool
		wantStatus     int
		wantErrCode    string
		wantBodySubstr string
	}{
		{
			name:       "success redirect",
			body:       `{"day":"2026-10-05","time":"08:30"}`,
			outcome:    redirectOutcome,
			wantStatus: http.StatusOK,
		},
		{
			name:        "rejected edit re-renders form",
			body:        `{"day":"2026-10-05","time":"24:00"}`,
			outcome:     formOutcome,
			wantStatus:  http.StatusUnprocessableEntity,
			wantErrCode: helpers.ErrCodeValidationFailed,
		},
		{
			name:           "no user in context",
			body:           `{"day":"2026-10-05","time":"08:30"}`,
			noUserContext:  true,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "unauthorized",
		},
		{
			name:           "bad request invalid json",
			body:           `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:           "missing time",
			body:           `{"day":"2026-10-05"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "time is required",
		},
		{
			name:           "slot not found",
			body:           `{"day":"2026-10-05","time":"08:30"}`,
			saveErr:        domain.ErrNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "slot not found",
		},
		{
			name:           "not the owner",
			body:           `{"day":"2026-10-05","time":"08:30"}`,
			saveErr:        domain.ErrForbidden,
			wantStatus:     http.StatusForbidden,
			wantBodySubstr: "forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := &fakeDispatcher{outcome: tt.outcome, saveErr: tt.saveErr}
			ctrl := NewScheduleController(testLogger, &fakeScheduleService{}, &fakeEventService{}, dispatcher)

			req := httptest.NewRequest(http.MethodPut, "/schedules/slot-1", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("slotID", "slot-1")
			if !tt.noUserContext {
				req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			}
			rr := httptest.NewRecorder()
			ctrl.EditSlot(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			switch tt.wantStatus {
			case http.StatusOK:
				require.Nil(t, envelope.Error, "success response must have error nil")
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var outcome domain.Outcome
				require.NoError(t, json.Unmarshal(dataBytes, &outcome))
				assert.True(t, outcome.Redirect)
				assert.Equal(t, "/schedules/slot-1", outcome.Location)
				edit, ok := dispatcher.lastObject.(*domain.ScheduleEditRequest)
				require.True(t, ok, "dispatcher must receive a schedule edit")
				assert.Equal(t, "slot-1", edit.SlotID)
				assert.Equal(t, "08:30", edit.TimeRaw)
				assert.Equal(t, "user-123", dispatcher.lastActors.ActorID)
				assert.False(t, dispatcher.lastOpts.Owner)
			case http.StatusUnprocessableEntity:
				require.NotNil(t, envelope.Error, "form re-render carries a validation error")
				assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var outcome domain.Outcome
				require.NoError(t, json.Unmarshal(dataBytes, &outcome))
				assert.False(t, outcome.Redirect)
				assert.Equal(t, "schedules.time.invalid", outcome.FieldErrors["time"])
			default:
				require.NotNil(t, envelope.Error, "error response must have error set")
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
		})
	}
}

func TestScheduleController_SeedProgram(t *testing.T) {
	tests := []struct {
		name           string
		slug           string
		seedErr        error
		noUserContext  bool
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			slug:       "gophercon-2026",
			wantStatus: http.StatusCreated,
		},
		{
			name:           "no user in context",
			slug:           "gophercon-2026",
			noUserContext:  true,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "unauthorized",
		},
		{
			name:           "event not found",
			slug:           "missing",
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "event not found",
		},
		{
			name:           "program already seeded",
			slug:           "gophercon-2026",
			seedErr:        domain.ErrInvalidInput,
			wantStatus:     http.StatusConflict,
			wantBodySubstr: "program already has slots",
		},
		{
			name:           "not the owner",
			slug:           "gophercon-2026",
			seedErr:        domain.ErrForbidden,
			wantStatus:     http.StatusForbidden,
			wantBodySubstr: "forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeScheduleService{
				seedSlots: []*domain.ScheduleSlot{
					{ID: "slot-1", Kind: domain.SlotOpening},
					{ID: "slot-2", Kind: domain.SlotBreak},
				},
				seedErr: tt.seedErr,
			}
			events := &fakeEventService{bySlug: map[string]*domain.Event{"gophercon-2026": programEvent()}}
			ctrl := NewScheduleController(testLogger, svc, events, &fakeDispatcher{})

			req := httptest.NewRequest(http.MethodPost, "/events/"+tt.slug+"/schedules/seed", nil)
			req.SetPathValue("slug", tt.slug)
			if !tt.noUserContext {
				req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			}
			rr := httptest.NewRecorder()
			ctrl.SeedProgram(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error, "success response must have error nil")
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var slots []*domain.ScheduleSlot
				require.NoError(t, json.Unmarshal(dataBytes, &slots))
				require.Len(t, slots, 2)
				assert.Equal(t, "ev-1", svc.lastSeedEvent)
				assert.Equal(t, "user-123", svc.lastSeedActor)
			} else {
				require.NotNil(t, envelope.Error, "error response must have error set")
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
		})
	}
}

func TestScheduleController_RemoveSlot(t *testing.T) {
	tests := []struct {
		name           string
		removeErr      error
		noUserContext  bool
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			wantStatus: http.StatusOK,
		},
		{
			name:           "no user in context",
			noUserContext:  true,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "unauthorized",
		},
		{
			name:           "slot not found",
			removeErr:      domain.ErrNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "slot not found",
		},
		{
			name:           "not the owner",
			removeErr:      domain.ErrForbidden,
			wantStatus:     http.StatusForbidden,
			wantBodySubstr: "forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeScheduleService{removeErr: tt.removeErr}
			ctrl := NewScheduleController(testLogger, svc, &fakeEventService{}, &fakeDispatcher{})

			req := httptest.NewRequest(http.MethodDelete, "/schedules/slot-1", nil)
			req.SetPathValue("slotID", "slot-1")
			if !tt.noUserContext {
				req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			}
			rr := httptest.NewRecorder()
			ctrl.RemoveSlot(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error, "success response must have error nil")
				assert.Equal(t, "slot-1", svc.lastRemoveID)
			} else {
				require.NotNil(t, envelope.Error, "error response must have error set")
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
		})
	}
}
