package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"confprogram/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID        map[string]*domain.Event
	nextID      int
	schedules   map[string]int
	enrollments map[string]int
	err         error // if set, every method returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:        make(map[string]*domain.Event),
		nextID:      1,
		schedules:   make(map[string]int),
		enrollments: make(map[string]int),
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.byID {
		if e.Slug == slug {
			copied := *e
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListPublic(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var out []*domain.Event
	for _, e := range f.byID {
		if e.Public {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) ListUpcoming(ctx context.Context, limit int) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for _, e := range f.byID {
		if e.Public && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) CountSchedules(ctx context.Context, eventID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.schedules[eventID], nil
}

func (f *fakeEventRepo) CountEnrollments(ctx context.Context, eventID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.enrollments[eventID], nil
}

func validEvent(owner string) *domain.Event {
	return &domain.Event{
		Name:               "GopherCon",
		Edition:            "2026",
		Description:        "Three days of Go",
		Tags:               "go,conference",
		StartDate:          time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2026, 10, 7, 0, 0, 0, 0, time.UTC),
		EnrollmentDeadline: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Public:             true,
		Place:              "Convention Center",
		Street:             "Main St 100",
		District:           "Downtown",
		City:               "Denver",
		State:              "CO",
		Country:            "USA",
		Workload:           24,
		OwnerID:            owner,
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, 2*time.Second)

	event := validEvent("user-1")
	err := svc.CreateEvent(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, "gophercon-2026", event.Slug)
	assert.NotEmpty(t, event.ID)
}

func TestEventService_CreateEvent_missing_fields(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, 2*time.Second)

	event := validEvent("user-1")
	event.Name = ""
	event.City = ""

	err := svc.CreateEvent(context.Background(), event)
	var vf *domain.ValidationFailed
	require.ErrorAs(t, err, &vf)
	assert.Equal(t, "events.name.required", vf.Fields["name"])
	assert.Equal(t, "events.city.required", vf.Fields["city"])
	assert.Empty(t, repo.byID, "nothing persisted on validation failure")
}

func TestEventService_CreateEvent_end_before_start(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, 2*time.Second)

	event := validEvent("user-1")
	event.EndDate = event.StartDate.AddDate(0, 0, -1)

	err := svc.CreateEvent(context.Background(), event)
	var vf *domain.ValidationFailed
	require.ErrorAs(t, err, &vf)
	assert.Equal(t, "events.end_date.before_start", vf.Fields["end_date"])
}

func TestEventService_CreateEvent_duplicate_slug(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, 2*time.Second)

	require.NoError(t, svc.CreateEvent(context.Background(), validEvent("user-1")))

	err := svc.CreateEvent(context.Background(), validEvent("user-2"))
	var vf *domain.ValidationFailed
	require.ErrorAs(t, err, &vf)
	assert.Equal(t, "events.slug.taken", vf.Fields["name"])
}

func TestEventService_UpdateEvent(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, 2*time.Second)

	event := validEvent("user-1")
	require.NoError(t, svc.CreateEvent(context.Background(), event))
	originalSlug := event.Slug

	updated := validEvent("user-1")
	updated.ID = event.ID
	updated.Name = "GopherCon Rocky Mountain"

	require.NoError(t, svc.UpdateEvent(context.Background(), updated, "user-1"))
	assert.Equal(t, originalSlug, updated.Slug, "slug is stable after create")

	stored, err := svc.GetEventByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, "GopherCon Rocky Mountain", stored.Name)
}

func TestEventService_UpdateEvent_not_owner(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, 2*time.Second)

	event := validEvent("user-1")
	require.NoError(t, svc.CreateEvent(context.Background(), event))

	updated := validEvent("user-1")
	updated.ID = event.ID
	err := svc.UpdateEvent(context.Background(), updated, "someone-else")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEventService_DeleteEvent(t *testing.T) {
	tests := []struct {
		name        string
		actorID     string
		schedules   int
		enrollments int
		wantErr     error
	}{
		{"deletes empty event", "user-1", 0, 0, nil},
		{"not owner", "intruder", 0, 0, domain.ErrForbidden},
		{"event with schedules", "user-1", 2, 0, domain.ErrEventInUse},
		{"event with enrollments", "user-1", 0, 5, domain.ErrEventInUse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeEventRepo()
			svc := NewEventService(repo, 2*time.Second)
			event := validEvent("user-1")
			require.NoError(t, svc.CreateEvent(context.Background(), event))
			repo.schedules[event.ID] = tt.schedules
			repo.enrollments[event.ID] = tt.enrollments

			err := svc.DeleteEvent(context.Background(), event.ID, tt.actorID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, repo.byID, event.ID, "event not deleted")
				return
			}
			require.NoError(t, err)
			assert.NotContains(t, repo.byID, event.ID)
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"GopherCon 2026", "gophercon-2026"},
		{"  spaces   everywhere  ", "spaces-everywhere"},
		{"Olá, Mundo!", "ol-mundo"},
		{"already-slugged", "already-slugged"},
		{"UPPER_case.mix", "upper-case-mix"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in), tt.in)
	}
}
