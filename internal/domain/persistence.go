package domain

import "context"

// EntityKind identifies a persistable domain type in the dispatcher
// registry. The kind doubles as the pluralized name used in redirect
// locations and notice keys.
type EntityKind string

const (
	KindEvents    EntityKind = "events"
	KindTalks     EntityKind = "talks"
	KindSchedules EntityKind = "schedules"
	KindUsers     EntityKind = "users"
)

// ActorSet carries the acting users of a save operation. The actor is the
// authenticated user performing the edit.
type ActorSet struct {
	ActorID string `json:"actor_id"`
}

// Saved is what a persister reports on success: the slug (or id) used to
// build the redirect location.
type Saved struct {
	Slug string
}

// Persister validates and persists edits for one domain type. Create and
// Update own all persistence atomicity; a returned *ValidationFailed is a
// recoverable user error, anything else is a system failure.
type Persister interface {
	Create(ctx context.Context, object any, actors ActorSet) (Saved, error)
	Update(ctx context.Context, object any, actors ActorSet) (Saved, error)
}

// Form modes for re-rendering after a failed save.
const (
	FormModeNew  = "new"
	FormModeEdit = "edit"
)

// Outcome is the uniform result of a dispatched save: either a redirect with
// a notice key, or a form re-render carrying the submitted (unsaved) values
// and validation errors so the user never re-types the form.
type Outcome struct {
	Redirect    bool        `json:"redirect"`
	Location    string      `json:"location,omitempty"`
	NoticeKey   string      `json:"notice,omitempty"`
	FormMode    string      `json:"form_mode,omitempty"`
	FormState   any         `json:"form_state,omitempty"`
	FieldErrors FieldErrors `json:"errors,omitempty"`
	BaseError   string      `json:"base_error,omitempty"`
}

// SaveOptions selects the operation: Owner true means a creation by an
// owner, anything else an update.
type SaveOptions struct {
	Owner bool `json:"owner"`
}

// PersistenceDispatcher provides one uniform save path for heterogeneous
// domain objects. Save invokes exactly one persister operation (create XOR
// update) per call; the returned error is non-nil only for programming
// errors such as an unregistered kind, never for validation failures.
type PersistenceDispatcher interface {
	Save(ctx context.Context, kind EntityKind, object any, actors ActorSet, opts SaveOptions) (Outcome, error)
	// Decode turns a raw JSON payload into the registered object type for
	// kind, so transport code can stay type-agnostic.
	Decode(kind EntityKind, payload []byte) (any, error)
}
