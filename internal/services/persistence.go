package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"confprogram/internal/domain"
)

// persisterEntry binds a kind to its persister and a decoder for raw JSON
// payloads arriving through the generic save endpoint.
type persisterEntry struct {
	decode    func([]byte) (any, error)
	persister domain.Persister
}

// Dispatcher routes create/update operations to the persister registered for
// a domain type and reports the result uniformly. The registry replaces the
// old resolve-by-type-name convention: every binding is explicit, populated
// at startup.
type Dispatcher struct {
	logger  *slog.Logger
	entries map[domain.EntityKind]persisterEntry
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		logger:  logger,
		entries: make(map[domain.EntityKind]persisterEntry),
	}
}

// Register binds a kind to its persister and payload decoder. Call once per
// kind during startup wiring.
func (d *Dispatcher) Register(kind domain.EntityKind, decode func([]byte) (any, error), p domain.Persister) {
	d.entries[kind] = persisterEntry{decode: decode, persister: p}
}

// Decode turns a raw JSON payload into the object type registered for kind.
func (d *Dispatcher) Decode(kind domain.EntityKind, payload []byte) (any, error) {
	entry, ok := d.entries[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPersisterNotRegistered, kind)
	}
	return entry.decode(payload)
}

// Save invokes exactly one persister operation for the object: create when
// opts.Owner is set, update otherwise. Validation failures and storage
// failures become form-render Outcomes carrying the submitted values; the
// returned error is reserved for non-recoverable conditions (unregistered
// kind, forbidden, not found) that must not be rendered as a form.
func (d *Dispatcher) Save(ctx context.Context, kind domain.EntityKind, object any, actors domain.ActorSet, opts domain.SaveOptions) (domain.Outcome, error) {
	entry, ok := d.entries[kind]
	if !ok {
		return domain.Outcome{}, fmt.Errorf("%w: %s", domain.ErrPersisterNotRegistered, kind)
	}

	operation := "update"
	formMode := domain.FormModeEdit
	call := entry.persister.Update
	if opts.Owner {
		operation = "create"
		formMode = domain.FormModeNew
		call = entry.persister.Create
	}

	saved, err := call(ctx, object, actors)
	if err == nil {
		return domain.Outcome{
			Redirect:  true,
			Location:  fmt.Sprintf("/%s/%s", kind, saved.Slug),
			NoticeKey: fmt.Sprintf("%s.%s.notice", kind, operation),
		}, nil
	}

	var vf *domain.ValidationFailed
	if errors.As(err, &vf) {
		return domain.Outcome{
			FormMode:    formMode,
			FormState:   object,
			FieldErrors: vf.Fields,
		}, nil
	}
	if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUserNotFound) {
		return domain.Outcome{}, err
	}

	// Storage failures are not retried here: the validation state may be
	// stale, so the user re-submits against fresh data.
	d.logger.ErrorContext(ctx, "save failed", "kind", kind, "operation", operation, "err", err)
	return domain.Outcome{
		FormMode:  formMode,
		FormState: object,
		BaseError: fmt.Sprintf("%s.%s.failed", kind, operation),
	}, nil
}
