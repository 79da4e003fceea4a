package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"confprogram/internal/delivery/http/helpers"
	"confprogram/internal/delivery/http/middleware"
	"confprogram/internal/domain"
)

// EventResponse is a domain.Event enriched with the display fields computed
// from its dates.
type EventResponse struct {
	*domain.Event
	NameEdition string `json:"name_edition"`
	LongDate    string `json:"long_date"`
}

// NewEventResponse wraps an event with its display fields.
func NewEventResponse(event *domain.Event) EventResponse {
	return EventResponse{
		Event:       event,
		NameEdition: event.NameEdition(),
		LongDate:    event.LongDate(),
	}
}

// ListEventsResponse is the data payload for GET /events (200).
type ListEventsResponse struct {
	Events     []EventResponse        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// GetEventSuccessResponse is the success response envelope for GET /events/{slug} (200).
type GetEventSuccessResponse struct {
	Data  EventResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SaveEventSuccessResponse is the success response envelope for POST /events (201)
// and PUT /events/{slug} (200). Data contains the save outcome.
type SaveEventSuccessResponse struct {
	Data  domain.Outcome    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// DeleteEventResponse is the data payload for DELETE /events/{slug} (200).
type DeleteEventResponse struct {
	Status string `json:"status"`
}

// EventController handles the event resource endpoints. Create and update go
// through the persistence dispatcher so their results carry the uniform
// redirect-or-form outcome.
type EventController struct {
	Logger     *slog.Logger
	Service    domain.EventService
	Dispatcher domain.PersistenceDispatcher
}

func NewEventController(logger *slog.Logger, svc domain.EventService, dispatcher domain.PersistenceDispatcher) *EventController {
	return &EventController{
		Logger:     logger,
		Service:    svc,
		Dispatcher: dispatcher,
	}
}

// ListEvents godoc
// @Summary List public events
// @Description Returns a paginated list of public events, most recent start date first.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains events and pagination metadata"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListPublicEvents(r.Context(), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	responses := make([]EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, NewEventResponse(event))
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Events:     responses,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ListUpcomingEvents godoc
// @Summary List upcoming public events
// @Description Returns the next public events for the home listing.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains the upcoming events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/upcoming [get]
func (c *EventController) ListUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListUpcomingEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	responses := make([]EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, NewEventResponse(event))
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, responses)
}

// GetEvent godoc
// @Summary Get an event by slug
// @Description Returns the event identified by its slug, with name_edition and long_date display fields.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	event, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, NewEventResponse(event))
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event owned by the authenticated user. The result is a save outcome: a redirect location and notice key on success, or the re-render form state with per-field errors.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body domain.Event true "Event data"
// @Success 201 {object} controllers.SaveEventSuccessResponse "data contains the redirect outcome"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 422 {object} controllers.SaveEventSuccessResponse "data contains the form re-render outcome"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var event domain.Event
	if !helpers.DecodeAndValidate(w, r, &event) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	outcome, err := c.Dispatcher.Save(r.Context(), domain.KindEvents, &event, domain.ActorSet{ActorID: userID}, domain.SaveOptions{Owner: true})
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONOutcome(w, http.StatusCreated, outcome)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Replaces event details. Only the owner can update; slug and owner are immutable. The result is a save outcome.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param event body domain.Event true "Event data"
// @Success 200 {object} controllers.SaveEventSuccessResponse "data contains the redirect outcome"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} controllers.SaveEventSuccessResponse "data contains the form re-render outcome"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	var event domain.Event
	if !helpers.DecodeAndValidate(w, r, &event) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	current, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	event.ID = current.ID
	outcome, err := c.Dispatcher.Save(r.Context(), domain.KindEvents, &event, domain.ActorSet{ActorID: userID}, domain.SaveOptions{Owner: false})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONOutcome(w, http.StatusOK, outcome)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an event without schedules or enrollments. Only the owner can delete.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (event has schedules or enrollments)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), event.ID, userID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		if errors.Is(err, domain.ErrEventInUse) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "event has schedules or enrollments")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Status: "deleted"})
}
