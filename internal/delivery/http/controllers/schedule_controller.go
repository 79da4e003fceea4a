package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"confprogram/internal/delivery/http/helpers"
	"confprogram/internal/delivery/http/middleware"
	"confprogram/internal/domain"
)

// ProgramResponse is the data payload for GET /events/{slug}/schedules (200).
// Slots arrive ordered by day, then time.
type ProgramResponse struct {
	Event EventResponse          `json:"event"`
	Slots []*domain.ScheduleSlot `json:"slots"`
}

// ProgramSuccessResponse is the success response envelope for GET /events/{slug}/schedules (200).
type ProgramSuccessResponse struct {
	Data  ProgramResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EditSlotRequest is the request body for PUT /schedules/{slotID}. Time is
// a strict 24-hour "HH:MM" string, day an ISO date.
type EditSlotRequest struct {
	Day    string  `json:"day"`
	Time   string  `json:"time"`
	TalkID *string `json:"talk_id"`
}

// Validate implements Validator.
func (e EditSlotRequest) Validate() []string {
	var errs []string
	if e.Day == "" {
		errs = append(errs, "day is required")
	}
	if e.Time == "" {
		errs = append(errs, "time is required")
	}
	return errs
}

// SaveSlotSuccessResponse is the success response envelope for PUT /schedules/{slotID} (200).
// Data contains the save outcome.
type SaveSlotSuccessResponse struct {
	Data  domain.Outcome    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SeedProgramSuccessResponse is the success response envelope for POST /events/{slug}/schedules/seed (201).
type SeedProgramSuccessResponse struct {
	Data  []*domain.ScheduleSlot `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// DeleteSlotResponse is the data payload for DELETE /schedules/{slotID} (200).
type DeleteSlotResponse struct {
	Status string `json:"status"`
}

// ScheduleController handles the event program endpoints. Slot edits go
// through the persistence dispatcher so a rejected edit comes back as a
// form re-render outcome with the submitted values intact.
type ScheduleController struct {
	Logger     *slog.Logger
	Service    domain.ScheduleService
	Events     domain.EventService
	Dispatcher domain.PersistenceDispatcher
}

func NewScheduleController(logger *slog.Logger, svc domain.ScheduleService, events domain.EventService, dispatcher domain.PersistenceDispatcher) *ScheduleController {
	return &ScheduleController{
		Logger:     logger,
		Service:    svc,
		Events:     events,
		Dispatcher: dispatcher,
	}
}

// ListProgram godoc
// @Summary Get the program of an event
// @Description Returns the event and its schedule slots ordered by day and time.
// @Tags schedules
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.ProgramSuccessResponse "data contains the event and its slots"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/schedules [get]
func (c *ScheduleController) ListProgram(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	event, err := c.Events.GetEventBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	slots, err := c.Service.ListSlots(r.Context(), event.ID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ProgramResponse{Event: NewEventResponse(event), Slots: slots})
}

// EditSlot godoc
// @Summary Edit a schedule slot
// @Description Atomically replaces a slot's day, time, and talk. The edit is validated against the event dates, the slot kind, and the rest of the program; a rejected edit changes nothing and the result carries the submitted values and per-field errors.
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID"
// @Param body body EditSlotRequest true "New slot position"
// @Success 200 {object} controllers.SaveSlotSuccessResponse "data contains the redirect outcome"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} controllers.SaveSlotSuccessResponse "data contains the form re-render outcome"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedules/{slotID} [put]
func (c *ScheduleController) EditSlot(w http.ResponseWriter, r *http.Request) {
	slotID := r.PathValue("slotID")
	if slotID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slotID")
		return
	}
	var req EditSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	edit := domain.ScheduleEditRequest{
		SlotID:  slotID,
		Day:     req.Day,
		TimeRaw: req.Time,
		TalkID:  req.TalkID,
	}
	outcome, err := c.Dispatcher.Save(r.Context(), domain.KindSchedules, &edit, domain.ActorSet{ActorID: userID}, domain.SaveOptions{Owner: false})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "slot not found")
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

// SeedProgram godoc
// @Summary Seed the program of an event
// @Description Creates the opening and break placeholder slots for an event whose program is still empty. Only the event owner can seed.
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 201 {object} controllers.SeedProgramSuccessResponse "data contains the created slots"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (program already has slots)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/schedules/seed [post]
func (c *ScheduleController) SeedProgram(w http.ResponseWriter, r *http.Request) {
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
	event, err := c.Events.GetEventBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	slots, err := c.Service.SeedProgram(r.Context(), event.ID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "program already has slots")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, slots)
}

// RemoveSlot godoc
// @Summary Remove a schedule slot
// @Description Removes a slot from the program. Only the event owner can remove.
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedules/{slotID} [delete]
func (c *ScheduleController) RemoveSlot(w http.ResponseWriter, r *http.Request) {
	slotID := r.PathValue("slotID")
	if slotID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slotID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.RemoveSlot(r.Context(), slotID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "slot not found")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteSlotResponse{Status: "removed"})
}
