package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"confprogram/internal/delivery/http/helpers"
	"confprogram/internal/delivery/http/middleware"
	"confprogram/internal/domain"
)

// EnrollSuccessResponse is the success response envelope for POST /events/{slug}/enrollments.
// 201 when the enrollment was created, 200 when the user was already enrolled.
type EnrollSuccessResponse struct {
	Data  *domain.Enrollment `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// EnrollmentController handles attendee enrollment endpoints.
type EnrollmentController struct {
	Logger  *slog.Logger
	Service domain.EnrollmentService
	Events  domain.EventService
}

func NewEnrollmentController(logger *slog.Logger, svc domain.EnrollmentService, events domain.EventService) *EnrollmentController {
	return &EnrollmentController{
		Logger:  logger,
		Service: svc,
		Events:  events,
	}
}

// Enroll godoc
// @Summary Enroll in an event
// @Description Enrolls the authenticated user in the event. Enrolling twice is idempotent and returns the existing enrollment. A confirmation email is sent on first enrollment.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EnrollSuccessResponse "data contains the existing enrollment"
// @Success 201 {object} controllers.EnrollSuccessResponse "data contains the new enrollment"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (deadline passed or event full)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/enrollments [post]
func (c *EnrollmentController) Enroll(w http.ResponseWriter, r *http.Request) {
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
	enrollment, created, err := c.Service.Enroll(r.Context(), event.ID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrDeadlinePassed) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "enrollment deadline has passed")
			return
		}
		if errors.Is(err, domain.ErrEventFull) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "event is fully booked")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, enrollment)
}
