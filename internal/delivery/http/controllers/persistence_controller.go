package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"confprogram/internal/delivery/http/helpers"
	"confprogram/internal/delivery/http/middleware"
	"confprogram/internal/domain"
)

// SaveRequest is the request body for POST /persistence/save. Type selects
// the registered persister, object is the raw payload for that type, and
// owner selects create (true) or update (false).
type SaveRequest struct {
	Type   string          `json:"type"`
	Object json.RawMessage `json:"object"`
	Owner  bool            `json:"owner"`
}

// Validate implements Validator.
func (s SaveRequest) Validate() []string {
	var errs []string
	if s.Type == "" {
		errs = append(errs, "type is required")
	}
	if len(s.Object) == 0 {
		errs = append(errs, "object is required")
	}
	return errs
}

// SaveSuccessResponse is the success response envelope for POST /persistence/save.
// Data contains the save outcome.
type SaveSuccessResponse struct {
	Data  domain.Outcome    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PersistenceController exposes the generic save path: one endpoint that
// persists any registered domain type and reports a uniform outcome.
type PersistenceController struct {
	Logger     *slog.Logger
	Dispatcher domain.PersistenceDispatcher
}

func NewPersistenceController(logger *slog.Logger, dispatcher domain.PersistenceDispatcher) *PersistenceController {
	return &PersistenceController{
		Logger:     logger,
		Dispatcher: dispatcher,
	}
}

// Save godoc
// @Summary Save a domain object
// @Description Dispatches a create or update to the persister registered for the object type. On success the outcome carries a redirect location and a notice key; on validation failure it carries the submitted values and per-field errors for the form re-render.
// @Tags persistence
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SaveRequest true "Object type, payload, and owner flag"
// @Success 200 {object} controllers.SaveSuccessResponse "data contains the update outcome"
// @Success 201 {object} controllers.SaveSuccessResponse "data contains the create outcome"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} controllers.SaveSuccessResponse "data contains the form re-render outcome"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /persistence/save [post]
func (c *PersistenceController) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	kind := domain.EntityKind(req.Type)
	object, err := c.Dispatcher.Decode(kind, req.Object)
	if err != nil {
		if errors.Is(err, domain.ErrPersisterNotRegistered) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
			return
		}
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	outcome, err := c.Dispatcher.Save(r.Context(), kind, object, domain.ActorSet{ActorID: userID}, domain.SaveOptions{Owner: req.Owner})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
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
	status := http.StatusOK
	if req.Owner {
		status = http.StatusCreated
	}
	helpers.WriteJSONOutcome(w, status, outcome)
}
