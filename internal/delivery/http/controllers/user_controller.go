package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"confprogram/internal/delivery/http/helpers"
	"confprogram/internal/delivery/http/middleware"
	"confprogram/internal/domain"
)

// GetMeSuccessResponse is the success response envelope for GET /users/me (200).
type GetMeSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SaveUserSuccessResponse is the success response envelope for PUT /users/me (200).
// Data contains the save outcome.
type SaveUserSuccessResponse struct {
	Data  domain.Outcome    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserController handles the authenticated user's profile endpoints.
type UserController struct {
	Logger     *slog.Logger
	Service    domain.UserService
	Dispatcher domain.PersistenceDispatcher
}

func NewUserController(logger *slog.Logger, svc domain.UserService, dispatcher domain.PersistenceDispatcher) *UserController {
	return &UserController{
		Logger:     logger,
		Service:    svc,
		Dispatcher: dispatcher,
	}
}

// GetMe godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.GetMeSuccessResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update the authenticated user's profile
// @Description Updates the profile name. Email and credentials are immutable here. The result is a save outcome.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.User true "Profile data"
// @Success 200 {object} controllers.SaveUserSuccessResponse "data contains the redirect outcome"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} controllers.SaveUserSuccessResponse "data contains the form re-render outcome"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [put]
func (c *UserController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var user domain.User
	if !helpers.DecodeAndValidate(w, r, &user) {
		return
	}
	user.ID = userID
	outcome, err := c.Dispatcher.Save(r.Context(), domain.KindUsers, &user, domain.ActorSet{ActorID: userID}, domain.SaveOptions{Owner: false})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
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
