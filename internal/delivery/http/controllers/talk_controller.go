package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"confprogram/internal/delivery/http/helpers"
	"confprogram/internal/delivery/http/middleware"
	"confprogram/internal/domain"
)

// GetTalkSuccessResponse is the success response envelope for GET /talks/{slug} (200).
type GetTalkSuccessResponse struct {
	Data  *domain.Talk      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SaveTalkSuccessResponse is the success response envelope for POST /talks (201)
// and PUT /talks/{slug} (200). Data contains the save outcome.
type SaveTalkSuccessResponse struct {
	Data  domain.Outcome    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TalkController handles the talk resource endpoints.
type TalkController struct {
	Logger     *slog.Logger
	Service    domain.TalkService
	Dispatcher domain.PersistenceDispatcher
}

func NewTalkController(logger *slog.Logger, svc domain.TalkService, dispatcher domain.PersistenceDispatcher) *TalkController {
	return &TalkController{
		Logger:     logger,
		Service:    svc,
		Dispatcher: dispatcher,
	}
}

// GetTalk godoc
// @Summary Get a talk by slug
// @Tags talks
// @Produce json
// @Param slug path string true "Talk slug"
// @Success 200 {object} controllers.GetTalkSuccessResponse "data contains the talk"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /talks/{slug} [get]
func (c *TalkController) GetTalk(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	talk, err := c.Service.GetTalkBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "talk not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, talk)
}

// CreateTalk godoc
// @Summary Create a talk
// @Description Creates a talk owned by the authenticated user. The result is a save outcome.
// @Tags talks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param talk body domain.Talk true "Talk data"
// @Success 201 {object} controllers.SaveTalkSuccessResponse "data contains the redirect outcome"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 422 {object} controllers.SaveTalkSuccessResponse "data contains the form re-render outcome"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /talks [post]
func (c *TalkController) CreateTalk(w http.ResponseWriter, r *http.Request) {
	var talk domain.Talk
	if !helpers.DecodeAndValidate(w, r, &talk) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	outcome, err := c.Dispatcher.Save(r.Context(), domain.KindTalks, &talk, domain.ActorSet{ActorID: userID}, domain.SaveOptions{Owner: true})
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONOutcome(w, http.StatusCreated, outcome)
}

// UpdateTalk godoc
// @Summary Update a talk
// @Description Replaces talk details. Only the owner can update; slug and owner are immutable. The result is a save outcome.
// @Tags talks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Talk slug"
// @Param talk body domain.Talk true "Talk data"
// @Success 200 {object} controllers.SaveTalkSuccessResponse "data contains the redirect outcome"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} controllers.SaveTalkSuccessResponse "data contains the form re-render outcome"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /talks/{slug} [put]
func (c *TalkController) UpdateTalk(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	var talk domain.Talk
	if !helpers.DecodeAndValidate(w, r, &talk) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	current, err := c.Service.GetTalkBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "talk not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	talk.ID = current.ID
	outcome, err := c.Dispatcher.Save(r.Context(), domain.KindTalks, &talk, domain.ActorSet{ActorID: userID}, domain.SaveOptions{Owner: false})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "talk not found")
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
