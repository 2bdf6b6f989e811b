package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// RegistrationResult reports the outcome of a registration state change.
// Changed is false when unregistering a user who was not registered.
type RegistrationResult struct {
	Changed bool `json:"changed"`
}

// RegistrationSuccessResponse is the success response envelope for registration endpoints (200).
type RegistrationSuccessResponse struct {
	Data  RegistrationResult `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register for a conference
// @Description Registers the authenticated user and takes one seat. Fails with 409 when already registered or sold out.
// @Tags registration
// @Produce json
// @Security BearerAuth
// @Param websafeConferenceKey path string true "Conference key (UUID)"
// @Success 200 {object} controllers.RegistrationSuccessResponse "data.changed is true"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conference/{websafeConferenceKey}/registration [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	key, ok := conferenceKey(w, r)
	if !ok {
		return
	}
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	changed, err := c.Service.Register(r.Context(), key, ident.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
		case errors.Is(err, domain.ErrAlreadyRegistered):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already registered for this conference")
		case errors.Is(err, domain.ErrNoSeatsAvailable):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RegistrationResult{Changed: changed})
}

// Unregister godoc
// @Summary Unregister from a conference
// @Description Removes the authenticated user's registration and frees the seat. Unregistering when not registered succeeds with data.changed false.
// @Tags registration
// @Produce json
// @Security BearerAuth
// @Param websafeConferenceKey path string true "Conference key (UUID)"
// @Success 200 {object} controllers.RegistrationSuccessResponse "data.changed reports whether a registration was removed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conference/{websafeConferenceKey}/registration [delete]
func (c *RegistrationController) Unregister(w http.ResponseWriter, r *http.Request) {
	key, ok := conferenceKey(w, r)
	if !ok {
		return
	}
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	changed, err := c.Service.Unregister(r.Context(), key, ident.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RegistrationResult{Changed: changed})
}
