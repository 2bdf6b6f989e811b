package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// SaveProfileRequest is the request body for POST /profile. All fields
// optional; omitted fields are unchanged.
type SaveProfileRequest struct {
	DisplayName  *string `json:"display_name"`
	TeeShirtSize *string `json:"tee_shirt_size"`
}

// Validate implements Validator. The t-shirt size must be a known symbolic name.
func (s SaveProfileRequest) Validate() []string {
	var errs []string
	if s.TeeShirtSize != nil {
		if _, err := domain.ParseTeeShirtSize(*s.TeeShirtSize); err != nil {
			errs = append(errs, "tee_shirt_size is not a valid size")
		}
	}
	return errs
}

func (s SaveProfileRequest) toDomain() domain.ProfileUpdate {
	upd := domain.ProfileUpdate{DisplayName: s.DisplayName}
	if s.TeeShirtSize != nil {
		size, _ := domain.ParseTeeShirtSize(*s.TeeShirtSize)
		upd.TeeShirtSize = &size
	}
	return upd
}

// ProfileSuccessResponse is the success response envelope for profile endpoints (200).
type ProfileSuccessResponse struct {
	Data  *domain.Profile   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ProfileController struct {
	Logger  *slog.Logger
	Service domain.ProfileService
}

func NewProfileController(logger *slog.Logger, svc domain.ProfileService) *ProfileController {
	return &ProfileController{
		Logger:  logger,
		Service: svc,
	}
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Description Returns the authenticated user's profile, creating a default one on first access.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ProfileSuccessResponse "data contains the profile"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [get]
func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	prof, err := c.Service.GetOrCreate(r.Context(), ident.UserID, ident.Email)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, prof)
}

// SaveProfile godoc
// @Summary Update the caller's profile
// @Description Partially update the profile; omitted fields are unchanged. Creates the profile first if it does not exist.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body SaveProfileRequest true "Fields to update"
// @Success 200 {object} controllers.ProfileSuccessResponse "data contains the saved profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [post]
func (c *ProfileController) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req SaveProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	prof, err := c.Service.Save(r.Context(), ident.UserID, ident.Email, req.toDomain())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, prof)
}

// AddToWishlist godoc
// @Summary Add a session to the caller's wishlist
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param websafeSessionKey path string true "Session key (UUID)"
// @Success 201 {object} controllers.CreateSessionSuccessResponse "data contains the wishlisted session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile/wishlist/{websafeSessionKey} [post]
func (c *ProfileController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("websafeSessionKey")
	if key == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeSessionKey")
		return
	}
	if err := uuid.Validate(key); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid websafeSessionKey")
		return
	}
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sess, err := c.Service.AddSessionToWishlist(r.Context(), ident.UserID, ident.Email, key)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "session not found")
		case errors.Is(err, domain.ErrAlreadyInWishlist):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "session already in wishlist")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, newSessionForm(sess))
}

// ListWishlist godoc
// @Summary List the sessions on the caller's wishlist
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListSessionsSuccessResponse "data contains the wishlisted sessions"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile/wishlist [get]
func (c *ProfileController) ListWishlist(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sessions, err := c.Service.ListWishlistSessions(r.Context(), ident.UserID, ident.Email)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newSessionForms(sessions))
}
