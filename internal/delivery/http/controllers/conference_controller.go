package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// dateLayout is the wire format for conference dates. Longer values are
// truncated to the date part before parsing.
const dateLayout = "2006-01-02"

// parseDate parses a wire date, tolerating trailing time components.
func parseDate(s string) (time.Time, error) {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	return time.Parse(dateLayout, s)
}

// validDate reports whether s parses as a wire date. Empty is valid (absent).
func validDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := parseDate(s)
	return err == nil
}

// conferenceKey extracts and validates the websafeConferenceKey path value.
// Writes a 400 and returns false when the key is missing or not a UUID.
func conferenceKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := r.PathValue("websafeConferenceKey")
	if key == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeConferenceKey")
		return "", false
	}
	if err := uuid.Validate(key); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid websafeConferenceKey")
		return "", false
	}
	return key, true
}

// CreateConferenceRequest is the request body for POST /conference. Omitted
// city and topics receive server-side defaults.
type CreateConferenceRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Topics       []string `json:"topics"`
	City         string   `json:"city"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	MaxAttendees int      `json:"max_attendees"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateConferenceRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if !validDate(c.StartDate) {
		errs = append(errs, "start_date must be YYYY-MM-DD")
	}
	if !validDate(c.EndDate) {
		errs = append(errs, "end_date must be YYYY-MM-DD")
	}
	if c.MaxAttendees < 0 {
		errs = append(errs, "max_attendees must not be negative")
	}
	return errs
}

// toDomain maps the request to a domain conference. Dates are pre-validated.
func (c CreateConferenceRequest) toDomain() *domain.Conference {
	conf := &domain.Conference{
		Name:         c.Name,
		Description:  c.Description,
		Topics:       c.Topics,
		City:         c.City,
		MaxAttendees: c.MaxAttendees,
	}
	if c.StartDate != "" {
		d, _ := parseDate(c.StartDate)
		conf.StartDate = &d
	}
	if c.EndDate != "" {
		d, _ := parseDate(c.EndDate)
		conf.EndDate = &d
	}
	return conf
}

// CreateConferenceSuccessResponse is the success response envelope for POST /conference (201).
type CreateConferenceSuccessResponse struct {
	Data  *ConferenceForm   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ConferenceController struct {
	Logger  *slog.Logger
	Service domain.ConferenceService
}

func NewConferenceController(logger *slog.Logger, svc domain.ConferenceService) *ConferenceController {
	return &ConferenceController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateConference godoc
// @Summary Create a conference
// @Description Create a conference owned by the authenticated user. Omitted city and topics get defaults; month and seats are derived server-side. A confirmation email is sent to the creator asynchronously.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conference body CreateConferenceRequest true "Conference data"
// @Success 201 {object} controllers.CreateConferenceSuccessResponse "data contains the created conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conference [post]
func (c *ConferenceController) CreateConference(w http.ResponseWriter, r *http.Request) {
	var req CreateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	conf, err := c.Service.Create(r.Context(), ident.UserID, ident.Email, req.toDomain())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, newConferenceForm(conf))
}

// UpdateConferenceRequest is the request body for PUT /conference/{websafeConferenceKey}.
// All fields optional; omitted fields are unchanged.
type UpdateConferenceRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Topics       []string `json:"topics"`
	City         *string  `json:"city"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	MaxAttendees *int     `json:"max_attendees"`
}

// Validate implements Validator. Optional fields must still be well-formed.
func (u UpdateConferenceRequest) Validate() []string {
	var errs []string
	if u.Name != nil && *u.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	if u.StartDate != nil && !validDate(*u.StartDate) {
		errs = append(errs, "start_date must be YYYY-MM-DD")
	}
	if u.EndDate != nil && !validDate(*u.EndDate) {
		errs = append(errs, "end_date must be YYYY-MM-DD")
	}
	if u.MaxAttendees != nil && *u.MaxAttendees < 0 {
		errs = append(errs, "max_attendees must not be negative")
	}
	return errs
}

func (u UpdateConferenceRequest) toDomain() domain.ConferenceUpdate {
	upd := domain.ConferenceUpdate{
		Name:         u.Name,
		Description:  u.Description,
		Topics:       u.Topics,
		City:         u.City,
		MaxAttendees: u.MaxAttendees,
	}
	if u.StartDate != nil {
		d, _ := parseDate(*u.StartDate)
		upd.StartDate = &d
	}
	if u.EndDate != nil {
		d, _ := parseDate(*u.EndDate)
		upd.EndDate = &d
	}
	return upd
}

// UpdateConferenceSuccessResponse is the success response envelope for PUT /conference/{websafeConferenceKey} (200).
type UpdateConferenceSuccessResponse struct {
	Data  *ConferenceForm   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UpdateConference godoc
// @Summary Update a conference
// @Description Partially update a conference. Only the organizer may update; omitted fields are unchanged. Month is re-derived when start_date changes.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param websafeConferenceKey path string true "Conference key (UUID)"
// @Param conference body UpdateConferenceRequest true "Fields to update"
// @Success 200 {object} controllers.UpdateConferenceSuccessResponse "data contains the updated conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conference/{websafeConferenceKey} [put]
func (c *ConferenceController) UpdateConference(w http.ResponseWriter, r *http.Request) {
	key, ok := conferenceKey(w, r)
	if !ok {
		return
	}
	var req UpdateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	conf, err := c.Service.Update(r.Context(), key, ident.UserID, req.toDomain())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the organizer can update the conference")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newConferenceForm(conf))
}

// GetConferenceSuccessResponse is the success response envelope for GET /conference/{websafeConferenceKey} (200).
type GetConferenceSuccessResponse struct {
	Data  *ConferenceForm   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetConference godoc
// @Summary Get a conference
// @Description Returns the conference identified by its key. No authentication required.
// @Tags conferences
// @Produce json
// @Param websafeConferenceKey path string true "Conference key (UUID)"
// @Success 200 {object} controllers.GetConferenceSuccessResponse "data contains the conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conference/{websafeConferenceKey} [get]
func (c *ConferenceController) GetConference(w http.ResponseWriter, r *http.Request) {
	key, ok := conferenceKey(w, r)
	if !ok {
		return
	}
	conf, err := c.Service.GetByID(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newConferenceForm(conf))
}

// ListConferencesSuccessResponse is the success response envelope for conference list endpoints (200).
type ListConferencesSuccessResponse struct {
	Data  []*ConferenceForm `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListCreated godoc
// @Summary List conferences created by the caller
// @Description Returns all conferences organized by the authenticated user.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListConferencesSuccessResponse "data contains the caller's conferences"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/created [get]
func (c *ConferenceController) ListCreated(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	confs, err := c.Service.ListCreatedBy(r.Context(), ident.UserID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newConferenceForms(confs))
}

// QueryConferencesRequest is the request body for POST /conferences/query.
type QueryConferencesRequest struct {
	Filters []domain.ConferenceFilter `json:"filters"`
}

// QueryConferences godoc
// @Summary Query conferences by filters
// @Description Evaluates field/operator/value filter triples. At most one field may use an inequality operator; results order by that field, then name.
// @Tags conferences
// @Accept json
// @Produce json
// @Param query body QueryConferencesRequest true "Filter triples"
// @Success 200 {object} controllers.ListConferencesSuccessResponse "data contains the matching conferences"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/query [post]
func (c *ConferenceController) QueryConferences(w http.ResponseWriter, r *http.Request) {
	var req QueryConferencesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	confs, err := c.Service.Query(r.Context(), req.Filters)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newConferenceForms(confs))
}

// ListAttending godoc
// @Summary List conferences the caller attends
// @Description Returns the conferences the authenticated user is registered for.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListConferencesSuccessResponse "data contains the registered conferences"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/attending [get]
func (c *ConferenceController) ListAttending(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	confs, err := c.Service.ListAttending(r.Context(), ident.UserID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newConferenceForms(confs))
}
