package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// timeLayout is the wire format for session start times. Longer values are
// truncated to hours and minutes before parsing.
const timeLayout = "15:04"

// parseTimeOfDay parses a wire time of day, tolerating trailing seconds.
func parseTimeOfDay(s string) (time.Time, error) {
	if len(s) > len(timeLayout) {
		s = s[:len(timeLayout)]
	}
	return time.Parse(timeLayout, s)
}

// CreateSessionRequest is the request body for POST /conference/{websafeConferenceKey}/sessions.
type CreateSessionRequest struct {
	Name         string   `json:"name"`
	Highlights   string   `json:"highlights"`
	Speaker      string   `json:"speaker"`
	Duration     int      `json:"duration"`
	SessionTypes []string `json:"session_types"`
	Date         string   `json:"date"`
	StartTime    string   `json:"start_time"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateSessionRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.Speaker == "" {
		errs = append(errs, "speaker is required")
	}
	if c.Duration < 0 {
		errs = append(errs, "duration must not be negative")
	}
	if !validDate(c.Date) {
		errs = append(errs, "date must be YYYY-MM-DD")
	}
	if c.StartTime != "" {
		if _, err := parseTimeOfDay(c.StartTime); err != nil {
			errs = append(errs, "start_time must be HH:MM")
		}
	}
	return errs
}

func (c CreateSessionRequest) toDomain() *domain.Session {
	sess := &domain.Session{
		Name:         c.Name,
		Highlights:   c.Highlights,
		Speaker:      c.Speaker,
		Duration:     c.Duration,
		SessionTypes: c.SessionTypes,
	}
	if c.Date != "" {
		d, _ := parseDate(c.Date)
		sess.Date = &d
	}
	if c.StartTime != "" {
		t, _ := parseTimeOfDay(c.StartTime)
		sess.StartTime = &t
	}
	return sess
}

// CreateSessionSuccessResponse is the success response envelope for session creation (201).
type CreateSessionSuccessResponse struct {
	Data  *SessionForm      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListSessionsSuccessResponse is the success response envelope for session list endpoints (200).
type ListSessionsSuccessResponse struct {
	Data  []*SessionForm    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// FeaturedSpeakerSuccessResponse is the success response envelope for GET /speaker/featured (200).
type FeaturedSpeakerSuccessResponse struct {
	Data  *domain.FeaturedSpeaker `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type SessionController struct {
	Logger  *slog.Logger
	Service domain.SessionService
}

func NewSessionController(logger *slog.Logger, svc domain.SessionService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSession godoc
// @Summary Create a session in a conference
// @Description Create a session. Only the conference organizer may create sessions. The featured-speaker cache is recomputed asynchronously.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param websafeConferenceKey path string true "Conference key (UUID)"
// @Param session body CreateSessionRequest true "Session data"
// @Success 201 {object} controllers.CreateSessionSuccessResponse "data contains the created session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conference/{websafeConferenceKey}/sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	key, ok := conferenceKey(w, r)
	if !ok {
		return
	}
	var req CreateSessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sess, err := c.Service.Create(r.Context(), key, ident.UserID, req.toDomain())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the organizer can add sessions")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, newSessionForm(sess))
}

// writeSessionList writes a session list result, mapping the shared error cases.
func (c *SessionController) writeSessionList(w http.ResponseWriter, r *http.Request, sessions []*domain.Session, err error) {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newSessionForms(sessions))
}

// ListConferenceSessions godoc
// @Summary List sessions of a conference
// @Tags sessions
// @Produce json
// @Param websafeConferenceKey path string true "Conference key (UUID)"
// @Success 200 {object} controllers.ListSessionsSuccessResponse "data contains the conference's sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conference/{websafeConferenceKey}/sessions [get]
func (c *SessionController) ListConferenceSessions(w http.ResponseWriter, r *http.Request) {
	key, ok := conferenceKey(w, r)
	if !ok {
		return
	}
	sessions, err := c.Service.ListByConference(r.Context(), key)
	c.writeSessionList(w, r, sessions, err)
}

// ListConferenceSessionsByType godoc
// @Summary List sessions of a conference by type
// @Tags sessions
// @Produce json
// @Param websafeConferenceKey path string true "Conference key (UUID)"
// @Param sessionType path string true "Session type"
// @Success 200 {object} controllers.ListSessionsSuccessResponse "data contains the matching sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conference/{websafeConferenceKey}/sessions/by_type/{sessionType} [get]
func (c *SessionController) ListConferenceSessionsByType(w http.ResponseWriter, r *http.Request) {
	key, ok := conferenceKey(w, r)
	if !ok {
		return
	}
	sessionType := r.PathValue("sessionType")
	if sessionType == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionType")
		return
	}
	sessions, err := c.Service.ListByConferenceAndType(r.Context(), key, sessionType)
	c.writeSessionList(w, r, sessions, err)
}

// ListConferenceSessionsBySpeaker godoc
// @Summary List sessions of a conference by speaker
// @Tags sessions
// @Produce json
// @Param websafeConferenceKey path string true "Conference key (UUID)"
// @Param speaker path string true "Speaker name"
// @Success 200 {object} controllers.ListSessionsSuccessResponse "data contains the matching sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conference/{websafeConferenceKey}/sessions/by_speaker/{speaker} [get]
func (c *SessionController) ListConferenceSessionsBySpeaker(w http.ResponseWriter, r *http.Request) {
	key, ok := conferenceKey(w, r)
	if !ok {
		return
	}
	speaker := r.PathValue("speaker")
	if speaker == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing speaker")
		return
	}
	sessions, err := c.Service.ListByConferenceAndSpeaker(r.Context(), key, speaker)
	c.writeSessionList(w, r, sessions, err)
}

// ListConferenceSessionsToDate godoc
// @Summary List sessions of a conference dated up to today
// @Description Returns the conference's sessions dated on or before today, ordered by date and start time.
// @Tags sessions
// @Produce json
// @Param websafeConferenceKey path string true "Conference key (UUID)"
// @Success 200 {object} controllers.ListSessionsSuccessResponse "data contains the matching sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conference/{websafeConferenceKey}/sessions/to_date [get]
func (c *SessionController) ListConferenceSessionsToDate(w http.ResponseWriter, r *http.Request) {
	key, ok := conferenceKey(w, r)
	if !ok {
		return
	}
	sessions, err := c.Service.ListByConferenceToDate(r.Context(), key)
	c.writeSessionList(w, r, sessions, err)
}

// ListSessionsBySpeaker godoc
// @Summary List sessions by speaker across all conferences
// @Tags sessions
// @Produce json
// @Param speaker path string true "Speaker name"
// @Success 200 {object} controllers.ListSessionsSuccessResponse "data contains the speaker's sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/by_speaker/{speaker} [get]
func (c *SessionController) ListSessionsBySpeaker(w http.ResponseWriter, r *http.Request) {
	speaker := r.PathValue("speaker")
	if speaker == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing speaker")
		return
	}
	sessions, err := c.Service.ListBySpeaker(r.Context(), speaker)
	c.writeSessionList(w, r, sessions, err)
}

// ListNonWorkshopDaySessions godoc
// @Summary List non-workshop sessions starting by 19:00
// @Description Returns sessions across all conferences that are not workshops and start at or before 19:00.
// @Tags sessions
// @Produce json
// @Success 200 {object} controllers.ListSessionsSuccessResponse "data contains the matching sessions"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/non_workshop [get]
func (c *SessionController) ListNonWorkshopDaySessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := c.Service.ListNonWorkshopDaySessions(r.Context())
	c.writeSessionList(w, r, sessions, err)
}

// GetFeaturedSpeaker godoc
// @Summary Get the featured speaker
// @Description Returns the cached featured speaker and their session names. An empty record means no speaker is featured.
// @Tags speakers
// @Produce json
// @Success 200 {object} controllers.FeaturedSpeakerSuccessResponse "data contains the featured speaker"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speaker/featured [get]
func (c *SessionController) GetFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	speaker, err := c.Service.GetFeaturedSpeaker(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}
